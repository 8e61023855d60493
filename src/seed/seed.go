package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/jsench/Project-Wheatley/src/services"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed pages.yaml
var pagesYAML []byte

type pageFixture struct {
	View     string `yaml:"view"`
	Position int    `yaml:"position"`
	Content  string `yaml:"content"`
}

// Pages returns the default static page texts.
func Pages() ([]models.StaticPageTextModel, error) {
	var doc struct {
		Pages []pageFixture `yaml:"pages"`
	}
	if err := yaml.Unmarshal(pagesYAML, &doc); err != nil {
		return nil, fmt.Errorf("invalid page fixtures: %w", err)
	}
	pages := make([]models.StaticPageTextModel, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, models.StaticPageTextModel{
			ViewName: p.View,
			Position: p.Position,
			Content:  p.Content,
		})
	}
	return pages, nil
}

// Seed creates the admin account and the default static pages. Existing
// users and views are left untouched, so it is safe to run repeatedly.
func Seed(ctx context.Context, db *gorm.DB, users *services.UserService, cfg *config.Config, logger *zap.Logger) error {
	created, err := users.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("cannot create user %s: %w", cfg.AdminUsername, err)
	}
	if created {
		logger.Info("User created", zap.String("username", cfg.AdminUsername))
	} else {
		logger.Info("User already exists", zap.String("username", cfg.AdminUsername))
	}

	pages, err := Pages()
	if err != nil {
		return err
	}
	byView := map[string][]models.StaticPageTextModel{}
	var views []string
	for _, p := range pages {
		if _, ok := byView[p.ViewName]; !ok {
			views = append(views, p.ViewName)
		}
		byView[p.ViewName] = append(byView[p.ViewName], p)
	}

	for _, view := range views {
		var existing int64
		if err := db.WithContext(ctx).Model(&models.StaticPageTextModel{}).
			Where("view_name = ?", view).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			logger.Info("Static pages already exist, skipping", zap.String("view", view))
			continue
		}
		texts := byView[view]
		if err := db.WithContext(ctx).Create(&texts).Error; err != nil {
			return fmt.Errorf("cannot create static pages for %s: %w", view, err)
		}
		logger.Info("Static pages created", zap.String("view", view), zap.Int("count", len(texts)))
	}
	return nil
}
