package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"gorm.io/gorm"
)

const defaultViewName = "about"

// StaticPageService renders the informational pages stored as
// StaticPageText rows.
type StaticPageService struct {
	db    *gorm.DB
	stats *StatsService
	now   func() time.Time
}

// NewStaticPageService creates a new instance of StaticPageService
func NewStaticPageService(db *gorm.DB, stats *StatsService) *StaticPageService {
	return &StaticPageService{db: db, stats: stats, now: time.Now}
}

// Placeholders maps every supported placeholder to its value.
func Placeholders(stats *CensusStats, now time.Time) map[string]string {
	return map[string]string{
		"copy_count":             strconv.FormatInt(stats.CopyCount, 10),
		"copy_count_formatted":   humanize.Comma(stats.CopyCount),
		"verified_copy_count":    strconv.FormatInt(stats.VerifiedCount, 10),
		"unverified_copy_count":  strconv.FormatInt(stats.UnverifiedCount, 10),
		"current_date":           now.Format("02 January 2006"),
		"facsimile_copy_count":   strconv.FormatInt(stats.FacsimileCount, 10),
		"facsimile_copy_percent": fmt.Sprintf("%d%%", stats.FacsimilePercent()),
		"estc_copy_count":        strconv.FormatInt(stats.ESTCCount, 10),
		"non_estc_copy_count":    strconv.FormatInt(stats.NonESTCCount, 10),
	}
}

// RenderPlaceholders replaces {name} tokens with values. "{{" and "}}" stand
// for literal braces. A name missing from values, an unterminated token or a
// lone "}" returns ErrUnresolvedPlaceholder.
func RenderPlaceholders(content string, values map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(content); i++ {
		ch := content[i]
		switch {
		case ch == '{' && i+1 < len(content) && content[i+1] == '{':
			b.WriteByte('{')
			i++
		case ch == '}' && i+1 < len(content) && content[i+1] == '}':
			b.WriteByte('}')
			i++
		case ch == '{':
			end := strings.IndexByte(content[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder at offset %d", ErrUnresolvedPlaceholder, i)
			}
			name := strings.TrimSpace(content[i+1 : i+1+end])
			value, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: {%s}", ErrUnresolvedPlaceholder, name)
			}
			b.WriteString(value)
			i += end + 1
		case ch == '}':
			return "", fmt.Errorf("%w: unmatched '}' at offset %d", ErrUnresolvedPlaceholder, i)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

// Render returns the text blocks of viewName with placeholders filled in.
// An empty viewName renders the about page.
func (s *StaticPageService) Render(ctx context.Context, viewName string) (*dtos.StaticPageDTO, error) {
	if strings.TrimSpace(viewName) == "" {
		viewName = defaultViewName
	}

	var pages []models.StaticPageTextModel
	err := s.db.WithContext(ctx).
		Where("view_name = ?", viewName).
		Order("position, id").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("static page %q %w", viewName, ErrNotFound)
	}

	stats, err := s.stats.Collect(ctx)
	if err != nil {
		return nil, err
	}
	values := Placeholders(stats, s.now())

	page := &dtos.StaticPageDTO{ViewName: viewName, Blocks: make([]string, 0, len(pages))}
	for _, p := range pages {
		text, err := RenderPlaceholders(p.Content, values)
		if err != nil {
			return nil, fmt.Errorf("static page %q block %d: %w", viewName, p.ID, err)
		}
		page.Blocks = append(page.Blocks, text)
	}
	return page, nil
}
