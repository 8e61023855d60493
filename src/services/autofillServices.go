package services

import (
	"context"
	"strings"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"gorm.io/gorm"
)

// AutofillService suggests location and owner names for the search form.
type AutofillService struct {
	db    *gorm.DB
	limit int
}

// NewAutofillService creates a new instance of AutofillService
func NewAutofillService(db *gorm.DB, cfg *config.Config) *AutofillService {
	limit := cfg.AutofillLimit
	if limit < 1 {
		limit = 50
	}
	return &AutofillService{db: db, limit: limit}
}

func (s *AutofillService) distinctNames(ctx context.Context, model interface{}, query string) ([]string, error) {
	names := []string{}
	if strings.TrimSpace(query) == "" {
		return names, nil
	}
	err := s.db.WithContext(ctx).
		Model(model).
		Distinct("name").
		Where(ilike("name"), likePattern(query)).
		Order("name").
		Limit(s.limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Locations returns location names containing query. An empty query gives
// no matches.
func (s *AutofillService) Locations(ctx context.Context, query string) (*dtos.MatchesDTO, error) {
	names, err := s.distinctNames(ctx, &models.LocationModel{}, query)
	if err != nil {
		return nil, err
	}
	return &dtos.MatchesDTO{Matches: names}, nil
}

// Provenances returns owner names containing query.
func (s *AutofillService) Provenances(ctx context.Context, query string) (*dtos.MatchesDTO, error) {
	names, err := s.distinctNames(ctx, &models.ProvenanceNameModel{}, query)
	if err != nil {
		return nil, err
	}
	return &dtos.MatchesDTO{Matches: names}, nil
}

// Collections returns the collection menu narrowed by query.
func (s *AutofillService) Collections(query string) *dtos.CollectionMatchesDTO {
	options := CollectionOptions(query)
	if len(options) > s.limit {
		options = options[:s.limit]
	}
	return &dtos.CollectionMatchesDTO{Matches: options}
}
