package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/jsench/Project-Wheatley/src/sorting"
	"gorm.io/gorm"
)

// SearchRequest carries the raw search inputs of one request: the optional
// path segments and the query string values.
type SearchRequest struct {
	PathField string
	PathValue string
	PathOrder string

	Field string
	Value string
	Order string
	Page  string
}

// SearchParams are the effective search parameters.
type SearchParams struct {
	Field string
	Value string
	Order sorting.Order
	Page  int
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ResolveSearchParams computes the effective parameters. Path segments win
// over query values, a value without a field searches by keyword, a missing
// order sorts by date and an invalid page is page 1.
func ResolveSearchParams(r SearchRequest) SearchParams {
	p := SearchParams{
		Field: NormalizeField(firstNonEmpty(r.PathField, r.Field)),
		Value: firstNonEmpty(r.PathValue, r.Value),
		Order: sorting.ParseOrder(firstNonEmpty(r.PathOrder, r.Order)),
		Page:  1,
	}
	if p.Field == "" && p.Value != "" {
		p.Field = FieldKeyword
	}
	if page, err := strconv.Atoi(strings.TrimSpace(r.Page)); err == nil && page > 0 {
		p.Page = page
	}
	return p
}

type SearchService struct {
	db             *gorm.DB
	pageSize       int
	excludedTitles []string
}

// NewSearchService creates a new instance of SearchService
func NewSearchService(db *gorm.DB, cfg *config.Config) *SearchService {
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return &SearchService{db: db, pageSize: pageSize, excludedTitles: cfg.ExcludedTitles}
}

// Search runs a copy search and returns one page of results. Unknown fields
// give an empty result rather than an error.
func (s *SearchService) Search(ctx context.Context, p SearchParams) (*dtos.SearchResultDTO, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	result := &dtos.SearchResultDTO{
		Field:        p.Field,
		Value:        p.Value,
		Order:        string(p.Order),
		DisplayField: p.Field,
		DisplayValue: p.Value,
		Page:         p.Page,
		PageSize:     s.pageSize,
		Copies:       []dtos.CopySummaryDTO{},
	}

	filter, ok := resolveFilter(p.Field, p.Value)
	if !ok {
		return result, nil
	}
	if filter.displayField != "" {
		result.DisplayField = filter.displayField
		result.DisplayValue = filter.displayValue
	}

	copies, err := s.matchingCopies(ctx, filter)
	if err != nil {
		return nil, err
	}
	sorting.SortCopies(copies, p.Order)

	result.Total = len(copies)
	result.PageCount = (result.Total + s.pageSize - 1) / s.pageSize
	if result.PageCount > 0 && result.Page > result.PageCount {
		result.Page = result.PageCount
	}
	start := (result.Page - 1) * s.pageSize
	end := min(start+s.pageSize, result.Total)
	for i := start; i < end; i++ {
		result.Copies = append(result.Copies, dtos.NewCopySummary(&copies[i]))
	}
	return result, nil
}

func (s *SearchService) matchingCopies(ctx context.Context, filter copyFilter) ([]models.CopyModel, error) {
	query := s.db.WithContext(ctx).Model(&models.CopyModel{}).Scopes(filter.apply)
	if !filter.includeGhosts {
		query = query.Scopes(canonicalCopies)
	}
	query = query.Scopes(excludeTitles(s.excludedTitles))

	var copies []models.CopyModel
	err := query.
		Preload("Issue.Edition.Title").
		Preload("Location").
		Find(&copies).Error
	if err != nil {
		return nil, err
	}
	return dedupeCopies(copies), nil
}

// dedupeCopies keeps the first occurrence of each copy id.
func dedupeCopies(copies []models.CopyModel) []models.CopyModel {
	seen := make(map[int]struct{}, len(copies))
	out := copies[:0]
	for _, c := range copies {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
