package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/jsench/Project-Wheatley/src/sorting"
	"gorm.io/gorm"
)

// CatalogService serves the browse pages: titles, issues and copies.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

// GetTitles returns every title ordered by its sort key.
func (s *CatalogService) GetTitles(ctx context.Context) ([]models.TitleModel, error) {
	var titles []models.TitleModel
	if err := s.db.WithContext(ctx).Find(&titles).Error; err != nil {
		return nil, err
	}
	sorting.SortTitles(titles)
	return titles, nil
}

// GetTitleDetail returns a title with its editions and sorted issues, each
// with its count of canonical copies.
func (s *CatalogService) GetTitleDetail(ctx context.Context, id int) (*dtos.TitleDetailDTO, error) {
	db := s.db.WithContext(ctx)

	var title models.TitleModel
	if err := db.Preload("Editions.Issues").First(&title, id).Error; err != nil {
		return nil, notFound(err, "title")
	}

	var issues []models.IssueModel
	editions := title.Editions
	for i := range editions {
		for _, issue := range editions[i].Issues {
			issue.Edition = &models.EditionModel{
				ID:            editions[i].ID,
				EditionNumber: editions[i].EditionNumber,
				EditionFormat: editions[i].EditionFormat,
			}
			issues = append(issues, issue)
		}
		editions[i].Issues = nil
	}
	title.Editions = nil
	sorting.SortIssues(issues)

	ids := make([]int, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.ID)
	}
	counts, err := s.canonicalCountsByIssue(ctx, ids)
	if err != nil {
		return nil, err
	}

	detail := &dtos.TitleDetailDTO{
		Title:    title,
		Editions: editions,
		Issues:   make([]dtos.IssueSummaryDTO, 0, len(issues)),
	}
	if detail.Editions == nil {
		detail.Editions = []models.EditionModel{}
	}
	for _, issue := range issues {
		detail.Issues = append(detail.Issues, dtos.IssueSummaryDTO{
			ID:            issue.ID,
			EditionID:     issue.EditionID,
			EditionNumber: issue.Edition.EditionNumber,
			EditionFormat: issue.Edition.EditionFormat,
			Year:          issue.Year,
			StartDate:     issue.StartDate,
			EndDate:       issue.EndDate,
			STCWing:       issue.STCWing,
			ESTC:          issue.ESTC,
			CopyCount:     counts[issue.ID],
		})
		detail.CopyCount += counts[issue.ID]
	}
	return detail, nil
}

func (s *CatalogService) canonicalCountsByIssue(ctx context.Context, issueIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(issueIDs))
	if len(issueIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		IssueID int
		Total   int
	}
	var rows []countRow
	err := s.db.WithContext(ctx).
		Model(&models.CopyModel{}).
		Select("copy_models.issue_id AS issue_id, COUNT(*) AS total").
		Scopes(canonicalCopies).
		Where("copy_models.issue_id IN ?", issueIDs).
		Group("copy_models.issue_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.IssueID] = r.Total
	}
	return counts, nil
}

// GetIssueDetail returns an issue and its canonical copies in catalog order.
func (s *CatalogService) GetIssueDetail(ctx context.Context, id int) (*dtos.IssueDetailDTO, error) {
	db := s.db.WithContext(ctx)

	var issue models.IssueModel
	if err := db.Preload("Edition.Title").First(&issue, id).Error; err != nil {
		return nil, notFound(err, "issue")
	}

	var copies []models.CopyModel
	err := db.Model(&models.CopyModel{}).
		Scopes(canonicalCopies).
		Where("copy_models.issue_id = ?", id).
		Preload("Location").
		Find(&copies).Error
	if err != nil {
		return nil, err
	}
	sorting.SortCopies(copies, sorting.OrderCatalog)

	detail := &dtos.IssueDetailDTO{
		Issue:     issue,
		Copies:    make([]dtos.CopySummaryDTO, 0, len(copies)),
		CopyCount: len(copies),
	}
	if issue.Edition != nil && issue.Edition.Title != nil {
		detail.Title = issue.Edition.Title.Title
	}
	for i := range copies {
		copies[i].Issue = &issue
		detail.Copies = append(detail.Copies, dtos.NewCopySummary(&copies[i]))
	}
	return detail, nil
}

func (s *CatalogService) preloadCopy(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Issue.Edition.Title").
		Preload("Location").
		Preload("ProvenanceRecords.ProvenanceName")
}

// GetCopyByID returns the full record of a copy. Ghost copies are returned
// too so that direct links keep working.
func (s *CatalogService) GetCopyByID(ctx context.Context, id int) (*models.CopyModel, error) {
	var c models.CopyModel
	if err := s.preloadCopy(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "copy")
	}
	return &c, nil
}

// GetCopyFragment returns the short view of a copy.
func (s *CatalogService) GetCopyFragment(ctx context.Context, id int) (*dtos.CopyFragmentDTO, error) {
	c, err := s.GetCopyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fragment := &dtos.CopyFragmentDTO{
		CopySummaryDTO:  dtos.NewCopySummary(c),
		Binding:         c.Binding,
		Marginalia:      c.Marginalia,
		ProvInfo:        c.ProvInfo,
		ProvenanceNames: []string{},
	}
	for _, r := range c.ProvenanceRecords {
		if r.ProvenanceName != nil {
			fragment.ProvenanceNames = append(fragment.ProvenanceNames, r.ProvenanceName.Name)
		}
	}
	return fragment, nil
}

// GetCopyByCatalogNumber looks a copy up by its census number.
func (s *CatalogService) GetCopyByCatalogNumber(ctx context.Context, number string) (*models.CopyModel, error) {
	var c models.CopyModel
	err := s.preloadCopy(ctx).
		Where("catalog_number = ?", strings.TrimSpace(number)).
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "copy")
	}
	return &c, nil
}
