package dtos

import "github.com/jsench/Project-Wheatley/src/models"

// CopySummaryDTO is the row shown for a copy in search results and copy lists.
type CopySummaryDTO struct {
	ID                  int                 `json:"id"`
	CatalogNumber       string              `json:"catalogNumber"`
	Verification        models.Verification `json:"verification"`
	TitleID             *int                `json:"titleId,omitempty"`
	Title               string              `json:"title"`
	IssueID             *int                `json:"issueId,omitempty"`
	Year                string              `json:"year"`
	STCWing             *string             `json:"stcWing,omitempty"`
	Location            string              `json:"location"`
	Shelfmark           *string             `json:"shelfmark,omitempty"`
	Fragment            bool                `json:"fragment"`
	DigitalFacsimileURL *string             `json:"digitalFacsimileUrl,omitempty"`
}

// NewCopySummary flattens a copy loaded with its issue, edition, title and
// location.
func NewCopySummary(c *models.CopyModel) CopySummaryDTO {
	dto := CopySummaryDTO{
		ID:                  c.ID,
		CatalogNumber:       c.CatalogNumber,
		Verification:        c.Verification,
		IssueID:             c.IssueID,
		Shelfmark:           c.Shelfmark,
		Fragment:            c.Fragment,
		DigitalFacsimileURL: c.DigitalFacsimileURL,
	}
	if c.Issue != nil {
		dto.Year = c.Issue.Year
		dto.STCWing = c.Issue.STCWing
		if c.Issue.Edition != nil && c.Issue.Edition.Title != nil {
			id := c.Issue.Edition.Title.ID
			dto.TitleID = &id
			dto.Title = c.Issue.Edition.Title.Title
		}
	}
	if c.Location != nil {
		dto.Location = c.Location.Name
	}
	return dto
}

// SearchResultDTO is one page of search results.
type SearchResultDTO struct {
	Field        string           `json:"field"`
	Value        string           `json:"value"`
	Order        string           `json:"order"`
	DisplayField string           `json:"displayField"`
	DisplayValue string           `json:"displayValue"`
	Total        int              `json:"total"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
	PageCount    int              `json:"pageCount"`
	Copies       []CopySummaryDTO `json:"copies"`
}

type IssueSummaryDTO struct {
	ID            int     `json:"id"`
	EditionID     int     `json:"editionId"`
	EditionNumber *string `json:"editionNumber,omitempty"`
	EditionFormat *string `json:"editionFormat,omitempty"`
	Year          string  `json:"year"`
	StartDate     int     `json:"startDate"`
	EndDate       int     `json:"endDate"`
	STCWing       *string `json:"stcWing,omitempty"`
	ESTC          *string `json:"estc,omitempty"`
	CopyCount     int     `json:"copyCount"`
}

// TitleDetailDTO lists the issues of a title.
type TitleDetailDTO struct {
	Title     models.TitleModel     `json:"title"`
	Editions  []models.EditionModel `json:"editions"`
	Issues    []IssueSummaryDTO     `json:"issues"`
	CopyCount int                   `json:"copyCount"`
}

// IssueDetailDTO lists the canonical copies of an issue.
type IssueDetailDTO struct {
	Issue     models.IssueModel `json:"issue"`
	Title     string            `json:"title"`
	Copies    []CopySummaryDTO  `json:"copies"`
	CopyCount int               `json:"copyCount"`
}

// CopyFragmentDTO is the short copy view used by the copy modal.
type CopyFragmentDTO struct {
	CopySummaryDTO
	Binding         *string  `json:"binding,omitempty"`
	Marginalia      *string  `json:"marginalia,omitempty"`
	ProvInfo        *string  `json:"provInfo,omitempty"`
	ProvenanceNames []string `json:"provenanceNames"`
}

type MatchesDTO struct {
	Matches []string `json:"matches"`
}

type CollectionOptionDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type CollectionMatchesDTO struct {
	Matches []CollectionOptionDTO `json:"matches"`
}

// StaticPageDTO holds the rendered text blocks of one informational page.
type StaticPageDTO struct {
	ViewName string   `json:"viewName"`
	Blocks   []string `json:"blocks"`
}

// ImportResultDTO reports a bulk import.
type ImportResultDTO struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
