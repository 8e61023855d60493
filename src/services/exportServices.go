package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"
	"gorm.io/gorm"
)

const unknownLabel = "Unknown"

// Report is a CSV export whose rows are fully built before anything is
// written, so a failed query never produces partial output.
type Report struct {
	Filename string
	Header   []string
	rows     interface{}
	size     int
}

// Len returns the number of data rows.
func (r *Report) Len() int {
	return r.size
}

// WriteCSV writes the header and rows to w.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header); err != nil {
		return err
	}
	if r.size > 0 {
		enc := csvutil.NewEncoder(cw)
		enc.AutoHeader = false
		if err := enc.Encode(r.rows); err != nil {
			return fmt.Errorf("cannot encode %s: %w", r.Filename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func newReport[T any](filename string, header []string, rows []T) (*Report, error) {
	if header == nil {
		var zero T
		h, err := csvutil.Header(zero, "csv")
		if err != nil {
			return nil, err
		}
		header = h
	}
	return &Report{Filename: filename, Header: header, rows: rows, size: len(rows)}, nil
}

type LocationCountRow struct {
	Location string `csv:"Location"`
	Copies   int    `csv:"Number of Copies"`
}

type IssueCountRow struct {
	Year   string `csv:"Year"`
	Title  string `csv:"Title"`
	Copies int    `csv:"Number of Copies"`
}

type AggregateRow struct {
	Group string `csv:"group"`
	Value string `csv:"value"`
}

// ExportService builds the downloadable CSV reports.
type ExportService struct {
	db *gorm.DB
}

// NewExportService creates a new instance of ExportService
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// LocationCopyCounts counts canonical copies per holding location, ordered by
// location name. Locations sharing a name get a row each. Copies without a location are reported as Unknown.
func (s *ExportService) LocationCopyCounts(ctx context.Context) (*Report, error) {
	type row struct {
		Location *string
		Total    int
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("copy_models").
		Select("l.name AS location, COUNT(copy_models.id) AS total").
		Joins("LEFT JOIN location_models l ON l.id = copy_models.location_id").
		Scopes(canonicalCopies).
		Group("l.id, l.name").
		Order("l.name, l.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]LocationCountRow, 0, len(rows))
	unknown := 0
	for _, r := range rows {
		if r.Location == nil {
			unknown += r.Total
			continue
		}
		out = append(out, LocationCountRow{Location: *r.Location, Copies: r.Total})
	}
	if unknown > 0 {
		out = append(out, LocationCountRow{Location: unknownLabel, Copies: unknown})
	}
	return newReport("census_location_copy_count.csv", nil, out)
}

// IssueCopyCounts counts canonical copies per issue with the issue's start
// year and title, ordered by start year.
func (s *ExportService) IssueCopyCounts(ctx context.Context) (*Report, error) {
	type row struct {
		IssueID   *int
		StartDate *int
		Title     *string
		Total     int
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("copy_models").
		Select("i.id AS issue_id, i.start_date AS start_date, t.title AS title, COUNT(copy_models.id) AS total").
		Joins("LEFT JOIN issue_models i ON i.id = copy_models.issue_id").
		Joins("LEFT JOIN edition_models e ON e.id = i.edition_id").
		Joins("LEFT JOIN title_models t ON t.id = e.title_id").
		Scopes(canonicalCopies).
		Group("i.id, i.start_date, t.title").
		Order("i.start_date, t.title, i.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]IssueCountRow, 0, len(rows))
	unknown := 0
	for _, r := range rows {
		if r.IssueID == nil {
			unknown += r.Total
			continue
		}
		item := IssueCountRow{Year: unknownLabel, Title: unknownLabel, Copies: r.Total}
		if r.StartDate != nil {
			item.Year = strconv.Itoa(*r.StartDate)
		}
		if r.Title != nil {
			item.Title = *r.Title
		}
		out = append(out, item)
	}
	if unknown > 0 {
		out = append(out, IssueCountRow{Year: unknownLabel, Title: unknownLabel, Copies: unknown})
	}
	return newReport("census_year_issue_copy_count.csv", nil, out)
}

// groupColumns are the expressions a generic export may group by.
var groupColumns = map[string]string{
	"location":            "l.name",
	"location_id":         "copy_models.location_id",
	"region":              "l.region_code",
	"verification":        "copy_models.verification",
	"title":               "t.title",
	"issue_id":            "copy_models.issue_id",
	"year":                "i.year",
	"start_date":          "i.start_date",
	"edition":             "e.edition_number",
	"fragment":            "copy_models.fragment",
	"from_estc":           "copy_models.from_estc",
	"in_early_sammelband": "copy_models.in_early_sammelband",
	"binding":             "copy_models.binding",
}

// groupIdentity holds the row identity behind display-valued groups, so
// locations sharing a name are not merged.
var groupIdentity = map[string]string{
	"location": "l.id",
}

type valueColumn struct {
	expr    string
	numeric bool
}

// valueColumns are the copy columns a generic export may aggregate.
var valueColumns = map[string]valueColumn{
	"id":                    {"copy_models.id", true},
	"height":                {"copy_models.height", true},
	"width":                 {"copy_models.width", true},
	"catalog_number":        {"copy_models.catalog_number", false},
	"shelfmark":             {"copy_models.shelfmark", false},
	"marginalia":            {"copy_models.marginalia", false},
	"binding":               {"copy_models.binding", false},
	"digital_facsimile_url": {"copy_models.digital_facsimile_url", false},
	"location":              {"copy_models.location_id", false},
	"issue":                 {"copy_models.issue_id", false},
}

// Aggregate groups every copy, ghosts included, by groupBy and applies
// aggregate ("count" or "sum") to column. Unknown names, or a sum over a
// non-numeric column, return ErrInvalidQuery.
func (s *ExportService) Aggregate(ctx context.Context, groupBy, column, aggregate string) (*Report, error) {
	groupExpr, ok := groupColumns[groupBy]
	if !ok {
		return nil, fmt.Errorf("%w: cannot group by %q", ErrInvalidQuery, groupBy)
	}
	groupKeys, orderKeys := groupExpr, groupExpr
	if key, ok := groupIdentity[groupBy]; ok {
		groupKeys = key + ", " + groupExpr
		orderKeys = groupExpr + ", " + key
	}
	value, ok := valueColumns[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidQuery, column)
	}
	var aggExpr string
	switch aggregate {
	case "count":
		aggExpr = "COUNT(" + value.expr + ")"
	case "sum":
		if !value.numeric {
			return nil, fmt.Errorf("%w: cannot sum %q", ErrInvalidQuery, column)
		}
		aggExpr = "SUM(" + value.expr + ")"
	default:
		return nil, fmt.Errorf("%w: unknown aggregate %q", ErrInvalidQuery, aggregate)
	}

	type row struct {
		GroupKey *string
		Value    *float64
	}
	var rows []row
	err := s.db.WithContext(ctx).
		Table("copy_models").
		Select(groupExpr + " AS group_key, " + aggExpr + " AS value").
		Joins("LEFT JOIN issue_models i ON i.id = copy_models.issue_id").
		Joins("LEFT JOIN edition_models e ON e.id = i.edition_id").
		Joins("LEFT JOIN title_models t ON t.id = e.title_id").
		Joins("LEFT JOIN location_models l ON l.id = copy_models.location_id").
		Group(groupKeys).
		Order(orderKeys).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]AggregateRow, 0, len(rows))
	var unknown *AggregateRow
	for _, r := range rows {
		v := 0.0
		if r.Value != nil {
			v = *r.Value
		}
		item := AggregateRow{Value: strconv.FormatFloat(v, 'f', -1, 64)}
		if r.GroupKey == nil {
			item.Group = unknownLabel
			unknown = &item
			continue
		}
		item.Group = *r.GroupKey
		out = append(out, item)
	}
	if unknown != nil {
		out = append(out, *unknown)
	}

	filename := fmt.Sprintf("census_%s_of_%s_for_each_%s.csv", aggregate, column, groupBy)
	header := []string{groupBy, fmt.Sprintf("%s of %s", aggregate, column)}
	return newReport(filename, header, out)
}
