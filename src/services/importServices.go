package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jsench/Project-Wheatley/src/dtos"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/jsench/Project-Wheatley/src/utils"
	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportRow is one spreadsheet row of the bulk import format. Every column
// is read as text and converted per field.
type ImportRow struct {
	CatalogNumber     string `csv:"catalog_number"`
	Verification      string `csv:"verification"`
	Title             string `csv:"title"`
	EditionNumber     string `csv:"edition_number"`
	EditionFormat     string `csv:"edition_format"`
	Year              string `csv:"year"`
	StartDate         string `csv:"start_date"`
	EndDate           string `csv:"end_date"`
	STCWing           string `csv:"stc_wing"`
	ESTC              string `csv:"estc"`
	Location          string `csv:"location"`
	Region            string `csv:"region"`
	Shelfmark         string `csv:"shelfmark"`
	Binding           string `csv:"binding"`
	Marginalia        string `csv:"marginalia"`
	ProvInfo          string `csv:"prov_info"`
	Bibliography      string `csv:"bibliography"`
	BackendNotes      string `csv:"backend_notes"`
	Provenance        string `csv:"provenance"`
	Fragment          string `csv:"fragment"`
	FromESTC          string `csv:"from_estc"`
	InEarlySammelband string `csv:"in_early_sammelband"`
	Height            string `csv:"height"`
	Width             string `csv:"width"`
}

var importHeaderAliases = map[string]string{
	"census_id":        "catalog_number",
	"wc":               "catalog_number",
	"stc":              "stc_wing",
	"wing":             "stc_wing",
	"owners":           "provenance",
	"provenance_names": "provenance",
	"status":           "verification",
}

// FileFetcher downloads an import file from a remote link.
type FileFetcher interface {
	Download(ctx context.Context, url string) (io.ReadCloser, string, error)
}

type ImportService struct {
	db      *gorm.DB
	fetcher FileFetcher
	logger  *zap.Logger
}

// NewImportService creates a new instance of ImportService. fetcher may be
// nil when remote imports are not configured.
func NewImportService(db *gorm.DB, fetcher FileFetcher, logger *zap.Logger) *ImportService {
	return &ImportService{db: db, fetcher: fetcher, logger: logger}
}

// ImportURL downloads a Google Drive file and imports it.
func (s *ImportService) ImportURL(ctx context.Context, url string) (*dtos.ImportResultDTO, error) {
	if !utils.IsGoogleDriveURL(url) {
		return nil, fmt.Errorf("%w: only Google Drive links can be imported", ErrInvalidQuery)
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("google drive imports are not configured")
	}
	body, name, err := s.fetcher.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return s.ImportFile(ctx, body, name)
}

// ImportFile reads an .xlsx or .csv census sheet and upserts one copy per
// row. Rows are imported independently; failures are collected in the
// result and only an import with no successful row is an error.
func (s *ImportService) ImportFile(ctx context.Context, r io.Reader, filename string) (*dtos.ImportResultDTO, error) {
	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidQuery, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrInvalidQuery, filename)
	}

	header := normalizeHeader(rows[0])
	dec, err := csvutil.NewDecoder(&sheetReader{rows: rows[1:], width: len(header)}, header...)
	if err != nil {
		return nil, fmt.Errorf("invalid header in %s: %w", filename, err)
	}

	result := &dtos.ImportResultDTO{Errors: []string{}}
	cache := newImportCache()
	for line := 2; ; line++ {
		var row ImportRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if strings.TrimSpace(row.CatalogNumber) == "" {
			continue
		}

		var staged []func()
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			staged = staged[:0]
			return importRow(tx, &row, cache, &staged)
		})
		if err != nil {
			s.logger.Warn("Import row rejected", zap.Int("row", line), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		for _, commit := range staged {
			commit()
		}
		result.Imported++
	}

	s.logger.Info("Census import finished",
		zap.String("file", filename),
		zap.String("imported", humanize.Comma(int64(result.Imported))),
		zap.Int("errors", len(result.Errors)))

	if result.Imported == 0 && len(result.Errors) > 0 {
		return result, fmt.Errorf("no copies could be imported from %s", filename)
	}
	return result, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid excel file: %v", ErrInvalidQuery, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidQuery)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv file: %v", ErrInvalidQuery, err)
	}
	return rows, nil
}

func normalizeHeader(cells []string) []string {
	header := make([]string, len(cells))
	for i, cell := range cells {
		name := strings.ToLower(strings.TrimSpace(cell))
		name = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(name)
		if alias, ok := importHeaderAliases[name]; ok {
			name = alias
		}
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		header[i] = name
	}
	return header
}

// sheetReader feeds spreadsheet rows to csvutil, padding or cutting every
// row to the header width. Spreadsheets drop trailing empty cells.
type sheetReader struct {
	rows  [][]string
	width int
}

func (s *sheetReader) Read() ([]string, error) {
	if len(s.rows) == 0 {
		return nil, io.EOF
	}
	row := s.rows[0]
	s.rows = s.rows[1:]
	record := make([]string, s.width)
	copy(record, row)
	return record, nil
}

type editionKey struct {
	titleID        int
	number, format string
}

type issueKey struct {
	editionID int
	year, stc string
}

// importCache remembers ids resolved by earlier rows of the same import.
type importCache struct {
	titles    map[string]int
	editions  map[editionKey]int
	issues    map[issueKey]int
	locations map[string]int
	owners    map[string]int
}

func newImportCache() *importCache {
	return &importCache{
		titles:    map[string]int{},
		editions:  map[editionKey]int{},
		issues:    map[issueKey]int{},
		locations: map[string]int{},
		owners:    map[string]int{},
	}
}

// cached resolves key through cache or load. New entries are staged and only
// land in the cache once the row's transaction commits.
func cached[K comparable](cache map[K]int, key K, staged *[]func(), load func() (int, error)) (int, error) {
	if id, ok := cache[key]; ok {
		return id, nil
	}
	id, err := load()
	if err != nil {
		return 0, err
	}
	*staged = append(*staged, func() { cache[key] = id })
	return id, nil
}

func importRow(tx *gorm.DB, row *ImportRow, cache *importCache, staged *[]func()) error {
	copyModel := models.CopyModel{}
	err := tx.Where("catalog_number = ?", strings.TrimSpace(row.CatalogNumber)).First(&copyModel).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := fillCopy(&copyModel, row); err != nil {
		return err
	}

	copyModel.IssueID = nil
	if title := strings.TrimSpace(row.Title); title != "" {
		issueID, err := resolveIssue(tx, row, cache, staged)
		if err != nil {
			return err
		}
		copyModel.IssueID = &issueID
	}

	copyModel.LocationID = nil
	if name := strings.TrimSpace(row.Location); name != "" {
		locationID, err := cached(cache.locations, name, staged, func() (int, error) {
			location := models.LocationModel{}
			err := tx.Where(models.LocationModel{Name: name}).
				Attrs(models.LocationModel{RegionCode: optional(row.Region)}).
				FirstOrCreate(&location).Error
			return location.ID, err
		})
		if err != nil {
			return fmt.Errorf("location %q: %w", name, err)
		}
		copyModel.LocationID = &locationID
	}

	if err := tx.Omit("ProvenanceRecords").Save(&copyModel).Error; err != nil {
		return err
	}
	return replaceProvenance(tx, copyModel.ID, row.Provenance, cache, staged)
}

func fillCopy(c *models.CopyModel, row *ImportRow) error {
	height, err := optionalFloat(row.Height)
	if err != nil {
		return fmt.Errorf("invalid height %q", row.Height)
	}
	width, err := optionalFloat(row.Width)
	if err != nil {
		return fmt.Errorf("invalid width %q", row.Width)
	}

	c.CatalogNumber = strings.TrimSpace(row.CatalogNumber)
	// a blank cell keeps the status of a copy already in the census
	if strings.TrimSpace(row.Verification) != "" || c.ID == 0 {
		c.Verification = parseVerification(row.Verification)
	}
	c.Shelfmark = optional(row.Shelfmark)
	c.Binding = optional(utils.PlainText(row.Binding))
	c.Marginalia = optional(utils.PlainText(row.Marginalia))
	c.ProvInfo = optional(utils.PlainText(row.ProvInfo))
	c.Bibliography = optional(utils.PlainText(row.Bibliography))
	c.BackendNotes = optional(utils.PlainText(row.BackendNotes))
	c.Fragment = parseFlag(row.Fragment)
	c.FromESTC = parseFlag(row.FromESTC)
	c.InEarlySammelband = parseFlag(row.InEarlySammelband)
	c.Height = height
	c.Width = width
	return nil
}

func resolveIssue(tx *gorm.DB, row *ImportRow, cache *importCache, staged *[]func()) (int, error) {
	title := strings.TrimSpace(row.Title)
	year := strings.TrimSpace(row.Year)
	if year == "" {
		return 0, fmt.Errorf("year is required for %q", title)
	}

	titleID, err := cached(cache.titles, title, staged, func() (int, error) {
		t := models.TitleModel{}
		err := tx.Where(models.TitleModel{Title: title}).FirstOrCreate(&t).Error
		return t.ID, err
	})
	if err != nil {
		return 0, fmt.Errorf("title %q: %w", title, err)
	}

	ek := editionKey{titleID, strings.TrimSpace(row.EditionNumber), strings.TrimSpace(row.EditionFormat)}
	editionID, err := cached(cache.editions, ek, staged, func() (int, error) {
		edition := models.EditionModel{}
		q := tx.Where("title_id = ?", titleID)
		q = equalOrNull(q, "edition_number", ek.number)
		q = equalOrNull(q, "edition_format", ek.format)
		err := q.First(&edition).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edition = models.EditionModel{
				TitleID:       titleID,
				EditionNumber: optional(ek.number),
				EditionFormat: optional(ek.format),
			}
			err = tx.Create(&edition).Error
		}
		return edition.ID, err
	})
	if err != nil {
		return 0, fmt.Errorf("edition of %q: %w", title, err)
	}

	start, end, err := issueDates(row)
	if err != nil {
		return 0, err
	}
	ik := issueKey{editionID, year, strings.TrimSpace(row.STCWing)}
	return cached(cache.issues, ik, staged, func() (int, error) {
		issue := models.IssueModel{}
		q := tx.Where("edition_id = ? AND year = ?", editionID, year)
		q = equalOrNull(q, "stc_wing", ik.stc)
		err := q.First(&issue).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			issue = models.IssueModel{
				EditionID: editionID,
				Year:      year,
				StartDate: start,
				EndDate:   end,
				STCWing:   optional(ik.stc),
				ESTC:      optional(row.ESTC),
			}
			err = tx.Create(&issue).Error
		}
		return issue.ID, err
	})
}

// issueDates reads explicit start/end columns and falls back to the year
// label ("1600" or "1590-1599").
func issueDates(row *ImportRow) (int, int, error) {
	start, end, _ := ParseYearRange(row.Year)
	if s := strings.TrimSpace(row.StartDate); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start_date %q", s)
		}
		start = v
		if strings.TrimSpace(row.EndDate) == "" {
			end = v
		}
	}
	if e := strings.TrimSpace(row.EndDate); e != "" {
		v, err := strconv.Atoi(e)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end_date %q", e)
		}
		end = v
	}
	if end < start {
		return 0, 0, fmt.Errorf("end_date %d is before start_date %d", end, start)
	}
	return start, end, nil
}

func replaceProvenance(tx *gorm.DB, copyID int, names string, cache *importCache, staged *[]func()) error {
	if err := tx.Where("copy_id = ?", copyID).Delete(&models.ProvenanceRecordModel{}).Error; err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, name := range strings.Split(names, ";") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		ownerID, err := cached(cache.owners, name, staged, func() (int, error) {
			owner := models.ProvenanceNameModel{}
			err := tx.Where(models.ProvenanceNameModel{Name: name}).FirstOrCreate(&owner).Error
			return owner.ID, err
		})
		if err != nil {
			return fmt.Errorf("provenance %q: %w", name, err)
		}
		record := models.ProvenanceRecordModel{CopyID: copyID, ProvenanceNameID: ownerID}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

func equalOrNull(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", value)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "x":
		return true
	}
	return false
}

func parseVerification(s string) models.Verification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v", "verified":
		return models.VerificationVerified
	case "f", "false", "ghost":
		return models.VerificationFalse
	}
	return models.VerificationUnverified
}
