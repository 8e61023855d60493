package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/jsench/Project-Wheatley/src/db/dbtest"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))
	return buf.String()
}

func TestLocationCopyCounts(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewExportService(gdb)

	report, err := svc.LocationCopyCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "census_location_copy_count.csv", report.Filename)
	assert.Equal(t, "Location,Number of Copies\n"+
		"British Library,2\n"+
		"Oxford Library,1\n"+
		"The Folger Shakespeare Library,1\n"+
		"Unknown,1\n", render(t, report))
}

func TestIssueCopyCounts(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewExportService(gdb)

	report, err := svc.IssueCopyCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "census_year_issue_copy_count.csv", report.Filename)
	assert.Equal(t, "Year,Title,Number of Copies\n"+
		"1590,1 Henry IV,1\n"+
		"1598,1 Henry IV,1\n"+
		"1600,Hamlet,1\n"+
		"1623,\"Comedies, Histories, and Tragedies\",1\n"+
		"1640,The Tempest,1\n", render(t, report))
}

func TestAggregate(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewExportService(gdb)
	ctx := context.Background()

	report, err := svc.Aggregate(ctx, "location", "id", "count")
	require.NoError(t, err)
	assert.Equal(t, "census_count_of_id_for_each_location.csv", report.Filename)
	assert.Equal(t, "location,count of id\n"+
		"British Library,2\n"+
		"Oxford Library,1\n"+
		"The Folger Shakespeare Library,2\n"+
		"Unknown,1\n", render(t, report))

	report, err = svc.Aggregate(ctx, "verification", "height", "sum")
	require.NoError(t, err)
	assert.Equal(t, "verification,sum of height\n"+
		"F,0\n"+
		"U,20\n"+
		"V,18.5\n", render(t, report))

	report, err = svc.Aggregate(ctx, "title", "marginalia", "count")
	require.NoError(t, err)
	assert.Equal(t, 4, report.Len())
}

func TestSameNamedLocationsStayApart(t *testing.T) {
	gdb := dbtest.Open(t)
	for i, region := range []string{"GB", "IE"} {
		loc := models.LocationModel{Name: "Trinity College Library", RegionCode: ptr(region)}
		require.NoError(t, gdb.Create(&loc).Error)
		c := models.CopyModel{
			CatalogNumber: fmt.Sprintf("%d", 50+i),
			Verification:  models.VerificationVerified,
			LocationID:    &loc.ID,
		}
		require.NoError(t, gdb.Create(&c).Error)
	}
	svc := NewExportService(gdb)
	ctx := context.Background()

	report, err := svc.LocationCopyCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Location,Number of Copies\n"+
		"Trinity College Library,1\n"+
		"Trinity College Library,1\n", render(t, report))

	report, err = svc.Aggregate(ctx, "location", "id", "count")
	require.NoError(t, err)
	assert.Equal(t, "location,count of id\n"+
		"Trinity College Library,1\n"+
		"Trinity College Library,1\n", render(t, report))

	report, err = svc.Aggregate(ctx, "region", "id", "count")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Len())
}

func TestAggregateInvalid(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewExportService(gdb)
	ctx := context.Background()

	tests := []struct{ groupBy, column, aggregate string }{
		{"password", "id", "count"},
		{"location", "password", "count"},
		{"location", "catalog_number", "sum"},
		{"location", "id", "avg"},
		{"location; DROP TABLE copy_models", "id", "count"},
	}
	for _, tt := range tests {
		report, err := svc.Aggregate(ctx, tt.groupBy, tt.column, tt.aggregate)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		assert.Nil(t, report)
	}
}

func TestReportEmpty(t *testing.T) {
	gdb, _ := seedCensus(t)
	require.NoError(t, gdb.Exec("DELETE FROM copy_models").Error)
	svc := NewExportService(gdb)

	report, err := svc.LocationCopyCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Location,Number of Copies\n", render(t, report))
}
