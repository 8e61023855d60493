package services

import (
	"context"
	"testing"

	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTitles(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewCatalogService(gdb)

	titles, err := svc.GetTitles(context.Background())
	require.NoError(t, err)
	var names []string
	for _, tt := range titles {
		names = append(names, tt.Title)
	}
	assert.Equal(t, []string{"Comedies, Histories, and Tragedies", "Hamlet", "1 Henry IV", "The Tempest"}, names)
}

func TestCatalogTitleDetail(t *testing.T) {
	gdb, c := seedCensus(t)
	svc := NewCatalogService(gdb)
	ctx := context.Background()

	// a second, non-numeric edition sorts after the first
	ed := &models.EditionModel{TitleID: c.titles["henry"].ID, EditionNumber: ptr("Not an edition")}
	require.NoError(t, gdb.Create(ed).Error)
	extra := &models.IssueModel{EditionID: ed.ID, Year: "1580", StartDate: 1580, EndDate: 1580}
	require.NoError(t, gdb.Create(extra).Error)

	detail, err := svc.GetTitleDetail(ctx, c.titles["henry"].ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Henry IV", detail.Title.Title)
	assert.Len(t, detail.Editions, 2)
	require.Len(t, detail.Issues, 3)
	assert.Equal(t, c.issues["henry1590s"].ID, detail.Issues[0].ID)
	assert.Equal(t, c.issues["henry1598"].ID, detail.Issues[1].ID)
	assert.Equal(t, extra.ID, detail.Issues[2].ID)
	assert.Equal(t, 1, detail.Issues[0].CopyCount)
	assert.Equal(t, 0, detail.Issues[2].CopyCount)
	assert.Equal(t, 2, detail.CopyCount)

	// ghost copy c4 is not counted
	detail, err = svc.GetTitleDetail(ctx, c.titles["hamlet"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.CopyCount)

	_, err = svc.GetTitleDetail(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogIssueDetail(t *testing.T) {
	gdb, c := seedCensus(t)
	svc := NewCatalogService(gdb)
	ctx := context.Background()

	extra := &models.CopyModel{CatalogNumber: "99.1", Verification: models.VerificationVerified, IssueID: &c.issues["hamlet1600"].ID}
	require.NoError(t, gdb.Create(extra).Error)

	detail, err := svc.GetIssueDetail(ctx, c.issues["hamlet1600"].ID)
	require.NoError(t, err)
	assert.Equal(t, "Hamlet", detail.Title)
	assert.Equal(t, 2, detail.CopyCount)
	require.Len(t, detail.Copies, 2)
	assert.Equal(t, extra.ID, detail.Copies[0].ID)
	assert.Equal(t, c.copies["c1"].ID, detail.Copies[1].ID)
	assert.Equal(t, "Oxford Library", detail.Copies[1].Location)

	_, err = svc.GetIssueDetail(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogCopies(t *testing.T) {
	gdb, c := seedCensus(t)
	svc := NewCatalogService(gdb)
	ctx := context.Background()

	cp, err := svc.GetCopyByID(ctx, c.copies["c1"].ID)
	require.NoError(t, err)
	assert.Equal(t, "Hamlet", cp.Issue.Edition.Title.Title)
	assert.Len(t, cp.ProvenanceRecords, 2)

	ghost, err := svc.GetCopyByID(ctx, c.copies["c4"].ID)
	require.NoError(t, err)
	assert.False(t, ghost.IsCanonical())

	fragment, err := svc.GetCopyFragment(ctx, c.copies["c1"].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Elizabeth Smith", "John Smith"}, fragment.ProvenanceNames)
	assert.Equal(t, "123.4", fragment.CatalogNumber)

	byNumber, err := svc.GetCopyByCatalogNumber(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, c.copies["c2"].ID, byNumber.ID)

	_, err = svc.GetCopyByCatalogNumber(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetCopyByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
