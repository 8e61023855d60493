package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutofill(t *testing.T) {
	gdb, _ := seedCensus(t)
	svc := NewAutofillService(gdb, config.New())
	ctx := context.Background()

	locs, err := svc.Locations(ctx, "library")
	require.NoError(t, err)
	assert.Equal(t, []string{"British Library", "Oxford Library", "The Folger Shakespeare Library"}, locs.Matches)

	locs, err = svc.Locations(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, locs.Matches)
	assert.NotNil(t, locs.Matches)

	owners, err := svc.Provenances(ctx, "ELIZ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Elizabeth Jones", "Elizabeth Smith"}, owners.Matches)

	assert.Len(t, svc.Collections("").Matches, 5)
	assert.Len(t, svc.Collections("sammelband").Matches, 1)
}

func TestAutofillLimit(t *testing.T) {
	gdb, _ := seedCensus(t)
	for i := 0; i < 8; i++ {
		require.NoError(t, gdb.Create(&models.LocationModel{Name: fmt.Sprintf("Private Collection %d", i)}).Error)
	}
	// duplicate names collapse to one suggestion
	require.NoError(t, gdb.Create(&models.LocationModel{Name: "Private Collection 0"}).Error)

	svc := NewAutofillService(gdb, config.New(config.OptAutofillLimit(5)))
	res, err := svc.Locations(context.Background(), "private")
	require.NoError(t, err)
	assert.Len(t, res.Matches, 5)
	assert.Equal(t, "Private Collection 0", res.Matches[0])
	assert.Equal(t, "Private Collection 4", res.Matches[4])

	assert.Len(t, svc.Collections("").Matches, 5)
	svc = NewAutofillService(gdb, config.New(config.OptAutofillLimit(2)))
	assert.Len(t, svc.Collections("").Matches, 2)
}
