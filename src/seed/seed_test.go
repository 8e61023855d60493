package seed

import (
	"context"
	"testing"
	"time"

	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/db/dbtest"
	"github.com/jsench/Project-Wheatley/src/models"
	"github.com/jsench/Project-Wheatley/src/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPagesRender(t *testing.T) {
	pages, err := Pages()
	require.NoError(t, err)
	require.NotEmpty(t, pages)

	values := services.Placeholders(&services.CensusStats{CopyCount: 1200, VerifiedCount: 1000}, time.Now())
	for _, p := range pages {
		_, err := services.RenderPlaceholders(p.Content, values)
		assert.NoError(t, err, "%s/%d", p.ViewName, p.Position)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := dbtest.Open(t)
	cfg := config.New(config.OptAdmin("curator", "s3cret"))
	users := services.NewUserService(gdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, gdb, users, cfg, zap.NewNop()))
	var first int64
	require.NoError(t, gdb.Model(&models.StaticPageTextModel{}).Count(&first).Error)
	assert.NotZero(t, first)

	require.NoError(t, Seed(ctx, gdb, users, cfg, zap.NewNop()))
	var second int64
	require.NoError(t, gdb.Model(&models.StaticPageTextModel{}).Count(&second).Error)
	assert.Equal(t, first, second)

	all, err := users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "curator", all[0].Username)
}
