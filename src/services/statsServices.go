package services

import (
	"context"
	"math"

	"github.com/jsench/Project-Wheatley/src/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CensusStats are the headline numbers shown on the informational pages.
// All counts cover canonical copies only.
type CensusStats struct {
	CopyCount       int64
	VerifiedCount   int64
	UnverifiedCount int64
	FacsimileCount  int64
	ESTCCount       int64
	NonESTCCount    int64
}

// FacsimilePercent is the share of copies with a digital facsimile, rounded
// to a whole percent.
func (c *CensusStats) FacsimilePercent() int {
	if c.CopyCount == 0 {
		return 0
	}
	return int(math.Round(100 * float64(c.FacsimileCount) / float64(c.CopyCount)))
}

type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Collect runs the census counts concurrently.
func (s *StatsService) Collect(ctx context.Context) (*CensusStats, error) {
	stats := &CensusStats{}
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, filter scope) {
		g.Go(func() error {
			return s.db.WithContext(gctx).
				Model(&models.CopyModel{}).
				Scopes(canonicalCopies, filter).
				Count(dst).Error
		})
	}
	all := func(tx *gorm.DB) *gorm.DB { return tx }

	count(&stats.CopyCount, all)
	count(&stats.VerifiedCount, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("copy_models.verification = ?", string(models.VerificationVerified))
	})
	count(&stats.UnverifiedCount, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("copy_models.verification = ?", string(models.VerificationUnverified))
	})
	count(&stats.FacsimileCount, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("copy_models.digital_facsimile_url IS NOT NULL AND copy_models.digital_facsimile_url <> ''")
	})
	count(&stats.ESTCCount, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("copy_models.from_estc = ?", true)
	})
	count(&stats.NonESTCCount, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("copy_models.from_estc = ?", false)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
