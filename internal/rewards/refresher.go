// Package rewards contains code for periodic recalculation of profiles' rewards.
package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/service"
	"github.com/Decentr-net/resume/internal/storage"
)

const defaultBatchSize = 100

var log = logrus.WithField("package", "rewards")

// Refresher lowers rewards of profiles whose views left the recent window.
type Refresher struct {
	is        storage.IndexStorage
	batchSize int

	now func() time.Time
}

// NewRefresher creates a new instance of Refresher.
func NewRefresher(is storage.IndexStorage, batchSize int) *Refresher {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Refresher{
		is:        is,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Refresh recalculates rewards of every rewarded profile and returns amount of changed ones.
func (r *Refresher) Refresh(ctx context.Context) (int, error) {
	var (
		changed int
		after   string
	)

	for {
		pp, err := r.is.ListRewardedProfiles(ctx, after, r.batchSize)
		if err != nil {
			return changed, fmt.Errorf("failed to list rewarded profiles: %w", err)
		}

		for _, p := range pp {
			ok, err := r.refresh(ctx, p)
			if err != nil {
				return changed, fmt.Errorf("failed to refresh %s: %w", p.Wallet, err)
			}
			if ok {
				changed++
			}
		}

		if len(pp) < r.batchSize {
			return changed, nil
		}

		after = pp[len(pp)-1].Wallet
	}
}

func (r *Refresher) refresh(ctx context.Context, p *entities.Profile) (bool, error) {
	var changed bool

	err := r.is.InTx(ctx, func(tx storage.IndexStorage) error {
		if err := tx.LockProfile(ctx, p.Wallet); err != nil {
			return fmt.Errorf("failed to lock profile: %w", err)
		}

		recent, err := tx.CountViews(ctx, p.Wallet, r.now().Add(-service.ViewWindow))
		if err != nil {
			return fmt.Errorf("failed to count recent views: %w", err)
		}

		reward := service.Reward(recent)
		if reward == p.CurrentReward {
			return nil
		}

		if err := tx.SetProfileReward(ctx, p.Wallet, reward); err != nil {
			return fmt.Errorf("failed to set profile reward: %w", err)
		}

		log.WithField("wallet", p.Wallet).Debugf("reward changed %d -> %d", p.CurrentReward, reward)
		changed = true

		return nil
	})

	return changed, err
}

// Run refreshes rewards every interval until context is done.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := r.Refresh(ctx); err != nil {
			log.WithError(err).Error("failed to refresh rewards")
		} else {
			log.Infof("%d rewards refreshed", n)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
