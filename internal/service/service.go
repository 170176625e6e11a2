// Package service contains business logic of profiles and their views.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/metrics"
	"github.com/Decentr-net/resume/internal/producer"
	"github.com/Decentr-net/resume/internal/storage"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ViewWindow is a period in which a viewer is counted once and recent views are calculated.
const ViewWindow = 24 * time.Hour

const viewsPerReward = 10

var log = logrus.WithField("package", "service")

// ErrNotFound means that requested object is not found.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput means that request arguments are invalid.
var ErrInvalidInput = errors.New("invalid input")

// Service interface provides service's logic's methods.
type Service interface {
	// GetProfile returns profile by wallet.
	GetProfile(ctx context.Context, wallet string) (*entities.Profile, error)
	// SaveProfile creates or overwrites profile.
	SaveProfile(ctx context.Context, p *SaveProfileParams) error

	// RecordView counts a view of profile once per ViewWindow for every viewer and updates profile's reward.
	RecordView(ctx context.Context, profileWallet, viewerWallet string) (*entities.ViewResult, error)
	// GetViewStats returns views statistics of profile.
	GetViewStats(ctx context.Context, profileWallet string) (*entities.ViewStats, error)
	// GetRewards returns milestones progress of profile.
	GetRewards(ctx context.Context, profileWallet string) (*entities.Rewards, error)
}

// SaveProfileParams ...
type SaveProfileParams struct {
	Wallet       string
	Nickname     string
	AvatarID     string
	SelectedNFTs []string
	Frame        entities.Frame
}

// service is Service interface implementation.
type service struct {
	is storage.IndexStorage
	p  producer.Producer

	now func() time.Time
}

// New returns new instance of service. Producer is optional.
func New(is storage.IndexStorage, p producer.Producer) Service {
	return &service{
		is:  is,
		p:   p,
		now: time.Now,
	}
}

// Reward returns reward tier for amount of recent views.
func Reward(recentViews uint64) uint64 {
	return recentViews / viewsPerReward
}

func (s *service) GetProfile(ctx context.Context, wallet string) (*entities.Profile, error) {
	if wallet == "" {
		return nil, ErrNotFound
	}

	p, err := s.is.GetProfile(ctx, wallet)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (s *service) SaveProfile(ctx context.Context, p *SaveProfileParams) error {
	if p == nil || p.Wallet == "" {
		return ErrInvalidInput
	}

	if err := s.is.SetProfile(ctx, &storage.SetProfileParams{
		Wallet:       p.Wallet,
		Nickname:     p.Nickname,
		AvatarID:     p.AvatarID,
		SelectedNFTs: p.SelectedNFTs,
		Frame:        p.Frame,
		UpdatedAt:    s.now(),
	}); err != nil {
		return fmt.Errorf("failed to set profile: %w", err)
	}

	metrics.ProfileSavesTotal.Inc()

	return nil
}

func (s *service) RecordView(ctx context.Context, profileWallet, viewerWallet string) (*entities.ViewResult, error) {
	if profileWallet == "" || viewerWallet == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	since := now.Add(-ViewWindow)

	var (
		res  entities.ViewResult
		view *entities.View
	)

	if err := s.is.InTx(ctx, func(tx storage.IndexStorage) error {
		if err := tx.LockView(ctx, profileWallet, viewerWallet); err != nil {
			return fmt.Errorf("failed to lock view: %w", err)
		}

		exists, err := tx.HasViewSince(ctx, profileWallet, viewerWallet, since)
		if err != nil {
			return fmt.Errorf("failed to check view: %w", err)
		}

		if !exists {
			view = &entities.View{
				ID:            uuid.New().String(),
				ProfileWallet: profileWallet,
				ViewerWallet:  viewerWallet,
				Timestamp:     now,
			}

			if err := tx.CreateView(ctx, view); err != nil {
				return fmt.Errorf("failed to create view: %w", err)
			}

			// views of other viewers committed while waiting for the lock are counted too
			if err := tx.LockProfile(ctx, profileWallet); err != nil {
				return fmt.Errorf("failed to lock profile: %w", err)
			}
		}

		recent, err := tx.CountViews(ctx, profileWallet, since)
		if err != nil {
			return fmt.Errorf("failed to count recent views: %w", err)
		}

		res = entities.ViewResult{
			Recorded:    !exists,
			Reward:      Reward(recent),
			RecentViews: recent,
		}

		if exists {
			return nil
		}

		if err := tx.SetProfileReward(ctx, profileWallet, res.Reward); err != nil {
			return fmt.Errorf("failed to set profile reward: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	if !res.Recorded {
		metrics.ViewsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
		return &res, nil
	}

	metrics.ViewsTotal.WithLabelValues(metrics.ResultRecorded).Inc()

	if s.p != nil {
		if err := s.p.Produce(ctx, &producer.ViewMessage{
			ID:            view.ID,
			ProfileWallet: view.ProfileWallet,
			ViewerWallet:  view.ViewerWallet,
			Timestamp:     view.Timestamp,
			RecentViews:   res.RecentViews,
			Reward:        res.Reward,
		}); err != nil {
			log.WithError(err).WithField("view", view.ID).Error("failed to produce view message")
		}
	}

	return &res, nil
}

func (s *service) GetViewStats(ctx context.Context, profileWallet string) (*entities.ViewStats, error) {
	if profileWallet == "" {
		return nil, ErrInvalidInput
	}

	total, err := s.is.CountViews(ctx, profileWallet, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count total views: %w", err)
	}

	recent, err := s.is.CountViews(ctx, profileWallet, s.now().Add(-ViewWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent views: %w", err)
	}

	return &entities.ViewStats{
		TotalViews:  total,
		RecentViews: recent,
		Reward:      Reward(recent),
	}, nil
}

func (s *service) GetRewards(ctx context.Context, profileWallet string) (*entities.Rewards, error) {
	if profileWallet == "" {
		return nil, ErrInvalidInput
	}

	total, err := s.is.CountViews(ctx, profileWallet, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count total views: %w", err)
	}

	return &entities.Rewards{
		TotalViews: total,
		Milestones: GetMilestones(total),
	}, nil
}
