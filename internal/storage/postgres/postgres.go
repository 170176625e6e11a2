// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/storage"
)

var log = logrus.WithField("package", "postgres")

var errBeginTx = errors.New("can not begin transaction inside transaction")

type pg struct {
	ext sqlx.ExtContext
}

type profileDTO struct {
	Wallet        string         `db:"wallet"`
	Nickname      string         `db:"nickname"`
	AvatarID      string         `db:"avatar_id"`
	SelectedNFTs  pq.StringArray `db:"selected_nfts"`
	Frame         string         `db:"frame"`
	CurrentReward uint64         `db:"current_reward"`
	UpdatedAt     time.Time      `db:"updated_at"`
	CreatedAt     time.Time      `db:"created_at"`
}

type viewDTO struct {
	ID            string    `db:"id"`
	ProfileWallet string    `db:"profile_wallet"`
	ViewerWallet  string    `db:"viewer_wallet"`
	Timestamp     time.Time `db:"timestamp"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.IndexStorage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(s storage.IndexStorage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginTx
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.WithError(err).Error("failed to rollback transaction")
		}
	}()

	if err := f(pg{ext: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s pg) GetProfile(ctx context.Context, wallet string) (*entities.Profile, error) {
	var p profileDTO
	if err := sqlx.GetContext(ctx, s.ext, &p, `
		SELECT
			wallet, nickname, avatar_id, selected_nfts, frame, current_reward, updated_at, created_at
		FROM profile
		WHERE wallet = $1
	`, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toEntitiesProfile(&p), nil
}

func (s pg) SetProfile(ctx context.Context, p *storage.SetProfileParams) error {
	profile := profileDTO{
		Wallet:       p.Wallet,
		Nickname:     p.Nickname,
		AvatarID:     p.AvatarID,
		SelectedNFTs: pq.StringArray(p.SelectedNFTs),
		Frame:        string(p.Frame),
		UpdatedAt:    p.UpdatedAt,
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO profile(wallet, nickname, avatar_id, selected_nfts, frame, updated_at)
			VALUES(:wallet, :nickname, :avatar_id, :selected_nfts, :frame, :updated_at)
			ON CONFLICT(wallet) DO UPDATE SET
				nickname=excluded.nickname,
				avatar_id=excluded.avatar_id,
				selected_nfts=excluded.selected_nfts,
				frame=excluded.frame,
				updated_at=excluded.updated_at
		`, profile,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) SetProfileReward(ctx context.Context, wallet string, reward uint64) error {
	if _, err := s.ext.ExecContext(ctx, `
		UPDATE profile SET current_reward = $2 WHERE wallet = $1
	`, wallet, reward); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) LockProfile(ctx context.Context, wallet string) error {
	if _, err := s.ext.ExecContext(ctx, `
		SELECT 1 FROM profile WHERE wallet = $1 FOR UPDATE
	`, wallet); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListRewardedProfiles(ctx context.Context, after string, limit int) ([]*entities.Profile, error) {
	var pp []*profileDTO
	if err := sqlx.SelectContext(ctx, s.ext, &pp, `
		SELECT
			wallet, nickname, avatar_id, selected_nfts, frame, current_reward, updated_at, created_at
		FROM profile
		WHERE current_reward > 0 AND wallet > $1
		ORDER BY wallet
		LIMIT $2
	`, after, limit); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Profile, len(pp))
	for i, v := range pp {
		out[i] = toEntitiesProfile(v)
	}

	return out, nil
}

func (s pg) LockView(ctx context.Context, profileWallet, viewerWallet string) error {
	if _, err := s.ext.ExecContext(ctx, `
		SELECT pg_advisory_xact_lock(hashtext($1 || '/' || $2))
	`, profileWallet, viewerWallet); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) HasViewSince(ctx context.Context, profileWallet, viewerWallet string, since time.Time) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, s.ext, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM profile_view
			WHERE profile_wallet = $1 AND viewer_wallet = $2 AND timestamp >= $3
		)
	`, profileWallet, viewerWallet, since); err != nil {
		return false, fmt.Errorf("failed to query: %w", err)
	}

	return exists, nil
}

func (s pg) CreateView(ctx context.Context, v *entities.View) error {
	view := viewDTO{
		ID:            v.ID,
		ProfileWallet: v.ProfileWallet,
		ViewerWallet:  v.ViewerWallet,
		Timestamp:     v.Timestamp,
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext, `
		INSERT INTO profile_view(id, profile_wallet, viewer_wallet, timestamp)
		VALUES(:id, :profile_wallet, :viewer_wallet, :timestamp)
	`, view); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) CountViews(ctx context.Context, profileWallet string, since time.Time) (uint64, error) {
	var (
		count uint64
		err   error
	)

	if since.IsZero() {
		err = sqlx.GetContext(ctx, s.ext, &count, `
			SELECT COUNT(*) FROM profile_view WHERE profile_wallet = $1
		`, profileWallet)
	} else {
		err = sqlx.GetContext(ctx, s.ext, &count, `
			SELECT COUNT(*) FROM profile_view WHERE profile_wallet = $1 AND timestamp >= $2
		`, profileWallet, since)
	}

	if err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return count, nil
}

func toEntitiesProfile(p *profileDTO) *entities.Profile {
	return &entities.Profile{
		Wallet:        p.Wallet,
		Nickname:      p.Nickname,
		AvatarID:      p.AvatarID,
		SelectedNFTs:  p.SelectedNFTs,
		Frame:         entities.Frame(p.Frame),
		CurrentReward: p.CurrentReward,
		UpdatedAt:     p.UpdatedAt,
		CreatedAt:     p.CreatedAt,
	}
}
