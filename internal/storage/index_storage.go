package storage

import (
	"context"
	"time"

	"github.com/Decentr-net/resume/internal/entities"
)

//go:generate mockgen -destination=./mock/index_storage.go -package=mock -source=index_storage.go

// IndexStorage provides access to profiles and their views.
type IndexStorage interface {
	InTx(ctx context.Context, f func(s IndexStorage) error) error

	GetProfile(ctx context.Context, wallet string) (*entities.Profile, error)
	SetProfile(ctx context.Context, p *SetProfileParams) error
	// SetProfileReward updates current reward. It does nothing if profile doesn't exist.
	SetProfileReward(ctx context.Context, wallet string, reward uint64) error
	// LockProfile locks profile's row until the end of transaction. It does nothing if profile doesn't exist.
	LockProfile(ctx context.Context, wallet string) error
	// ListRewardedProfiles returns profiles with non-zero reward ordered by wallet starting after the wallet.
	ListRewardedProfiles(ctx context.Context, after string, limit int) ([]*entities.Profile, error)

	// LockView locks the pair of wallets until the end of transaction.
	LockView(ctx context.Context, profileWallet, viewerWallet string) error
	HasViewSince(ctx context.Context, profileWallet, viewerWallet string, since time.Time) (bool, error)
	CreateView(ctx context.Context, v *entities.View) error
	// CountViews returns amount of profile's views since the moment. Zero since means all views.
	CountViews(ctx context.Context, profileWallet string, since time.Time) (uint64, error)
}

// SetProfileParams ...
type SetProfileParams struct {
	Wallet       string
	Nickname     string
	AvatarID     string
	SelectedNFTs []string
	Frame        entities.Frame
	UpdatedAt    time.Time
}
