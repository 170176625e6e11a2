// Package api provides API and client to Resume.
package api

import (
	"context"
	"errors"
)

// Endpoints.
const (
	ProfileEndpoint = "api/profile"
	ViewsEndpoint   = "api/profile/views"
	RewardsEndpoint = "api/profile/rewards"
	AvatarEndpoint  = "api/profile/avatar"
	NFTsEndpoint    = "api/nfts"
)

// ErrInvalidRequest is returned when request is invalid.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound is returned when object is not found.
var ErrNotFound = errors.New("not found")

// Resume provides user-friendly API methods.
type Resume interface {
	GetProfile(ctx context.Context, wallet string) (*Profile, error)
	SaveProfile(ctx context.Context, r SaveProfileRequest) error
	RecordView(ctx context.Context, wallet, viewerWallet string) (*RecordViewResponse, error)
	GetViewStats(ctx context.Context, wallet string) (*ViewStatsResponse, error)
	GetRewards(ctx context.Context, wallet string) (*RewardsResponse, error)
	ListNFTs(ctx context.Context, wallet string) ([]NFT, error)
}
