// Package indexer provides access to a third-party NFT indexer.
package indexer

import (
	"context"
	"errors"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/health"
)

//go:generate mockgen -destination=./mock/indexer.go -package=mock -source=indexer.go

// ErrInvalidOwner is returned when owner is not a valid wallet public key.
var ErrInvalidOwner = errors.New("invalid owner")

// ErrNotFound is returned when NFT is not found.
var ErrNotFound = errors.New("not found")

// Indexer resolves NFTs owned by wallets.
type Indexer interface {
	health.Pinger

	// ListNFTs returns all NFTs owned by the wallet.
	ListNFTs(ctx context.Context, owner string) ([]entities.NFT, error)
	// GetNFT returns NFT by its id.
	GetNFT(ctx context.Context, id string) (*entities.NFT, error)
}
