// Package producer contains the interface of producer.
package producer

import (
	"context"
	"time"
)

//go:generate mockgen -destination=./mock/producer.go -package=mock -source=producer.go

// ViewMessage is sent every time a new view is recorded.
type ViewMessage struct {
	ID            string    `json:"id"`
	ProfileWallet string    `json:"profileWallet"`
	ViewerWallet  string    `json:"viewerWallet"`
	Timestamp     time.Time `json:"timestamp"`
	RecentViews   uint64    `json:"recentViews"`
	Reward        uint64    `json:"currentReward"`
}

// Producer ...
type Producer interface {
	Produce(ctx context.Context, msg *ViewMessage) error
}
