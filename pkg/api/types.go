package api

import (
	"time"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// Profile ...
// swagger:model
type Profile struct {
	Wallet        string    `json:"wallet"`
	Nickname      string    `json:"nickname"`
	AvatarID      string    `json:"avatarId"`
	SelectedNFTs  []string  `json:"selectedNFTs"`
	Frame         string    `json:"frame"`
	CurrentReward uint64    `json:"currentReward"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SaveProfileRequest ...
// swagger:model
type SaveProfileRequest struct {
	Wallet       string   `json:"wallet"`
	Nickname     string   `json:"nickname"`
	AvatarID     string   `json:"avatarId"`
	SelectedNFTs []string `json:"selectedNFTs"`
	Frame        string   `json:"frame"`
}

// MessageResponse ...
// swagger:model
type MessageResponse struct {
	Message string `json:"message"`
}

// RecordViewResponse ...
// swagger:model
type RecordViewResponse struct {
	Message       string `json:"message"`
	CurrentReward uint64 `json:"currentReward"`
	RecentViews   uint64 `json:"recentViews"`
}

// ViewStatsResponse ...
// swagger:model
type ViewStatsResponse struct {
	TotalViews    uint64 `json:"totalViews"`
	RecentViews   uint64 `json:"recentViews"`
	CurrentReward uint64 `json:"currentReward"`
}

// Milestone ...
// swagger:model
type Milestone struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ViewsRequired uint64 `json:"viewsRequired"`
	Achieved      bool   `json:"achieved"`
}

// RewardsResponse ...
// swagger:model
type RewardsResponse struct {
	TotalViews uint64      `json:"totalViews"`
	Milestones []Milestone `json:"milestones"`
}

// NFT ...
// swagger:model
type NFT struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NFTsResponse ...
// swagger:model
type NFTsResponse struct {
	NFTs []NFT `json:"nfts"`
}
