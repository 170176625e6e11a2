// Package entities contains service-wide models.
package entities

import (
	"time"
)

// Frame is a cosmetic border style applied to the avatar.
type Frame string

// Known frames. Any other value is stored as is and rendered as FrameNone.
const (
	FrameNone    Frame = "none"
	FrameGold    Frame = "gold"
	FrameSilver  Frame = "silver"
	FrameRainbow Frame = "rainbow"
)

// IsKnown returns true if frame is one of predefined frames.
func (f Frame) IsKnown() bool {
	switch f {
	case FrameNone, FrameGold, FrameSilver, FrameRainbow:
		return true
	default:
		return false
	}
}

// Profile ...
type Profile struct {
	Wallet        string
	Nickname      string
	AvatarID      string
	SelectedNFTs  []string
	Frame         Frame
	CurrentReward uint64
	UpdatedAt     time.Time
	CreatedAt     time.Time
}

// View is a single qualifying view of a profile.
type View struct {
	ID            string
	ProfileWallet string
	ViewerWallet  string
	Timestamp     time.Time
}

// ViewResult is a result of recording a view.
type ViewResult struct {
	// Recorded is false when the viewer has already been counted within the window.
	Recorded    bool
	Reward      uint64
	RecentViews uint64
}

// ViewStats ...
type ViewStats struct {
	TotalViews  uint64
	RecentViews uint64
	Reward      uint64
}

// Milestone is a reward given for an amount of profile views.
type Milestone struct {
	ID            string
	Name          string
	Description   string
	ViewsRequired uint64
	Achieved      bool
}

// NFT is a non-fungible token owned by a wallet.
type NFT struct {
	ID    string
	Name  string
	Image string
}

// Rewards contains milestones progress of a profile.
type Rewards struct {
	TotalViews uint64
	Milestones []Milestone
}
