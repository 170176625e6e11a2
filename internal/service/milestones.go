package service

import (
	"github.com/Decentr-net/resume/internal/entities"
)

// nolint:gochecknoglobals
var milestones = []entities.Milestone{
	{
		ID:            "1",
		Name:          "Newcomer",
		Description:   "Reward for 10 profile views",
		ViewsRequired: 10,
	},
	{
		ID:            "2",
		Name:          "Popular",
		Description:   "Reward for 50 profile views",
		ViewsRequired: 50,
	},
	{
		ID:            "3",
		Name:          "Star",
		Description:   "Reward for 100 profile views",
		ViewsRequired: 100,
	},
	{
		ID:            "4",
		Name:          "Legend",
		Description:   "Reward for 500 profile views",
		ViewsRequired: 500,
	},
}

// GetMilestones returns milestones catalogue with achieved flags for views count.
func GetMilestones(views uint64) []entities.Milestone {
	out := make([]entities.Milestone, len(milestones))
	for i, v := range milestones {
		v.Achieved = views >= v.ViewsRequired
		out[i] = v
	}

	return out
}
