package generator

import "github.com/mauv0809/scaling-waffle/internal/player"

// PriorityPolicy chooses the priority player from a candidate pool. The
// pool's own ordering is meaningful and implementations may rely on it.
type PriorityPolicy interface {
	Pick(candidates []player.Player) *player.Player
}

// FirstAvailable picks the first candidate in pool order.
// TODO: rank by last-played-match recency once the pool service exposes it.
type FirstAvailable struct{}

var _ PriorityPolicy = FirstAvailable{}

func (FirstAvailable) Pick(candidates []player.Player) *player.Player {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}
