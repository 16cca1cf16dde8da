package dispatch

import (
	"math"

	"github.com/liftcore/liftcore/core/model"
)

// Scorer rates how well each elevator fits a new hall call. Lower is
// better; an infinite score marks the elevator ineligible. The base is
// the floor distance inflated by the current load, then discounted or
// penalized depending on how the elevator's travel relates to the call.
type Scorer struct {
	LoadPenalty         float64
	IdleFactor          float64
	OnPathFactor        float64
	OvershootFactor     float64
	OppositeFactor      float64
	OppositeMaxDistance int
}

// NewScorer returns a scorer with the default weights.
func NewScorer() Scorer {
	return Scorer{
		LoadPenalty:         0.3,
		IdleFactor:          0.7,
		OnPathFactor:        0.4,
		OvershootFactor:     2.0,
		OppositeFactor:      1.5,
		OppositeMaxDistance: 2,
	}
}

// ScorerFromConfig builds a Scorer from the dispatch configuration.
func ScorerFromConfig(cfg Config) Scorer {
	return Scorer{
		LoadPenalty:         cfg.LoadPenalty,
		IdleFactor:          cfg.IdleFactor,
		OnPathFactor:        cfg.OnPathFactor,
		OvershootFactor:     cfg.OvershootFactor,
		OppositeFactor:      cfg.OppositeFactor,
		OppositeMaxDistance: cfg.OppositeMaxDistance,
	}
}

// Score rates v for a call at origin requesting travel in dir.
func (s Scorer) Score(v model.Vehicle, origin int, dir model.Direction) float64 {
	occupants := len(v.Occupants())
	if occupants >= v.Capacity() {
		return math.Inf(1)
	}

	current := v.CurrentFloor()
	distance := absInt(current - origin)
	load := float64(occupants) / float64(v.Capacity())
	base := float64(distance) * (1 + load*s.LoadPenalty)

	moving := v.Direction()
	if moving == model.DirectionStopped {
		return base * s.IdleFactor
	}

	if moving == dir {
		onPath := (moving == model.DirectionUp && origin >= current) ||
			(moving == model.DirectionDown && origin <= current)
		if onPath {
			return base * s.OnPathFactor
		}
		// Same direction but the floor is behind the cab.
		return base * s.OvershootFactor
	}

	if distance <= s.OppositeMaxDistance && occupants == 0 {
		return base * s.OppositeFactor
	}
	return math.Inf(1)
}

// Select returns the vehicle with the strictly minimal finite score for
// the call, or false when no vehicle is eligible. Ties go to the first
// vehicle in the given ordering, which keeps selection deterministic.
func (s Scorer) Select(vehicles []model.Vehicle, origin int, dir model.Direction) (model.Vehicle, float64, bool) {
	var best model.Vehicle
	bestScore := math.Inf(1)
	for _, v := range vehicles {
		if score := s.Score(v, origin, dir); score < bestScore {
			bestScore = score
			best = v
		}
	}
	if math.IsInf(bestScore, 1) {
		return nil, bestScore, false
	}
	return best, bestScore, true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
