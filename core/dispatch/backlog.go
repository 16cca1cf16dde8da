package dispatch

import (
	"math"

	"github.com/liftcore/liftcore/core/model"
)

// Resolve looks a passenger up by id. The engine owns passenger
// lifetimes, so any lookup may come back empty once the passenger has
// been serviced or removed.
type Resolve func(id int) (model.Passenger, bool)

// pendingCall references a waiting passenger together with the ticks it
// has spent unassigned.
type pendingCall struct {
	passengerID  int
	waitingTicks int
}

// Backlog holds calls that had no eligible elevator at call time. Calls
// age each tick; entries whose passenger no longer resolves are purged
// silently wherever they are encountered.
type Backlog struct {
	calls      []pendingCall
	waitWeight float64
}

// NewBacklog creates a backlog. waitWeight converts waiting ticks into a
// distance credit when matching calls to vehicles.
func NewBacklog(waitWeight float64) *Backlog {
	return &Backlog{waitWeight: waitWeight}
}

// Push appends the passenger unless it is already pending. It reports
// whether a new entry was created.
func (b *Backlog) Push(passengerID int) bool {
	for _, c := range b.calls {
		if c.passengerID == passengerID {
			return false
		}
	}
	b.calls = append(b.calls, pendingCall{passengerID: passengerID})
	return true
}

// Remove drops the passenger's entry, reporting whether one existed.
func (b *Backlog) Remove(passengerID int) bool {
	for i, c := range b.calls {
		if c.passengerID == passengerID {
			b.calls = append(b.calls[:i], b.calls[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending calls.
func (b *Backlog) Len() int { return len(b.calls) }

// Empty reports whether no calls are pending.
func (b *Backlog) Empty() bool { return len(b.calls) == 0 }

// Age increments the waiting counter of every call whose passenger
// still resolves and purges the rest. It returns the purged passenger ids.
func (b *Backlog) Age(resolve Resolve) []int {
	var purged []int
	kept := b.calls[:0]
	for _, c := range b.calls {
		if _, ok := resolve(c.passengerID); !ok {
			purged = append(purged, c.passengerID)
			continue
		}
		c.waitingTicks++
		kept = append(kept, c)
	}
	b.calls = kept
	return purged
}

// Match selects the pending call with the minimal priority score
// (distance to origin minus waited ticks times the wait weight) for the
// vehicle, removes it and returns the passenger, the waited ticks and
// the winning score. Unresolvable entries encountered during the scan
// are purged. Ties go to the earliest pending call.
func (b *Backlog) Match(v model.Vehicle, resolve Resolve) (model.Passenger, int, float64, bool) {
	bestIdx := -1
	var bestPassenger model.Passenger
	bestScore := math.Inf(1)
	kept := b.calls[:0]
	for _, c := range b.calls {
		p, ok := resolve(c.passengerID)
		if !ok {
			continue
		}
		kept = append(kept, c)
		score := float64(absInt(v.CurrentFloor()-p.Origin())) - float64(c.waitingTicks)*b.waitWeight
		if score < bestScore {
			bestScore = score
			bestPassenger = p
			bestIdx = len(kept) - 1
		}
	}
	b.calls = kept
	if bestIdx < 0 {
		return nil, 0, 0, false
	}
	waited := b.calls[bestIdx].waitingTicks
	b.calls = append(b.calls[:bestIdx], b.calls[bestIdx+1:]...)
	return bestPassenger, waited, bestScore, true
}

// TakeAt removes and returns the first pending call whose passenger is
// waiting at floor and intends to travel in dir. Unresolvable entries
// encountered during the scan are purged.
func (b *Backlog) TakeAt(floor int, dir model.Direction, resolve Resolve) (model.Passenger, int, bool) {
	for i := 0; i < len(b.calls); {
		c := b.calls[i]
		p, ok := resolve(c.passengerID)
		if !ok {
			b.calls = append(b.calls[:i], b.calls[i+1:]...)
			continue
		}
		if p.Origin() == floor && model.TravelDirection(p.Origin(), p.Destination()) == dir {
			b.calls = append(b.calls[:i], b.calls[i+1:]...)
			return p, c.waitingTicks, true
		}
		i++
	}
	return nil, 0, false
}
