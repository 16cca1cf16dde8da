// Package stopqueue maintains the ordered list of floors an elevator
// still has to visit. Ordering follows a SCAN discipline: the sweep in
// the current travel direction is finished before the queue reverses.
package stopqueue

import (
	"sort"

	"github.com/liftcore/liftcore/core/model"
)

// Order sorts floors for an elevator at current moving in dir and
// returns a new slice. It is a pure function so the comparator can be
// tested without any vehicle state.
//
// Moving up: floors at or above current first, ascending, then floors
// below, descending. Moving down is the mirror image. Stopped: nearest
// floor first by absolute distance.
func Order(current int, dir model.Direction, floors []int) []int {
	out := append([]int(nil), floors...)
	switch dir {
	case model.DirectionUp:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			aAhead, bAhead := a >= current, b >= current
			if aAhead != bAhead {
				return aAhead
			}
			if aAhead {
				return a < b
			}
			return a > b
		})
	case model.DirectionDown:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			aAhead, bAhead := a <= current, b <= current
			if aAhead != bAhead {
				return aAhead
			}
			if aAhead {
				return a > b
			}
			return a < b
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return abs(out[i]-current) < abs(out[j]-current)
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Queue is one elevator's pending stops. It never contains duplicate
// floors and is resorted on every insertion.
type Queue struct {
	floors []int
}

// New returns an empty queue.
func New() *Queue { return &Queue{} }

// Insert adds floor if absent and resorts the queue for an elevator at
// current moving in dir. Inserting an already queued floor only
// refreshes the ordering.
func (q *Queue) Insert(floor, current int, dir model.Direction) {
	if !q.Contains(floor) {
		q.floors = append(q.floors, floor)
	}
	q.floors = Order(current, dir, q.floors)
}

// Consume removes floor from the queue, reporting whether it was queued.
func (q *Queue) Consume(floor int) bool {
	for i, f := range q.floors {
		if f == floor {
			q.floors = append(q.floors[:i], q.floors[i+1:]...)
			return true
		}
	}
	return false
}

// Head returns the next stop, if any.
func (q *Queue) Head() (int, bool) {
	if len(q.floors) == 0 {
		return 0, false
	}
	return q.floors[0], true
}

// Contains reports whether floor is queued.
func (q *Queue) Contains(floor int) bool {
	for _, f := range q.floors {
		if f == floor {
			return true
		}
	}
	return false
}

// Len returns the number of pending stops.
func (q *Queue) Len() int { return len(q.floors) }

// Floors returns a copy of the pending stops in visit order.
func (q *Queue) Floors() []int { return append([]int(nil), q.floors...) }
