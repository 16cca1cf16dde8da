package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftcore/liftcore/core/events"
	"github.com/liftcore/liftcore/core/model"
	"github.com/liftcore/liftcore/infra/logger"
	"github.com/liftcore/liftcore/internal/eventbus"
)

type move struct {
	vehicleID int
	floor     int
	immediate bool
}

type fakeEngine struct {
	moves      []move
	passengers registry
}

func (e *fakeEngine) MoveVehicle(vehicleID, floor int, immediate bool) {
	e.moves = append(e.moves, move{vehicleID, floor, immediate})
}

func (e *fakeEngine) Passenger(id int) (model.Passenger, bool) {
	return e.passengers.resolve(id)
}

func floors(n int) []model.Floor {
	fs := make([]model.Floor, n)
	for i := range fs {
		fs[i] = &model.FloorSnapshot{Idx: i}
	}
	return fs
}

func newTestController(t *testing.T, engine *fakeEngine, vehicles []model.Vehicle, numFloors int) *Controller {
	t.Helper()
	cfg := Config{DispersalDisabled: true}
	c, err := NewController(engine, cfg, logger.NopLogger{}, nil, nil)
	require.NoError(t, err)
	c.Initialize(vehicles, floors(numFloors))
	return c
}

func TestNewControllerNilEngine(t *testing.T) {
	_, err := NewController(nil, Config{}, logger.NopLogger{}, nil, nil)
	assert.Error(t, err)
}

func TestCallAtOwnFloorQueuesOnlyDestination(t *testing.T) {
	// Single idle cab at floor 0, floors 0..2; call 0 -> 2.
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 3)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 0, To: 2}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 0}, model.DirectionUp)

	assert.Equal(t, []int{2}, c.StopQueue(0))
	require.Len(t, engine.moves, 1)
	assert.Equal(t, move{0, 2, false}, engine.moves[0])
}

func TestCallAgainstFullFleetGoesToBacklog(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 3, model.DirectionStopped, []int{8}, 1)
	c := newTestController(t, engine, []model.Vehicle{v}, 6)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 3, To: 5}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 3}, model.DirectionUp)

	assert.Equal(t, 1, c.Backlog())
	assert.Empty(t, engine.moves)
	assert.Empty(t, c.StopQueue(0))
}

func TestAssignmentRespectsCapacityAtDecisionTime(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	full := vehicle(0, 2, model.DirectionStopped, []int{5, 6}, 2)
	free := vehicle(1, 0, model.DirectionStopped, []int{5}, 2)
	c := newTestController(t, engine, []model.Vehicle{full, free}, 12)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 2, To: 4}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 2}, model.DirectionUp)

	// The nearer cab is full; the distant one with spare capacity wins.
	assert.Empty(t, c.StopQueue(0))
	assert.Equal(t, []int{2, 4}, c.StopQueue(1))
}

func TestTickEndAssignsBacklogToShortQueuedVehicle(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, []int{8}, 1)
	c := newTestController(t, engine, []model.Vehicle{v}, 6)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 2, To: 5}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 2}, model.DirectionUp)
	require.Equal(t, 1, c.Backlog())

	// The cab empties out before the tick ends.
	v.Riders = nil
	c.TickEnd(1, nil, nil, nil)

	assert.Equal(t, 0, c.Backlog())
	assert.Equal(t, []int{2, 5}, c.StopQueue(0))
	require.NotEmpty(t, engine.moves)
	assert.Equal(t, move{0, 2, false}, engine.moves[0])
}

func TestTickStartPurgesVanishedPassengers(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, []int{8}, 1)
	c := newTestController(t, engine, []model.Vehicle{v}, 6)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 2, To: 5}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 2}, model.DirectionUp)
	require.Equal(t, 1, c.Backlog())

	delete(engine.passengers, 1)
	c.TickStart(1, nil, nil, nil)
	assert.Equal(t, 0, c.Backlog())
}

func TestVehicleStoppedConsumesAndIssuesNext(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionUp, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 8)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 2, To: 5}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 2}, model.DirectionUp)
	require.Equal(t, []int{2, 5}, c.StopQueue(0))

	v.Floor = 2
	c.VehicleStopped(v, &model.FloorSnapshot{Idx: 2})
	assert.Equal(t, []int{5}, c.StopQueue(0))
	last := engine.moves[len(engine.moves)-1]
	assert.Equal(t, move{0, 5, false}, last)
}

func TestVehicleStoppedOffersBacklogToShortQueue(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 2, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 10)

	engine.passengers[1] = &model.PassengerSnapshot{PassengerID: 1, From: 4, To: 7}
	c.backlog.Push(1)
	c.queue(v).Insert(2, 2, model.DirectionStopped)
	c.queue(v).Insert(9, 2, model.DirectionStopped)

	// Reaching floor 2 leaves one queued stop, short enough to take on
	// the pending call.
	c.VehicleStopped(v, &model.FloorSnapshot{Idx: 2})

	assert.Equal(t, 0, c.Backlog())
	assert.Equal(t, []int{4, 7, 9}, c.StopQueue(0))
	require.NotEmpty(t, engine.moves)
	last := engine.moves[len(engine.moves)-1]
	assert.Equal(t, move{0, 4, false}, last)
}

func TestVehicleStoppedKeepsBacklogWhenQueueLong(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 2, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 12)

	engine.passengers[1] = &model.PassengerSnapshot{PassengerID: 1, From: 4, To: 7}
	c.backlog.Push(1)
	for _, f := range []int{2, 5, 6, 9} {
		c.queue(v).Insert(f, 2, model.DirectionStopped)
	}

	c.VehicleStopped(v, &model.FloorSnapshot{Idx: 2})

	assert.Equal(t, 1, c.Backlog())
	assert.Equal(t, []int{5, 6, 9}, c.StopQueue(0))
	last := engine.moves[len(engine.moves)-1]
	assert.Equal(t, move{0, 5, false}, last)
}

func TestPassengerBoardedQueuesDestination(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 2, model.DirectionStopped, []int{1}, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 8)

	p := &model.PassengerSnapshot{PassengerID: 1, From: 2, To: 6}
	engine.passengers[1] = p
	c.PassengerBoarded(v, p)

	assert.Equal(t, []int{6}, c.StopQueue(0))
	require.Len(t, engine.moves, 1)
	assert.Equal(t, move{0, 6, false}, engine.moves[0])
}

func TestApproachingInterceptsAtMostOne(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	target := 7
	v := vehicle(0, 2, model.DirectionUp, nil, 8)
	v.Target = &target
	c := newTestController(t, engine, []model.Vehicle{v}, 10)

	// Two pending same-direction calls at floor 3.
	engine.passengers[1] = &model.PassengerSnapshot{PassengerID: 1, From: 3, To: 6}
	engine.passengers[2] = &model.PassengerSnapshot{PassengerID: 2, From: 3, To: 8}
	c.backlog.Push(1)
	c.backlog.Push(2)
	require.Equal(t, 2, c.Backlog())

	c.VehicleApproaching(v, &model.FloorSnapshot{Idx: 3}, model.DirectionUp)

	assert.Equal(t, 1, c.Backlog())
	assert.Contains(t, c.StopQueue(0), 3)
	// Redirected to stop at the approached floor.
	last := engine.moves[len(engine.moves)-1]
	assert.Equal(t, move{0, 3, false}, last)
}

func TestApproachingFullCabDoesNothing(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 2, model.DirectionUp, []int{4}, 1)
	c := newTestController(t, engine, []model.Vehicle{v}, 10)
	c.backlog.Push(1)
	engine.passengers[1] = &model.PassengerSnapshot{PassengerID: 1, From: 3, To: 6}

	c.VehicleApproaching(v, &model.FloorSnapshot{Idx: 3}, model.DirectionUp)
	assert.Equal(t, 1, c.Backlog())
	assert.Empty(t, engine.moves)
}

func TestIdleRepositionsToStrategicFloor(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 11)

	c.VehicleIdle(v)
	require.Len(t, engine.moves, 1)
	assert.Equal(t, move{0, 5, false}, engine.moves[0])
}

func TestIdleAtStrategicFloorStaysPut(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 5, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 11)

	c.VehicleIdle(v)
	assert.Empty(t, engine.moves)
}

func TestIdlePrefersBacklogOverRepositioning(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, nil, 8)
	c := newTestController(t, engine, []model.Vehicle{v}, 11)
	engine.passengers[1] = &model.PassengerSnapshot{PassengerID: 1, From: 3, To: 9}
	c.backlog.Push(1)

	c.VehicleIdle(v)
	assert.Equal(t, 0, c.Backlog())
	assert.Equal(t, []int{3, 9}, c.StopQueue(0))
	require.NotEmpty(t, engine.moves)
	assert.Equal(t, move{0, 3, false}, engine.moves[0])
}

func TestInitializeDispersesFleet(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	vs := []model.Vehicle{
		vehicle(0, 0, model.DirectionStopped, nil, 8),
		vehicle(1, 0, model.DirectionStopped, nil, 8),
		vehicle(2, 0, model.DirectionStopped, nil, 8),
	}
	c, err := NewController(engine, Config{}, logger.NopLogger{}, nil, nil)
	require.NoError(t, err)
	c.Initialize(vs, floors(11))

	require.Len(t, engine.moves, 3)
	assert.Equal(t, move{0, 0, true}, engine.moves[0])
	assert.Equal(t, move{1, 5, true}, engine.moves[1])
	assert.Equal(t, move{2, 10, true}, engine.moves[2])
}

func TestControllerPublishesAssignmentEvents(t *testing.T) {
	engine := &fakeEngine{passengers: registry{}}
	v := vehicle(0, 0, model.DirectionStopped, nil, 8)
	bus := eventbus.New()
	sub := bus.Subscribe()
	c, err := NewController(engine, Config{DispersalDisabled: true}, logger.NopLogger{}, nil, bus)
	require.NoError(t, err)
	c.Initialize([]model.Vehicle{v}, floors(4))

	p := &model.PassengerSnapshot{PassengerID: 1, From: 0, To: 3}
	engine.passengers[1] = p
	c.PassengerCalled(p, &model.FloorSnapshot{Idx: 0}, model.DirectionUp)

	var gotCall, gotAssignment bool
	for i := 0; i < 2; i++ {
		switch ev := (<-sub).(type) {
		case events.CallEvent:
			gotCall = true
			assert.Equal(t, 1, ev.PassengerID)
		case events.AssignmentEvent:
			gotAssignment = true
			assert.Equal(t, 0, ev.VehicleID)
			assert.Equal(t, "call", ev.Source)
		}
	}
	assert.True(t, gotCall)
	assert.True(t, gotAssignment)
}
