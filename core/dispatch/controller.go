package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftcore/liftcore/core/dispatch/logging"
	"github.com/liftcore/liftcore/core/events"
	"github.com/liftcore/liftcore/core/logger"
	"github.com/liftcore/liftcore/core/metrics"
	"github.com/liftcore/liftcore/core/model"
	"github.com/liftcore/liftcore/core/stopqueue"
	"github.com/liftcore/liftcore/internal/eventbus"
)

// Engine is the controller's port to the simulation engine. MoveVehicle
// is fire-and-forget; Passenger may come back empty for ids the engine
// has already retired.
type Engine interface {
	MoveVehicle(vehicleID, floor int, immediate bool)
	Passenger(id int) (model.Passenger, bool)
}

// Hooks is the callback surface the engine drives. Callbacks arrive one
// at a time; a tick may deliver a batch whose order is authoritative.
type Hooks interface {
	Initialize(vehicles []model.Vehicle, floors []model.Floor)
	TickStart(tick int, tickEvents []any, vehicles []model.Vehicle, floors []model.Floor)
	TickEnd(tick int, tickEvents []any, vehicles []model.Vehicle, floors []model.Floor)
	PassengerCalled(p model.Passenger, floor model.Floor, dir model.Direction)
	VehicleIdle(v model.Vehicle)
	VehicleStopped(v model.Vehicle, floor model.Floor)
	PassengerBoarded(v model.Vehicle, p model.Passenger)
	PassengerAlighted(v model.Vehicle, p model.Passenger, floor model.Floor)
	VehicleApproaching(v model.Vehicle, floor model.Floor, dir model.Direction)
	VehiclePassingFloor(v model.Vehicle, floor model.Floor, dir model.Direction)
}

// Controller owns the dispatch state for one fleet: per-vehicle stop
// queues, the backlog and the call history. All mutation happens inside
// engine callbacks, which never overlap, so no locking is needed here.
type Controller struct {
	engine       Engine
	cfg          Config
	scorer       Scorer
	repositioner Repositioner
	log          logger.Logger
	sink         metrics.Sink
	bus          eventbus.EventBus
	store        logging.LogStore

	vehicles []model.Vehicle
	ordinal  map[int]int
	maxFloor int
	queues   map[int]*stopqueue.Queue
	backlog  *Backlog
	history  *callHistory
	tick     int
}

var _ Hooks = (*Controller)(nil)

// NewController creates a controller bound to the engine. sink and bus
// may be nil-equivalent (metrics.NopSink, nil bus) when observability is
// not wanted.
func NewController(engine Engine, cfg Config, log logger.Logger, sink metrics.Sink, bus eventbus.EventBus) (*Controller, error) {
	if engine == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewController")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Controller{
		engine:       engine,
		cfg:          cfg,
		scorer:       ScorerFromConfig(cfg),
		repositioner: NewRepositioner(cfg),
		log:          log,
		sink:         sink,
		bus:          bus,
		ordinal:      make(map[int]int),
		queues:       make(map[int]*stopqueue.Queue),
		backlog:      NewBacklog(cfg.WaitWeight),
		history:      newCallHistory(cfg.CallHistorySize),
	}, nil
}

// SetLogStore configures the store used to persist assignment decisions.
func (c *Controller) SetLogStore(store logging.LogStore) {
	c.store = store
}

// Close releases resources held by the controller.
func (c *Controller) Close() error {
	if c.bus != nil {
		c.bus.Close()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// Initialize records the fleet topology and optionally disperses the
// elevators across the building for initial coverage.
func (c *Controller) Initialize(vehicles []model.Vehicle, floors []model.Floor) {
	c.vehicles = vehicles
	c.maxFloor = 0
	if len(floors) > 0 {
		c.maxFloor = floors[len(floors)-1].Index()
	}
	for i, v := range vehicles {
		c.ordinal[v.ID()] = i
		c.queues[v.ID()] = stopqueue.New()
	}
	c.log.Infof("initialized with %d elevators, %d floors", len(vehicles), len(floors))

	if c.cfg.DispersalDisabled || len(vehicles) <= 1 {
		return
	}
	spread := StaticSpread{}
	for i, v := range vehicles {
		floor := spread.StrategicFloor(i, len(vehicles), c.maxFloor, nil)
		c.engine.MoveVehicle(v.ID(), floor, true)
		movesIssued.Inc()
	}
}

// TickStart ages the backlog and purges calls whose passenger no longer
// resolves.
func (c *Controller) TickStart(tick int, _ []any, _ []model.Vehicle, _ []model.Floor) {
	c.tick = tick
	for _, id := range c.backlog.Age(c.engine.Passenger) {
		c.publish(events.BacklogEvent{PassengerID: id, Action: "purge", Depth: c.backlog.Len()})
	}
	backlogDepth.Set(float64(c.backlog.Len()))
}

// TickEnd offers backlog calls to vehicles whose stop queue is short.
func (c *Controller) TickEnd(tick int, _ []any, _ []model.Vehicle, _ []model.Floor) {
	for _, v := range c.vehicles {
		if c.backlog.Empty() {
			break
		}
		if c.queue(v).Len() <= c.cfg.ShortQueueMax {
			c.assignFromBacklog(v)
		}
	}
	backlogDepth.Set(float64(c.backlog.Len()))
	if br, ok := c.sink.(metrics.BacklogDepthRecorder); ok {
		if err := br.RecordBacklogDepth(tick, c.backlog.Len()); err != nil {
			c.log.Errorf("backlog depth metrics error: %v", err)
		}
	}
}

// PassengerCalled scores the fleet for the new call and either assigns
// the best elevator or pushes the call onto the backlog.
func (c *Controller) PassengerCalled(p model.Passenger, floor model.Floor, dir model.Direction) {
	origin := floor.Index()
	c.history.Record(origin)
	c.publish(events.CallEvent{PassengerID: p.ID(), Floor: origin, Direction: dir})

	v, score, ok := c.scorer.Select(c.vehicles, origin, dir)
	if !ok {
		if c.backlog.Push(p.ID()) {
			c.publish(events.BacklogEvent{PassengerID: p.ID(), Action: "push", Depth: c.backlog.Len()})
		}
		backlogDepth.Set(float64(c.backlog.Len()))
		c.log.Infof("no eligible elevator for passenger %d at floor %d, backlogged", p.ID(), origin)
		return
	}
	c.log.Debugw("call assigned", map[string]any{
		"passenger": p.ID(), "floor": origin, "direction": dir.String(),
		"vehicle": v.ID(), "score": score,
	})
	c.assign(v, p, origin, score, "call", 0)
}

// VehicleIdle first tries the backlog, then parks the elevator at its
// strategic floor when nothing is pending anywhere.
func (c *Controller) VehicleIdle(v model.Vehicle) {
	if c.assignFromBacklog(v) {
		return
	}
	if head, ok := c.queue(v).Head(); ok {
		c.moveTo(v, head)
		return
	}
	if !c.backlog.Empty() {
		return
	}
	floor := c.repositioner.StrategicFloor(c.ordinal[v.ID()], len(c.vehicles), c.maxFloor, c.history.Samples())
	if floor == v.CurrentFloor() {
		return
	}
	c.log.Debugf("elevator %d idle, repositioning to floor %d", v.ID(), floor)
	repositionsTotal.Inc()
	c.publish(events.RepositionEvent{VehicleID: v.ID(), Floor: floor, Strategy: c.repositioner.Name()})
	c.engine.MoveVehicle(v.ID(), floor, false)
	movesIssued.Inc()
}

// VehicleStopped consumes the reached stop, offers the backlog to the
// vehicle while its remaining queue is short, and issues the next stop.
func (c *Controller) VehicleStopped(v model.Vehicle, floor model.Floor) {
	q := c.queue(v)
	q.Consume(floor.Index())
	if q.Len() <= c.cfg.ShortQueueMax && c.assignFromBacklog(v) {
		return
	}
	if head, ok := q.Head(); ok {
		c.moveTo(v, head)
	}
}

// PassengerBoarded makes sure the passenger's destination is queued and
// clears any backlog trace the passenger may have left behind.
func (c *Controller) PassengerBoarded(v model.Vehicle, p model.Passenger) {
	if c.backlog.Remove(p.ID()) {
		c.publish(events.BacklogEvent{PassengerID: p.ID(), Action: "purge", Depth: c.backlog.Len()})
		backlogDepth.Set(float64(c.backlog.Len()))
	}
	q := c.queue(v)
	q.Insert(p.Destination(), v.CurrentFloor(), v.Direction())
	if t, ok := v.TargetFloor(); !ok || t == v.CurrentFloor() {
		c.sendNext(v)
	}
}

// PassengerAlighted is informational only.
func (c *Controller) PassengerAlighted(v model.Vehicle, p model.Passenger, floor model.Floor) {
	c.log.Debugf("passenger %d alighted from elevator %d at floor %d", p.ID(), v.ID(), floor.Index())
}

// VehicleApproaching checks the backlog for a same-direction passenger
// at the approached floor and picks up at most one.
func (c *Controller) VehicleApproaching(v model.Vehicle, floor model.Floor, dir model.Direction) {
	if len(v.Occupants()) >= v.Capacity() {
		return
	}
	p, waited, ok := c.backlog.TakeAt(floor.Index(), dir, c.engine.Passenger)
	if !ok {
		return
	}
	backlogDepth.Set(float64(c.backlog.Len()))
	c.log.Infof("elevator %d intercepting passenger %d at floor %d", v.ID(), p.ID(), floor.Index())
	c.publish(events.InterceptEvent{VehicleID: v.ID(), PassengerID: p.ID(), Floor: floor.Index(), Direction: dir})

	q := c.queue(v)
	q.Insert(floor.Index(), v.CurrentFloor(), v.Direction())
	q.Insert(p.Destination(), v.CurrentFloor(), v.Direction())
	if t, ok := v.TargetFloor(); !ok || t != floor.Index() {
		c.moveTo(v, floor.Index())
	}
	c.record(v, p, p.Origin(), 0, "intercept", waited)
}

// VehiclePassingFloor is informational only.
func (c *Controller) VehiclePassingFloor(model.Vehicle, model.Floor, model.Direction) {}

// Backlog exposes the backlog size for inspection.
func (c *Controller) Backlog() int { return c.backlog.Len() }

// StopQueue returns a copy of the vehicle's pending stops in visit order.
func (c *Controller) StopQueue(vehicleID int) []int {
	if q, ok := c.queues[vehicleID]; ok {
		return q.Floors()
	}
	return nil
}

// assignFromBacklog matches the vehicle against the backlog and assigns
// the selected call. A call that vanishes between selection and use has
// already been removed; the attempt is simply abandoned.
func (c *Controller) assignFromBacklog(v model.Vehicle) bool {
	p, waited, score, ok := c.backlog.Match(v, c.engine.Passenger)
	backlogDepth.Set(float64(c.backlog.Len()))
	if !ok {
		return false
	}
	c.publish(events.BacklogEvent{PassengerID: p.ID(), Action: "match", Depth: c.backlog.Len()})
	c.log.Debugw("backlog call assigned", map[string]any{
		"passenger": p.ID(), "vehicle": v.ID(), "waited": waited, "priority": score,
	})
	backlogWaitTicks.Observe(float64(waited))
	c.assign(v, p, p.Origin(), score, "backlog", waited)
	return true
}

// assign queues the pickup and destination stops on the vehicle and
// issues the next stop when the vehicle has no active target. A pickup
// at the floor a stopped vehicle is already standing on is not queued.
func (c *Controller) assign(v model.Vehicle, p model.Passenger, pickup int, score float64, source string, waited int) {
	q := c.queue(v)
	if !(v.Direction() == model.DirectionStopped && v.CurrentFloor() == pickup) {
		q.Insert(pickup, v.CurrentFloor(), v.Direction())
	}
	q.Insert(p.Destination(), v.CurrentFloor(), v.Direction())
	if t, ok := v.TargetFloor(); !ok || t == v.CurrentFloor() {
		c.sendNext(v)
	}
	c.record(v, p, pickup, score, source, waited)
}

// record emits metrics, bus events and the decision log entry for a
// completed assignment.
func (c *Controller) record(v model.Vehicle, p model.Passenger, pickup int, score float64, source string, waited int) {
	assignmentsTotal.WithLabelValues(source).Inc()
	dir := model.TravelDirection(p.Origin(), p.Destination())
	c.publish(events.AssignmentEvent{
		Tick:        c.tick,
		VehicleID:   v.ID(),
		PassengerID: p.ID(),
		Origin:      p.Origin(),
		Destination: p.Destination(),
		Score:       score,
		Source:      source,
	})
	rec := metrics.AssignmentRecord{
		Tick:        c.tick,
		VehicleID:   v.ID(),
		PassengerID: p.ID(),
		Origin:      p.Origin(),
		Destination: p.Destination(),
		Direction:   dir,
		Score:       score,
		WaitedTicks: waited,
		Source:      source,
		Time:        time.Now(),
	}
	if err := c.sink.RecordAssignments([]metrics.AssignmentRecord{rec}); err != nil {
		c.log.Errorf("metrics error: %v", err)
	}
	if c.store != nil {
		err := c.store.Append(context.Background(), logging.Record{
			ID:          uuid.NewString(),
			Tick:        c.tick,
			Timestamp:   rec.Time,
			VehicleID:   v.ID(),
			PassengerID: p.ID(),
			Origin:      p.Origin(),
			Destination: p.Destination(),
			Direction:   dir.String(),
			Score:       score,
			WaitedTicks: waited,
			Source:      source,
			Queue:       c.queue(v).Floors(),
		})
		if err != nil {
			c.log.Errorf("decision log error: %v", err)
		}
	}
}

// sendNext issues the vehicle's queue head as its next move, if any.
func (c *Controller) sendNext(v model.Vehicle) {
	if head, ok := c.queue(v).Head(); ok {
		c.moveTo(v, head)
	}
}

func (c *Controller) moveTo(v model.Vehicle, floor int) {
	c.engine.MoveVehicle(v.ID(), floor, false)
	movesIssued.Inc()
}

func (c *Controller) queue(v model.Vehicle) *stopqueue.Queue {
	q, ok := c.queues[v.ID()]
	if !ok {
		q = stopqueue.New()
		c.queues[v.ID()] = q
	}
	return q
}

func (c *Controller) publish(e eventbus.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
