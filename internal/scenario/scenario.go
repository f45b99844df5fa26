package scenario

import (
	"sync"

	"go.uber.org/zap"

	"ticksync/pkg/api"
)

// Scenario is the single "Scenario" value the Design Notes call for: every
// piece of process-wide mutable state the source scattered across globals
// lives here instead, owned by the RPC service for the process lifetime.
// A coarse mutex (mu) guards structural transitions (phase changes,
// registry resets); the hot per-reply counters inside barrier stay atomic
// so Client_SendUpdate handlers never contend with each other over a lock.
type Scenario struct {
	log *zap.Logger

	batchSize     int32
	tickerFactory PushTickerFactory
	upstream      PushTicker

	mu     sync.Mutex
	phase  Phase
	config Config

	registry  *Registry
	pending   *PendingReplyBuffer
	waypoints *EdgeWaypoints
	barrier   *TickBarrier
}

// New builds an idle Scenario. upstream is the long-lived Push Client
// addressed to the simulation API host (§5 Resource ownership: it outlives
// individual scenarios). factory builds a Push Client for a newly
// registering vehicle. batchSize is the default drain batch (§6, 32).
func New(log *zap.Logger, upstream PushTicker, factory PushTickerFactory, batchSize int32) *Scenario {
	if batchSize <= 0 {
		batchSize = 32
	}
	s := &Scenario{
		log:           log,
		batchSize:     batchSize,
		tickerFactory: factory,
		upstream:      upstream,
		phase:         Idle,
		registry:      NewRegistry(),
		pending:       NewPendingReplyBuffer(0),
		waypoints:     NewEdgeWaypoints(),
	}
	s.barrier = NewTickBarrier(upstream)
	return s
}

// Phase returns the current lifecycle phase.
func (s *Scenario) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start implements the IDLE/ENDED -> REGISTERING transition of §4.1.
// numCars is the dual-use vehicle_index field of SimulationInfo (§6).
func (s *Scenario) Start(cfg Config) error {
	if cfg.NumCars > MaxCars {
		return ErrCapacityExceeded
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.phase.canStart() {
		return ErrNotIdle
	}
	s.config = cfg
	s.phase = Registering
	s.registry.Reset()
	s.pending = NewPendingReplyBuffer(0)
	s.waypoints.Reset()
	s.barrier.Reset()

	s.log.Info("scenario started",
		zap.String("test_scenario", cfg.TestScenario),
		zap.Int32("num_cars", cfg.NumCars),
		zap.Bool("is_edge", cfg.IsEdge))
	return nil
}

// RegisterPhase1 implements the index-allocation half of §4.2. It returns
// the assigned index and the scenario config to echo back to the caller.
func (s *Scenario) RegisterPhase1(vehicleIP string, vehiclePort int32, containerName string) (VehicleIndex, Config, error) {
	s.mu.Lock()
	if s.phase != Registering {
		s.mu.Unlock()
		return 0, Config{}, ErrProtocolViolation
	}
	cfg := s.config
	s.mu.Unlock()

	idx, err := s.registry.Allocate(vehicleIP, vehiclePort, containerName, s.tickerFactory, func(VehicleIndex) {
		s.pending.Grow()
	})
	if err != nil {
		return 0, Config{}, err
	}
	return idx, cfg, nil
}

// RegisterPhase2 implements the actor-binding half of §4.2. When this is
// the numCars-th qualifying reply, it triggers the REGISTERING -> RUNNING
// transition and the registration-complete upstream notification.
func (s *Scenario) RegisterPhase2(idx VehicleIndex, payload []byte) error {
	s.mu.Lock()
	if s.phase != Registering {
		s.mu.Unlock()
		return ErrProtocolViolation
	}
	numCars := s.config.NumCars
	s.mu.Unlock()

	if idx < 0 || int(idx) >= s.pending.Len() {
		return ErrUnknownVehicle
	}
	if !s.pending.IsEmpty(idx) {
		s.log.Error("duplicate registration reply, discarding", zap.Int32("vehicle_index", int32(idx)))
		return nil
	}
	s.pending.Store(idx, payload)
	replied := s.barrier.numRepliedVehicles.Add(1)
	if replied != numCars {
		return nil
	}

	s.mu.Lock()
	if s.phase == Registering {
		s.phase = Running
	}
	nodeCount := s.registry.NodeCount()
	s.mu.Unlock()

	s.barrier.NotifyUpstream(nodeCount, api.Command_TICK, InvalidTime)
	s.log.Info("registration complete, scenario running", zap.Int32("node_count", nodeCount))
	return nil
}

// DoTick implements §4.4's fan-out. It fails only on a tick_id mismatch or
// when no scenario is RUNNING; individual Push Client failures are logged,
// not surfaced (§7).
// DispatchTick alone resets the per-tick reply counter; pending-reply slots
// are left untouched here so a terminal reply (TICK_DONE/DEBUG_INFO_UPDATE)
// stored before the API host has drained survives into the next tick,
// per §4.3's "terminal replies are always propagated" and invariant 7.
// Only GetVehicleUpdates/DrainBatch ever empties a slot.
func (s *Scenario) DoTick(requestTickID int32, command api.Command) error {
	s.mu.Lock()
	if s.phase != Running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.mu.Unlock()

	clients := s.registry.Clients()
	return s.barrier.DispatchTick(requestTickID, command, clients)
}

// SendUpdate implements §4.3's storage policy plus the barrier predicate of
// §4.4. When this reply closes the barrier, the upstream PushTick is sent
// from this call's goroutine (§5 Ordering guarantees).
func (s *Scenario) SendUpdate(update *api.VehicleUpdate) error {
	s.mu.Lock()
	if s.phase != Running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	numCars := s.config.NumCars
	isEdge := s.config.IsEdge
	s.mu.Unlock()

	idx := VehicleIndex(update.VehicleIndex)
	if idx < 0 || int(idx) >= s.pending.Len() {
		return ErrUnknownVehicle
	}
	store := false
	switch update.VehicleState {
	case api.VehicleState_TICK_DONE, api.VehicleState_DEBUG_INFO_UPDATE:
		store = true
	case api.VehicleState_TICK_OK:
		store = isEdge || idx == SpectatorIndex
	}
	if store {
		payload, err := update.Marshal()
		if err != nil {
			return err
		}
		res := s.pending.Store(idx, payload)
		if res.Overwrote {
			s.log.Error("duplicate or late reply", zap.Int32("vehicle_index", update.VehicleIndex))
		}
	}

	outcome := s.barrier.RecordReply(update.VehicleState, update.DurationNs, numCars)
	if outcome.BarrierClosed {
		tickID := s.barrier.TickID()
		s.barrier.NotifyUpstream(tickID, s.currentCommand(), outcome.LastClientDurationNS)
	}
	return nil
}

func (s *Scenario) currentCommand() api.Command {
	return api.Command(s.barrier.command.Load())
}

// GetVehicleUpdates implements the drain protocol of §4.5.
func (s *Scenario) GetVehicleUpdates() (*api.EcloudResponse, error) {
	s.mu.Lock()
	if s.phase != Running {
		s.mu.Unlock()
		return nil, ErrNotRunning
	}
	numCars := s.config.NumCars
	s.mu.Unlock()

	raw, examined := s.pending.DrainBatch(s.batchSize)
	resp := &api.EcloudResponse{}
	for _, b := range raw {
		u := &api.VehicleUpdate{}
		if err := u.Unmarshal(b); err != nil {
			s.log.Error("corrupt pending reply, dropping", zap.Error(err))
			continue
		}
		resp.VehicleUpdate = append(resp.VehicleUpdate, u)
	}
	if examined >= numCars {
		s.barrier.numRepliedVehicles.Store(0)
	}
	return resp, nil
}

// PushEdgeWaypoints implements §4.6's wholesale table replacement.
func (s *Scenario) PushEdgeWaypoints(buffers []*api.WaypointBuffer) {
	s.waypoints.Replace(buffers)
}

// GetWaypoints implements the vehicle-side pull half of §4.6. A miss
// returns an empty (not error) buffer, per the invariant that "no
// waypoints for this tick" is a tolerated outcome.
func (s *Scenario) GetWaypoints(idx VehicleIndex) *api.WaypointBuffer {
	wps := s.waypoints.Get(idx)
	return &api.WaypointBuffer{VehicleIndex: int32(idx), WaypointBuffer: wps}
}

// End implements the RUNNING -> ENDED transition: synchronous, in-order
// fan-out of PushTick(-1, END, 0), per §4.4 and scenario S5.
func (s *Scenario) End() error {
	s.mu.Lock()
	if s.phase != Running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	clients := s.registry.Clients()
	s.phase = Ended
	s.mu.Unlock()

	EndScenario(clients)
	s.log.Info("scenario ended")
	return nil
}

// NumRegistered exposes the registry's live vehicle count, mainly for
// metrics and tests.
func (s *Scenario) NumRegistered() int32 { return s.registry.NumRegistered() }

// NodeCount exposes the registry's distinct-host count.
func (s *Scenario) NodeCount() int32 { return s.registry.NodeCount() }

// TickID exposes the barrier's current tick id.
func (s *Scenario) TickID() int32 { return s.barrier.TickID() }

// NumCars exposes the active scenario's configured car count, for metrics.
func (s *Scenario) NumCars() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.NumCars
}

// NumReplied exposes the barrier's per-tick reply count, for metrics.
func (s *Scenario) NumReplied() int32 { return s.barrier.NumReplied() }

// NumCompleted exposes the barrier's scenario-lifetime terminal count, for
// metrics.
func (s *Scenario) NumCompleted() int32 { return s.barrier.NumCompleted() }

// LastBarrierWaitNS exposes the duration_ns of the reply that most recently
// closed the barrier, for metrics.
func (s *Scenario) LastBarrierWaitNS() int64 { return s.barrier.LastCloseDurationNS() }
