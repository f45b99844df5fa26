package scenario

import (
	"sync/atomic"

	"ticksync/pkg/api"
)

// TickBarrier is the heart of the design: the counters and predicate that
// decide when a tick is complete, plus the fan-out dispatcher and the
// upstream completion notifier.
//
// tickId, numRepliedVehicles and numCompletedVehicles are atomics mutated
// without a mutex, per the shared-resource policy in §5: many handler
// goroutines touch them concurrently, and the barrier predicate only needs
// a consistent read of each counter individually, not a joint snapshot.
type TickBarrier struct {
	tickId               atomic.Int32
	numRepliedVehicles   atomic.Int32
	numCompletedVehicles atomic.Int32
	command              atomic.Int32 // api.Command of the in-flight tick
	lastCloseDurationNS  atomic.Int64

	upstream PushTicker
}

// NewTickBarrier wires the barrier to the Push Client addressed to the
// simulation API host. That client outlives individual scenarios (§5
// Resource ownership).
func NewTickBarrier(upstream PushTicker) *TickBarrier {
	return &TickBarrier{upstream: upstream}
}

// Reset zeroes every counter for a new scenario.
func (b *TickBarrier) Reset() {
	b.tickId.Store(0)
	b.numRepliedVehicles.Store(0)
	b.numCompletedVehicles.Store(0)
	b.command.Store(int32(api.Command_TICK))
	b.lastCloseDurationNS.Store(0)
}

// TickID returns the current tick id.
func (b *TickBarrier) TickID() int32 { return b.tickId.Load() }

// NumReplied returns the current per-tick reply count.
func (b *TickBarrier) NumReplied() int32 { return b.numRepliedVehicles.Load() }

// NumCompleted returns the scenario-lifetime terminal count.
func (b *TickBarrier) NumCompleted() int32 { return b.numCompletedVehicles.Load() }

// LastCloseDurationNS returns the duration_ns reported by the reply that
// most recently closed the barrier, for metrics (§10).
func (b *TickBarrier) LastCloseDurationNS() int64 { return b.lastCloseDurationNS.Load() }

// DispatchTick implements §4.4 steps 1-4: it validates the incoming tick_id,
// resets the per-tick reply counter, records the command, advances tickId,
// and fans PushTick out to clients, one call per goroutine, not waiting for
// any of them (dispatch is decoupled from closure: closure is
// reply-driven).
func (b *TickBarrier) DispatchTick(requestTickID int32, command api.Command, clients []PushTicker) error {
	if requestTickID != b.tickId.Load()+1 {
		return ErrProtocolViolation
	}
	b.numRepliedVehicles.Store(0)
	b.command.Store(int32(command))
	newTickID := b.tickId.Add(1)

	for _, c := range clients {
		if c == nil {
			continue
		}
		client := c
		go func() {
			client.PushTick(newTickID, command, InvalidTime)
		}()
	}
	return nil
}

// ReplyOutcome tells the caller (Client_SendUpdate handler) whether this
// reply closed the barrier and, if so, with which last_client_duration_ns
// value to report upstream.
type ReplyOutcome struct {
	BarrierClosed        bool
	LastClientDurationNS int64
}

// RecordReply applies the counter updates of §4.3's reply policy and the
// barrier predicate of §4.4 to a single Client_SendUpdate call; storing the
// reply itself is left to the caller. numCars is read
// fresh from the caller since it does not change once a scenario is
// running.
func (b *TickBarrier) RecordReply(state api.VehicleState, durationNS int64, numCars int32) ReplyOutcome {
	switch state {
	case api.VehicleState_TICK_DONE, api.VehicleState_DEBUG_INFO_UPDATE:
		b.numCompletedVehicles.Add(1)
	case api.VehicleState_TICK_OK:
		b.numRepliedVehicles.Add(1)
	}

	replied := b.numRepliedVehicles.Load()
	completed := b.numCompletedVehicles.Load()
	if replied+completed == numCars {
		b.lastCloseDurationNS.Store(durationNS)
		return ReplyOutcome{BarrierClosed: true, LastClientDurationNS: durationNS}
	}
	return ReplyOutcome{}
}

// NotifyUpstream sends the barrier-closed (or registration-complete)
// PushTick to the API host. Per §5 Ordering guarantees this is sent exactly
// once per tick, on the goroutine that observed the barrier close.
func (b *TickBarrier) NotifyUpstream(tickID int32, command api.Command, lastClientDurationNS int64) bool {
	if b.upstream == nil {
		return false
	}
	return b.upstream.PushTick(tickID, command, lastClientDurationNS)
}

// EndScenario fans PushTick(-1, END, 0) out synchronously and in order to
// every vehicle, per §4.4's note that shutdown must not race server
// teardown. It returns once every client has been attempted, regardless of
// individual failures.
func EndScenario(clients []PushTicker) {
	for _, c := range clients {
		if c == nil {
			continue
		}
		c.PushTick(InvalidTickID, api.Command_END, 0)
	}
}
