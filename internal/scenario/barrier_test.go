package scenario

import (
	"testing"

	"ticksync/pkg/api"
)

func TestTickBarrierDispatchRejectsWrongTickID(t *testing.T) {
	b := NewTickBarrier(&stubPushTicker{})
	if err := b.DispatchTick(5, api.Command_TICK, nil); err != ErrProtocolViolation {
		t.Fatalf("expected protocol violation for out-of-order tick, got %v", err)
	}
}

func TestTickBarrierDispatchAdvancesTickAndResetsReplies(t *testing.T) {
	b := NewTickBarrier(&stubPushTicker{})
	b.RecordReply(api.VehicleState_TICK_OK, 0, 100) // bump numReplied off zero
	if err := b.DispatchTick(1, api.Command_TICK, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if b.TickID() != 1 {
		t.Fatalf("expected tickId 1, got %d", b.TickID())
	}
	if b.NumReplied() != 0 {
		t.Fatalf("expected numReplied reset to 0, got %d", b.NumReplied())
	}
}

func TestTickBarrierClosesWhenRepliesAndCompletionsCoverNumCars(t *testing.T) {
	b := NewTickBarrier(&stubPushTicker{})
	const numCars = 2

	out := b.RecordReply(api.VehicleState_TICK_DONE, 500, numCars)
	if out.BarrierClosed {
		t.Fatalf("barrier should not close after only 1 of 2 vehicles")
	}
	out = b.RecordReply(api.VehicleState_TICK_OK, 1000, numCars)
	if !out.BarrierClosed {
		t.Fatalf("barrier should close once replies+completions == numCars")
	}
	if out.LastClientDurationNS != 1000 {
		t.Fatalf("expected the closing reply's duration to be reported, got %d", out.LastClientDurationNS)
	}
}

func TestTickBarrierCompletedPersistsAcrossTicks(t *testing.T) {
	// S4: a TICK_DONE vehicle keeps counting toward completeness on later ticks.
	upstream := &stubPushTicker{}
	b := NewTickBarrier(upstream)
	const numCars = 2

	b.RecordReply(api.VehicleState_TICK_DONE, 0, numCars) // vehicle 1 terminal before tick 1
	b.DispatchTick(1, api.Command_TICK, nil)

	out := b.RecordReply(api.VehicleState_TICK_OK, 800, numCars) // only vehicle 0 replies on tick 1
	if !out.BarrierClosed {
		t.Fatalf("expected barrier to close because numCompletedVehicles persisted")
	}
}

func TestEndScenarioFansOutSynchronously(t *testing.T) {
	a := &stubPushTicker{}
	b := &stubPushTicker{}
	EndScenario([]PushTicker{a, b})

	for _, s := range []*stubPushTicker{a, b} {
		calls := s.Calls()
		if len(calls) != 1 {
			t.Fatalf("expected exactly one PushTick per client, got %d", len(calls))
		}
		if calls[0].tickID != InvalidTickID || calls[0].command != api.Command_END {
			t.Fatalf("expected END push with invalid tick id, got %+v", calls[0])
		}
	}
}
