package scenario

import (
	"testing"

	"go.uber.org/zap"

	"ticksync/pkg/api"
)

func newTestScenario(t *testing.T) (*Scenario, *stubPushTicker) {
	t.Helper()
	upstream := &stubPushTicker{}
	sc := New(zap.NewNop(), upstream, fakeFactory, 32)
	return sc, upstream
}

// S1 - two-vehicle non-edge tick.
func TestScenarioS1TwoVehicleNonEdgeTick(t *testing.T) {
	sc, upstream := newTestScenario(t)

	if err := sc.Start(Config{TestScenario: "s.yaml", Application: "a", Version: "v", NumCars: 2, IsEdge: false}); err != nil {
		t.Fatalf("start: %v", err)
	}

	idx0, _, err := sc.RegisterPhase1("127.0.0.1", 6000, "")
	if err != nil {
		t.Fatalf("register phase1 vehicle 0: %v", err)
	}
	idx1, _, err := sc.RegisterPhase1("127.0.0.1", 6001, "")
	if err != nil {
		t.Fatalf("register phase1 vehicle 1: %v", err)
	}
	if idx0 != 0 || idx1 != 1 {
		t.Fatalf("expected dense indices 0,1, got %d,%d", idx0, idx1)
	}

	if err := sc.RegisterPhase2(idx0, []byte("actor0")); err != nil {
		t.Fatalf("register phase2 vehicle 0: %v", err)
	}
	if err := sc.RegisterPhase2(idx1, []byte("actor1")); err != nil {
		t.Fatalf("register phase2 vehicle 1: %v", err)
	}

	if sc.Phase() != Running {
		t.Fatalf("expected RUNNING after both vehicles complete phase 2, got %s", sc.Phase())
	}
	calls := upstream.Calls()
	if len(calls) != 1 || calls[0].tickID != 1 {
		t.Fatalf("expected one upstream PushTick(nodeCount=1, ...), got %+v", calls)
	}

	if err := sc.DoTick(1, api.Command_TICK); err != nil {
		t.Fatalf("do tick: %v", err)
	}

	if err := sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 0, VehicleState: api.VehicleState_TICK_OK, TickId: 1, DurationNs: 1000}); err != nil {
		t.Fatalf("send update 0: %v", err)
	}
	if err := sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 1, VehicleState: api.VehicleState_TICK_OK, TickId: 1, DurationNs: 1000}); err != nil {
		t.Fatalf("send update 1: %v", err)
	}

	calls = upstream.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected exactly one additional upstream PushTick for barrier close, got %d total", len(calls))
	}
	if calls[1].tickID != 1 || calls[1].duration != 1000 {
		t.Fatalf("expected PushTick(1, TICK, 1000), got %+v", calls[1])
	}

	resp, err := sc.GetVehicleUpdates()
	if err != nil {
		t.Fatalf("get updates: %v", err)
	}
	if len(resp.VehicleUpdate) != 1 || resp.VehicleUpdate[0].VehicleIndex != 0 {
		t.Fatalf("expected only the spectator's update, got %+v", resp.VehicleUpdate)
	}
}

// S2 - edge-mode waypoint delivery.
func TestScenarioS2EdgeModeWaypointDelivery(t *testing.T) {
	sc, _ := newTestScenario(t)
	if err := sc.Start(Config{NumCars: 2, IsEdge: true}); err != nil {
		t.Fatalf("start: %v", err)
	}
	idx0, _, _ := sc.RegisterPhase1("127.0.0.1", 6000, "")
	idx1, _, _ := sc.RegisterPhase1("127.0.0.1", 6001, "")
	sc.RegisterPhase2(idx0, nil)
	sc.RegisterPhase2(idx1, nil)

	wp1 := &api.Waypoint{Transform: &api.Transform{Location: &api.Location{X: 1}}}
	sc.PushEdgeWaypoints([]*api.WaypointBuffer{
		{VehicleIndex: 0, WaypointBuffer: nil},
		{VehicleIndex: 1, WaypointBuffer: []*api.Waypoint{wp1}},
	})

	if got := sc.GetWaypoints(1); len(got.WaypointBuffer) != 1 {
		t.Fatalf("expected vehicle 1 to get its pushed waypoint, got %+v", got)
	}
	if got := sc.GetWaypoints(2); len(got.WaypointBuffer) != 0 {
		t.Fatalf("expected an empty buffer for an unknown index, got %+v", got)
	}

	if err := sc.DoTick(1, api.Command_TICK); err != nil {
		t.Fatalf("do tick: %v", err)
	}
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 0, VehicleState: api.VehicleState_TICK_OK})
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 1, VehicleState: api.VehicleState_TICK_OK})

	resp, err := sc.GetVehicleUpdates()
	if err != nil {
		t.Fatalf("get updates: %v", err)
	}
	if len(resp.VehicleUpdate) != 2 {
		t.Fatalf("expected both vehicles' updates in edge mode, got %d", len(resp.VehicleUpdate))
	}
}

// S3 - duplicate reply closes the barrier prematurely (documented weakness).
func TestScenarioS3DuplicateReplyClosesBarrierPrematurely(t *testing.T) {
	sc, upstream := newTestScenario(t)
	sc.Start(Config{NumCars: 2})
	idx0, _, _ := sc.RegisterPhase1("127.0.0.1", 6000, "")
	idx1, _, _ := sc.RegisterPhase1("127.0.0.1", 6001, "")
	sc.RegisterPhase2(idx0, nil)
	sc.RegisterPhase2(idx1, nil)

	sc.DoTick(1, api.Command_TICK)
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 0, VehicleState: api.VehicleState_TICK_OK})
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 0, VehicleState: api.VehicleState_TICK_OK})

	calls := upstream.Calls()
	if len(calls) != 2 { // registration-complete + premature barrier close
		t.Fatalf("expected the barrier to close prematurely on the duplicate, got %d upstream calls", len(calls))
	}
}

// S4 - a terminal vehicle's completion persists across ticks.
func TestScenarioS4TerminalVehiclePersistsAcrossTicks(t *testing.T) {
	sc, upstream := newTestScenario(t)
	sc.Start(Config{NumCars: 2})
	idx0, _, _ := sc.RegisterPhase1("127.0.0.1", 6000, "")
	idx1, _, _ := sc.RegisterPhase1("127.0.0.1", 6001, "")
	sc.RegisterPhase2(idx0, nil)
	sc.RegisterPhase2(idx1, nil)

	sc.DoTick(1, api.Command_TICK)
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 1, VehicleState: api.VehicleState_TICK_DONE})
	callsAfterTick1 := len(upstream.Calls())

	sc.DoTick(2, api.Command_TICK)
	sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: 0, VehicleState: api.VehicleState_TICK_OK})

	if len(upstream.Calls()) != callsAfterTick1+1 {
		t.Fatalf("expected tick 2's barrier to close from vehicle 0 alone, since vehicle 1's completion persists")
	}
}

// S5 - Server_EndScenario moves a running scenario to ENDED (the END
// fan-out itself is checked by TestEndScenarioFansOutSynchronously).
func TestScenarioS5EndScenario(t *testing.T) {
	sc, _ := newTestScenario(t)
	sc.Start(Config{NumCars: 2})
	idx0, _, _ := sc.RegisterPhase1("127.0.0.1", 6000, "")
	idx1, _, _ := sc.RegisterPhase1("127.0.0.1", 6001, "")
	sc.RegisterPhase2(idx0, nil)
	sc.RegisterPhase2(idx1, nil)

	if err := sc.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if sc.Phase() != Ended {
		t.Fatalf("expected ENDED, got %s", sc.Phase())
	}
}

// S6 - oversized drain requires exactly 4 calls at batch size 32 for 100 cars.
func TestScenarioS6OversizedDrain(t *testing.T) {
	sc, _ := newTestScenario(t)
	sc.Start(Config{NumCars: 100, IsEdge: true})
	indices := make([]VehicleIndex, 100)
	for i := 0; i < 100; i++ {
		idx, _, err := sc.RegisterPhase1("127.0.0.1", int32(6000+i), "")
		if err != nil {
			t.Fatalf("register phase1 %d: %v", i, err)
		}
		indices[i] = idx
	}
	for _, idx := range indices {
		if err := sc.RegisterPhase2(idx, nil); err != nil {
			t.Fatalf("register phase2 %d: %v", idx, err)
		}
	}

	if err := sc.DoTick(1, api.Command_TICK); err != nil {
		t.Fatalf("do tick: %v", err)
	}
	for _, idx := range indices {
		sc.SendUpdate(&api.VehicleUpdate{VehicleIndex: int32(idx), VehicleState: api.VehicleState_TICK_OK})
	}

	calls := 0
	total := 0
	for {
		resp, err := sc.GetVehicleUpdates()
		if err != nil {
			t.Fatalf("get updates: %v", err)
		}
		calls++
		total += len(resp.VehicleUpdate)
		if sc.pending.Cursor() == 0 {
			break
		}
		if calls > 10 {
			t.Fatalf("drain did not converge")
		}
	}
	if calls != 4 {
		t.Fatalf("expected 4 drain calls, got %d", calls)
	}
	if total != 100 {
		t.Fatalf("expected all 100 updates drained, got %d", total)
	}
}

func TestScenarioStartRejectsWhileActive(t *testing.T) {
	sc, _ := newTestScenario(t)
	sc.Start(Config{NumCars: 1})
	if err := sc.Start(Config{NumCars: 1}); err != ErrNotIdle {
		t.Fatalf("expected ErrNotIdle for a second Start mid-scenario, got %v", err)
	}
}

func TestScenarioStartRejectsOverCapacity(t *testing.T) {
	sc, _ := newTestScenario(t)
	if err := sc.Start(Config{NumCars: MaxCars + 1}); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestScenarioResetReproducesFreshBehavior(t *testing.T) {
	// Scenario reset law: StartScenario after EndScenario behaves like a
	// fresh process for equal inputs.
	sc, upstream := newTestScenario(t)
	sc.Start(Config{NumCars: 1})
	idx, _, _ := sc.RegisterPhase1("127.0.0.1", 6000, "")
	sc.RegisterPhase2(idx, nil)
	sc.End()

	if err := sc.Start(Config{NumCars: 1}); err != nil {
		t.Fatalf("restart after end: %v", err)
	}
	idx2, _, err := sc.RegisterPhase1("127.0.0.1", 7000, "")
	if err != nil {
		t.Fatalf("register after restart: %v", err)
	}
	if idx2 != 0 {
		t.Fatalf("expected index space to reset to 0, got %d", idx2)
	}
	if sc.NodeCount() != 1 {
		t.Fatalf("expected fresh node census, got %d", sc.NodeCount())
	}
	_ = upstream
}
