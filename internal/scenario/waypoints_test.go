package scenario

import (
	"testing"

	"ticksync/pkg/api"
)

func TestEdgeWaypointsReplaceAndGet(t *testing.T) {
	w := NewEdgeWaypoints()
	if got := w.Get(1); got != nil {
		t.Fatalf("expected no waypoints before any push, got %v", got)
	}

	wp0 := &api.Waypoint{Transform: &api.Transform{Location: &api.Location{X: 1}}}
	wp1 := &api.Waypoint{Transform: &api.Transform{Location: &api.Location{X: 2}}}
	w.Replace([]*api.WaypointBuffer{
		{VehicleIndex: 0, WaypointBuffer: []*api.Waypoint{wp0}},
		{VehicleIndex: 1, WaypointBuffer: []*api.Waypoint{wp1}},
	})

	if got := w.Get(1); len(got) != 1 || got[0] != wp1 {
		t.Fatalf("expected vehicle 1's pushed waypoints, got %v", got)
	}
	if got := w.Get(2); got != nil {
		t.Fatalf("expected a miss for an unpushed index, got %v", got)
	}
}

func TestEdgeWaypointsReplaceIsWholesale(t *testing.T) {
	w := NewEdgeWaypoints()
	w.Replace([]*api.WaypointBuffer{{VehicleIndex: 0, WaypointBuffer: []*api.Waypoint{{}}}})
	w.Replace([]*api.WaypointBuffer{{VehicleIndex: 1, WaypointBuffer: []*api.Waypoint{{}}}})

	if got := w.Get(0); got != nil {
		t.Fatalf("expected vehicle 0's entry to be gone after wholesale replace")
	}
	if got := w.Get(1); len(got) != 1 {
		t.Fatalf("expected vehicle 1's fresh entry to be present")
	}
}

func TestEdgeWaypointsReplaceDuplicateIndexFirstMatchWins(t *testing.T) {
	w := NewEdgeWaypoints()
	first := []*api.Waypoint{{Transform: &api.Transform{Location: &api.Location{X: 1}}}}
	second := []*api.Waypoint{{Transform: &api.Transform{Location: &api.Location{X: 2}}}}

	w.Replace([]*api.WaypointBuffer{
		{VehicleIndex: 3, WaypointBuffer: first},
		{VehicleIndex: 3, WaypointBuffer: second},
	})

	got := w.Get(3)
	if len(got) != 1 || got[0] != first[0] {
		t.Fatalf("expected first-match-wins for duplicate index, got %v", got)
	}
}
