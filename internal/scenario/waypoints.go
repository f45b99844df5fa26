package scenario

import (
	"sync/atomic"

	"ticksync/pkg/api"
)

// EdgeWaypoints holds the most recent full waypoint snapshot pushed by
// Server_PushEdgeWaypoints, keyed by vehicle index. Readers (Client_GetWaypoints)
// and the single writer never block each other: the whole table is replaced
// by a pointer swap rather than mutated in place (§4.6, "pointer-swap or
// mutex" guidance).
type EdgeWaypoints struct {
	table atomic.Pointer[map[VehicleIndex][]*api.Waypoint]
}

// NewEdgeWaypoints returns an empty table.
func NewEdgeWaypoints() *EdgeWaypoints {
	w := &EdgeWaypoints{}
	empty := map[VehicleIndex][]*api.Waypoint{}
	w.table.Store(&empty)
	return w
}

// Replace installs buffers as the new table wholesale, discarding whatever
// was there before. Buffers for vehicle indices absent from buffers are
// implicitly cleared. Within one call, ties on a duplicate vehicle index
// break first-match-wins, matching the arrival-order lookup of the source.
func (w *EdgeWaypoints) Replace(buffers []*api.WaypointBuffer) {
	next := make(map[VehicleIndex][]*api.Waypoint, len(buffers))
	for _, b := range buffers {
		idx := VehicleIndex(b.VehicleIndex)
		if _, ok := next[idx]; ok {
			continue
		}
		next[idx] = b.WaypointBuffer
	}
	w.table.Store(&next)
}

// Get returns the waypoints most recently pushed for idx, or nil if none
// have been pushed since the last Replace.
func (w *EdgeWaypoints) Get(idx VehicleIndex) []*api.Waypoint {
	t := w.table.Load()
	return (*t)[idx]
}

// Reset clears the table for a new scenario.
func (w *EdgeWaypoints) Reset() {
	empty := map[VehicleIndex][]*api.Waypoint{}
	w.table.Store(&empty)
}
