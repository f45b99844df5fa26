package scenario

import (
	"sync"
	"sync/atomic"
)

// registryEntry is what the registry keeps per vehicle: its census row plus
// the push client addressed to it.
type registryEntry struct {
	info   RegistrationEntry
	client PushTicker
}

// Registry maintains the vehicle index space [0, numCars), the distinct set
// of client host addresses (the node census), and the Push Client
// collection keyed by vehicle index.
//
// Index assignment is totally ordered by mu so indices come out dense and
// monotonic in arrival order (§5 Ordering guarantees); numRegistered and
// nodeCount are additionally exposed as atomics so readers that only need
// the count don't have to take the lock.
type Registry struct {
	mu      sync.Mutex
	entries []registryEntry
	nodes   map[string]struct{}

	numRegistered atomic.Int32
	nodeCount     atomic.Int32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]struct{})}
}

// Reset clears the registry for a new scenario, closing any push clients
// left over from the previous one.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.client != nil {
			_ = e.client.Close()
		}
	}
	r.entries = nil
	r.nodes = make(map[string]struct{})
	r.numRegistered.Store(0)
	r.nodeCount.Store(0)
}

// Allocate assigns the next dense index to a newly registering vehicle,
// records its host address in the node census, and stores the push client
// built for it. This is phase 1 of registration (§4.2).
//
// onAllocated, if non-nil, runs inside the same critical section right
// after the index is committed — the caller uses it to grow its
// pending-reply buffer, so "assign index, create client, insert slot, bump
// node count" is one atomic section as §5 requires, not index assignment
// followed by an unguarded slot append.
func (r *Registry) Allocate(host string, port int32, containerName string, factory PushTickerFactory, onAllocated func(VehicleIndex)) (VehicleIndex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := VehicleIndex(len(r.entries))
	client, err := factory(host, port)
	if err != nil {
		return 0, err
	}
	if _, seen := r.nodes[host]; !seen {
		r.nodes[host] = struct{}{}
		r.nodeCount.Add(1)
	}
	r.entries = append(r.entries, registryEntry{
		info: RegistrationEntry{
			Index:         idx,
			HostAddress:   host,
			Port:          port,
			ContainerName: containerName,
		},
		client: client,
	})
	r.numRegistered.Add(1)
	if onAllocated != nil {
		onAllocated(idx)
	}
	return idx, nil
}

// NumRegistered returns the number of vehicles registered so far.
func (r *Registry) NumRegistered() int32 { return r.numRegistered.Load() }

// NodeCount returns the number of distinct host addresses seen.
func (r *Registry) NodeCount() int32 { return r.nodeCount.Load() }

// Clients returns a snapshot of the registered push clients in index
// order, for fan-out dispatch.
func (r *Registry) Clients() []PushTicker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PushTicker, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.client
	}
	return out
}

// ClientNodes returns a snapshot of the distinct host addresses recorded.
func (r *Registry) ClientNodes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.nodes))
	for host := range r.nodes {
		out = append(out, host)
	}
	return out
}

// Entries returns a snapshot of the registry rows in index order.
func (r *Registry) Entries() []RegistrationEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RegistrationEntry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.info
	}
	return out
}
