// Package scenario implements the tick-synchronization barrier: the
// fan-out/fan-in protocol that fans PushTick out to a fleet of vehicle
// clients, collects per-tick replies, detects when a tick is complete, and
// notifies the simulation API host. It is the only stateful core of the
// coordination server; everything under internal/server/grpc is a thin
// adapter from the wire messages in pkg/api onto this package.
package scenario

import "ticksync/pkg/api"

// MaxCars bounds the vehicle index space. Index 0 is reserved for the
// spectator pseudo-vehicle.
const MaxCars = 512

// SpectatorIndex is the pseudo-vehicle whose reply is always propagated
// upstream, even when bulk propagation is disabled in non-edge mode.
const SpectatorIndex = 0

// InvalidTime is sent as last_client_duration_ns when there is no real
// duration sample to report, e.g. the registration-complete notification.
const InvalidTime int64 = 0

// InvalidTickID marks the tick_id carried by the terminal PushTick sent
// during Server_EndScenario.
const InvalidTickID int32 = -1

// VehicleIndex identifies a registered vehicle in [0, numCars).
type VehicleIndex int32

// Config is the immutable configuration of a single scenario run.
type Config struct {
	TestScenario string
	Application  string
	Version      string
	NumCars      int32
	IsEdge       bool
}

// RegistrationEntry is one row of the node census built up during
// REGISTERING.
type RegistrationEntry struct {
	Index         VehicleIndex
	HostAddress   string
	Port          int32
	ContainerName string
}

// PushTicker is the outbound stub the barrier and dispatcher use to notify a
// vehicle or the API host that a tick has been issued or completed. It is
// satisfied by *pushclient.Client; the interface lives here so scenario
// stays decoupled from the transport package (and so tests can inject a
// fake).
type PushTicker interface {
	PushTick(tickID int32, command api.Command, lastClientDurationNS int64) bool
	Close() error
}

// PushTickerFactory builds a PushTicker addressed to host:port. Production
// code wires this to pushclient.Dial; tests inject an in-memory stub.
type PushTickerFactory func(host string, port int32) (PushTicker, error)
