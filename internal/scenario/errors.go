package scenario

import "errors"

var (
	// ErrNotIdle is returned by Start when a scenario is already
	// REGISTERING or RUNNING (see Design Note: no scenario concurrency
	// control in the source; this spec mandates rejection).
	ErrNotIdle = errors.New("scenario: a scenario is already active")

	// ErrCapacityExceeded is returned by Start when numCars exceeds
	// MaxCars.
	ErrCapacityExceeded = errors.New("scenario: numCars exceeds MAX_CARS")

	// ErrUnknownVehicle is returned when a request names a vehicle index
	// outside the registered range.
	ErrUnknownVehicle = errors.New("scenario: unknown vehicle index")

	// ErrProtocolViolation is returned for structurally invalid requests:
	// an out-of-order tick_id, or a registration call made outside
	// REGISTERING.
	ErrProtocolViolation = errors.New("scenario: protocol violation")

	// ErrNotRunning is returned when a RUNNING-only operation is invoked
	// outside RUNNING.
	ErrNotRunning = errors.New("scenario: no scenario is running")
)
