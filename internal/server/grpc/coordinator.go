package grpcserver

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ticksync/internal/scenario"
	"ticksync/pkg/api"
)

// Coordinator adapts the scenario package's aggregate onto the seven RPCs
// of §6. It holds no state of its own; every request is delegated straight
// through to sc.
type Coordinator struct {
	api.UnimplementedCoordinatorServer
	sc  *scenario.Scenario
	log *zap.Logger
}

// NewCoordinator builds a Coordinator bound to sc.
func NewCoordinator(sc *scenario.Scenario, log *zap.Logger) *Coordinator {
	return &Coordinator{sc: sc, log: log}
}

// scenarioErrToStatus maps scenario package sentinel errors onto gRPC
// status codes: protocol violations and capacity errors become
// InvalidArgument, phase mismatches (ErrNotIdle, ErrNotRunning) become
// FailedPrecondition, unknown vehicle indices become NotFound, and any
// other error becomes Internal.
func scenarioErrToStatus(err error) error {
	switch err {
	case nil:
		return nil
	case scenario.ErrProtocolViolation, scenario.ErrCapacityExceeded:
		return status.Error(codes.InvalidArgument, err.Error())
	case scenario.ErrNotIdle:
		return status.Error(codes.FailedPrecondition, err.Error())
	case scenario.ErrNotRunning:
		return status.Error(codes.FailedPrecondition, err.Error())
	case scenario.ErrUnknownVehicle:
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// Client_RegisterVehicle implements the two-phase registration protocol of
// §4.2, dispatching on request.vehicle_state.
func (c *Coordinator) Client_RegisterVehicle(ctx context.Context, req *api.RegistrationInfo) (*api.SimulationInfo, error) {
	switch req.VehicleState {
	case api.VehicleState_REGISTERING:
		idx, cfg, err := c.sc.RegisterPhase1(req.VehicleIp, req.VehiclePort, req.ContainerName)
		if err != nil {
			return nil, scenarioErrToStatus(err)
		}
		return &api.SimulationInfo{
			VehicleIndex: int32(idx),
			TestScenario: cfg.TestScenario,
			Application:  cfg.Application,
			Version:      cfg.Version,
			IsEdge:       cfg.IsEdge,
		}, nil

	case api.VehicleState_CARLA_UPDATE:
		payload, err := req.Marshal()
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		if err := c.sc.RegisterPhase2(scenario.VehicleIndex(req.VehicleIndex), payload); err != nil {
			return nil, scenarioErrToStatus(err)
		}
		return &api.SimulationInfo{VehicleIndex: req.VehicleIndex}, nil

	default:
		return nil, status.Error(codes.InvalidArgument, "unexpected vehicle_state in Client_RegisterVehicle")
	}
}

// Client_SendUpdate implements the per-tick reply path of §4.3/§4.4.
func (c *Coordinator) Client_SendUpdate(ctx context.Context, req *api.VehicleUpdate) (*api.Empty, error) {
	if err := c.sc.SendUpdate(req); err != nil {
		return nil, scenarioErrToStatus(err)
	}
	return &api.Empty{}, nil
}

// Client_GetWaypoints implements the edge-mode pull of §4.6. A miss is a
// valid, empty response rather than an error.
func (c *Coordinator) Client_GetWaypoints(ctx context.Context, req *api.WaypointRequest) (*api.WaypointBuffer, error) {
	return c.sc.GetWaypoints(scenario.VehicleIndex(req.VehicleIndex)), nil
}

// Server_DoTick implements the fan-out trigger of §4.4.
func (c *Coordinator) Server_DoTick(ctx context.Context, req *api.Tick) (*api.Empty, error) {
	if err := c.sc.DoTick(req.TickId, req.Command); err != nil {
		return nil, scenarioErrToStatus(err)
	}
	return &api.Empty{}, nil
}

// Server_GetVehicleUpdates implements the batched drain of §4.5.
func (c *Coordinator) Server_GetVehicleUpdates(ctx context.Context, req *api.Empty) (*api.EcloudResponse, error) {
	resp, err := c.sc.GetVehicleUpdates()
	if err != nil {
		return nil, scenarioErrToStatus(err)
	}
	return resp, nil
}

// Server_StartScenario implements the IDLE/ENDED -> REGISTERING transition
// of §4.1. request.vehicle_index is dual-use here: the requested car count
// (§9 Dual-use fields), not an assigned index.
func (c *Coordinator) Server_StartScenario(ctx context.Context, req *api.SimulationInfo) (*api.Empty, error) {
	cfg := scenario.Config{
		TestScenario: req.TestScenario,
		Application:  req.Application,
		Version:      req.Version,
		NumCars:      req.VehicleIndex,
		IsEdge:       req.IsEdge,
	}
	if err := c.sc.Start(cfg); err != nil {
		return nil, scenarioErrToStatus(err)
	}
	return &api.Empty{}, nil
}

// Server_EndScenario implements the RUNNING -> ENDED transition of §4.1.
func (c *Coordinator) Server_EndScenario(ctx context.Context, req *api.Empty) (*api.Empty, error) {
	if err := c.sc.End(); err != nil {
		return nil, scenarioErrToStatus(err)
	}
	return &api.Empty{}, nil
}

// Server_PushEdgeWaypoints implements the wholesale table replacement of
// §4.6. It is not part of api.CoordinatorServer or the registered
// Coordinator service description, so no gRPC call reaches it; only
// in-process callers can push an edge-waypoint table.
func (c *Coordinator) Server_PushEdgeWaypoints(ctx context.Context, req *api.EdgeWaypoints) (*api.Empty, error) {
	c.sc.PushEdgeWaypoints(req.AllWaypointBuffers)
	return &api.Empty{}, nil
}
