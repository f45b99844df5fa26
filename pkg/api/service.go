package api

import (
	"context"

	"google.golang.org/grpc"
)

// CoordinatorServer is the seven-method RPC surface the coordination server
// exposes to vehicle clients and the simulation API host.
type CoordinatorServer interface {
	Client_RegisterVehicle(context.Context, *RegistrationInfo) (*SimulationInfo, error)
	Client_SendUpdate(context.Context, *VehicleUpdate) (*Empty, error)
	Client_GetWaypoints(context.Context, *WaypointRequest) (*WaypointBuffer, error)
	Server_DoTick(context.Context, *Tick) (*Empty, error)
	Server_GetVehicleUpdates(context.Context, *Empty) (*EcloudResponse, error)
	Server_StartScenario(context.Context, *SimulationInfo) (*Empty, error)
	Server_EndScenario(context.Context, *Empty) (*Empty, error)
}

// UnimplementedCoordinatorServer can be embedded to satisfy CoordinatorServer
// for methods a test double doesn't care about.
type UnimplementedCoordinatorServer struct{}

func (UnimplementedCoordinatorServer) Client_RegisterVehicle(context.Context, *RegistrationInfo) (*SimulationInfo, error) {
	return nil, errNotImplemented("Client_RegisterVehicle")
}
func (UnimplementedCoordinatorServer) Client_SendUpdate(context.Context, *VehicleUpdate) (*Empty, error) {
	return nil, errNotImplemented("Client_SendUpdate")
}
func (UnimplementedCoordinatorServer) Client_GetWaypoints(context.Context, *WaypointRequest) (*WaypointBuffer, error) {
	return nil, errNotImplemented("Client_GetWaypoints")
}
func (UnimplementedCoordinatorServer) Server_DoTick(context.Context, *Tick) (*Empty, error) {
	return nil, errNotImplemented("Server_DoTick")
}
func (UnimplementedCoordinatorServer) Server_GetVehicleUpdates(context.Context, *Empty) (*EcloudResponse, error) {
	return nil, errNotImplemented("Server_GetVehicleUpdates")
}
func (UnimplementedCoordinatorServer) Server_StartScenario(context.Context, *SimulationInfo) (*Empty, error) {
	return nil, errNotImplemented("Server_StartScenario")
}
func (UnimplementedCoordinatorServer) Server_EndScenario(context.Context, *Empty) (*Empty, error) {
	return nil, errNotImplemented("Server_EndScenario")
}

func errNotImplemented(method string) error {
	return &notImplementedError{method: method}
}

type notImplementedError struct{ method string }

func (e *notImplementedError) Error() string { return "api: " + e.method + " not implemented" }

var coordinatorServiceDesc = grpc.ServiceDesc{
	ServiceName: "ticksync.api.Coordinator",
	HandlerType: (*CoordinatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Client_RegisterVehicle", Handler: _Coordinator_ClientRegisterVehicle_Handler},
		{MethodName: "Client_SendUpdate", Handler: _Coordinator_ClientSendUpdate_Handler},
		{MethodName: "Client_GetWaypoints", Handler: _Coordinator_ClientGetWaypoints_Handler},
		{MethodName: "Server_DoTick", Handler: _Coordinator_ServerDoTick_Handler},
		{MethodName: "Server_GetVehicleUpdates", Handler: _Coordinator_ServerGetVehicleUpdates_Handler},
		{MethodName: "Server_StartScenario", Handler: _Coordinator_ServerStartScenario_Handler},
		{MethodName: "Server_EndScenario", Handler: _Coordinator_ServerEndScenario_Handler},
	},
}

// RegisterCoordinatorServer wires srv into s under the Coordinator service
// name. Codec negotiation is per-call via content-subtype (codec.go's
// init() registers Codec{} by name), not a server-wide codec override.
func RegisterCoordinatorServer(s *grpc.Server, srv CoordinatorServer) {
	s.RegisterService(&coordinatorServiceDesc, srv)
}

func _Coordinator_ClientRegisterVehicle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegistrationInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Client_RegisterVehicle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Client_RegisterVehicle"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Client_RegisterVehicle(ctx, req.(*RegistrationInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ClientSendUpdate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VehicleUpdate)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Client_SendUpdate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Client_SendUpdate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Client_SendUpdate(ctx, req.(*VehicleUpdate))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ClientGetWaypoints_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WaypointRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Client_GetWaypoints(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Client_GetWaypoints"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Client_GetWaypoints(ctx, req.(*WaypointRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ServerDoTick_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Tick)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Server_DoTick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Server_DoTick"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Server_DoTick(ctx, req.(*Tick))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ServerGetVehicleUpdates_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Server_GetVehicleUpdates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Server_GetVehicleUpdates"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Server_GetVehicleUpdates(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ServerStartScenario_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SimulationInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Server_StartScenario(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Server_StartScenario"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Server_StartScenario(ctx, req.(*SimulationInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _Coordinator_ServerEndScenario_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoordinatorServer).Server_EndScenario(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Coordinator/Server_EndScenario"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CoordinatorServer).Server_EndScenario(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// CoordinatorClient is the client-side stub used by tests and by
// operator tooling that drives the coordinator directly.
type CoordinatorClient interface {
	Client_RegisterVehicle(ctx context.Context, in *RegistrationInfo, opts ...grpc.CallOption) (*SimulationInfo, error)
	Client_SendUpdate(ctx context.Context, in *VehicleUpdate, opts ...grpc.CallOption) (*Empty, error)
	Client_GetWaypoints(ctx context.Context, in *WaypointRequest, opts ...grpc.CallOption) (*WaypointBuffer, error)
	Server_DoTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*Empty, error)
	Server_GetVehicleUpdates(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*EcloudResponse, error)
	Server_StartScenario(ctx context.Context, in *SimulationInfo, opts ...grpc.CallOption) (*Empty, error)
	Server_EndScenario(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
}

type coordinatorClient struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewCoordinatorClient wraps a dialed connection. Callers should dial with
// grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})) so requests use the
// wire format this package implements.
func NewCoordinatorClient(cc grpc.ClientConnInterface) CoordinatorClient {
	return &coordinatorClient{cc: cc, opts: []grpc.CallOption{grpc.ForceCodec(Codec{})}}
}

func (c *coordinatorClient) call(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, method, in, out, append(append([]grpc.CallOption{}, c.opts...), opts...)...)
}

func (c *coordinatorClient) Client_RegisterVehicle(ctx context.Context, in *RegistrationInfo, opts ...grpc.CallOption) (*SimulationInfo, error) {
	out := new(SimulationInfo)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Client_RegisterVehicle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Client_SendUpdate(ctx context.Context, in *VehicleUpdate, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Client_SendUpdate", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Client_GetWaypoints(ctx context.Context, in *WaypointRequest, opts ...grpc.CallOption) (*WaypointBuffer, error) {
	out := new(WaypointBuffer)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Client_GetWaypoints", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Server_DoTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Server_DoTick", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Server_GetVehicleUpdates(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*EcloudResponse, error) {
	out := new(EcloudResponse)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Server_GetVehicleUpdates", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Server_StartScenario(ctx context.Context, in *SimulationInfo, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Server_StartScenario", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coordinatorClient) Server_EndScenario(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.call(ctx, "/ticksync.api.Coordinator/Server_EndScenario", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PushServer is implemented by vehicle clients and by the simulation API
// host: the coordinator calls PushTick on them, never the other way round.
type PushServer interface {
	PushTick(context.Context, *Tick) (*Empty, error)
}

// UnimplementedPushServer lets tests stub out only the behavior they need.
type UnimplementedPushServer struct{}

func (UnimplementedPushServer) PushTick(context.Context, *Tick) (*Empty, error) {
	return nil, errNotImplemented("PushTick")
}

var pushServiceDesc = grpc.ServiceDesc{
	ServiceName: "ticksync.api.Push",
	HandlerType: (*PushServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PushTick", Handler: _Push_PushTick_Handler},
	},
}

// RegisterPushServer wires srv into s under the Push service name. Vehicle
// client processes and the simulation API host call this, not the
// coordinator.
func RegisterPushServer(s *grpc.Server, srv PushServer) {
	s.RegisterService(&pushServiceDesc, srv)
}

func _Push_PushTick_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Tick)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PushServer).PushTick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/ticksync.api.Push/PushTick"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PushServer).PushTick(ctx, req.(*Tick))
	}
	return interceptor(ctx, in, info, handler)
}

// PushClient is the stub the coordinator dials against a vehicle or the API
// host to deliver a tick notification.
type PushClient interface {
	PushTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*Empty, error)
}

type pushClient struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

func NewPushClient(cc grpc.ClientConnInterface) PushClient {
	return &pushClient{cc: cc, opts: []grpc.CallOption{grpc.ForceCodec(Codec{})}}
}

func (c *pushClient) PushTick(ctx context.Context, in *Tick, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.cc.Invoke(ctx, "/ticksync.api.Push/PushTick", in, out, append(append([]grpc.CallOption{}, c.opts...), opts...)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
