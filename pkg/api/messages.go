package api

import (
	"fmt"
	"math"
)

// VehicleState tags every reply a vehicle sends the coordinator.
type VehicleState int32

const (
	VehicleState_REGISTERING       VehicleState = 0
	VehicleState_CARLA_UPDATE      VehicleState = 1
	VehicleState_TICK_OK           VehicleState = 2
	VehicleState_TICK_DONE         VehicleState = 3
	VehicleState_DEBUG_INFO_UPDATE VehicleState = 4
)

func (s VehicleState) String() string {
	switch s {
	case VehicleState_REGISTERING:
		return "REGISTERING"
	case VehicleState_CARLA_UPDATE:
		return "CARLA_UPDATE"
	case VehicleState_TICK_OK:
		return "TICK_OK"
	case VehicleState_TICK_DONE:
		return "TICK_DONE"
	case VehicleState_DEBUG_INFO_UPDATE:
		return "DEBUG_INFO_UPDATE"
	default:
		return "UNKNOWN"
	}
}

// Command tags every outbound tick pushed to a vehicle or the API host.
type Command int32

const (
	Command_TICK               Command = 0
	Command_END                Command = 1
	Command_PAUSE              Command = 2
	Command_RESUME             Command = 3
	Command_REQUEST_DEBUG_INFO Command = 4
)

func (c Command) String() string {
	switch c {
	case Command_TICK:
		return "TICK"
	case Command_END:
		return "END"
	case Command_PAUSE:
		return "PAUSE"
	case Command_RESUME:
		return "RESUME"
	case Command_REQUEST_DEBUG_INFO:
		return "REQUEST_DEBUG_INFO"
	default:
		return "UNKNOWN"
	}
}

// Empty is the zero-field message shared by several RPCs.
type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return "Empty{}" }
func (*Empty) ProtoMessage()    {}

func (m *Empty) Marshal() ([]byte, error) { return nil, nil }
func (m *Empty) Unmarshal(data []byte) error {
	*m = Empty{}
	return nil
}

// Tick carries a single logical clock step, either fanned out to a vehicle
// or delivered upstream to the API host as a completion signal.
type Tick struct {
	TickId               int32
	Command              Command
	LastClientDurationNs int64
}

func (m *Tick) Reset()         { *m = Tick{} }
func (m *Tick) String() string { return fmt.Sprintf("Tick{id=%d cmd=%s}", m.TickId, m.Command) }
func (*Tick) ProtoMessage()    {}

func (m *Tick) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 24)
	buf = appendInt32(buf, 1, m.TickId)
	buf = appendEnum(buf, 2, int32(m.Command))
	buf = appendInt64(buf, 3, m.LastClientDurationNs)
	return buf, nil
}

func (m *Tick) Unmarshal(data []byte) error {
	*m = Tick{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.TickId = int32(v)
		case 2:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.Command = Command(int32(v))
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.LastClientDurationNs = int64(v)
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegistrationInfo is phase-1 and phase-2 registration payload from a
// vehicle client. Phase 1 carries vehicle_ip/vehicle_port/container_name;
// phase 2 carries vehicle_index/actor_id/vid.
type RegistrationInfo struct {
	VehicleState  VehicleState
	VehicleIp     string
	VehiclePort   int32
	ContainerName string
	VehicleIndex  int32
	ActorId       int32
	Vid           string
}

func (m *RegistrationInfo) Reset()         { *m = RegistrationInfo{} }
func (m *RegistrationInfo) String() string { return fmt.Sprintf("RegistrationInfo{%+v}", *m) }
func (*RegistrationInfo) ProtoMessage()    {}

func (m *RegistrationInfo) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = appendEnum(buf, 1, int32(m.VehicleState))
	buf = appendString(buf, 2, m.VehicleIp)
	buf = appendInt32(buf, 3, m.VehiclePort)
	buf = appendString(buf, 4, m.ContainerName)
	buf = appendInt32(buf, 5, m.VehicleIndex)
	buf = appendInt32(buf, 6, m.ActorId)
	buf = appendString(buf, 7, m.Vid)
	return buf, nil
}

func (m *RegistrationInfo) Unmarshal(data []byte) error {
	*m = RegistrationInfo{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleState = VehicleState(int32(v))
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.VehicleIp = string(b)
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehiclePort = int32(v)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.ContainerName = string(b)
		case 5:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleIndex = int32(v)
		case 6:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.ActorId = int32(v)
		case 7:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.Vid = string(b)
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// SimulationInfo doubles as the registration reply (vehicle_index is the
// assigned index) and the Server_StartScenario request (vehicle_index is
// overloaded as the requested car count).
type SimulationInfo struct {
	VehicleIndex int32
	TestScenario string
	Application  string
	Version      string
	IsEdge       bool
}

func (m *SimulationInfo) Reset()         { *m = SimulationInfo{} }
func (m *SimulationInfo) String() string { return fmt.Sprintf("SimulationInfo{%+v}", *m) }
func (*SimulationInfo) ProtoMessage()    {}

func (m *SimulationInfo) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 64+len(m.TestScenario))
	buf = appendInt32(buf, 1, m.VehicleIndex)
	buf = appendString(buf, 2, m.TestScenario)
	buf = appendString(buf, 3, m.Application)
	buf = appendString(buf, 4, m.Version)
	buf = appendBool(buf, 5, m.IsEdge)
	return buf, nil
}

func (m *SimulationInfo) Unmarshal(data []byte) error {
	*m = SimulationInfo{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleIndex = int32(v)
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.TestScenario = string(b)
		case 3:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.Application = string(b)
		case 4:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			m.Version = string(b)
		case 5:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.IsEdge = v != 0
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// Timestamps carries coarse timing samples used by debug/terminal replies.
type Timestamps struct {
	SimStartUnixMs int64
	StartupTimeMs  int64
	ShutdownTimeMs int64
}

func (m *Timestamps) Reset()         { *m = Timestamps{} }
func (m *Timestamps) String() string { return fmt.Sprintf("Timestamps{%+v}", *m) }
func (*Timestamps) ProtoMessage()    {}

func (m *Timestamps) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 24)
	buf = appendInt64(buf, 1, m.SimStartUnixMs)
	buf = appendInt64(buf, 2, m.StartupTimeMs)
	buf = appendInt64(buf, 3, m.ShutdownTimeMs)
	return buf, nil
}

func (m *Timestamps) Unmarshal(data []byte) error {
	*m = Timestamps{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.SimStartUnixMs = int64(v)
		case 2:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.StartupTimeMs = int64(v)
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.ShutdownTimeMs = int64(v)
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// DebugInfo carries the per-tick timing breakdown a vehicle attaches to a
// TICK_DONE or DEBUG_INFO_UPDATE reply. Field names mirror the analysis
// buckets the simulator's own debug helper accumulates: world/client tick
// duration, network overhead, and inferred barrier wait time.
type DebugInfo struct {
	WorldTickTimeMs     int64
	ClientTickTimeMs    int64
	NetworkTimeMs       int64
	BarrierOverheadMs   int64
	ClientProcessTimeMs int64
	Timestamps          *Timestamps
}

func (m *DebugInfo) Reset()         { *m = DebugInfo{} }
func (m *DebugInfo) String() string { return fmt.Sprintf("DebugInfo{%+v}", *m) }
func (*DebugInfo) ProtoMessage()    {}

func (m *DebugInfo) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 48)
	buf = appendInt64(buf, 1, m.WorldTickTimeMs)
	buf = appendInt64(buf, 2, m.ClientTickTimeMs)
	buf = appendInt64(buf, 3, m.NetworkTimeMs)
	buf = appendInt64(buf, 4, m.BarrierOverheadMs)
	buf = appendInt64(buf, 5, m.ClientProcessTimeMs)
	var err error
	buf, err = appendMessage(buf, 6, m.Timestamps)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (m *DebugInfo) Unmarshal(data []byte) error {
	*m = DebugInfo{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.WorldTickTimeMs = int64(v)
		case 2:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.ClientTickTimeMs = int64(v)
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.NetworkTimeMs = int64(v)
		case 4:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.BarrierOverheadMs = int64(v)
		case 5:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.ClientProcessTimeMs = int64(v)
		case 6:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			ts := &Timestamps{}
			if err := ts.Unmarshal(b); err != nil {
				return err
			}
			m.Timestamps = ts
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// VehicleUpdate is a vehicle's per-tick reply to the coordinator.
type VehicleUpdate struct {
	VehicleIndex int32
	VehicleState VehicleState
	TickId       int32
	DurationNs   int64
	Debug        *DebugInfo
}

func (m *VehicleUpdate) Reset()         { *m = VehicleUpdate{} }
func (m *VehicleUpdate) String() string { return fmt.Sprintf("VehicleUpdate{%+v}", *m) }
func (*VehicleUpdate) ProtoMessage()    {}

func (m *VehicleUpdate) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 32)
	buf = appendInt32(buf, 1, m.VehicleIndex)
	buf = appendEnum(buf, 2, int32(m.VehicleState))
	buf = appendInt32(buf, 3, m.TickId)
	buf = appendInt64(buf, 4, m.DurationNs)
	var err error
	buf, err = appendMessage(buf, 5, m.Debug)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (m *VehicleUpdate) Unmarshal(data []byte) error {
	*m = VehicleUpdate{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleIndex = int32(v)
		case 2:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleState = VehicleState(int32(v))
		case 3:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.TickId = int32(v)
		case 4:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.DurationNs = int64(v)
		case 5:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			d := &DebugInfo{}
			if err := d.Unmarshal(b); err != nil {
				return err
			}
			m.Debug = d
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// EcloudResponse batches drained vehicle updates for Server_GetVehicleUpdates.
type EcloudResponse struct {
	VehicleUpdate []*VehicleUpdate
}

func (m *EcloudResponse) Reset()         { *m = EcloudResponse{} }
func (m *EcloudResponse) String() string { return fmt.Sprintf("EcloudResponse{n=%d}", len(m.VehicleUpdate)) }
func (*EcloudResponse) ProtoMessage()    {}

func (m *EcloudResponse) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 64*len(m.VehicleUpdate))
	for _, u := range m.VehicleUpdate {
		var err error
		buf, err = appendMessage(buf, 1, u)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (m *EcloudResponse) Unmarshal(data []byte) error {
	*m = EcloudResponse{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			u := &VehicleUpdate{}
			if err := u.Unmarshal(b); err != nil {
				return err
			}
			m.VehicleUpdate = append(m.VehicleUpdate, u)
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// Location is a 3D point in the simulator's world frame.
type Location struct {
	X, Y, Z float64
}

func (m *Location) Reset()         { *m = Location{} }
func (m *Location) String() string { return fmt.Sprintf("Location{%.2f,%.2f,%.2f}", m.X, m.Y, m.Z) }
func (*Location) ProtoMessage()    {}

func (m *Location) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 27)
	buf = appendDouble(buf, 1, m.X)
	buf = appendDouble(buf, 2, m.Y)
	buf = appendDouble(buf, 3, m.Z)
	return buf, nil
}

func (m *Location) Unmarshal(data []byte) error {
	*m = Location{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		if wt != wireFixed64 {
			if err := r.skip(wt); err != nil {
				return err
			}
			continue
		}
		v, err := r.readFixed64()
		if err != nil {
			return err
		}
		f := math.Float64frombits(v)
		switch field {
		case 1:
			m.X = f
		case 2:
			m.Y = f
		case 3:
			m.Z = f
		}
	}
	return nil
}

// Rotation is Euler angles in degrees, matching CARLA's convention.
type Rotation struct {
	Pitch, Yaw, Roll float64
}

func (m *Rotation) Reset()         { *m = Rotation{} }
func (m *Rotation) String() string { return fmt.Sprintf("Rotation{%.2f,%.2f,%.2f}", m.Pitch, m.Yaw, m.Roll) }
func (*Rotation) ProtoMessage()    {}

func (m *Rotation) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 27)
	buf = appendDouble(buf, 1, m.Pitch)
	buf = appendDouble(buf, 2, m.Yaw)
	buf = appendDouble(buf, 3, m.Roll)
	return buf, nil
}

func (m *Rotation) Unmarshal(data []byte) error {
	*m = Rotation{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		if wt != wireFixed64 {
			if err := r.skip(wt); err != nil {
				return err
			}
			continue
		}
		v, err := r.readFixed64()
		if err != nil {
			return err
		}
		f := math.Float64frombits(v)
		switch field {
		case 1:
			m.Pitch = f
		case 2:
			m.Yaw = f
		case 3:
			m.Roll = f
		}
	}
	return nil
}

// Transform pairs a Location with a Rotation, as CARLA does for actor pose.
type Transform struct {
	Location *Location
	Rotation *Rotation
}

func (m *Transform) Reset()         { *m = Transform{} }
func (m *Transform) String() string { return fmt.Sprintf("Transform{%+v}", *m) }
func (*Transform) ProtoMessage()    {}

func (m *Transform) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 64)
	var err error
	buf, err = appendMessage(buf, 1, m.Location)
	if err != nil {
		return nil, err
	}
	buf, err = appendMessage(buf, 2, m.Rotation)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (m *Transform) Unmarshal(data []byte) error {
	*m = Transform{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			loc := &Location{}
			if err := loc.Unmarshal(b); err != nil {
				return err
			}
			m.Location = loc
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			rot := &Rotation{}
			if err := rot.Unmarshal(b); err != nil {
				return err
			}
			m.Rotation = rot
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// Waypoint is a single planned pose along a vehicle's route.
type Waypoint struct {
	Transform *Transform
}

func (m *Waypoint) Reset()         { *m = Waypoint{} }
func (m *Waypoint) String() string { return fmt.Sprintf("Waypoint{%+v}", *m) }
func (*Waypoint) ProtoMessage()    {}

func (m *Waypoint) Marshal() ([]byte, error) {
	return appendMessage(nil, 1, m.Transform)
}

func (m *Waypoint) Unmarshal(data []byte) error {
	*m = Waypoint{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		if field == 1 {
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			t := &Transform{}
			if err := t.Unmarshal(b); err != nil {
				return err
			}
			m.Transform = t
			continue
		}
		if err := r.skip(wt); err != nil {
			return err
		}
	}
	return nil
}

// WaypointRequest is a vehicle's pull for its edge-mode plan.
type WaypointRequest struct {
	VehicleIndex int32
}

func (m *WaypointRequest) Reset()         { *m = WaypointRequest{} }
func (m *WaypointRequest) String() string { return fmt.Sprintf("WaypointRequest{%d}", m.VehicleIndex) }
func (*WaypointRequest) ProtoMessage()    {}

func (m *WaypointRequest) Marshal() ([]byte, error) {
	return appendInt32(nil, 1, m.VehicleIndex), nil
}

func (m *WaypointRequest) Unmarshal(data []byte) error {
	*m = WaypointRequest{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		if field == 1 {
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleIndex = int32(v)
			continue
		}
		if err := r.skip(wt); err != nil {
			return err
		}
	}
	return nil
}

// WaypointBuffer is the ordered plan for a single vehicle, as pushed by the
// API host in edge mode.
type WaypointBuffer struct {
	VehicleIndex   int32
	WaypointBuffer []*Waypoint
}

func (m *WaypointBuffer) Reset()         { *m = WaypointBuffer{} }
func (m *WaypointBuffer) String() string {
	return fmt.Sprintf("WaypointBuffer{veh=%d n=%d}", m.VehicleIndex, len(m.WaypointBuffer))
}
func (*WaypointBuffer) ProtoMessage() {}

func (m *WaypointBuffer) Marshal() ([]byte, error) {
	buf := appendInt32(nil, 1, m.VehicleIndex)
	for _, wp := range m.WaypointBuffer {
		var err error
		buf, err = appendMessage(buf, 2, wp)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (m *WaypointBuffer) Unmarshal(data []byte) error {
	*m = WaypointBuffer{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			v, err := r.readVarint()
			if err != nil {
				return err
			}
			m.VehicleIndex = int32(v)
		case 2:
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			wp := &Waypoint{}
			if err := wp.Unmarshal(b); err != nil {
				return err
			}
			m.WaypointBuffer = append(m.WaypointBuffer, wp)
		default:
			if err := r.skip(wt); err != nil {
				return err
			}
		}
	}
	return nil
}

// EdgeWaypoints is the wholesale table replacement sent by
// Server_PushEdgeWaypoints.
type EdgeWaypoints struct {
	AllWaypointBuffers []*WaypointBuffer
}

func (m *EdgeWaypoints) Reset() { *m = EdgeWaypoints{} }
func (m *EdgeWaypoints) String() string {
	return fmt.Sprintf("EdgeWaypoints{n=%d}", len(m.AllWaypointBuffers))
}
func (*EdgeWaypoints) ProtoMessage() {}

func (m *EdgeWaypoints) Marshal() ([]byte, error) {
	var buf []byte
	for _, wpb := range m.AllWaypointBuffers {
		var err error
		buf, err = appendMessage(buf, 1, wpb)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (m *EdgeWaypoints) Unmarshal(data []byte) error {
	*m = EdgeWaypoints{}
	r := newWireReader(data)
	for !r.done() {
		field, wt, err := r.readTag()
		if err != nil {
			return err
		}
		if field == 1 {
			b, err := r.readBytes()
			if err != nil {
				return err
			}
			wpb := &WaypointBuffer{}
			if err := wpb.Unmarshal(b); err != nil {
				return err
			}
			m.AllWaypointBuffers = append(m.AllWaypointBuffers, wpb)
			continue
		}
		if err := r.skip(wt); err != nil {
			return err
		}
	}
	return nil
}
