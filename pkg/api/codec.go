package api

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// wireMessage is satisfied by every message in this package; it lets the
// codec below stay independent of any specific generated stub.
type wireMessage interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

const codecName = "ticksync-proto"

// Codec is a minimal grpc/encoding.Codec backed by the hand-written
// Marshal/Unmarshal pairs in this package. The corpus's real protoc
// pipeline isn't runnable in this environment, so the wire messages
// implement their own encode/decode (see wire.go) instead of relying on
// google.golang.org/protobuf's reflection-based legacy message support.
type Codec struct{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("api: %T does not implement wireMessage", v)
	}
	return m.Marshal()
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("api: %T does not implement wireMessage", v)
	}
	return m.Unmarshal(data)
}

func (Codec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(Codec{})
}
