package scenario

import (
	"sync"

	"ticksync/pkg/api"
)

// stubPushTicker is the in-memory PushTicker used across this package's
// tests in place of a real pushclient.Client, recording every call it
// receives.
type stubPushTicker struct {
	mu     sync.Mutex
	calls  []stubPushCall
	closed bool
	fail   bool
}

type stubPushCall struct {
	tickID   int32
	command  api.Command
	duration int64
}

func (s *stubPushTicker) PushTick(tickID int32, command api.Command, duration int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, stubPushCall{tickID, command, duration})
	return !s.fail
}

func (s *stubPushTicker) Close() error {
	s.closed = true
	return nil
}

func (s *stubPushTicker) Calls() []stubPushCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]stubPushCall, len(s.calls))
	copy(out, s.calls)
	return out
}

func fakeFactory(host string, port int32) (PushTicker, error) {
	return &stubPushTicker{}, nil
}
