package scenario

import "testing"

func TestPendingReplyBufferStoreAndDrain(t *testing.T) {
	b := NewPendingReplyBuffer(3)
	if !b.IsEmpty(0) || !b.IsEmpty(1) || !b.IsEmpty(2) {
		t.Fatalf("fresh buffer should be entirely empty")
	}

	res := b.Store(1, []byte("hello"))
	if res.Overwrote {
		t.Fatalf("first write should not report an overwrite")
	}
	if b.IsEmpty(1) {
		t.Fatalf("slot 1 should be non-empty after store")
	}

	out, examined := b.DrainBatch(32)
	if len(out) != 1 || string(out[0]) != "hello" {
		t.Fatalf("expected one drained reply, got %v", out)
	}
	if examined != 3 {
		t.Fatalf("expected to examine all 3 slots, got %d", examined)
	}
	if !b.IsEmpty(1) {
		t.Fatalf("slot 1 should be cleared after drain")
	}
}

func TestPendingReplyBufferDuplicateOverwrite(t *testing.T) {
	b := NewPendingReplyBuffer(1)
	b.Store(0, []byte("first"))
	res := b.Store(0, []byte("second"))
	if !res.Overwrote {
		t.Fatalf("second write to a non-empty slot should report an overwrite")
	}
	out, _ := b.DrainBatch(32)
	if len(out) != 1 || string(out[0]) != "second" {
		t.Fatalf("last-writer-wins expected, got %v", out)
	}
}

func TestPendingReplyBufferDrainIdempotentAfterEmpty(t *testing.T) {
	b := NewPendingReplyBuffer(2)
	b.Store(0, []byte("x"))
	first, _ := b.DrainBatch(32)
	if len(first) != 1 {
		t.Fatalf("expected one reply on first drain, got %d", len(first))
	}
	second, _ := b.DrainBatch(32)
	if len(second) != 0 {
		t.Fatalf("expected empty batch on second drain, got %d", len(second))
	}
}

func TestPendingReplyBufferBatchBoundaries(t *testing.T) {
	// S6: numCars=100, batch=32 -> 4 calls (0-31, 32-63, 64-95, 96-99).
	b := NewPendingReplyBuffer(100)
	for i := 0; i < 100; i++ {
		b.Store(VehicleIndex(i), []byte("v"))
	}

	calls := 0
	for {
		out, examined := b.DrainBatch(32)
		calls++
		if len(out) == 0 {
			t.Fatalf("did not expect an empty batch mid-drain at call %d", calls)
		}
		if examined >= 100 {
			break
		}
		if calls > 10 {
			t.Fatalf("drain did not converge")
		}
	}
	if calls != 4 {
		t.Fatalf("expected 4 drain calls for 100 vehicles at batch 32, got %d", calls)
	}
	if b.Cursor() != 0 {
		t.Fatalf("cursor should reset to 0 after a full drain, got %d", b.Cursor())
	}
}
