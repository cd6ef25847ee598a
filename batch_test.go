package ion

import (
	"context"
	"testing"
)

func TestBatcher_EnqueueOutsideBatch(t *testing.T) {
	b := NewBatcher()
	a := NewAtom(Null())

	if b.enqueue(a) {
		t.Error("enqueue at depth 0 must return false")
	}
}

func TestBatcher_FlushOnOutermostEnd(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()
	a := NewAtom(Null())

	fired := 0
	a.Subscribe(func() { fired++ })

	b.StartBatch()
	b.StartBatch()

	a.setValue(Number(1))
	if !b.enqueue(a) {
		t.Fatal("enqueue inside batch must return true")
	}

	b.EndBatch(ctx)
	if fired != 0 {
		t.Errorf("inner EndBatch flushed: %d notifications", fired)
	}

	b.EndBatch(ctx)
	if fired != 1 {
		t.Errorf("expected exactly 1 notification after outermost EndBatch, got %d", fired)
	}
	if a.Dirty() {
		t.Error("flushed atom should be marked clean")
	}
}

func TestBatcher_DedupsRepeatedWrites(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()
	a := NewAtom(Null())

	fired := 0
	a.Subscribe(func() { fired++ })

	b.StartBatch()
	for i := 0; i < 3; i++ {
		a.setValue(Number(float64(i)))
		b.enqueue(a)
	}
	b.EndBatch(ctx)

	if fired != 1 {
		t.Errorf("expected 1 notification for 3 writes, got %d", fired)
	}
}

func TestBatcher_FlushOrderIsEnqueueOrder(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()

	var order []string
	a1 := NewAtom(Null())
	a1.Subscribe(func() { order = append(order, "a1") })
	a2 := NewAtom(Null())
	a2.Subscribe(func() { order = append(order, "a2") })

	b.StartBatch()
	a2.setValue(Number(1))
	b.enqueue(a2)
	a1.setValue(Number(1))
	b.enqueue(a1)
	b.EndBatch(ctx)

	if len(order) != 2 || order[0] != "a2" || order[1] != "a1" {
		t.Errorf("expected flush in enqueue order [a2 a1], got %v", order)
	}
}

func TestBatcher_EndWithoutStartIsNoOp(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()

	b.EndBatch(ctx)
	b.EndBatch(ctx)

	if b.Depth() != 0 {
		t.Errorf("depth went negative: %d", b.Depth())
	}

	// Batching still works afterwards.
	a := NewAtom(Null())
	fired := 0
	a.Subscribe(func() { fired++ })

	b.StartBatch()
	a.setValue(Number(1))
	b.enqueue(a)
	b.EndBatch(ctx)

	if fired != 1 {
		t.Errorf("expected 1 notification, got %d", fired)
	}
}

func TestBatcher_PendingClearedBetweenBatches(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()
	a := NewAtom(Null())

	fired := 0
	a.Subscribe(func() { fired++ })

	b.StartBatch()
	a.setValue(Number(1))
	b.enqueue(a)
	b.EndBatch(ctx)

	// Second batch with no writes must not re-notify.
	b.StartBatch()
	b.EndBatch(ctx)

	if fired != 1 {
		t.Errorf("expected 1 notification, got %d", fired)
	}
}

func TestBatcher_Depth(t *testing.T) {
	ctx := context.Background()
	b := NewBatcher()

	if b.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", b.Depth())
	}
	b.StartBatch()
	b.StartBatch()
	if b.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", b.Depth())
	}
	b.EndBatch(ctx)
	if b.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", b.Depth())
	}
	b.EndBatch(ctx)
	if b.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", b.Depth())
	}
}
