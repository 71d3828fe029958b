package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Notice{EventID: "later", FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Notice{EventID: "sooner", FireAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitNotice(t, engine.C(), time.Second)
	second := waitNotice(t, engine.C(), time.Second)
	if first.EventID != "sooner" || second.EventID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.EventID, second.EventID)
	}
}

func TestEngineResetReplacesPending(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Notice{EventID: "stale", FireAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule stale: %v", err)
	}
	if err := engine.Reset([]Notice{{EventID: "fresh", FireAt: now.Add(60 * time.Millisecond)}}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending notice, got %d", engine.Pending())
	}

	got := waitNotice(t, engine.C(), time.Second)
	if got.EventID != "fresh" {
		t.Fatalf("expected fresh notice, got %s", got.EventID)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected notice after reset: %s", extra.EventID)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	fire := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Notice{EventID: "evt", FireAt: fire}); err != nil {
			t.Fatalf("schedule notice: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped notices > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Notice{EventID: "bad"}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
	if err := engine.Reset([]Notice{{EventID: "bad"}}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime from reset, got %v", err)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Notice{EventID: "late", FireAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatalf("expected closed channel after stop")
	}
}

func waitNotice(t *testing.T, ch <-chan Notice, timeout time.Duration) Notice {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for notice")
		return Notice{}
	}
}
