package app

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(20 * time.Millisecond)
	var calls, last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}
	time.Sleep(100 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if last.Load() != 5 {
		t.Errorf("last = %d, want 5", last.Load())
	}
}

func TestDebouncerFlush(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(time.Hour)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	if !d.Flush() {
		t.Fatal("Flush() = false with a pending callback")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if d.Flush() {
		t.Error("second Flush() = true")
	}
}

func TestDebouncerCancel(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("calls = %d after Cancel, want 0", calls.Load())
	}
	if d.Flush() {
		t.Error("Flush after Cancel ran something")
	}
}

func TestDebouncerDefaultDuration(t *testing.T) {
	t.Parallel()

	if got := NewDebouncer(0).Duration(); got != DefaultSaveDelay {
		t.Errorf("Duration = %v, want %v", got, DefaultSaveDelay)
	}
}
