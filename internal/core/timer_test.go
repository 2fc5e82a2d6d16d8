package core

import (
	"testing"
	"time"
)

func TestFrameClockAdvancesOncePerDelay(t *testing.T) {
	base := time.Unix(0, 0)
	current := base
	fc := NewFrameClock(5)
	fc.now = func() time.Time { return current }

	if !fc.ShouldAdvance() {
		t.Fatal("first poll should show the initial frame")
	}
	current = base.Add(20 * time.Millisecond)
	if fc.ShouldAdvance() {
		t.Fatal("advanced before the 50ms delay elapsed")
	}
	current = base.Add(50 * time.Millisecond)
	if !fc.ShouldAdvance() {
		t.Fatal("expected advance after 50ms")
	}
	if fc.ShouldAdvance() {
		t.Fatal("advanced twice for a single delay")
	}
}

func TestFrameClockDefaultsDelay(t *testing.T) {
	fc := NewFrameClock(0)
	if fc.Step() != 60*time.Millisecond {
		t.Fatalf("step = %v, want 60ms", fc.Step())
	}
}
