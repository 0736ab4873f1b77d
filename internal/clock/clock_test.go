package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clk := RealClock{}
	before := time.Now()
	now := clk.Now()
	if now.Before(before) || now.After(time.Now()) {
		t.Errorf("RealClock.Now returned unexpected time: %v", now)
	}
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)
	if !clk.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", clk.Now(), start)
	}
	clk.Advance(90 * time.Second)
	if want := start.Add(90 * time.Second); !clk.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", clk.Now(), want)
	}
}
