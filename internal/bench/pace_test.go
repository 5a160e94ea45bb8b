package bench

import (
	"context"
	"testing"
	"time"
)

func TestPacer_SpacesDrips(t *testing.T) {
	pace := newPacer(100) // 10ms between drips

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := pace.wait(context.Background()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 35*time.Millisecond {
		t.Errorf("Expected five drips at 100/s to take at least 35ms, took %v", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("Expected five drips at 100/s to take well under a second, took %v", elapsed)
	}
}

func TestPacer_ImmediateWhenBehind(t *testing.T) {
	pace := newPacer(50) // 20ms between drips

	// Falling behind schedule accumulates a drip, so the next wait
	// should not block.
	time.Sleep(25 * time.Millisecond)

	start := time.Now()
	if err := pace.wait(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 15*time.Millisecond {
		t.Errorf("Expected an immediate drip when behind schedule, waited %v", elapsed)
	}
}

func TestPacer_ContextCancelled(t *testing.T) {
	pace := newPacer(1) // a full second until the first drip

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := pace.wait(ctx)
	if err == nil {
		t.Fatalf("Expected an error after context cancellation, got nil")
	}
	if err != context.DeadlineExceeded {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}
