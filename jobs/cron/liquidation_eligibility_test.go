package cron

import (
	"testing"
	"time"
)

func TestLiquidationEligibilityJobStop(t *testing.T) {
	job := NewLiquidationEligibilityJob()

	done := make(chan struct{})
	go func() {
		job.Process()
		close(done)
	}()

	// Let the scheduler spin up before stopping it.
	time.Sleep(50 * time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Process never returned after Stop")
	}
}
