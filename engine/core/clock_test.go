package core

import (
	"testing"
	"time"
)

func TestClockMeasuresElapsedTime(t *testing.T) {
	c := NewClock()

	// a clock that was never started reports nothing
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("Elapsed = %v before Start", c.Elapsed())
	}

	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Update()
	if c.Elapsed() <= 0 {
		t.Fatalf("Elapsed = %v after sleeping", c.Elapsed())
	}

	// stopping freezes the last measured value
	c.Stop()
	frozen := c.Elapsed()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	if c.Elapsed() != frozen {
		t.Errorf("Elapsed changed after Stop: %v != %v", c.Elapsed(), frozen)
	}

	c.Start()
	if c.Elapsed() != 0 {
		t.Errorf("Start must reset elapsed, got %v", c.Elapsed())
	}
}
