package core

import (
	"testing"
	"time"
)

func TestEventFireReachesAllListeners(t *testing.T) {
	EventSystemInitialize()

	calls := 0
	EventRegister(EVENT_CODE_DEBUG0, func(context EventContext) { calls++ })
	EventRegister(EVENT_CODE_DEBUG0, func(context EventContext) { calls++ })

	if !EventFire(EventContext{Type: EVENT_CODE_DEBUG0}) {
		t.Fatal("fire with listeners must report true")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestEventFireWithoutListeners(t *testing.T) {
	EventSystemInitialize()
	if EventFire(EventContext{Type: EVENT_CODE_PARTICLE_PICKED}) {
		t.Error("fire with no listeners must report false")
	}
}

func TestEventEnqueueIsProcessedAsync(t *testing.T) {
	EventSystemInitialize()

	got := make(chan PickEvent, 1)
	EventRegister(EVENT_CODE_PARTICLE_RELEASED, func(context EventContext) {
		if pe, ok := context.Data.(PickEvent); ok {
			got <- pe
		}
	})

	go ProcessEvents()

	if !EventEnqueue(EventContext{
		Type: EVENT_CODE_PARTICLE_RELEASED,
		Data: PickEvent{X: 3, Y: 7},
	}) {
		t.Fatal("enqueue failed")
	}

	select {
	case pe := <-got:
		if pe.X != 3 || pe.Y != 7 {
			t.Errorf("payload = %+v", pe)
		}
	case <-time.After(time.Second):
		t.Fatal("queued event was never processed")
	}
}

func TestEventRegisterRejectsBadCode(t *testing.T) {
	EventSystemInitialize()
	if EventRegister(EventCode(MAX_MESSAGE_CODES), func(EventContext) {}) {
		t.Error("register out of range must fail")
	}
}
