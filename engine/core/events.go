package core

import (
	"sync"

	"github.com/drapengine/drape/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel scrolled. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data is a SystemEvent value.
	EVENT_CODE_RESIZED EventCode = 0x08
	// A cloth particle was picked or released. Data is a PickEvent value.
	EVENT_CODE_PARTICLE_PICKED   EventCode = 0x09
	EVENT_CODE_PARTICLE_RELEASED EventCode = 0x0A
	// An asset changed on disk. Data is an AssetEvent value. Fired through
	// EventEnqueue from the watcher goroutine.
	EVENT_CODE_ASSET_RELOADED EventCode = 0x0B
	// Debug hooks.
	EVENT_CODE_DEBUG0 EventCode = 0x10

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 4096

// Queue capacity for deferred events processed by ProcessEvents.
const maxQueuedEvents = 1024

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button  Button
	PosX    int32
	PosY    int32
	ScrollY float32
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type PickEvent struct {
	X int
	Y int
}

type AssetEvent struct {
	Path string
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// FnOnEvent is invoked for every fired event of a registered code.
type FnOnEvent func(context EventContext)

type registeredEvent struct {
	callback FnOnEvent
}

type eventSystemState struct {
	mutex      sync.RWMutex
	registered [MAX_MESSAGE_CODES][]*registeredEvent

	queueMutex sync.Mutex
	queueCond  *sync.Cond
	queue      *containers.RingQueue[EventContext]
	done       chan struct{}
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			queue: containers.NewRingQueue[EventContext](maxQueuedEvents),
			done:  make(chan struct{}),
		}
		eventState.queueCond = sync.NewCond(&eventState.queueMutex)
	})
	if isInitialized {
		return false
	}
	isInitialized = true
	return true
}

func EventSystemShutdown() error {
	if !isInitialized {
		return nil
	}
	isInitialized = false
	close(eventState.done)
	eventState.queueCond.Broadcast()

	eventState.mutex.Lock()
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i] = nil
	}
	eventState.mutex.Unlock()
	return nil
}

// EventRegister subscribes the callback to all events fired with the given
// code. Callbacks are invoked synchronously from EventFire and from the
// ProcessEvents goroutine for queued events.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if !isInitialized || code < 0 || code >= MAX_MESSAGE_CODES {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		callback: onEvent,
	})
	return true
}

// EventFire dispatches the event to every listener of its code, immediately,
// on the calling goroutine. Input handling relies on this path so that key
// state and listeners observe events in the order the platform produced them.
func EventFire(context EventContext) bool {
	if !isInitialized {
		return false
	}
	eventState.mutex.RLock()
	listeners := eventState.registered[context.Type]
	eventState.mutex.RUnlock()
	if len(listeners) == 0 {
		return false
	}
	for _, e := range listeners {
		e.callback(context)
	}
	return true
}

// EventEnqueue defers the event to the ProcessEvents goroutine. Used for
// events produced outside the main thread, e.g. asset hot-reload.
func EventEnqueue(context EventContext) bool {
	if !isInitialized {
		return false
	}
	eventState.queueMutex.Lock()
	err := eventState.queue.Enqueue(context)
	eventState.queueMutex.Unlock()
	if err != nil {
		LogWarn("event queue full, dropping event of type %d", context.Type)
		return false
	}
	eventState.queueCond.Signal()
	return true
}

// ProcessEvents drains the deferred event queue until the event system is
// shut down. Run it on its own goroutine.
func ProcessEvents() {
	for {
		eventState.queueMutex.Lock()
		for eventState.queue.IsEmpty() {
			select {
			case <-eventState.done:
				eventState.queueMutex.Unlock()
				return
			default:
			}
			eventState.queueCond.Wait()
		}
		context, err := eventState.queue.Dequeue()
		eventState.queueMutex.Unlock()
		if err != nil {
			continue
		}
		EventFire(context)
	}
}
