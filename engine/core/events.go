package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04
	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05
	// Mouse moved. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06
	// Mouse wheel scrolled. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL SystemEventCode = 0x07
	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08
	// The active demo mesh changed. Data is the new mesh index (int).
	EVENT_CODE_OBJECT_TOGGLED SystemEventCode = 0x10
	// Shared lighting parameters were published. Data is the parameter
	// block that was written (metadata.UBOParams).
	EVENT_CODE_PARAMS_CHANGED SystemEventCode = 0x11
	// An asset file under the watched root was written. Data is the path.
	EVENT_CODE_ASSET_WRITTEN SystemEventCode = 0x12

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	mu         sync.Mutex
	registered map[SystemEventCode][]FnOnEvent
	queue      chan EventContext
	running    bool
}

var eventState *eventSystemState

func EventSystemInitialize() bool {
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]FnOnEvent),
		queue:      make(chan EventContext, 256),
		running:    true,
	}
	return true
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mu.Lock()
	eventState.running = false
	close(eventState.queue)
	eventState.mu.Unlock()
	eventState = nil
	return nil
}

// Register to listen for when events are sent with the provided code.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// Fires an event to all listeners of the given code. Delivery happens on
// the goroutine running ProcessEvents.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()
	if !eventState.running {
		return false
	}
	select {
	case eventState.queue <- context:
		return true
	default:
		LogWarn("event queue full, dropping event code %d", context.Type)
		return false
	}
}

// ProcessEvents drains the event queue until the system shuts down.
// Intended to run on its own goroutine for the lifetime of the engine.
func ProcessEvents() {
	state := eventState
	if state == nil {
		return
	}
	for context := range state.queue {
		state.mu.Lock()
		listeners := make([]FnOnEvent, len(state.registered[context.Type]))
		copy(listeners, state.registered[context.Type])
		state.mu.Unlock()
		for _, fn := range listeners {
			fn(context)
		}
	}
}
