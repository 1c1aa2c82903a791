package roomchat

import "sync"

// Dispatcher routes decoded frames, errors and state changes to
// registered callbacks. Registration and Reset are safe to call from
// any goroutine; delivery happens on the session's read goroutine, one
// invocation at a time.
type Dispatcher struct {
	mu        sync.Mutex
	onMessage func(ChatMessage)
	onError   func(error)
	onState   func(StateEvent)
}

func (d *Dispatcher) SetOnMessage(fn func(ChatMessage)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onMessage = fn
}

func (d *Dispatcher) SetOnError(fn func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onError = fn
}

func (d *Dispatcher) SetOnStateChange(fn func(StateEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onState = fn
}

// Reset deregisters all callbacks. Idempotent.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onMessage = nil
	d.onError = nil
	d.onState = nil
}

func (d *Dispatcher) fireMessage(msg ChatMessage) {
	d.mu.Lock()
	fn := d.onMessage
	d.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (d *Dispatcher) fireError(err error) {
	if err == nil {
		return
	}
	d.mu.Lock()
	fn := d.onError
	d.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func (d *Dispatcher) fireState(ev StateEvent) {
	d.mu.Lock()
	fn := d.onState
	d.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
