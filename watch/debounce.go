// Package watch - change-driven persistence of the live hidden folder
package watch

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceWindow quiet period before a pending save fires
const DefaultDebounceWindow = time.Second

/*
Debouncer trailing-edge debounce around a callback.

Every trigger restarts the quiet period; the callback fires once after a full
window passes with no further triggers, carrying the payload of the most
recent trigger. A burst of triggers therefore collapses into a single call.
*/
type Debouncer interface {
	/*
		Trigger request a callback invocation after the quiet period

			@param ctx context.Context - execution context
			@param payload string - payload handed to the callback when it fires
	*/
	Trigger(ctx context.Context, payload string)

	/*
		Stop cancel any pending invocation
	*/
	Stop()
}

// debouncerImpl implements Debouncer
type debouncerImpl struct {
	lock    sync.Mutex
	window  time.Duration
	timer   *time.Timer
	payload string
	handler func(ctx context.Context, payload string)
}

/*
NewDebouncer define new debouncer

	@param window time.Duration - quiet period. <= 0 selects the default.
	@param handler func - callback fired after the quiet period
	@returns debouncer instance
*/
func NewDebouncer(
	window time.Duration, handler func(ctx context.Context, payload string),
) Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &debouncerImpl{window: window, handler: handler}
}

/*
Trigger request a callback invocation after the quiet period

	@param ctx context.Context - execution context
	@param payload string - payload handed to the callback when it fires
*/
func (d *debouncerImpl) Trigger(ctx context.Context, payload string) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.payload = payload
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.lock.Lock()
		currentPayload := d.payload
		d.timer = nil
		d.lock.Unlock()
		d.handler(ctx, currentPayload)
	})
}

/*
Stop cancel any pending invocation
*/
func (d *debouncerImpl) Stop() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
