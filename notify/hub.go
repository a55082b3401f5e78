// Package notify - internal notification fan-out between extension contexts
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/alwitt/alcove/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// Listener receiver of internal notifications
type Listener interface {
	/*
		HandleNotification process one notification

			@param ctx context.Context - execution context
			@param notification models.Notification - the notification
	*/
	HandleNotification(ctx context.Context, notification models.Notification)
}

/*
Hub internal notification broadcast hub.

The core posts notifications here; UI and auxiliary feature modules subscribe.
Fan-out is synchronous on the posting goroutine. The actual cross-context
transport sits outside the core and bridges off a listener.
*/
type Hub interface {
	/*
		Post broadcast a notification to all current listeners

			@param ctx context.Context - execution context
			@param notification models.Notification - the notification
	*/
	Post(ctx context.Context, notification models.Notification) error

	/*
		Subscribe register a notification listener

			@param listener Listener - the listener
	*/
	Subscribe(listener Listener)

	/*
		Unsubscribe remove a previously registered notification listener

			@param listener Listener - the listener
	*/
	Unsubscribe(listener Listener)
}

// hubImpl implements Hub
type hubImpl struct {
	goutils.Component

	lock      sync.Mutex
	listeners []Listener
	validator *validator.Validate
}

/*
NewHub define new notification hub

	@returns hub instance
*/
func NewHub() (Hub, error) {
	logTags := log.Fields{"package": "alcove", "module": "notify", "component": "hub"}

	instance := &hubImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		validator: validator.New(),
	}
	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}

/*
Post broadcast a notification to all current listeners

	@param ctx context.Context - execution context
	@param notification models.Notification - the notification
*/
func (h *hubImpl) Post(ctx context.Context, notification models.Notification) error {
	if err := h.validator.Struct(&notification); err != nil {
		return fmt.Errorf("notification is not valid [%w]", err)
	}

	h.lock.Lock()
	targets := make([]Listener, len(h.listeners))
	copy(targets, h.listeners)
	h.lock.Unlock()

	for _, listener := range targets {
		listener.HandleNotification(ctx, notification)
	}
	return nil
}

/*
Subscribe register a notification listener

	@param listener Listener - the listener
*/
func (h *hubImpl) Subscribe(listener Listener) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.listeners = append(h.listeners, listener)
}

/*
Unsubscribe remove a previously registered notification listener

	@param listener Listener - the listener
*/
func (h *hubImpl) Unsubscribe(listener Listener) {
	h.lock.Lock()
	defer h.lock.Unlock()
	for idx, known := range h.listeners {
		if known == listener {
			h.listeners = append(h.listeners[:idx], h.listeners[idx+1:]...)
			return
		}
	}
}
