package models

// NotificationTypeENUMType internal notification type ENUM value type
type NotificationTypeENUMType string

const (
	// NotificationTypeRecordCreated a private record was created
	NotificationTypeRecordCreated NotificationTypeENUMType = "RECORD_CREATED"

	// NotificationTypeRecordCleared the private record was removed
	NotificationTypeRecordCleared NotificationTypeENUMType = "RECORD_CLEARED"

	// NotificationTypeOptionsChanged user options were updated
	NotificationTypeOptionsChanged NotificationTypeENUMType = "OPTIONS_CHANGED"

	// NotificationTypeBusyBegin a long-running operation started
	NotificationTypeBusyBegin NotificationTypeENUMType = "BUSY_BEGIN"

	// NotificationTypeBusyEnd a long-running operation finished
	NotificationTypeBusyEnd NotificationTypeENUMType = "BUSY_END"

	// NotificationTypeLockStatusChanged lock state flipped. Carries the password
	// transiently on unlock so dependent features can arm themselves; empty on
	// lock.
	NotificationTypeLockStatusChanged NotificationTypeENUMType = "LOCK_STATUS_CHANGED"
)

// Notification message broadcast between extension contexts
//
// The core produces these; UI and auxiliary feature modules consume them. Only
// the tag/payload contract is modeled here, the transport is out of scope.
type Notification struct {
	// Type notification type
	Type NotificationTypeENUMType `json:"type" validate:"required,notification_type"`

	// Password unlock password, set only on LOCK_STATUS_CHANGED while unlocking.
	// This transient flow is how dependent features (e.g. auto re-lock timers)
	// arm themselves.
	Password string `json:"password,omitempty"`
}
