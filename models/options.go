package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserOptions user configurable settings
//
// This is a singleton entry. The settings payload is opaque to the core; the
// UI layers own its schema.
type UserOptions struct {
	// ID options entry ID. It must always be user-options
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=user-options"`

	// Settings the settings payload
	Settings datatypes.JSON `json:"settings,omitempty" gorm:"column:settings;default:null"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}
