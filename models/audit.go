package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// VaultEventTypeENUMType vault event type ENUM value type
type VaultEventTypeENUMType string

const (
	// VaultEventTypeSetup private record created on first-run setup
	VaultEventTypeSetup VaultEventTypeENUMType = "VAULT_SETUP"

	// VaultEventTypeUnlock hidden folder materialized into the live tree
	VaultEventTypeUnlock VaultEventTypeENUMType = "VAULT_UNLOCK"

	// VaultEventTypeLock hidden folder removed from the live tree
	VaultEventTypeLock VaultEventTypeENUMType = "VAULT_LOCK"

	// VaultEventTypeSave live folder state re-encrypted into the record
	VaultEventTypeSave VaultEventTypeENUMType = "VAULT_SAVE"

	// VaultEventTypePasswordChanged record re-encrypted under a new password
	VaultEventTypePasswordChanged VaultEventTypeENUMType = "VAULT_PASSWORD_CHANGED"

	// VaultEventTypeCleared private record removed on explicit request
	VaultEventTypeCleared VaultEventTypeENUMType = "VAULT_CLEARED"

	// VaultEventTypeLegacyMigrated legacy record converted to the current schema
	VaultEventTypeLegacyMigrated VaultEventTypeENUMType = "VAULT_LEGACY_MIGRATED"
)

// VaultEventAudit recording of events occurring at the vault level
type VaultEventAudit struct {
	// ID audit entry ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required"`
	// EventType vault event type
	EventType VaultEventTypeENUMType `json:"type" gorm:"column:type;not null" validate:"required,vault_event_type"`
	// Metadata a metadata relating to the event
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"column:metadata;default:null"`
	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseMetadata parse the metadata based on the event type
func (a VaultEventAudit) ParseMetadata(validator *validator.Validate) (interface{}, error) {
	switch a.EventType {
	// Anchor related vault audit events
	case VaultEventTypeUnlock:
		fallthrough
	case VaultEventTypeLock:
		var parsed VaultEventAnchorRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("vault event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)

	// Content related vault audit events
	case VaultEventTypeSave:
		fallthrough
	case VaultEventTypeLegacyMigrated:
		var parsed VaultEventContentRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("vault event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)
	}
	return nil, nil
}

// VaultEventAnchorRelated vault event metadata related to the anchor
type VaultEventAnchorRelated struct {
	// NodeID the materialized root folder node ID
	NodeID string `json:"node_id" validate:"required"`
}

// VaultEventContentRelated vault event metadata related to record content
type VaultEventContentRelated struct {
	// NodeCount the number of pruned nodes written into the record
	NodeCount int `json:"node_count" validate:"min=0"`
}
