package db

import (
	"context"

	"github.com/alwitt/alcove/models"
	"gorm.io/gorm"
)

// --------------------------------------------------------------------------------------
// Vault audit events

// VaultEventAuditDBEntry vault event DB entry
type VaultEventAuditDBEntry struct {
	models.VaultEventAudit
}

// TableName hard code table name
func (VaultEventAuditDBEntry) TableName() string {
	return "vault_audit_events"
}

// --------------------------------------------------------------------------------------
// Private record

// PrivateRecordDBEntry encrypted private record DB entry
type PrivateRecordDBEntry struct {
	models.PrivateRecord
}

// TableName hard code table name
func (PrivateRecordDBEntry) TableName() string {
	return "private_records"
}

// --------------------------------------------------------------------------------------
// Anchor state

// AnchorStateDBEntry materialized anchor DB entry
type AnchorStateDBEntry struct {
	models.AnchorState
}

// TableName hard code table name
func (AnchorStateDBEntry) TableName() string {
	return "anchor_states"
}

// --------------------------------------------------------------------------------------
// User options

// UserOptionsDBEntry user options DB entry
type UserOptionsDBEntry struct {
	models.UserOptions
}

// TableName hard code table name
func (UserOptionsDBEntry) TableName() string {
	return "user_options"
}

// --------------------------------------------------------------------------------------
// Legacy record

// LegacyRecordDBEntry prior-generation record DB entry
type LegacyRecordDBEntry struct {
	models.LegacyRecord
}

// TableName hard code table name
func (LegacyRecordDBEntry) TableName() string {
	return "legacy_records"
}

// DefineTables helper function meant to be used for unit-testing to prepare a
// database with tables
func DefineTables(_ context.Context, db *gorm.DB) error {
	return db.AutoMigrate(
		VaultEventAuditDBEntry{},
		PrivateRecordDBEntry{},
		AnchorStateDBEntry{},
		UserOptionsDBEntry{},
		LegacyRecordDBEntry{},
	)
}
