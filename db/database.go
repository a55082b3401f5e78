package db

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/alcove/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CommonListEntryQueryFilter common query filter when listing data entries
type CommonListEntryQueryFilter struct {
	Limit  *int
	Offset *int
}

// VaultEventQueryFilter vault audit event query filter conditions
type VaultEventQueryFilter struct {
	CommonListEntryQueryFilter
	// EventTypes the specific event types to query for
	EventTypes []models.VaultEventTypeENUMType
	// EventsAfter filter for events after this timestamp
	EventsAfter *time.Time
	// EventsBefore filter for events before this timestamp
	EventsBefore *time.Time
}

// Database the database handle to interacting with the data base
type Database interface {
	// ------------------------------------------------------------------------------------
	// Vault audit events

	/*
		RecordVaultEvent record a new vault event

			@param ctx context.Context - execution context
			@param eventType models.VaultEventTypeENUMType - vault event type
			@param metadata interface{} - event metadata, nil when not applicable
			@return the audit entry
	*/
	RecordVaultEvent(
		ctx context.Context, eventType models.VaultEventTypeENUMType, metadata interface{},
	) (models.VaultEventAudit, error)

	/*
		ListVaultEvents list captured vault events

			@param ctx context.Context - execution context
			@param filters VaultEventQueryFilter - entry listing filter
			@return list of vault events
	*/
	ListVaultEvents(
		ctx context.Context, filters VaultEventQueryFilter,
	) ([]models.VaultEventAudit, error)

	// ------------------------------------------------------------------------------------
	// Private record

	/*
		PrivateRecordExists check whether the singleton private record exists

			@param ctx context.Context - execution context
			@return whether the record exists
	*/
	PrivateRecordExists(ctx context.Context) (bool, error)

	/*
		GetPrivateRecord fetch the singleton private record

			@param ctx context.Context - execution context
			@returns the record entry
	*/
	GetPrivateRecord(ctx context.Context) (models.PrivateRecord, error)

	/*
		SetPrivateRecord create or replace the singleton private record

			@param ctx context.Context - execution context
			@param record models.PrivateRecord - the new record content
			@returns the persisted entry
	*/
	SetPrivateRecord(ctx context.Context, record models.PrivateRecord) (models.PrivateRecord, error)

	/*
		DeletePrivateRecord delete the singleton private record

			@param ctx context.Context - execution context
	*/
	DeletePrivateRecord(ctx context.Context) error

	// ------------------------------------------------------------------------------------
	// Anchor state

	/*
		GetAnchorNodeID fetch the materialized anchor node ID

			@param ctx context.Context - execution context
			@return the anchor node ID, or empty string when no anchor is recorded
	*/
	GetAnchorNodeID(ctx context.Context) (string, error)

	/*
		SetAnchorNodeID record the materialized anchor node ID

			@param ctx context.Context - execution context
			@param nodeID string - the live root folder node ID
	*/
	SetAnchorNodeID(ctx context.Context, nodeID string) error

	/*
		ClearAnchorNodeID clear the materialized anchor node ID

		NOOP when no anchor is recorded.

			@param ctx context.Context - execution context
	*/
	ClearAnchorNodeID(ctx context.Context) error

	// ------------------------------------------------------------------------------------
	// User options

	/*
		GetUserOptions fetch the singleton user options entry

		If the entry does not exist, initialize an empty one.

			@param ctx context.Context - execution context
			@returns the options entry
	*/
	GetUserOptions(ctx context.Context) (models.UserOptions, error)

	/*
		SetUserOptions replace the user options settings payload

			@param ctx context.Context - execution context
			@param settings datatypes.JSON - the new settings payload
			@returns the updated options entry
	*/
	SetUserOptions(ctx context.Context, settings datatypes.JSON) (models.UserOptions, error)

	/*
		DeleteUserOptions delete the singleton user options entry

		NOOP when no entry exists.

			@param ctx context.Context - execution context
	*/
	DeleteUserOptions(ctx context.Context) error

	// ------------------------------------------------------------------------------------
	// Legacy record

	/*
		LegacyRecordExists check whether a prior-generation record is pending migration

			@param ctx context.Context - execution context
			@return whether the legacy record exists
	*/
	LegacyRecordExists(ctx context.Context) (bool, error)

	/*
		GetLegacyRecord fetch the singleton legacy record

			@param ctx context.Context - execution context
			@returns the legacy record entry
	*/
	GetLegacyRecord(ctx context.Context) (models.LegacyRecord, error)

	/*
		SetLegacyRecord create or replace the singleton legacy record

			@param ctx context.Context - execution context
			@param record models.LegacyRecord - the legacy record content
			@returns the persisted entry
	*/
	SetLegacyRecord(ctx context.Context, record models.LegacyRecord) (models.LegacyRecord, error)

	/*
		DeleteLegacyRecord delete the singleton legacy record

		NOOP when no entry exists.

			@param ctx context.Context - execution context
	*/
	DeleteLegacyRecord(ctx context.Context) error
}

// databaseImpl implements Database
type databaseImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

// newDatabase define a new database client
func newDatabase(_ context.Context, sqlClient *gorm.DB) (Database, error) {
	logTags := log.Fields{"package": "alcove", "module": "db", "component": "db-client"}

	instance := &databaseImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        sqlClient,
		validator: validator.New(),
	}

	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}
