package db

import (
	"context"
	"fmt"

	"github.com/alwitt/alcove/models"
	"gorm.io/datatypes"
)

// GlobalPrivateRecordEntryID ID of the singleton private record entry
const GlobalPrivateRecordEntryID = "private-bookmarks"

// GlobalAnchorStateEntryID ID of the singleton anchor state entry
const GlobalAnchorStateEntryID = "anchor-state"

// GlobalUserOptionsEntryID ID of the singleton user options entry
const GlobalUserOptionsEntryID = "user-options"

// ======================================================================================
// Private record

// getPrivateRecordEntry fetch the private record entry, if present
func (d *databaseImpl) getPrivateRecordEntry() ([]PrivateRecordDBEntry, error) {
	var entries []PrivateRecordDBEntry
	if dbErr := d.db.Where("id = ?", GlobalPrivateRecordEntryID).Find(&entries).Error; dbErr != nil {
		return nil, fmt.Errorf("failed to read private record table [%w]", dbErr)
	}
	return entries, nil
}

/*
PrivateRecordExists check whether the singleton private record exists

	@param ctx context.Context - execution context
	@return whether the record exists
*/
func (d *databaseImpl) PrivateRecordExists(_ context.Context) (bool, error) {
	entries, err := d.getPrivateRecordEntry()
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

/*
GetPrivateRecord fetch the singleton private record

	@param ctx context.Context - execution context
	@returns the record entry
*/
func (d *databaseImpl) GetPrivateRecord(_ context.Context) (models.PrivateRecord, error) {
	entries, err := d.getPrivateRecordEntry()
	if err != nil {
		return models.PrivateRecord{}, err
	}
	if len(entries) == 0 {
		return models.PrivateRecord{}, fmt.Errorf("no private record exists")
	}
	return entries[0].PrivateRecord, nil
}

/*
SetPrivateRecord create or replace the singleton private record

	@param ctx context.Context - execution context
	@param record models.PrivateRecord - the new record content
	@returns the persisted entry
*/
func (d *databaseImpl) SetPrivateRecord(
	_ context.Context, record models.PrivateRecord,
) (models.PrivateRecord, error) {
	record.ID = GlobalPrivateRecordEntryID

	newEntry := PrivateRecordDBEntry{PrivateRecord: record}
	if err := d.validator.Struct(&newEntry); err != nil {
		return models.PrivateRecord{}, fmt.Errorf("private record content is not valid [%w]", err)
	}

	existing, err := d.getPrivateRecordEntry()
	if err != nil {
		return models.PrivateRecord{}, err
	}

	if len(existing) == 0 {
		if tmp := d.db.Create(&newEntry); tmp.Error != nil {
			return models.PrivateRecord{}, fmt.Errorf("private record insert failed [%w]", tmp.Error)
		}
		return newEntry.PrivateRecord, nil
	}

	updated := existing[0]
	updated.Title = record.Title
	updated.ParentNodeID = record.ParentNodeID
	updated.IndexInParentNode = record.IndexInParentNode
	updated.Salt = record.Salt
	updated.EncryptedChildNodes = record.EncryptedChildNodes
	if tmp := d.db.Select(
		"title", "parent_node_id", "index_in_parent_node", "salt", "encrypted_child_nodes",
	).Updates(&updated); tmp.Error != nil {
		return models.PrivateRecord{}, fmt.Errorf("private record update failed [%w]", tmp.Error)
	}

	return updated.PrivateRecord, nil
}

/*
DeletePrivateRecord delete the singleton private record

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) DeletePrivateRecord(_ context.Context) error {
	entries, err := d.getPrivateRecordEntry()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no private record exists")
	}

	if tmp := d.db.Delete(&entries[0]); tmp.Error != nil {
		return fmt.Errorf("failed to delete private record [%w]", tmp.Error)
	}

	return nil
}

// ======================================================================================
// Anchor state

/*
GetAnchorNodeID fetch the materialized anchor node ID

	@param ctx context.Context - execution context
	@return the anchor node ID, or empty string when no anchor is recorded
*/
func (d *databaseImpl) GetAnchorNodeID(_ context.Context) (string, error) {
	var entries []AnchorStateDBEntry
	if dbErr := d.db.Where("id = ?", GlobalAnchorStateEntryID).Find(&entries).Error; dbErr != nil {
		return "", fmt.Errorf("failed to read anchor state table [%w]", dbErr)
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[0].NodeID, nil
}

/*
SetAnchorNodeID record the materialized anchor node ID

	@param ctx context.Context - execution context
	@param nodeID string - the live root folder node ID
*/
func (d *databaseImpl) SetAnchorNodeID(ctx context.Context, nodeID string) error {
	newEntry := AnchorStateDBEntry{
		AnchorState: models.AnchorState{ID: GlobalAnchorStateEntryID, NodeID: nodeID},
	}
	if err := d.validator.Struct(&newEntry); err != nil {
		return fmt.Errorf("anchor state content is not valid [%w]", err)
	}

	// Replace any previously recorded anchor
	if err := d.ClearAnchorNodeID(ctx); err != nil {
		return err
	}
	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return fmt.Errorf("anchor state insert failed [%w]", tmp.Error)
	}

	return nil
}

/*
ClearAnchorNodeID clear the materialized anchor node ID

NOOP when no anchor is recorded.

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) ClearAnchorNodeID(_ context.Context) error {
	if tmp := d.db.Where(
		"id = ?", GlobalAnchorStateEntryID,
	).Delete(&AnchorStateDBEntry{}); tmp.Error != nil {
		return fmt.Errorf("failed to clear anchor state [%w]", tmp.Error)
	}
	return nil
}

// ======================================================================================
// User options

/*
GetUserOptions fetch the singleton user options entry

If the entry does not exist, initialize an empty one.

	@param ctx context.Context - execution context
	@returns the options entry
*/
func (d *databaseImpl) GetUserOptions(_ context.Context) (models.UserOptions, error) {
	var entries []UserOptionsDBEntry
	if dbErr := d.db.Where("id = ?", GlobalUserOptionsEntryID).Find(&entries).Error; dbErr != nil {
		return models.UserOptions{}, fmt.Errorf("failed to read user options table [%w]", dbErr)
	}
	if len(entries) == 0 {
		// Make a new one
		newEntry := UserOptionsDBEntry{
			UserOptions: models.UserOptions{ID: GlobalUserOptionsEntryID},
		}
		if dbErr := d.db.Create(&newEntry).Error; dbErr != nil {
			return models.UserOptions{}, fmt.Errorf(
				"failed to setup singleton user options entry [%w]", dbErr,
			)
		}
		return newEntry.UserOptions, nil
	}
	return entries[0].UserOptions, nil
}

/*
SetUserOptions replace the user options settings payload

	@param ctx context.Context - execution context
	@param settings datatypes.JSON - the new settings payload
	@returns the updated options entry
*/
func (d *databaseImpl) SetUserOptions(
	ctx context.Context, settings datatypes.JSON,
) (models.UserOptions, error) {
	current, err := d.GetUserOptions(ctx)
	if err != nil {
		return models.UserOptions{}, err
	}

	entry := UserOptionsDBEntry{UserOptions: current}
	entry.Settings = settings
	if tmp := d.db.Select("settings").Updates(&entry); tmp.Error != nil {
		return models.UserOptions{}, fmt.Errorf("user options update failed [%w]", tmp.Error)
	}

	return entry.UserOptions, nil
}

/*
DeleteUserOptions delete the singleton user options entry

NOOP when no entry exists.

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) DeleteUserOptions(_ context.Context) error {
	if tmp := d.db.Where(
		"id = ?", GlobalUserOptionsEntryID,
	).Delete(&UserOptionsDBEntry{}); tmp.Error != nil {
		return fmt.Errorf("failed to delete user options [%w]", tmp.Error)
	}
	return nil
}
