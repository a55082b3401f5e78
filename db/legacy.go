package db

import (
	"context"
	"fmt"

	"github.com/alwitt/alcove/models"
)

// GlobalLegacyRecordEntryID ID of the singleton legacy record entry
const GlobalLegacyRecordEntryID = "legacy-bookmarks"

// getLegacyRecordEntry fetch the legacy record entry, if present
func (d *databaseImpl) getLegacyRecordEntry() ([]LegacyRecordDBEntry, error) {
	var entries []LegacyRecordDBEntry
	if dbErr := d.db.Where("id = ?", GlobalLegacyRecordEntryID).Find(&entries).Error; dbErr != nil {
		return nil, fmt.Errorf("failed to read legacy record table [%w]", dbErr)
	}
	return entries, nil
}

/*
LegacyRecordExists check whether a prior-generation record is pending migration

	@param ctx context.Context - execution context
	@return whether the legacy record exists
*/
func (d *databaseImpl) LegacyRecordExists(_ context.Context) (bool, error) {
	entries, err := d.getLegacyRecordEntry()
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

/*
GetLegacyRecord fetch the singleton legacy record

	@param ctx context.Context - execution context
	@returns the legacy record entry
*/
func (d *databaseImpl) GetLegacyRecord(_ context.Context) (models.LegacyRecord, error) {
	entries, err := d.getLegacyRecordEntry()
	if err != nil {
		return models.LegacyRecord{}, err
	}
	if len(entries) == 0 {
		return models.LegacyRecord{}, fmt.Errorf("no legacy record exists")
	}
	return entries[0].LegacyRecord, nil
}

/*
SetLegacyRecord create or replace the singleton legacy record

	@param ctx context.Context - execution context
	@param record models.LegacyRecord - the legacy record content
	@returns the persisted entry
*/
func (d *databaseImpl) SetLegacyRecord(
	ctx context.Context, record models.LegacyRecord,
) (models.LegacyRecord, error) {
	record.ID = GlobalLegacyRecordEntryID

	newEntry := LegacyRecordDBEntry{LegacyRecord: record}
	if err := d.validator.Struct(&newEntry); err != nil {
		return models.LegacyRecord{}, fmt.Errorf("legacy record content is not valid [%w]", err)
	}

	if err := d.DeleteLegacyRecord(ctx); err != nil {
		return models.LegacyRecord{}, err
	}
	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.LegacyRecord{}, fmt.Errorf("legacy record insert failed [%w]", tmp.Error)
	}

	return newEntry.LegacyRecord, nil
}

/*
DeleteLegacyRecord delete the singleton legacy record

NOOP when no entry exists.

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) DeleteLegacyRecord(_ context.Context) error {
	if tmp := d.db.Where(
		"id = ?", GlobalLegacyRecordEntryID,
	).Delete(&LegacyRecordDBEntry{}); tmp.Error != nil {
		return fmt.Errorf("failed to delete legacy record [%w]", tmp.Error)
	}
	return nil
}
