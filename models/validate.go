package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation(
		"node_kind", validateNodeKindType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"export_kind", validateExportKindType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"notification_type", validateNotificationType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"vault_event_type", validateVaultEventType,
	); err != nil {
		return err
	}

	return nil
}

func validateNodeKindType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch NodeKindENUMType(fl.Field().String()) {
	case NodeKindBookmark:
		fallthrough
	case NodeKindFolder:
		fallthrough
	case NodeKindSeparator:
		return true
	}
	return false
}

func validateExportKindType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch ExportKindENUMType(fl.Field().String()) {
	case ExportKindEncrypted:
		fallthrough
	case ExportKindPlain:
		return true
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch NotificationTypeENUMType(fl.Field().String()) {
	case NotificationTypeRecordCreated:
		fallthrough
	case NotificationTypeRecordCleared:
		fallthrough
	case NotificationTypeOptionsChanged:
		fallthrough
	case NotificationTypeBusyBegin:
		fallthrough
	case NotificationTypeBusyEnd:
		fallthrough
	case NotificationTypeLockStatusChanged:
		return true
	}
	return false
}

func validateVaultEventType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch VaultEventTypeENUMType(fl.Field().String()) {
	case VaultEventTypeSetup:
		fallthrough
	case VaultEventTypeUnlock:
		fallthrough
	case VaultEventTypeLock:
		fallthrough
	case VaultEventTypeSave:
		fallthrough
	case VaultEventTypePasswordChanged:
		fallthrough
	case VaultEventTypeCleared:
		fallthrough
	case VaultEventTypeLegacyMigrated:
		return true
	}
	return false
}
