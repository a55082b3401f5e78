package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/encryption"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/notify"
	"github.com/alwitt/alcove/tree"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// DefaultFolderTitle display title given to the hidden folder on first setup
const DefaultFolderTitle = "Private Bookmarks"

// ProgressFunc materialization progress callback
type ProgressFunc func(current int, total int)

/*
PrivateFolderService the lock/unlock state machine.

It owns the transition between "locked" (only the encrypted record exists) and
"unlocked" (a live materialized folder exists and its location is tracked),
enforces the at-most-one materialized folder invariant, performs
authentication, and runs the save/lock persistence protocols.

State is derived, never cached: the presence of the anchor entry in storage is
the definition of "unlocked". Every multi-step operation holds an internal
mutex so a concurrent check-then-act sequence cannot interleave.
*/
type PrivateFolderService interface {
	/*
		Setup first-run initialization of the private record

		Fails with `ErrInvalidPassword` when the password is empty, and with
		`ErrAlreadyInitialized` when a record already exists.

			@param ctx context.Context - execution context
			@param password string - the protection password
			@return the new private record
	*/
	Setup(ctx context.Context, password string) (models.PrivateRecord, error)

	/*
		Authenticate verify a password against the current record

		No state transition. When a legacy record migration is pending, the
		legacy authentication path is used instead.

			@param ctx context.Context - execution context
			@param password string - the password to verify
			@return whether the password is correct
	*/
	Authenticate(ctx context.Context, password string) (bool, error)

	/*
		ChangePassword re-encrypt the record under a new password

		Silent NOOP when no record exists, when the old password is wrong, or
		when the new password is empty. Callers wanting user-facing feedback must
		pre-validate via `Authenticate`. Does not touch the materialized folder.

		Intended for the locked state: while unlocked, an armed sync monitor still
		holds the unlock-time session password, and its next debounced save will
		re-encrypt under that session password rather than the new one.

			@param ctx context.Context - execution context
			@param oldPassword string - current password
			@param newPassword string - replacement password
	*/
	ChangePassword(ctx context.Context, oldPassword string, newPassword string) error

	/*
		Unlock materialize the hidden folder into the live tree

		NOOP when already unlocked. A pending legacy migration runs first and
		aborts the unlock silently on a bad password. Decryption failure and a
		missing record are also silent. When the remembered parent no longer
		exists the folder is created at the store default location instead.

			@param ctx context.Context - execution context
			@param password string - the protection password
			@param onProgress ProgressFunc - progress callback, may be nil
	*/
	Unlock(ctx context.Context, password string, onProgress ProgressFunc) error

	/*
		Lock remove the live folder, leaving only the encrypted record

		NOOP when already locked. The anchor entry is cleared first so a crash
		mid-lock reads back as locked. The live folder's current title and
		position are read back into the record for the next unlock; child
		content is NOT re-encrypted here, that is `Save`'s job.

			@param ctx context.Context - execution context
	*/
	Lock(ctx context.Context) error

	/*
		Save re-encrypt the live folder's current children into the record

		NOOP when locked. Does not remove the live folder or change lock state.
		This is the operation the change-driven sync policy debounces.

			@param ctx context.Context - execution context
			@param password string - the protection password
	*/
	Save(ctx context.Context, password string) error

	/*
		IsUnlocked report whether a materialized folder currently exists

			@param ctx context.Context - execution context
			@return whether the folder is unlocked
	*/
	IsUnlocked(ctx context.Context) (bool, error)

	/*
		RecoverAtStartup clean up after an abnormally terminated session

		When a previous session left an anchor entry behind (crash while
		unlocked), perform one clean lock pass before accepting new operations.

			@param ctx context.Context - execution context
	*/
	RecoverAtStartup(ctx context.Context) error

	/*
		ClearAll remove all persisted state of the private folder

		Only allowed while locked.

			@param ctx context.Context - execution context
	*/
	ClearAll(ctx context.Context) error

	/*
		GetUserOptions fetch the user options

			@param ctx context.Context - execution context
			@return the options entry
	*/
	GetUserOptions(ctx context.Context) (models.UserOptions, error)

	/*
		SetUserOptions replace the user options settings payload

			@param ctx context.Context - execution context
			@param settings datatypes.JSON - the new settings payload
			@return the updated options entry
	*/
	SetUserOptions(ctx context.Context, settings datatypes.JSON) (models.UserOptions, error)

	/*
		ExportEncrypted produce an encrypted export of the current record

			@param ctx context.Context - execution context
			@return the export file
	*/
	ExportEncrypted(ctx context.Context) (models.ExportFile, error)

	/*
		ExportPlain produce a plain export of the current record content

			@param ctx context.Context - execution context
			@param password string - the protection password
			@return the export file, and whether the password was correct
	*/
	ExportPlain(ctx context.Context, password string) (models.ExportFile, bool, error)

	/*
		ImportPlain materialize exported child nodes into the live folder

		Requires the folder to be unlocked. The nodes land under a new dated
		folder; the change-driven sync policy persists them afterwards.

			@param ctx context.Context - execution context
			@param file models.ExportFile - the plain export file
			@param onProgress ProgressFunc - progress callback, may be nil
	*/
	ImportPlain(ctx context.Context, file models.ExportFile, onProgress ProgressFunc) error

	/*
		ImportEncrypted decrypt an encrypted export and materialize it

		Requires the folder to be unlocked. Wrong password is signaled through
		the boolean, not the error.

			@param ctx context.Context - execution context
			@param file models.ExportFile - the encrypted export file
			@param password string - password the export was encrypted under
			@param onProgress ProgressFunc - progress callback, may be nil
			@return whether the password was correct
	*/
	ImportEncrypted(
		ctx context.Context, file models.ExportFile, password string, onProgress ProgressFunc,
	) (bool, error)
}

// privateFolderService implements PrivateFolderService
type privateFolderService struct {
	goutils.Component

	persistence  db.Client
	codec        encryption.Codec
	treeStore    bookmarks.TreeStore
	materializer tree.Materializer
	hub          notify.Hub
	validator    *validator.Validate

	// opLock serializes every multi-step operation. The check-then-act
	// sequences (e.g. "observe locked, then materialize") must not interleave.
	opLock sync.Mutex
}

// PrivateFolderServiceParams service init parameters
type PrivateFolderServiceParams struct {
	// Persistence persistence layer client
	Persistence db.Client `validate:"-"`
	// Codec cryptography codec
	Codec encryption.Codec `validate:"-"`
	// TreeStore the external bookmark tree store
	TreeStore bookmarks.TreeStore `validate:"-"`
	// Materializer the tree materialization engine
	Materializer tree.Materializer `validate:"-"`
	// Hub internal notification hub
	Hub notify.Hub `validate:"-"`
}

/*
NewPrivateFolderService define new private folder service

	@param ctx context.Context - execution context
	@param params PrivateFolderServiceParams - service parameters
	@returns service instance
*/
func NewPrivateFolderService(
	_ context.Context, params PrivateFolderServiceParams,
) (PrivateFolderService, error) {
	logTags := log.Fields{"package": "alcove", "module": "vault", "component": "private-folder"}

	if params.Persistence == nil || params.Codec == nil || params.TreeStore == nil ||
		params.Materializer == nil || params.Hub == nil {
		return nil, fmt.Errorf("missing required service init parameters")
	}

	instance := &privateFolderService{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence:  params.Persistence,
		codec:        params.Codec,
		treeStore:    params.TreeStore,
		materializer: params.Materializer,
		hub:          params.Hub,
		validator:    validator.New(),
	}
	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}

// ======================================================================================
// Internal helpers

// getAnchorNodeID read the recorded anchor node ID, empty when locked
func (s *privateFolderService) getAnchorNodeID(ctx context.Context) (string, error) {
	var anchorID string
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			anchorID, err = dbClient.GetAnchorNodeID(dbCtx)
			return err
		},
	); dbErr != nil {
		return "", fmt.Errorf("failed to read anchor state [%w]", dbErr)
	}
	return anchorID, nil
}

// decryptChildNodes decrypt and parse the record's child node list
func (s *privateFolderService) decryptChildNodes(
	ctx context.Context, record models.PrivateRecord, password string,
) ([]models.PrunedNode, bool, error) {
	plainText, authenticated, err := s.codec.Decrypt(
		ctx, record.EncryptedChildNodes, password+record.Salt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrypt record content [%w]", err)
	}
	if !authenticated {
		return nil, false, nil
	}

	var childNodes []models.PrunedNode
	if err := json.Unmarshal([]byte(plainText), &childNodes); err != nil {
		return nil, false, fmt.Errorf("decrypted record content is malformed [%w]", err)
	}
	return childNodes, true, nil
}

// encryptChildNodes serialize and encrypt a child node list
func (s *privateFolderService) encryptChildNodes(
	ctx context.Context, childNodes []models.PrunedNode, password string, salt string,
) (string, error) {
	if childNodes == nil {
		childNodes = []models.PrunedNode{}
	}
	serialized, err := json.Marshal(childNodes)
	if err != nil {
		return "", fmt.Errorf("failed to serialize child nodes [%w]", err)
	}
	packed, err := s.codec.Encrypt(ctx, string(serialized), password+salt)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt child nodes [%w]", err)
	}
	return packed, nil
}

// ======================================================================================
// State machine operations

/*
Setup first-run initialization of the private record

	@param ctx context.Context - execution context
	@param password string - the protection password
	@return the new private record
*/
func (s *privateFolderService) Setup(
	ctx context.Context, password string,
) (models.PrivateRecord, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if password == "" {
		return models.PrivateRecord{}, ErrInvalidPassword
	}

	salt, err := s.codec.RandomSalt(ctx)
	if err != nil {
		return models.PrivateRecord{}, fmt.Errorf("failed to generate record salt [%w]", err)
	}

	packed, err := s.encryptChildNodes(ctx, nil, password, salt)
	if err != nil {
		return models.PrivateRecord{}, err
	}

	var record models.PrivateRecord
	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			exists, err := dbClient.PrivateRecordExists(dbCtx)
			if err != nil {
				return err
			}
			if exists {
				return ErrAlreadyInitialized
			}

			record, err = dbClient.SetPrivateRecord(dbCtx, models.PrivateRecord{
				Title:               DefaultFolderTitle,
				Salt:                salt,
				EncryptedChildNodes: packed,
			})
			if err != nil {
				return err
			}

			_, err = dbClient.RecordVaultEvent(dbCtx, models.VaultEventTypeSetup, nil)
			return err
		},
	); dbErr != nil {
		return models.PrivateRecord{}, dbErr
	}

	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeRecordCreated,
	}); err != nil {
		return models.PrivateRecord{}, fmt.Errorf("failed to announce record creation [%w]", err)
	}

	return record, nil
}

/*
Authenticate verify a password against the current record

	@param ctx context.Context - execution context
	@param password string - the password to verify
	@return whether the password is correct
*/
func (s *privateFolderService) Authenticate(ctx context.Context, password string) (bool, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()
	return s.authenticate(ctx, password)
}

// authenticate core password check. Caller must hold opLock.
func (s *privateFolderService) authenticate(ctx context.Context, password string) (bool, error) {
	var record models.PrivateRecord
	recordExists := false
	legacyPending := false

	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			if legacyPending, err = dbClient.LegacyRecordExists(dbCtx); err != nil {
				return err
			}
			if recordExists, err = dbClient.PrivateRecordExists(dbCtx); err != nil {
				return err
			}
			if recordExists {
				record, err = dbClient.GetPrivateRecord(dbCtx)
				return err
			}
			return nil
		},
	); dbErr != nil {
		return false, fmt.Errorf("failed to read persisted records [%w]", dbErr)
	}

	// A pending migration means the legacy record is the source of truth
	if legacyPending {
		return s.legacyAuthenticate(ctx, password)
	}

	if !recordExists {
		return false, nil
	}

	_, authenticated, err := s.decryptChildNodes(ctx, record, password)
	return authenticated, err
}

/*
ChangePassword re-encrypt the record under a new password

	@param ctx context.Context - execution context
	@param oldPassword string - current password
	@param newPassword string - replacement password
*/
func (s *privateFolderService) ChangePassword(
	ctx context.Context, oldPassword string, newPassword string,
) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if newPassword == "" {
		return nil
	}

	var record models.PrivateRecord
	recordExists := false
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			if recordExists, err = dbClient.PrivateRecordExists(dbCtx); err != nil {
				return err
			}
			if recordExists {
				record, err = dbClient.GetPrivateRecord(dbCtx)
				return err
			}
			return nil
		},
	); dbErr != nil {
		return fmt.Errorf("failed to read persisted records [%w]", dbErr)
	}
	if !recordExists {
		return nil
	}

	childNodes, authenticated, err := s.decryptChildNodes(ctx, record, oldPassword)
	if err != nil {
		return err
	}
	if !authenticated {
		return nil
	}

	packed, err := s.encryptChildNodes(ctx, childNodes, newPassword, record.Salt)
	if err != nil {
		return err
	}
	record.EncryptedChildNodes = packed

	return s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			if _, err := dbClient.SetPrivateRecord(dbCtx, record); err != nil {
				return err
			}
			_, err := dbClient.RecordVaultEvent(dbCtx, models.VaultEventTypePasswordChanged, nil)
			return err
		},
	)
}

/*
Unlock materialize the hidden folder into the live tree

	@param ctx context.Context - execution context
	@param password string - the protection password
	@param onProgress ProgressFunc - progress callback, may be nil
*/
func (s *privateFolderService) Unlock(
	ctx context.Context, password string, onProgress ProgressFunc,
) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	// At most one materialized folder may exist
	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID != "" {
		return nil
	}

	// A pending legacy migration runs first; a bad password aborts silently
	legacyPending := false
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			legacyPending, err = dbClient.LegacyRecordExists(dbCtx)
			return err
		},
	); dbErr != nil {
		return fmt.Errorf("failed to read persisted records [%w]", dbErr)
	}
	if legacyPending {
		migrated, err := s.runLegacyMigration(ctx, password)
		if err != nil {
			return err
		}
		if !migrated {
			return nil
		}
	}

	var record models.PrivateRecord
	recordExists := false
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			if recordExists, err = dbClient.PrivateRecordExists(dbCtx); err != nil {
				return err
			}
			if recordExists {
				record, err = dbClient.GetPrivateRecord(dbCtx)
				return err
			}
			return nil
		},
	); dbErr != nil {
		return fmt.Errorf("failed to read persisted records [%w]", dbErr)
	}
	if !recordExists {
		return nil
	}

	childNodes, authenticated, err := s.decryptChildNodes(ctx, record, password)
	if err != nil {
		return err
	}
	if !authenticated {
		return nil
	}

	// Best effort restoration: fall back to the store default location when
	// the remembered parent no longer resolves. Never block the unlock on a
	// missing anchor.
	targetParentID := ""
	targetIndex := 0
	if record.ParentNodeID != "" {
		if _, err := s.treeStore.Get(ctx, record.ParentNodeID); err == nil {
			targetParentID = record.ParentNodeID
			targetIndex = record.IndexInParentNode
		}
	}

	rootNode := models.PrunedNode{
		Kind:     models.NodeKindFolder,
		Title:    record.Title,
		Children: childNodes,
	}
	total := tree.Size(rootNode)

	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeBusyBegin,
	}); err != nil {
		return fmt.Errorf("failed to announce busy begin [%w]", err)
	}
	// The busy end broadcast must go out even when the materialization fails
	busyEnded := false
	defer func() {
		if !busyEnded {
			_ = s.hub.Post(ctx, models.Notification{Type: models.NotificationTypeBusyEnd})
		}
	}()

	current := 0
	liveRoot, err := s.materializer.Insert(
		ctx, rootNode, targetParentID, targetIndex, func() {
			current++
			if onProgress != nil {
				onProgress(current, total)
			}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to materialize hidden folder [%w]", err)
	}

	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			if err := dbClient.SetAnchorNodeID(dbCtx, liveRoot.ID); err != nil {
				return err
			}
			_, err := dbClient.RecordVaultEvent(
				dbCtx,
				models.VaultEventTypeUnlock,
				models.VaultEventAnchorRelated{NodeID: liveRoot.ID},
			)
			return err
		},
	); dbErr != nil {
		return fmt.Errorf("failed to record anchor state [%w]", dbErr)
	}

	busyEnded = true
	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeBusyEnd,
	}); err != nil {
		return fmt.Errorf("failed to announce busy end [%w]", err)
	}

	// Dependent features (e.g. auto re-lock timers) arm off this broadcast
	return s.hub.Post(ctx, models.Notification{
		Type:     models.NotificationTypeLockStatusChanged,
		Password: password,
	})
}

/*
Lock remove the live folder, leaving only the encrypted record

	@param ctx context.Context - execution context
*/
func (s *privateFolderService) Lock(ctx context.Context) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()
	return s.lockCore(ctx)
}

// lockCore the lock protocol. Caller must hold opLock.
func (s *privateFolderService) lockCore(ctx context.Context) error {
	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID == "" {
		return nil
	}

	// Clear the anchor entry first: a crash from here on reads back as locked
	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			return dbClient.ClearAnchorNodeID(dbCtx)
		},
	); dbErr != nil {
		return fmt.Errorf("failed to clear anchor state [%w]", dbErr)
	}

	// Dependent features disarm off this broadcast
	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeLockStatusChanged,
	}); err != nil {
		return fmt.Errorf("failed to announce lock [%w]", err)
	}

	// Remember the live folder's current title and position for the next
	// unlock, then drop the subtree. The folder may already be gone.
	liveRoot, liveErr := s.treeStore.Get(ctx, anchorID)
	if liveErr == nil {
		if err := s.treeStore.RemoveTree(ctx, anchorID); err != nil {
			return fmt.Errorf("failed to remove live folder [%w]", err)
		}
	}

	return s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			exists, err := dbClient.PrivateRecordExists(dbCtx)
			if err != nil {
				return err
			}
			if exists && liveErr == nil {
				record, err := dbClient.GetPrivateRecord(dbCtx)
				if err != nil {
					return err
				}
				record.Title = liveRoot.Title
				record.ParentNodeID = liveRoot.ParentID
				record.IndexInParentNode = liveRoot.Index
				if _, err := dbClient.SetPrivateRecord(dbCtx, record); err != nil {
					return err
				}
			}
			_, err = dbClient.RecordVaultEvent(
				dbCtx, models.VaultEventTypeLock, models.VaultEventAnchorRelated{NodeID: anchorID},
			)
			return err
		},
	)
}

/*
Save re-encrypt the live folder's current children into the record

	@param ctx context.Context - execution context
	@param password string - the protection password
*/
func (s *privateFolderService) Save(ctx context.Context, password string) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID == "" {
		return nil
	}

	childNodes, err := s.materializer.Extract(ctx, anchorID)
	if err != nil {
		return err
	}

	return s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			record, err := dbClient.GetPrivateRecord(dbCtx)
			if err != nil {
				return err
			}

			packed, err := s.encryptChildNodes(ctx, childNodes, password, record.Salt)
			if err != nil {
				return err
			}
			record.EncryptedChildNodes = packed

			if _, err := dbClient.SetPrivateRecord(dbCtx, record); err != nil {
				return err
			}
			_, err = dbClient.RecordVaultEvent(
				dbCtx,
				models.VaultEventTypeSave,
				models.VaultEventContentRelated{NodeCount: tree.SizeOfList(childNodes)},
			)
			return err
		},
	)
}

/*
IsUnlocked report whether a materialized folder currently exists

	@param ctx context.Context - execution context
	@return whether the folder is unlocked
*/
func (s *privateFolderService) IsUnlocked(ctx context.Context) (bool, error) {
	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return false, err
	}
	return anchorID != "", nil
}

/*
RecoverAtStartup clean up after an abnormally terminated session

	@param ctx context.Context - execution context
*/
func (s *privateFolderService) RecoverAtStartup(ctx context.Context) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID == "" {
		return nil
	}

	log.WithFields(s.LogTags).WithField("anchor", anchorID).Warn(
		"Found orphaned anchor from a previous session. Re-locking.",
	)
	return s.lockCore(ctx)
}

/*
ClearAll remove all persisted state of the private folder

	@param ctx context.Context - execution context
*/
func (s *privateFolderService) ClearAll(ctx context.Context) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID != "" {
		return ErrNotLocked
	}

	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			exists, err := dbClient.PrivateRecordExists(dbCtx)
			if err != nil {
				return err
			}
			if exists {
				if err := dbClient.DeletePrivateRecord(dbCtx); err != nil {
					return err
				}
			}
			if err := dbClient.DeleteUserOptions(dbCtx); err != nil {
				return err
			}
			if err := dbClient.DeleteLegacyRecord(dbCtx); err != nil {
				return err
			}
			_, err = dbClient.RecordVaultEvent(dbCtx, models.VaultEventTypeCleared, nil)
			return err
		},
	); dbErr != nil {
		return fmt.Errorf("failed to clear persisted state [%w]", dbErr)
	}

	return s.hub.Post(ctx, models.Notification{Type: models.NotificationTypeRecordCleared})
}

/*
GetUserOptions fetch the user options

	@param ctx context.Context - execution context
	@return the options entry
*/
func (s *privateFolderService) GetUserOptions(ctx context.Context) (models.UserOptions, error) {
	var options models.UserOptions
	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			options, err = dbClient.GetUserOptions(dbCtx)
			return err
		},
	); dbErr != nil {
		return models.UserOptions{}, fmt.Errorf("failed to read user options [%w]", dbErr)
	}
	return options, nil
}

/*
SetUserOptions replace the user options settings payload

	@param ctx context.Context - execution context
	@param settings datatypes.JSON - the new settings payload
	@return the updated options entry
*/
func (s *privateFolderService) SetUserOptions(
	ctx context.Context, settings datatypes.JSON,
) (models.UserOptions, error) {
	var options models.UserOptions
	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			options, err = dbClient.SetUserOptions(dbCtx, settings)
			return err
		},
	); dbErr != nil {
		return models.UserOptions{}, fmt.Errorf("failed to update user options [%w]", dbErr)
	}

	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeOptionsChanged,
	}); err != nil {
		return models.UserOptions{}, fmt.Errorf("failed to announce options change [%w]", err)
	}
	return options, nil
}
