package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/tree"
)

// readPrivateRecord fetch the singleton record, requiring it to exist
func (s *privateFolderService) readPrivateRecord(
	ctx context.Context,
) (models.PrivateRecord, error) {
	var record models.PrivateRecord
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			record, err = dbClient.GetPrivateRecord(dbCtx)
			return err
		},
	); dbErr != nil {
		return models.PrivateRecord{}, fmt.Errorf("failed to read private record [%w]", dbErr)
	}
	return record, nil
}

/*
ExportEncrypted produce an encrypted export of the current record

	@param ctx context.Context - execution context
	@return the export file
*/
func (s *privateFolderService) ExportEncrypted(ctx context.Context) (models.ExportFile, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	record, err := s.readPrivateRecord(ctx)
	if err != nil {
		return models.ExportFile{}, err
	}

	// The ciphertext is exported as-is; no password needed
	return models.ExportFile{
		Kind:                models.ExportKindEncrypted,
		Version:             models.CurrentExportVersion,
		Salt:                record.Salt,
		EncryptedChildNodes: record.EncryptedChildNodes,
	}, nil
}

/*
ExportPlain produce a plain export of the current record content

	@param ctx context.Context - execution context
	@param password string - the protection password
	@return the export file, and whether the password was correct
*/
func (s *privateFolderService) ExportPlain(
	ctx context.Context, password string,
) (models.ExportFile, bool, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	record, err := s.readPrivateRecord(ctx)
	if err != nil {
		return models.ExportFile{}, false, err
	}

	childNodes, authenticated, err := s.decryptChildNodes(ctx, record, password)
	if err != nil {
		return models.ExportFile{}, false, err
	}
	if !authenticated {
		return models.ExportFile{}, false, nil
	}

	return models.ExportFile{
		Kind:       models.ExportKindPlain,
		Version:    models.CurrentExportVersion,
		ChildNodes: childNodes,
	}, true, nil
}

// importChildNodes materialize imported nodes under a dated folder inside the
// live hidden folder. Caller must hold opLock.
//
// No explicit save afterwards: the imported nodes fire creation events inside
// the hidden subtree, so the change-driven sync policy persists them.
func (s *privateFolderService) importChildNodes(
	ctx context.Context, childNodes []models.PrunedNode, onProgress ProgressFunc,
) error {
	anchorID, err := s.getAnchorNodeID(ctx)
	if err != nil {
		return err
	}
	if anchorID == "" {
		return ErrNotUnlocked
	}

	// Place the dated folder after the existing children
	liveRoot, err := s.treeStore.GetSubTree(ctx, anchorID)
	if err != nil {
		return fmt.Errorf("failed to read live hidden folder [%w]", err)
	}

	importRoot := models.PrunedNode{
		Kind:     models.NodeKindFolder,
		Title:    fmt.Sprintf("Imported %s", time.Now().Format("2006-01-02 15:04:05")),
		Children: childNodes,
	}
	total := tree.Size(importRoot)

	if err := s.hub.Post(ctx, models.Notification{
		Type: models.NotificationTypeBusyBegin,
	}); err != nil {
		return fmt.Errorf("failed to announce busy begin [%w]", err)
	}
	defer func() {
		_ = s.hub.Post(ctx, models.Notification{Type: models.NotificationTypeBusyEnd})
	}()

	current := 0
	if _, err := s.materializer.Insert(
		ctx, importRoot, anchorID, len(liveRoot.Children), func() {
			current++
			if onProgress != nil {
				onProgress(current, total)
			}
		},
	); err != nil {
		return fmt.Errorf("failed to materialize imported nodes [%w]", err)
	}
	return nil
}

/*
ImportPlain materialize exported child nodes into the live folder

	@param ctx context.Context - execution context
	@param file models.ExportFile - the plain export file
	@param onProgress ProgressFunc - progress callback, may be nil
*/
func (s *privateFolderService) ImportPlain(
	ctx context.Context, file models.ExportFile, onProgress ProgressFunc,
) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.validator.Struct(&file); err != nil {
		return fmt.Errorf("export file is not valid [%w]", err)
	}
	if file.Kind != models.ExportKindPlain {
		return fmt.Errorf("export file is not a plain export")
	}

	return s.importChildNodes(ctx, file.ChildNodes, onProgress)
}

/*
ImportEncrypted decrypt an encrypted export and materialize it

	@param ctx context.Context - execution context
	@param file models.ExportFile - the encrypted export file
	@param password string - password the export was encrypted under
	@param onProgress ProgressFunc - progress callback, may be nil
	@return whether the password was correct
*/
func (s *privateFolderService) ImportEncrypted(
	ctx context.Context, file models.ExportFile, password string, onProgress ProgressFunc,
) (bool, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.validator.Struct(&file); err != nil {
		return false, fmt.Errorf("export file is not valid [%w]", err)
	}
	if file.Kind != models.ExportKindEncrypted {
		return false, fmt.Errorf("export file is not an encrypted export")
	}

	childNodes, authenticated, err := s.decryptChildNodes(ctx, models.PrivateRecord{
		Salt:                file.Salt,
		EncryptedChildNodes: file.EncryptedChildNodes,
	}, password)
	if err != nil {
		return false, err
	}
	if !authenticated {
		return false, nil
	}

	return true, s.importChildNodes(ctx, childNodes, onProgress)
}
