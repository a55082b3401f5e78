package vault

import (
	"bytes"
	"compress/zlib"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/tree"
	"github.com/apex/log"
)

// legacyAuthenticate verify a password against the pending legacy record.
//
// The legacy scheme signed instead of sealing: the signature is an HMAC-SHA256
// over the base64-decoded payload bytes, keyed with SHA-256(password + salt).
// Caller must hold opLock.
func (s *privateFolderService) legacyAuthenticate(
	ctx context.Context, password string,
) (bool, error) {
	var record models.LegacyRecord
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			record, err = dbClient.GetLegacyRecord(dbCtx)
			return err
		},
	); dbErr != nil {
		return false, fmt.Errorf("failed to read legacy record [%w]", dbErr)
	}
	verified, _, err := verifyLegacyPayload(record, password)
	return verified, err
}

// verifyLegacyPayload check the legacy signature, returning the raw payload bytes
func verifyLegacyPayload(record models.LegacyRecord, password string) (bool, []byte, error) {
	payload, err := base64.StdEncoding.DecodeString(record.Payload)
	if err != nil {
		return false, nil, fmt.Errorf("legacy payload is not valid base64 [%w]", err)
	}

	expected, err := hex.DecodeString(record.Signature)
	if err != nil {
		return false, nil, fmt.Errorf("legacy signature is not valid hex [%w]", err)
	}

	key := sha256.Sum256([]byte(password + record.Salt))
	mac := hmac.New(sha256.New, key[:])
	_, _ = mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return false, nil, nil
	}
	return true, payload, nil
}

// decodeLegacyNodes parse the verified payload into the legacy node list
func decodeLegacyNodes(record models.LegacyRecord, payload []byte) ([]models.LegacyNode, error) {
	serialized := payload
	if record.Compressed {
		reader, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("legacy payload is not valid zlib [%w]", err)
		}
		defer func() { _ = reader.Close() }()
		if serialized, err = io.ReadAll(reader); err != nil {
			return nil, fmt.Errorf("failed to decompress legacy payload [%w]", err)
		}
	}

	var nodes []models.LegacyNode
	if err := json.Unmarshal(serialized, &nodes); err != nil {
		return nil, fmt.Errorf("legacy payload is malformed [%w]", err)
	}
	return nodes, nil
}

// convertLegacyNodes map legacy nodes onto the current pruned node shape.
//
// A nil URL marks a folder; the magic separator title with a URL marks a
// separator; everything else is a bookmark.
func convertLegacyNodes(nodes []models.LegacyNode) []models.PrunedNode {
	result := []models.PrunedNode{}
	for _, node := range nodes {
		if node.URL == nil {
			result = append(result, models.PrunedNode{
				Kind:     models.NodeKindFolder,
				Title:    node.Title,
				Children: convertLegacyNodes(node.Children),
			})
			continue
		}
		if node.Title == models.LegacySeparatorTitle {
			result = append(result, models.PrunedNode{Kind: models.NodeKindSeparator})
			continue
		}
		result = append(result, models.PrunedNode{
			Kind:  models.NodeKindBookmark,
			Title: node.Title,
			URL:   *node.URL,
		})
	}
	return result
}

// runLegacyMigration rewrite the pending legacy record as a private record.
//
// Returns whether the migration ran; a wrong password returns (false, nil) and
// leaves the legacy record untouched. Caller must hold opLock.
func (s *privateFolderService) runLegacyMigration(
	ctx context.Context, password string,
) (bool, error) {
	var record models.LegacyRecord
	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			record, err = dbClient.GetLegacyRecord(dbCtx)
			return err
		},
	); dbErr != nil {
		return false, fmt.Errorf("failed to read legacy record [%w]", dbErr)
	}

	verified, payload, err := verifyLegacyPayload(record, password)
	if err != nil {
		return false, err
	}
	if !verified {
		return false, nil
	}

	legacyNodes, err := decodeLegacyNodes(record, payload)
	if err != nil {
		return false, err
	}
	childNodes := convertLegacyNodes(legacyNodes)

	// Re-key under the current scheme with a fresh salt
	salt, err := s.codec.RandomSalt(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to generate record salt [%w]", err)
	}
	packed, err := s.encryptChildNodes(ctx, childNodes, password, salt)
	if err != nil {
		return false, err
	}

	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			if _, err := dbClient.SetPrivateRecord(dbCtx, models.PrivateRecord{
				Title:               record.Title,
				Salt:                salt,
				EncryptedChildNodes: packed,
			}); err != nil {
				return err
			}
			if err := dbClient.DeleteLegacyRecord(dbCtx); err != nil {
				return err
			}
			_, err := dbClient.RecordVaultEvent(
				dbCtx,
				models.VaultEventTypeLegacyMigrated,
				models.VaultEventContentRelated{NodeCount: tree.SizeOfList(childNodes)},
			)
			return err
		},
	); dbErr != nil {
		return false, fmt.Errorf("failed to persist migrated record [%w]", dbErr)
	}

	log.WithFields(s.LogTags).Info("Migrated legacy record to the current scheme")
	return true, nil
}
