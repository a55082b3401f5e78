package vault_test

import (
	"bytes"
	"compress/zlib"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/models"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

// buildLegacyRecord assemble a legacy record entry the way the prior
// generation wrote them
func buildLegacyRecord(
	assert *assert.Assertions,
	title string, nodes []models.LegacyNode, password string, salt string, compressed bool,
) models.LegacyRecord {
	serialized, err := json.Marshal(nodes)
	assert.Nil(err)

	payload := serialized
	if compressed {
		var buffer bytes.Buffer
		writer := zlib.NewWriter(&buffer)
		_, err := writer.Write(serialized)
		assert.Nil(err)
		assert.Nil(writer.Close())
		payload = buffer.Bytes()
	}

	key := sha256.Sum256([]byte(password + salt))
	mac := hmac.New(sha256.New, key[:])
	_, err = mac.Write(payload)
	assert.Nil(err)

	return models.LegacyRecord{
		Title:      title,
		Salt:       salt,
		Signature:  hex.EncodeToString(mac.Sum(nil)),
		Compressed: compressed,
		Payload:    base64.StdEncoding.EncodeToString(payload),
	}
}

// TestVaultLegacyMigration verifies a pending legacy record migrates on the
// first successful unlock.
func TestVaultLegacyMigration(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := newTestHarness(utCtx, assert)

	const password = "legacy pass"
	legacyURL := "https://old.example.com"
	separatorURL := "about:blank"
	legacy := buildLegacyRecord(assert, "Old Hidden", []models.LegacyNode{
		{Title: "Old Mark", URL: &legacyURL},
		{Title: models.LegacySeparatorTitle, URL: &separatorURL},
		{Title: "Old Folder", Children: []models.LegacyNode{
			{Title: "Nested", URL: &legacyURL},
		}},
	}, password, "00aa11bb", true)

	assert.Nil(uut.persistence.UseDatabaseInTransaction(
		utCtx, func(dbCtx context.Context, dbClient db.Database) error {
			_, err := dbClient.SetLegacyRecord(dbCtx, legacy)
			return err
		},
	))

	// -------------------------------------------------------------------------
	// 1 – Authentication routes through the legacy record while it is pending
	ok, err := uut.folder.Authenticate(utCtx, "wrong")
	assert.Nil(err)
	assert.False(ok)
	ok, err = uut.folder.Authenticate(utCtx, password)
	assert.Nil(err)
	assert.True(ok)

	// 2 – Unlock with a wrong password aborts silently, leaving the legacy
	// record in place
	assert.Nil(uut.folder.Unlock(utCtx, "wrong", nil))
	unlocked, err := uut.folder.IsUnlocked(utCtx)
	assert.Nil(err)
	assert.False(unlocked)
	assert.Nil(uut.persistence.UseDatabase(
		utCtx, func(dbCtx context.Context, dbClient db.Database) error {
			pending, err := dbClient.LegacyRecordExists(dbCtx)
			assert.Nil(err)
			assert.True(pending)
			return nil
		},
	))

	// -------------------------------------------------------------------------
	// 3 – Unlock with the right password migrates and materializes
	assert.Nil(uut.folder.Unlock(utCtx, password, nil))
	unlocked, err = uut.folder.IsUnlocked(utCtx)
	assert.Nil(err)
	assert.True(unlocked)

	anchorID := uut.anchorNodeID(utCtx, assert)
	liveRoot, err := uut.store.GetSubTree(utCtx, anchorID)
	assert.Nil(err)
	assert.Equal("Old Hidden", liveRoot.Title)
	assert.Len(liveRoot.Children, 3)
	assert.Equal(models.NodeKindBookmark, liveRoot.Children[0].Kind)
	assert.Equal("Old Mark", liveRoot.Children[0].Title)
	assert.Equal(models.NodeKindSeparator, liveRoot.Children[1].Kind)
	assert.Equal(models.NodeKindFolder, liveRoot.Children[2].Kind)
	assert.Len(liveRoot.Children[2].Children, 1)
	assert.Equal("Nested", liveRoot.Children[2].Children[0].Title)

	// 4 – The legacy record is gone, the migration was audited
	assert.Nil(uut.persistence.UseDatabase(
		utCtx, func(dbCtx context.Context, dbClient db.Database) error {
			pending, err := dbClient.LegacyRecordExists(dbCtx)
			assert.Nil(err)
			assert.False(pending)
			events, err := dbClient.ListVaultEvents(dbCtx, db.VaultEventQueryFilter{
				EventTypes: []models.VaultEventTypeENUMType{models.VaultEventTypeLegacyMigrated},
			})
			assert.Nil(err)
			assert.Len(events, 1)
			return nil
		},
	))

	// -------------------------------------------------------------------------
	// 5 – After migration the normal record round trips
	assert.Nil(uut.folder.Lock(utCtx))
	assert.Nil(uut.folder.Unlock(utCtx, password, nil))
	anchorID = uut.anchorNodeID(utCtx, assert)
	liveRoot, err = uut.store.GetSubTree(utCtx, anchorID)
	assert.Nil(err)
	assert.Len(liveRoot.Children, 3)
}
