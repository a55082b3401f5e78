package alcove_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alwitt/alcove"
	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/vault"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

// TestCoreEndToEnd exercises the assembled core: setup, unlock, live edits
// synced by the monitor, restart recovery, and a final round trip.
func TestCoreEndToEnd(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	// Create a unique temporary DB file for this test
	testDB := fmt.Sprintf("/tmp/alcove_ut_%s.db", ulid.Make().String())
	log.WithField("db", testDB).Debug("Test database")

	store := bookmarks.NewInMemoryTreeStore()
	uut, err := alcove.NewCore(
		utCtx, db.GetSqliteDialector(testDB), logger.Error, store, 25*time.Millisecond,
	)
	assert.Nil(err)

	const password = "end to end"

	// -------------------------------------------------------------------------
	// 1 – First-run setup, then unlock
	_, err = uut.Folder.Setup(utCtx, password)
	assert.Nil(err)
	assert.Nil(uut.Folder.Unlock(utCtx, password, nil))

	found, err := store.Search(utCtx, vault.DefaultFolderTitle)
	assert.Nil(err)
	assert.Len(found, 1)
	anchorID := found[0].ID

	// 2 – A live edit inside the hidden folder persists via the sync monitor
	_, err = store.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &anchorID, Kind: models.NodeKindBookmark,
		Title: "Kept", URL: "https://kept.example.com",
	})
	assert.Nil(err)
	time.Sleep(150 * time.Millisecond)

	// -------------------------------------------------------------------------
	// 3 – Simulate a crash while unlocked: a fresh core over the same state
	// recovers to locked at startup
	restarted, err := alcove.NewCore(
		utCtx, db.GetSqliteDialector(testDB), logger.Error, store, 25*time.Millisecond,
	)
	assert.Nil(err)

	unlocked, err := restarted.Folder.IsUnlocked(utCtx)
	assert.Nil(err)
	assert.False(unlocked)
	_, err = store.Get(utCtx, anchorID)
	assert.Error(err)

	// 4 – Unlock on the restarted core restores the synced edit
	assert.Nil(restarted.Folder.Unlock(utCtx, password, nil))
	found, err = store.Search(utCtx, "kept.example.com")
	assert.Nil(err)
	assert.Len(found, 1)

	// 5 – Lock leaves a clean state behind
	assert.Nil(restarted.Folder.Lock(utCtx))
	found, err = store.Search(utCtx, "kept.example.com")
	assert.Nil(err)
	assert.Empty(found)

	uut.Monitor.Close()
	restarted.Monitor.Close()
}
