// Package alcove - password-protected hidden bookmark folder core
package alcove

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/encryption"
	"github.com/alwitt/alcove/notify"
	"github.com/alwitt/alcove/tree"
	"github.com/alwitt/alcove/vault"
	"github.com/alwitt/alcove/watch"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Core assembled private folder core
type Core struct {
	// Folder the lock/unlock state machine
	Folder vault.PrivateFolderService
	// Hub internal notification hub
	Hub notify.Hub
	// Monitor change-driven sync monitor
	Monitor watch.SyncMonitor
}

/*
NewCore initialize the private folder core.

Wires the persistence layer, cryptography codec, materialization engine,
notification hub, and change-driven sync monitor around the given bookmark
tree store, then runs startup recovery so an anchor left behind by a crashed
session is cleanly re-locked.

	@param ctx context.Context - execution context
	@param dbDialector gorm.Dialector - GORM dialector
	@param dbLogLevel logger.LogLevel - SQL log level
	@param treeStore bookmarks.TreeStore - the external bookmark tree store
	@param debounceWindow time.Duration - sync quiet period. <= 0 selects the default.
	@returns assembled core
*/
func NewCore(
	ctx context.Context,
	dbDialector gorm.Dialector,
	dbLogLevel logger.LogLevel,
	treeStore bookmarks.TreeStore,
	debounceWindow time.Duration,
) (*Core, error) {
	// Prepare persistence
	persistence, err := db.NewConnection(dbDialector, dbLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized persistence client [%w]", err)
	}

	// Prepare cryptography codec
	codec, err := encryption.NewCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to initialized cryptography codec [%w]", err)
	}

	// Prepare notification hub
	hub, err := notify.NewHub()
	if err != nil {
		return nil, fmt.Errorf("failed to initialized notification hub [%w]", err)
	}

	// Prepare materialization engine
	materializer, err := tree.NewMaterializer(treeStore)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized materialization engine [%w]", err)
	}

	folder, err := vault.NewPrivateFolderService(ctx, vault.PrivateFolderServiceParams{
		Persistence:  persistence,
		Codec:        codec,
		TreeStore:    treeStore,
		Materializer: materializer,
		Hub:          hub,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialized private folder service [%w]", err)
	}

	monitor, err := watch.NewSyncMonitor(watch.SyncMonitorParams{
		Persistence:    persistence,
		TreeStore:      treeStore,
		Folder:         folder,
		DebounceWindow: debounceWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialized sync monitor [%w]", err)
	}
	hub.Subscribe(monitor)

	// Clean up after any abnormally terminated previous session
	if err := folder.RecoverAtStartup(ctx); err != nil {
		return nil, fmt.Errorf("failed to run startup recovery [%w]", err)
	}

	return &Core{Folder: folder, Hub: hub, Monitor: monitor}, nil
}
