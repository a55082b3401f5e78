package watch

import (
	"context"
	"sync"
	"time"

	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/db"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/notify"
	"github.com/alwitt/alcove/vault"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

/*
SyncMonitor change-driven persistence of the live hidden folder.

Armed while the folder is unlocked: every tree store change touching the
hidden subtree schedules a debounced save under the session password, so
edits persist without an explicit user action. Removal of the hidden folder
root itself by an outside actor degrades into a clean lock instead.

The monitor is both a notification listener (to learn about lock status
transitions) and a tree event listener (to observe edits).
*/
type SyncMonitor interface {
	bookmarks.TreeEventListener
	notify.Listener

	/*
		Close disarm the monitor and cancel any pending save
	*/
	Close()
}

// syncMonitorImpl implements SyncMonitor
type syncMonitorImpl struct {
	goutils.Component

	persistence db.Client
	treeStore   bookmarks.TreeStore
	folder      vault.PrivateFolderService
	debouncer   Debouncer

	// lock guards the armed session state below
	lock     sync.Mutex
	armed    bool
	anchorID string
	password string
}

// SyncMonitorParams monitor init parameters
type SyncMonitorParams struct {
	// Persistence persistence layer client
	Persistence db.Client
	// TreeStore the external bookmark tree store
	TreeStore bookmarks.TreeStore
	// Folder the private folder service whose saves this monitor drives
	Folder vault.PrivateFolderService
	// DebounceWindow quiet period before a pending save fires. <= 0 selects the default.
	DebounceWindow time.Duration
}

/*
NewSyncMonitor define new sync monitor

The monitor must still be registered with the notification hub by the caller.

	@param params SyncMonitorParams - monitor parameters
	@returns monitor instance
*/
func NewSyncMonitor(params SyncMonitorParams) (SyncMonitor, error) {
	logTags := log.Fields{"package": "alcove", "module": "watch", "component": "sync-monitor"}

	instance := &syncMonitorImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence: params.Persistence,
		treeStore:   params.TreeStore,
		folder:      params.Folder,
	}
	instance.debouncer = NewDebouncer(params.DebounceWindow, instance.runSave)

	return instance, nil
}

// runSave debounced save execution
func (m *syncMonitorImpl) runSave(ctx context.Context, password string) {
	if err := m.folder.Save(ctx, password); err != nil {
		log.WithError(err).WithFields(m.LogTags).Error("Scheduled save failed")
	}
}

/*
HandleNotification process one notification

Arms on an unlock broadcast (which carries the session password) and disarms
on a lock broadcast.

	@param ctx context.Context - execution context
	@param notification models.Notification - the notification
*/
func (m *syncMonitorImpl) HandleNotification(
	ctx context.Context, notification models.Notification,
) {
	if notification.Type != models.NotificationTypeLockStatusChanged {
		return
	}

	if notification.Password != "" {
		m.arm(ctx, notification.Password)
	} else {
		m.disarm()
	}
}

// arm begin observing the hidden subtree under the given session password
func (m *syncMonitorImpl) arm(ctx context.Context, password string) {
	// The anchor entry is recorded before the unlock broadcast goes out
	var anchorID string
	if dbErr := m.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			anchorID, err = dbClient.GetAnchorNodeID(dbCtx)
			return err
		},
	); dbErr != nil {
		log.WithError(dbErr).WithFields(m.LogTags).Error("Unable to arm: anchor state unreadable")
		return
	}
	if anchorID == "" {
		log.WithFields(m.LogTags).Warn("Unlock broadcast without a recorded anchor. Not arming.")
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.armed {
		m.treeStore.Subscribe(m)
	}
	m.armed = true
	m.anchorID = anchorID
	m.password = password
}

// disarm stop observing and drop the session password
func (m *syncMonitorImpl) disarm() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.armed {
		m.treeStore.Unsubscribe(m)
	}
	m.armed = false
	m.anchorID = ""
	m.password = ""
	m.debouncer.Stop()
}

// session snapshot the armed session state
func (m *syncMonitorImpl) session() (bool, string, string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.armed, m.anchorID, m.password
}

// isWithinHiddenSubtree walk the parent chain to see whether a node sits
// inside the hidden folder
func (m *syncMonitorImpl) isWithinHiddenSubtree(
	ctx context.Context, nodeID string, anchorID string,
) bool {
	current := nodeID
	for current != "" {
		if current == anchorID {
			return true
		}
		node, err := m.treeStore.Get(ctx, current)
		if err != nil {
			return false
		}
		current = node.ParentID
	}
	return false
}

// scheduleSave request a debounced save of the current session
func (m *syncMonitorImpl) scheduleSave(ctx context.Context, password string) {
	m.debouncer.Trigger(ctx, password)
}

/*
HandleNodeCreated a node was created

	@param ctx context.Context - execution context
	@param node models.TreeNode - the created node
*/
func (m *syncMonitorImpl) HandleNodeCreated(ctx context.Context, node models.TreeNode) {
	armed, anchorID, password := m.session()
	if !armed {
		return
	}
	if m.isWithinHiddenSubtree(ctx, node.ParentID, anchorID) {
		m.scheduleSave(ctx, password)
	}
}

/*
HandleNodeChanged a node's content (title / URL) changed

	@param ctx context.Context - execution context
	@param nodeID string - the changed node
*/
func (m *syncMonitorImpl) HandleNodeChanged(ctx context.Context, nodeID string) {
	armed, anchorID, password := m.session()
	if !armed {
		return
	}
	if m.isWithinHiddenSubtree(ctx, nodeID, anchorID) {
		m.scheduleSave(ctx, password)
	}
}

/*
HandleNodeMoved a node moved to a new parent or index

A move counts when either endpoint touches the hidden subtree, covering moves
into, out of, and within it.

	@param ctx context.Context - execution context
	@param nodeID string - the moved node
	@param oldParentID string - parent before the move
	@param newParentID string - parent after the move
*/
func (m *syncMonitorImpl) HandleNodeMoved(
	ctx context.Context, nodeID string, oldParentID string, newParentID string,
) {
	armed, anchorID, password := m.session()
	if !armed {
		return
	}
	if m.isWithinHiddenSubtree(ctx, oldParentID, anchorID) ||
		m.isWithinHiddenSubtree(ctx, newParentID, anchorID) {
		m.scheduleSave(ctx, password)
	}
}

/*
HandleNodeRemoved a node (and its subtree) was removed

Removal of the hidden folder root itself means an outside actor deleted it;
the monitor converts that into a clean lock so no orphaned anchor remains.

	@param ctx context.Context - execution context
	@param nodeID string - the removed node
	@param parentID string - the parent it was removed from
*/
func (m *syncMonitorImpl) HandleNodeRemoved(ctx context.Context, nodeID string, parentID string) {
	armed, anchorID, password := m.session()
	if !armed {
		return
	}

	if nodeID == anchorID {
		m.debouncer.Stop()
		if err := m.folder.Lock(ctx); err != nil {
			log.WithError(err).WithFields(m.LogTags).Error(
				"Failed to lock after external removal of the hidden folder",
			)
		}
		return
	}

	if m.isWithinHiddenSubtree(ctx, parentID, anchorID) {
		m.scheduleSave(ctx, password)
	}
}

/*
Close disarm the monitor and cancel any pending save
*/
func (m *syncMonitorImpl) Close() {
	m.disarm()
}
