package bookmarks_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/models"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

// recordingListener captures tree change events for verification
type recordingListener struct {
	lock    sync.Mutex
	created []models.TreeNode
	changed []string
	moved   [][3]string
	removed [][2]string
}

func (l *recordingListener) HandleNodeCreated(_ context.Context, node models.TreeNode) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.created = append(l.created, node)
}

func (l *recordingListener) HandleNodeChanged(_ context.Context, nodeID string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.changed = append(l.changed, nodeID)
}

func (l *recordingListener) HandleNodeMoved(
	_ context.Context, nodeID string, oldParentID string, newParentID string,
) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.moved = append(l.moved, [3]string{nodeID, oldParentID, newParentID})
}

func (l *recordingListener) HandleNodeRemoved(_ context.Context, nodeID string, parentID string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.removed = append(l.removed, [2]string{nodeID, parentID})
}

// TestInMemoryTreeStoreBasicOps verifies node creation, positioning, lookup,
// and removal.
func TestInMemoryTreeStoreBasicOps(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := bookmarks.NewInMemoryTreeStore()

	// 1 – Create a folder at the default location
	folder, err := uut.Create(utCtx, bookmarks.CreateDetails{
		Kind: models.NodeKindFolder, Title: "Work",
	})
	assert.Nil(err)
	assert.Equal(uut.RootID(), folder.ParentID)
	assert.Equal(0, folder.Index)

	// 2 – Create bookmarks under it, with an explicit insertion index
	first, err := uut.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &folder.ID, Kind: models.NodeKindBookmark,
		Title: "First", URL: "https://example.com/1",
	})
	assert.Nil(err)
	assert.Equal(0, first.Index)

	insertAt := 0
	second, err := uut.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &folder.ID, Index: &insertAt, Kind: models.NodeKindBookmark,
		Title: "Second", URL: "https://example.com/2",
	})
	assert.Nil(err)
	assert.Equal(0, second.Index)

	subtree, err := uut.GetSubTree(utCtx, folder.ID)
	assert.Nil(err)
	assert.Len(subtree.Children, 2)
	assert.Equal("Second", subtree.Children[0].Title)
	assert.Equal("First", subtree.Children[1].Title)

	// 3 – Creating under an unknown or non-folder parent fails
	bogus := "no-such-node"
	_, err = uut.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &bogus, Kind: models.NodeKindBookmark, Title: "x", URL: "https://x",
	})
	assert.Error(err)
	_, err = uut.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &first.ID, Kind: models.NodeKindBookmark, Title: "x", URL: "https://x",
	})
	assert.Error(err)

	// 4 – Search matches on title and URL, case-insensitive
	found, err := uut.Search(utCtx, "second")
	assert.Nil(err)
	assert.Len(found, 1)
	found, err = uut.Search(utCtx, "example.com")
	assert.Nil(err)
	assert.Len(found, 2)

	// 5 – RemoveTree drops the subtree and refuses the root
	assert.Error(uut.RemoveTree(utCtx, uut.RootID()))
	assert.Nil(uut.RemoveTree(utCtx, folder.ID))
	_, err = uut.Get(utCtx, first.ID)
	assert.Error(err)
	found, err = uut.Search(utCtx, "example.com")
	assert.Nil(err)
	assert.Empty(found)
}

// TestInMemoryTreeStoreEvents verifies change events reach subscribed
// listeners with the correct parameters.
func TestInMemoryTreeStoreEvents(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := bookmarks.NewInMemoryTreeStore()
	listener := &recordingListener{}
	uut.Subscribe(listener)

	// 1 – Create events carry the created node
	folderA, err := uut.Create(utCtx, bookmarks.CreateDetails{
		Kind: models.NodeKindFolder, Title: "A",
	})
	assert.Nil(err)
	folderB, err := uut.Create(utCtx, bookmarks.CreateDetails{
		Kind: models.NodeKindFolder, Title: "B",
	})
	assert.Nil(err)
	mark, err := uut.Create(utCtx, bookmarks.CreateDetails{
		ParentID: &folderA.ID, Kind: models.NodeKindBookmark, Title: "m", URL: "https://m",
	})
	assert.Nil(err)
	assert.Len(listener.created, 3)
	assert.Equal(mark.ID, listener.created[2].ID)
	assert.Equal(folderA.ID, listener.created[2].ParentID)

	// 2 – Update fires a changed event
	assert.Nil(uut.Update(utCtx, mark.ID, "m2", "https://m2"))
	assert.Equal([]string{mark.ID}, listener.changed)

	// 3 – Move fires with old and new parent
	assert.Nil(uut.Move(utCtx, mark.ID, folderB.ID, 0))
	assert.Len(listener.moved, 1)
	assert.Equal([3]string{mark.ID, folderA.ID, folderB.ID}, listener.moved[0])

	// 4 – RemoveTree fires a single removed event for the subtree root
	assert.Nil(uut.RemoveTree(utCtx, folderB.ID))
	assert.Len(listener.removed, 1)
	assert.Equal([2]string{folderB.ID, uut.RootID()}, listener.removed[0])

	// 5 – After unsubscribe no further events arrive
	uut.Unsubscribe(listener)
	_, err = uut.Create(utCtx, bookmarks.CreateDetails{
		Kind: models.NodeKindFolder, Title: "C",
	})
	assert.Nil(err)
	assert.Len(listener.created, 3)
}
