package tree_test

import (
	"testing"

	"github.com/alwitt/alcove/models"
	"github.com/alwitt/alcove/tree"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

// TestPrune verifies live nodes reduce to the minimal serializable shape.
func TestPrune(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	liveTree := models.TreeNode{
		ID:    "root",
		Kind:  models.NodeKindFolder,
		Title: "Hidden",
		Children: []models.TreeNode{
			{
				ID:    "n1",
				Kind:  models.NodeKindBookmark,
				Title: "First",
				URL:   "https://example.com/first",
			},
			{ID: "n2", Kind: models.NodeKindSeparator, Title: "ignored", URL: "ignored"},
			{
				ID:    "n3",
				Kind:  models.NodeKindFolder,
				Title: "Sub",
				Children: []models.TreeNode{
					{
						ID:    "n4",
						Kind:  models.NodeKindBookmark,
						Title: "Nested",
						URL:   "https://example.com/nested",
					},
				},
			},
		},
	}

	pruned := tree.Prune(liveTree)
	assert.Equal(models.NodeKindFolder, pruned.Kind)
	assert.Equal("Hidden", pruned.Title)
	assert.Len(pruned.Children, 3)

	// 1 – Bookmark keeps title and URL
	assert.Equal(models.PrunedNode{
		Kind: models.NodeKindBookmark, Title: "First", URL: "https://example.com/first",
	}, pruned.Children[0])

	// 2 – Separator carries no content at all
	assert.Equal(models.PrunedNode{Kind: models.NodeKindSeparator}, pruned.Children[1])

	// 3 – Folder recurses, preserving child order
	assert.Equal(models.NodeKindFolder, pruned.Children[2].Kind)
	assert.Len(pruned.Children[2].Children, 1)
	assert.Equal("Nested", pruned.Children[2].Children[0].Title)
}

// TestSize verifies node counting over pruned subtrees.
func TestSize(t *testing.T) {
	assert := assert.New(t)

	leaf := models.PrunedNode{Kind: models.NodeKindBookmark, Title: "x", URL: "https://x"}
	assert.Equal(1, tree.Size(leaf))

	folder := models.PrunedNode{
		Kind:  models.NodeKindFolder,
		Title: "f",
		Children: []models.PrunedNode{
			leaf,
			{Kind: models.NodeKindSeparator},
			{Kind: models.NodeKindFolder, Title: "g", Children: []models.PrunedNode{leaf, leaf}},
		},
	}
	assert.Equal(6, tree.Size(folder))

	assert.Equal(0, tree.SizeOfList(nil))
	assert.Equal(7, tree.SizeOfList([]models.PrunedNode{leaf, folder}))
}
