package tree

import (
	"context"
	"fmt"

	"github.com/alwitt/alcove/bookmarks"
	"github.com/alwitt/alcove/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

/*
Materializer converts between pruned node trees and live tree store subtrees.

Node creation is strictly depth-first pre-order: a parent is created before its
children, and children are created left-to-right at explicit indices so the
final sibling order matches the pruned array order regardless of the store's
default insertion position.
*/
type Materializer interface {
	/*
		Insert materialize a pruned node tree into the live tree store

		`onNodeCreated` is invoked exactly once per node created, the root
		included, enabling a live current/total progress callback with `Size`
		providing the total.

		When creation of a descendant fails, the partially built subtree root is
		removed (best effort) before the error is returned, so no half-built
		subtree is left orphaned.

			@param ctx context.Context - execution context
			@param node models.PrunedNode - the subtree to materialize
			@param parentID string - target parent node, empty for the store default
			@param index int - target position within the parent
			@param onNodeCreated func() - per-node progress callback, may be nil
			@return the live root node
	*/
	Insert(
		ctx context.Context,
		node models.PrunedNode,
		parentID string,
		index int,
		onNodeCreated func(),
	) (models.TreeNode, error)

	/*
		Extract read a live subtree back out of the tree store and prune it

		The root folder itself is not included; only its ordered children are,
		matching the persisted record's "children of the hidden folder" semantics.

			@param ctx context.Context - execution context
			@param nodeID string - the live root folder node ID
			@return pruned child list
	*/
	Extract(ctx context.Context, nodeID string) ([]models.PrunedNode, error)
}

// materializerImpl implements Materializer
type materializerImpl struct {
	goutils.Component

	store bookmarks.TreeStore
}

/*
NewMaterializer define new materialization engine

	@param store bookmarks.TreeStore - the external tree store
	@returns engine instance
*/
func NewMaterializer(store bookmarks.TreeStore) (Materializer, error) {
	logTags := log.Fields{"package": "alcove", "module": "tree", "component": "materializer"}

	return &materializerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		store: store,
	}, nil
}

// createOne create a single node in the tree store
func (m *materializerImpl) createOne(
	ctx context.Context, node models.PrunedNode, parentID string, index int,
) (models.TreeNode, error) {
	details := bookmarks.CreateDetails{Kind: node.Kind, Title: node.Title, URL: node.URL}
	if parentID != "" {
		idx := index
		details.ParentID = &parentID
		details.Index = &idx
	}
	return m.store.Create(ctx, details)
}

// insertRecursive create a node and then its children, depth-first pre-order
func (m *materializerImpl) insertRecursive(
	ctx context.Context, node models.PrunedNode, parentID string, index int, onNodeCreated func(),
) (models.TreeNode, error) {
	created, err := m.createOne(ctx, node, parentID, index)
	if err != nil {
		return models.TreeNode{}, fmt.Errorf("failed to create node '%s' [%w]", node.Title, err)
	}
	if onNodeCreated != nil {
		onNodeCreated()
	}

	for childIdx, child := range node.Children {
		if _, err := m.insertRecursive(ctx, child, created.ID, childIdx, onNodeCreated); err != nil {
			return models.TreeNode{}, err
		}
	}

	return created, nil
}

/*
Insert materialize a pruned node tree into the live tree store

	@param ctx context.Context - execution context
	@param node models.PrunedNode - the subtree to materialize
	@param parentID string - target parent node, empty for the store default
	@param index int - target position within the parent
	@param onNodeCreated func() - per-node progress callback, may be nil
	@return the live root node
*/
func (m *materializerImpl) Insert(
	ctx context.Context,
	node models.PrunedNode,
	parentID string,
	index int,
	onNodeCreated func(),
) (models.TreeNode, error) {
	root, err := m.createOne(ctx, node, parentID, index)
	if err != nil {
		return models.TreeNode{}, fmt.Errorf("failed to create subtree root [%w]", err)
	}
	if onNodeCreated != nil {
		onNodeCreated()
	}

	for childIdx, child := range node.Children {
		if _, err := m.insertRecursive(ctx, child, root.ID, childIdx, onNodeCreated); err != nil {
			// The store has no transactional create; drop the partial subtree
			// so the failure does not leave orphaned nodes behind.
			if cleanupErr := m.store.RemoveTree(ctx, root.ID); cleanupErr != nil {
				log.WithError(cleanupErr).WithFields(m.LogTags).Error(
					"Failed to remove partially materialized subtree",
				)
			}
			return models.TreeNode{}, fmt.Errorf("subtree materialization failed [%w]", err)
		}
	}

	return root, nil
}

/*
Extract read a live subtree back out of the tree store and prune it

	@param ctx context.Context - execution context
	@param nodeID string - the live root folder node ID
	@return pruned child list
*/
func (m *materializerImpl) Extract(ctx context.Context, nodeID string) ([]models.PrunedNode, error) {
	liveTree, err := m.store.GetSubTree(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read live subtree %s [%w]", nodeID, err)
	}
	return PruneChildren(liveTree), nil
}
