// Package bookmarks - external bookmark tree store boundary
package bookmarks

import (
	"context"

	"github.com/alwitt/alcove/models"
)

// CreateDetails parameters for creating a new node within the tree store
type CreateDetails struct {
	// ParentID parent node to create under. nil means the store default location.
	ParentID *string `validate:"-"`
	// Index position within the parent's child list. nil means append.
	Index *int `validate:"-"`
	// Kind node kind
	Kind models.NodeKindENUMType `validate:"required,node_kind"`
	// Title node display title
	Title string `validate:"-"`
	// URL bookmark target URL. Only for bookmarks.
	URL string `validate:"-"`
}

// TreeEventListener receiver of tree store change notifications
type TreeEventListener interface {
	/*
		HandleNodeCreated a node was created

			@param ctx context.Context - execution context
			@param node models.TreeNode - the created node
	*/
	HandleNodeCreated(ctx context.Context, node models.TreeNode)

	/*
		HandleNodeChanged a node's content (title / URL) changed

			@param ctx context.Context - execution context
			@param nodeID string - the changed node
	*/
	HandleNodeChanged(ctx context.Context, nodeID string)

	/*
		HandleNodeMoved a node moved to a new parent or index

			@param ctx context.Context - execution context
			@param nodeID string - the moved node
			@param oldParentID string - parent before the move
			@param newParentID string - parent after the move
	*/
	HandleNodeMoved(ctx context.Context, nodeID string, oldParentID string, newParentID string)

	/*
		HandleNodeRemoved a node (and its subtree) was removed

			@param ctx context.Context - execution context
			@param nodeID string - the removed node
			@param parentID string - the parent it was removed from
	*/
	HandleNodeRemoved(ctx context.Context, nodeID string, parentID string)
}

/*
TreeStore the browser's native bookmark tree service.

The core treats this as an opaque, possibly slow, possibly failing remote-like
service; there is no transactional creation primitive.
*/
type TreeStore interface {
	/*
		Create create a new node

			@param ctx context.Context - execution context
			@param details CreateDetails - node creation parameters
			@return the created node
	*/
	Create(ctx context.Context, details CreateDetails) (models.TreeNode, error)

	/*
		Get fetch a single node without children

			@param ctx context.Context - execution context
			@param nodeID string - node ID
			@return the node
	*/
	Get(ctx context.Context, nodeID string) (models.TreeNode, error)

	/*
		GetSubTree fetch a node with its full descendant tree

			@param ctx context.Context - execution context
			@param nodeID string - root node ID
			@return the subtree
	*/
	GetSubTree(ctx context.Context, nodeID string) (models.TreeNode, error)

	/*
		Search find nodes whose title or URL contains the query

			@param ctx context.Context - execution context
			@param query string - search text
			@return matching nodes
	*/
	Search(ctx context.Context, query string) ([]models.TreeNode, error)

	/*
		RemoveTree remove a node and its entire subtree

			@param ctx context.Context - execution context
			@param nodeID string - root node ID of the subtree to remove
	*/
	RemoveTree(ctx context.Context, nodeID string) error

	/*
		Subscribe register a change event listener

			@param listener TreeEventListener - the listener
	*/
	Subscribe(listener TreeEventListener)

	/*
		Unsubscribe remove a previously registered change event listener

			@param listener TreeEventListener - the listener
	*/
	Unsubscribe(listener TreeEventListener)
}
