// Package models - system data models
package models

// NodeKindENUMType bookmark node kind ENUM value type
type NodeKindENUMType string

const (
	// NodeKindBookmark a bookmark leaf node with a URL
	NodeKindBookmark NodeKindENUMType = "BOOKMARK"
	// NodeKindFolder a folder node holding an ordered list of children
	NodeKindFolder NodeKindENUMType = "FOLDER"
	// NodeKindSeparator a separator leaf node
	NodeKindSeparator NodeKindENUMType = "SEPARATOR"
)

// PrunedNode the minimal serializable representation of a bookmark tree node
//
// It intentionally drops all tree-store-specific metadata (timestamps, internal
// IDs, ordering hints). The order of the `Children` array IS the ordering.
type PrunedNode struct {
	// Kind node kind
	Kind NodeKindENUMType `json:"kind" validate:"required,node_kind"`

	// Title node display title. Unused for separators.
	Title string `json:"title,omitempty"`

	// URL bookmark target URL. Only set for bookmarks.
	URL string `json:"url,omitempty"`

	// Children ordered child nodes. Only set for folders.
	Children []PrunedNode `json:"children,omitempty" validate:"dive"`
}

// TreeNode a live node within the external bookmark tree store
//
// This is the rich node shape the tree store hands out. Pruning strips it down
// to a `PrunedNode`.
type TreeNode struct {
	// ID the tree store node ID
	ID string `json:"id" validate:"required"`

	// ParentID the tree store node ID of the parent. Empty for the tree root.
	ParentID string `json:"parent_id,omitempty"`

	// Index position of this node within its parent's child list
	Index int `json:"index"`

	// Kind node kind
	Kind NodeKindENUMType `json:"kind" validate:"required,node_kind"`

	// Title node display title
	Title string `json:"title,omitempty"`

	// URL bookmark target URL. Only set for bookmarks.
	URL string `json:"url,omitempty"`

	// Children ordered child nodes, populated by subtree queries
	Children []TreeNode `json:"children,omitempty"`
}
