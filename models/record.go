package models

import "time"

// PrivateRecord the persisted encrypted form of the hidden bookmark folder
//
// This is a singleton entry. It exists from first-run setup until an explicit
// "clear all data" request, and is the only copy of the hidden subtree while
// the system is locked.
type PrivateRecord struct {
	// ID record entry ID. It must always be private-bookmarks
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=private-bookmarks"`

	// Title display name to restore when re-materializing the folder
	Title string `json:"title" gorm:"column:title;not null" validate:"required"`

	// ParentNodeID last known parent of the materialized folder. An empty value
	// means "no specific location / use the store default".
	ParentNodeID string `json:"parent_node_id" gorm:"column:parent_node_id"`

	// IndexInParentNode last known position within the parent's child list
	IndexInParentNode int `json:"index_in_parent_node" gorm:"column:index_in_parent_node"`

	// Salt random per-record salt mixed into the password before key derivation
	Salt string `json:"salt" gorm:"column:salt;not null" validate:"required,hexadecimal"`

	// EncryptedChildNodes packed encrypted blob of the serialized pruned child
	// node list. Decrypts to a JSON array of `PrunedNode`.
	EncryptedChildNodes string `json:"encrypted_child_nodes" gorm:"column:encrypted_child_nodes;not null" validate:"required"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// AnchorState the live materialized folder anchor
//
// This is a singleton entry. Its presence is the canonical definition of
// "unlocked": it is written after a successful unlock, and cleared as the very
// first step of locking so a crash mid-lock reads back as locked.
type AnchorState struct {
	// ID anchor entry ID. It must always be anchor-state
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=anchor-state"`

	// NodeID the tree store node ID of the materialized root folder
	NodeID string `json:"node_id" gorm:"column:node_id;not null" validate:"required"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}
