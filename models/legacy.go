package models

import "time"

// LegacyRecord the prior-generation encrypted record schema
//
// Read-only beyond a one-shot migration: the payload is authenticated by an
// HMAC-SHA256 signature instead of an AEAD tag, and may be zlib compressed.
// The migration rewrites it into a `PrivateRecord` and deletes the entry.
type LegacyRecord struct {
	// ID legacy entry ID. It must always be legacy-bookmarks
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=legacy-bookmarks"`

	// Title display name of the hidden folder
	Title string `json:"title" gorm:"column:title;not null" validate:"required"`

	// Salt random per-record salt of the legacy scheme
	Salt string `json:"salt" gorm:"column:salt;not null" validate:"required,hexadecimal"`

	// Signature hex HMAC-SHA256 over the payload under the password-derived key
	Signature string `json:"signature" gorm:"column:signature;not null" validate:"required,hexadecimal"`

	// Compressed whether the payload is zlib compressed
	Compressed bool `json:"compressed" gorm:"column:compressed"`

	// Payload base64 of the (possibly compressed) serialized legacy node list
	Payload string `json:"payload" gorm:"column:payload;not null" validate:"required"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// LegacyNode node shape used by the legacy payload
//
// Folders are recognized by a nil URL; separators use the magic title.
type LegacyNode struct {
	// Title node display title
	Title string `json:"title"`
	// URL bookmark target URL. nil marks a folder.
	URL *string `json:"url"`
	// Children ordered child nodes
	Children []LegacyNode `json:"children,omitempty"`
}

// LegacySeparatorTitle magic title marking a separator in legacy payloads
const LegacySeparatorTitle = "----------------"
