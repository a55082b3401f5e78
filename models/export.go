package models

// ExportKindENUMType export file kind ENUM value type
type ExportKindENUMType string

const (
	// ExportKindEncrypted export carrying the encrypted child node blob
	ExportKindEncrypted ExportKindENUMType = "encrypted"
	// ExportKindPlain export carrying the child nodes in the clear
	ExportKindPlain ExportKindENUMType = "plain"
)

// CurrentExportVersion version written into newly produced export files
const CurrentExportVersion = 1

// ExportFile round-trip import/export file format
//
// Encrypted exports carry the salt and packed ciphertext; plain exports carry
// the pruned child nodes directly.
type ExportFile struct {
	// Kind export file kind
	Kind ExportKindENUMType `json:"kind" validate:"required,export_kind"`

	// Version export format version
	Version int `json:"version" validate:"required,min=1"`

	// Salt per-record salt. Only set for encrypted exports.
	Salt string `json:"salt,omitempty"`

	// EncryptedChildNodes packed encrypted child node blob. Only set for
	// encrypted exports.
	EncryptedChildNodes string `json:"encrypted_child_nodes,omitempty"`

	// ChildNodes pruned child nodes. Only set for plain exports.
	ChildNodes []PrunedNode `json:"child_nodes,omitempty" validate:"dive"`
}
