package storage

// Well-known blob names. Callers address blobs by name only; the adapter
// decides where and how bytes live.
const (
	// DataFile is the main encrypted document envelope.
	DataFile = "workflow.enc"

	// AuthFile is the plaintext password-verifier record.
	AuthFile = "auth.json"

	// MetaFile is the plaintext store metadata.
	MetaFile = "meta.toml"

	// TemplatesFile is the plaintext email-template configuration.
	TemplatesFile = "email_templates.toml"
)

// Store is the byte-blob boundary between the engine and the platform.
//
// ReadBytes reports ok=false when the named blob does not exist; the
// engine treats absence the same on first run (bootstrap a default
// document) and on corruption.
type Store interface {
	ReadBytes(name string) (data []byte, ok bool, err error)
	WriteBytes(name string, data []byte) error
}
