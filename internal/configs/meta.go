package configs

import (
	"os"
	"strings"
)

// CurrentSourceID identifies the main database, as opposed to an
// imported read-only one.
const CurrentSourceID = "current"

// DBEntry describes one imported database stored under dbs/.
type DBEntry struct {
	ID         string `toml:"id"`
	Filename   string `toml:"filename"`
	Name       string `toml:"name"`
	ImportedAt string `toml:"imported_at"`
}

// Meta is the plaintext sidecar next to the encrypted store: the list
// of imported databases, the active selector, and the flags that must
// be readable before any password is entered.
type Meta struct {
	Databases         []DBEntry `toml:"databases"`
	ActiveDB          string    `toml:"active_db"`
	SetupComplete     bool      `toml:"setup_complete"`
	BiometricsEnabled bool      `toml:"biometrics_enabled"`
}

// EnsureMetaShape defaults missing fields in place.
func EnsureMetaShape(meta *Meta) {
	if meta.Databases == nil {
		meta.Databases = []DBEntry{}
	}
	if strings.TrimSpace(meta.ActiveDB) == "" {
		meta.ActiveDB = CurrentSourceID
	}
}

// LoadMeta reads the metadata file. A missing or unreadable file yields
// a defaulted Meta.
func LoadMeta(path string) *Meta {
	var meta Meta
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(path, &meta); err != nil {
			meta = Meta{}
		}
	}
	EnsureMetaShape(&meta)
	return &meta
}

// SaveMeta normalizes and persists the metadata file.
func SaveMeta(path string, meta *Meta) error {
	EnsureMetaShape(meta)
	return SaveTOML(path, meta)
}

// Source is one selectable database, for display.
type Source struct {
	ID       string
	Name     string
	ReadOnly bool
}

// ListSources returns the current database followed by every imported
// one. Imported entries without an id are skipped; names fall back to
// the filename, then to a generic label.
func ListSources(meta *Meta) []Source {
	out := []Source{{ID: CurrentSourceID, Name: "Current Database"}}
	for _, entry := range meta.Databases {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			continue
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = strings.TrimSpace(entry.Filename)
		}
		if name == "" {
			name = "Imported Database"
		}
		out = append(out, Source{ID: id, Name: name, ReadOnly: true})
	}
	return out
}

// ResolveActiveSource returns the active source id, falling back to
// "current" when the selector points at a database that no longer
// exists.
func ResolveActiveSource(meta *Meta) string {
	requested := strings.TrimSpace(meta.ActiveDB)
	if requested == "" {
		return CurrentSourceID
	}
	for _, source := range ListSources(meta) {
		if source.ID == requested {
			return requested
		}
	}
	return CurrentSourceID
}

// FindDatabase returns the imported database entry with the given id.
func FindDatabase(meta *Meta, id string) (DBEntry, bool) {
	for _, entry := range meta.Databases {
		if entry.ID == id {
			return entry, true
		}
	}
	return DBEntry{}, false
}

// BuildDBFilename sanitizes an id into a safe .enc filename. Anything
// outside [A-Za-z0-9_-] becomes an underscore; a fully-sanitized-away
// id gets a timestamped fallback name.
func BuildDBFilename(id, fallbackSuffix string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(id) {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	basename := strings.Trim(b.String(), "_")
	if basename == "" {
		basename = "imported-" + fallbackSuffix
	}
	return basename + ".enc"
}
