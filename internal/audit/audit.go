package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"opsvault/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Table        string `json:"table,omitempty"`         // For delete.
	RowsCount    int    `json:"rows_count,omitempty"`    // For delete.
	UndoID       string `json:"undo_id,omitempty"`       // For delete/process.
	Action       string `json:"action,omitempty"`        // For import (append/view/replace).
	SourceID     string `json:"source_id,omitempty"`     // For import/source switch.
	OutputPath   string `json:"output_path,omitempty"`   // For export.
	CandidateID  string `json:"candidate_id,omitempty"`  // For process.
	IssuedCount  int64  `json:"issued_count,omitempty"`  // For process.
	ResultCode   string `json:"result_code,omitempty"`   // For validate/import failures.
	LockoutUntil string `json:"lockout_until,omitempty"` // For unlock rate limiting.
}

// Log appends an entry to the audit log.
// If logging fails, it logs nothing; operations should not fail just
// because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	root := configs.UserVaultSettings.StorageRoot
	if root == "" {
		return ""
	}
	return filepath.Join(root, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
