package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Validation result codes. "broken" marks structural damage; "fraud"
// marks content that looks deliberately hostile.
const (
	CodeBroken = "broken"
	CodeFraud  = "fraud"
)

// Result reports the outcome of validating an imported document.
type Result struct {
	OK      bool
	Code    string
	Message string
}

func broken(message string) Result {
	return Result{Code: CodeBroken, Message: message}
}

func fraud(message string) Result {
	return Result{Code: CodeFraud, Message: message}
}

var okResult = Result{OK: true}

// forbiddenKeys are object keys that have no business in a data file
// and indicate a prototype-pollution payload.
var forbiddenKeys = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// injectionMarkers are substrings that mark SQL or command injection
// attempts. Matched case-insensitively against every string value.
var injectionMarkers = []string{
	"drop table",
	"union select",
	"insert into",
	"delete from",
	"xp_cmdshell",
	"exec(",
	"';",
	"--",
}

// longTextFields may hold up to 2000 characters; every other string is
// capped at 200.
var longTextFields = map[string]bool{
	"Additional Details": true,
	"Additional Notes":   true,
}

const (
	defaultFieldCap  = 200
	longTextFieldCap = 2000
)

// ValidateRaw parses and validates an imported payload before it is
// converted to a typed document. It must see the raw decoded value:
// hostile keys like __proto__ would be silently dropped by a typed
// decode.
func ValidateRaw(data []byte) Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return broken("Database payload is not valid JSON.")
	}
	return Validate(value)
}

// Validate checks a decoded payload. Checks run in order and
// short-circuit on the first failure.
func Validate(value any) Result {
	if result := checkForbiddenKeys(value); !result.OK {
		return result
	}

	root, ok := value.(map[string]any)
	if !ok {
		return broken("Database payload is not an object.")
	}

	if looseInt(root["version"]) > CurrentVersion {
		return broken("Database version is newer than this app supports.")
	}

	if result := checkContainers(root); !result.OK {
		return result
	}
	if result := checkStrings(value, ""); !result.OK {
		return result
	}
	if result := checkCandidateKeys(root); !result.OK {
		return result
	}
	if result := checkUniformRows(root); !result.OK {
		return result
	}
	return okResult
}

func checkForbiddenKeys(value any) Result {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			if forbiddenKeys[key] {
				return fraud(fmt.Sprintf("Forbidden key %q detected.", key))
			}
			if result := checkForbiddenKeys(child); !result.OK {
				return result
			}
		}
	case []any:
		for _, child := range v {
			if result := checkForbiddenKeys(child); !result.OK {
				return result
			}
		}
	}
	return okResult
}

func checkContainers(root map[string]any) Result {
	kanban, ok := root["kanban"].(map[string]any)
	if !ok {
		return broken("Kanban data is missing or invalid.")
	}
	if _, ok := kanban["columns"].([]any); !ok {
		return broken("Kanban columns are missing.")
	}
	if _, ok := kanban["cards"].([]any); !ok {
		return broken("Kanban cards are missing.")
	}
	if _, ok := kanban["candidates"].([]any); !ok {
		return broken("Candidate rows are missing.")
	}
	// uniforms and recycle are filled in by the migration ladder (v3 and
	// v2 steps), so older exports may omit them entirely. Present but
	// wrong-shaped is still damage.
	if raw, present := root["uniforms"]; present {
		if _, ok := raw.([]any); !ok {
			return broken("Uniform inventory is invalid.")
		}
	}
	if _, ok := root["weekly"].(map[string]any); !ok {
		return broken("Weekly data is invalid.")
	}
	if _, ok := root["todos"].([]any); !ok {
		return broken("Todo data is invalid.")
	}
	if raw, present := root["recycle"]; present {
		if _, ok := raw.(map[string]any); !ok {
			return broken("Recycle data is invalid.")
		}
	}
	return okResult
}

// checkStrings walks every string value, tracking the owning key so the
// per-field length cap can be applied.
func checkStrings(value any, key string) Result {
	switch v := value.(type) {
	case string:
		for _, ch := range v {
			if (ch < 32 && ch != '\n' && ch != '\t') || ch == 127 {
				return fraud("Control characters detected in a field value.")
			}
		}
		lowered := strings.ToLower(v)
		for _, marker := range injectionMarkers {
			if strings.Contains(lowered, marker) {
				return fraud("Suspicious injection pattern detected in a field value.")
			}
		}
		limit := defaultFieldCap
		if longTextFields[key] {
			limit = longTextFieldCap
		}
		if len([]rune(v)) > limit {
			return broken(fmt.Sprintf("Field %q exceeds its maximum length.", key))
		}
	case map[string]any:
		for childKey, child := range v {
			if result := checkStrings(child, childKey); !result.OK {
				return result
			}
		}
	case []any:
		for _, child := range v {
			if result := checkStrings(child, key); !result.OK {
				return result
			}
		}
	}
	return okResult
}

func checkCandidateKeys(root map[string]any) Result {
	allowed := make(map[string]bool, len(CandidateFields))
	for _, field := range CandidateFields {
		allowed[field] = true
	}
	kanban, _ := root["kanban"].(map[string]any)
	rows, _ := kanban["candidates"].([]any)
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			return broken("Candidate rows are invalid.")
		}
		for key := range row {
			if !allowed[key] {
				return broken(fmt.Sprintf("Candidate row carries an unknown field %q.", key))
			}
		}
	}
	return okResult
}

const (
	minPantsWaist  = 20
	maxPantsWaist  = 55
	minPantsInseam = 27
	maxPantsInseam = 36
)

func checkUniformRows(root map[string]any) Result {
	rows, _ := root["uniforms"].([]any)
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			return broken("Uniform inventory rows are invalid.")
		}
		quantity := looseInt(row["quantity"])
		if quantity < 0 {
			return broken("Uniform quantities must be non-negative.")
		}
		kind := NormalizeUniformType(looseString(row["type"]))
		if kind != "Pants" {
			continue
		}
		waist, inseam, ok := resolvePantsMeasurements(
			looseString(row["waist"]),
			looseString(row["inseam"]),
			looseString(row["size"]),
		)
		if !ok {
			return broken("Pants rows must carry waist and inseam measurements.")
		}
		if waist < minPantsWaist || waist > maxPantsWaist {
			return broken("Pants waist is out of range.")
		}
		if inseam < minPantsInseam || inseam > maxPantsInseam {
			return broken("Pants inseam is out of range.")
		}
	}
	return okResult
}

// resolvePantsMeasurements reads the waist and inseam fields, falling
// back to a "WxI" size value.
func resolvePantsMeasurements(waist, inseam, size string) (int64, int64, bool) {
	w := strings.TrimSpace(waist)
	i := strings.TrimSpace(inseam)
	if w == "" || i == "" {
		parts := strings.SplitN(strings.ToLower(strings.TrimSpace(size)), "x", 2)
		if len(parts) == 2 {
			if w == "" {
				w = strings.TrimSpace(parts[0])
			}
			if i == "" {
				i = strings.TrimSpace(parts[1])
			}
		}
	}
	wn, werr := strconv.ParseInt(w, 10, 64)
	in, ierr := strconv.ParseInt(i, 10, 64)
	if werr != nil || ierr != nil {
		return 0, 0, false
	}
	return wn, in, true
}

// looseInt reads a number the way the document stores them: as JSON
// numbers or as numeric strings.
func looseInt(value any) int64 {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return int64(v - 0.5)
		}
		return int64(v + 0.5)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func looseString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// ValidateBasic is the light self-check surfaced by the validate
// command: containers present and every row id non-empty.
func ValidateBasic(doc *Document) Result {
	if doc == nil {
		return broken("Database payload is not an object.")
	}
	if doc.Version > CurrentVersion {
		return broken("Database version is newer than this app supports.")
	}
	for _, column := range doc.Kanban.Columns {
		if column.ID == "" {
			return broken("Column IDs are invalid.")
		}
	}
	for _, card := range doc.Kanban.Cards {
		if card.UUID == "" {
			return broken("Card IDs are invalid.")
		}
		if card.ColumnID == "" {
			return broken("Card column references are invalid.")
		}
	}
	for _, row := range doc.Kanban.Candidates {
		if row.ID() == "" {
			return broken("Candidate UUIDs are missing.")
		}
	}
	return okResult
}
