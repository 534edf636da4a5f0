package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UniformPayload is a normalized inventory mutation: one row's worth of
// identity plus a quantity to add or remove.
type UniformPayload struct {
	Alteration string `json:"alteration"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Waist      string `json:"waist,omitempty"`
	Inseam     string `json:"inseam,omitempty"`
	Quantity   int64  `json:"quantity"`
	Branch     string `json:"branch"`
}

// NormalizeUniformType canonicalizes the garment type. The two known
// plural spellings collapse to their singular display forms; anything
// else passes through clamped.
func NormalizeUniformType(value string) string {
	text := ClampString(value, 40, true)
	switch strings.ToLower(text) {
	case "shirts":
		return "Shirt"
	case "pants":
		return "Pants"
	}
	return text
}

// NormalizeUniform clamps and canonicalizes a raw payload. Pants sizes
// fall back to "WxI" when only measurements were supplied; shirt sizes
// are upper-cased.
func NormalizeUniform(payload UniformPayload) UniformPayload {
	out := UniformPayload{
		Alteration: ClampString(payload.Alteration, 80, true),
		Type:       NormalizeUniformType(payload.Type),
		Size:       ClampString(payload.Size, 40, true),
		Waist:      ClampString(payload.Waist, 2, true),
		Inseam:     ClampString(payload.Inseam, 2, true),
		Branch:     ClampString(payload.Branch, 40, true),
		Quantity:   payload.Quantity,
	}
	if out.Quantity < 0 {
		out.Quantity = 0
	}
	if out.Type == "Pants" && out.Size == "" && out.Waist != "" && out.Inseam != "" {
		out.Size = out.Waist + "x" + out.Inseam
	}
	if out.Type == "Shirt" {
		out.Size = ClampString(strings.ToUpper(out.Size), 40, true)
	}
	return out
}

// UniformKey builds the composite identity key, case-folded.
func UniformKey(branch, kind, size, alteration string) string {
	return strings.ToLower(branch) + "|" + strings.ToLower(kind) + "|" +
		strings.ToLower(size) + "|" + strings.ToLower(alteration)
}

func entryKey(entry UniformEntry) string {
	return UniformKey(entry.Branch, entry.Type, entry.Size, entry.Alteration)
}

func payloadKey(payload UniformPayload) string {
	return UniformKey(payload.Branch, payload.Type, payload.Size, payload.Alteration)
}

// UpsertUniform adds the payload quantity to the matching row, or
// inserts a fresh row when no row shares the key. Returns the affected
// row.
func UpsertUniform(doc *Document, payload UniformPayload) UniformEntry {
	key := payloadKey(payload)
	for i := range doc.Uniforms {
		if entryKey(doc.Uniforms[i]) != key {
			continue
		}
		next := doc.Uniforms[i].Quantity + payload.Quantity
		if next < 0 {
			next = 0
		}
		doc.Uniforms[i].Quantity = next
		return doc.Uniforms[i]
	}
	row := UniformEntry{
		ID:         NewID(),
		Alteration: payload.Alteration,
		Type:       payload.Type,
		Size:       payload.Size,
		Waist:      payload.Waist,
		Inseam:     payload.Inseam,
		Quantity:   payload.Quantity,
		Branch:     payload.Branch,
	}
	doc.Uniforms = append(doc.Uniforms, row)
	return row
}

// DecrementUniform removes up to the payload quantity from the matching
// row and returns how much was actually deducted. A row that reaches
// zero is deleted.
func DecrementUniform(doc *Document, payload UniformPayload) int64 {
	key := payloadKey(payload)
	for i := range doc.Uniforms {
		if entryKey(doc.Uniforms[i]) != key {
			continue
		}
		available := doc.Uniforms[i].Quantity
		if available < 0 {
			available = 0
		}
		if available <= 0 {
			return 0
		}
		amount := payload.Quantity
		if amount < 0 {
			amount = 0
		}
		deducted := available
		if amount < deducted {
			deducted = amount
		}
		doc.Uniforms[i].Quantity = available - deducted
		if doc.Uniforms[i].Quantity <= 0 {
			doc.Uniforms = append(doc.Uniforms[:i], doc.Uniforms[i+1:]...)
		}
		return deducted
	}
	return 0
}

// ParseIssuedQuantity reads an issued-garment count. Only one through
// four garments can be issued at once; anything else counts as zero.
func ParseIssuedQuantity(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 1 || n > 4 {
		return 0
	}
	return n
}

// ParseAlterationList reads an alteration field that may be a JSON
// array or a comma-separated list. Entries are clamped and deduplicated
// case-insensitively, first spelling wins.
func ParseAlterationList(value string) []string {
	text := strings.TrimSpace(value)
	if text == "" {
		return nil
	}

	var out []string
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		var parsed []any
		if err := json.Unmarshal([]byte(text), &parsed); err == nil {
			for _, item := range parsed {
				normalized := ClampString(looseString(item), 80, true)
				if normalized != "" {
					out = append(out, normalized)
				}
			}
		}
	} else {
		for _, part := range strings.Split(text, ",") {
			normalized := ClampString(part, 80, true)
			if normalized != "" {
				out = append(out, normalized)
			}
		}
	}

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, item := range out {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, item)
	}
	return deduped
}

// appendAdjustment folds a deduction into the adjustment list, summing
// quantities for entries that share a key.
func appendAdjustment(adjustments []UniformPayload, payload UniformPayload, quantity int64) []UniformPayload {
	if quantity <= 0 {
		return adjustments
	}
	key := payloadKey(payload)
	for i := range adjustments {
		if payloadKey(adjustments[i]) == key {
			adjustments[i].Quantity += quantity
			return adjustments
		}
	}
	return append(adjustments, UniformPayload{
		Alteration: payload.Alteration,
		Type:       payload.Type,
		Size:       payload.Size,
		Quantity:   quantity,
		Branch:     payload.Branch,
	})
}

// DeductAcrossAlterations issues garments against one or more candidate
// alteration buckets. A single candidate becomes one decrement for the
// full amount. Multiple candidates are drained one unit at a time in
// round-robin order; a successful deduction resets the miss counter,
// and a full round of misses terminates the loop. Returns the merged
// adjustment list describing exactly what was removed.
func DeductAcrossAlterations(doc *Document, kind, size string, quantity int64, branch string, alterations []string) []UniformPayload {
	var adjustments []UniformPayload
	normalizedKind := NormalizeUniformType(kind)
	normalizedSize := ClampString(size, 40, true)
	normalizedBranch := ClampString(branch, 40, true)
	normalizedQuantity := quantity
	if normalizedKind == "" || normalizedSize == "" || normalizedBranch == "" || normalizedQuantity <= 0 {
		return adjustments
	}

	targets := make([]string, 0, len(alterations))
	for _, value := range alterations {
		normalized := ClampString(value, 80, true)
		if normalized != "" {
			targets = append(targets, normalized)
		}
	}
	if len(targets) == 0 {
		targets = append(targets, "")
	}

	if len(targets) == 1 {
		payload := UniformPayload{
			Alteration: targets[0],
			Type:       normalizedKind,
			Size:       normalizedSize,
			Quantity:   normalizedQuantity,
			Branch:     normalizedBranch,
		}
		deducted := DecrementUniform(doc, payload)
		return appendAdjustment(adjustments, payload, deducted)
	}

	remaining := normalizedQuantity
	misses := 0
	for idx := 0; remaining > 0 && misses < len(targets); idx++ {
		payload := UniformPayload{
			Alteration: targets[idx%len(targets)],
			Type:       normalizedKind,
			Size:       normalizedSize,
			Quantity:   1,
			Branch:     normalizedBranch,
		}
		deducted := DecrementUniform(doc, payload)
		if deducted > 0 {
			remaining -= deducted
			misses = 0
			adjustments = appendAdjustment(adjustments, payload, deducted)
		} else {
			misses++
		}
	}
	return adjustments
}
