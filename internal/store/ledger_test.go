package store

import "testing"

func TestNormalizeUniform(t *testing.T) {
	tests := []struct {
		name string
		in   UniformPayload
		want UniformPayload
	}{
		{
			name: "shirts collapse to Shirt with uppercase size",
			in:   UniformPayload{Type: "shirts", Size: "xl", Branch: "North", Quantity: 2},
			want: UniformPayload{Type: "Shirt", Size: "XL", Branch: "North", Quantity: 2},
		},
		{
			name: "pants size falls back to waist x inseam",
			in:   UniformPayload{Type: "pants", Waist: "32", Inseam: "30", Branch: "North", Quantity: 1},
			want: UniformPayload{Type: "Pants", Size: "32x30", Waist: "32", Inseam: "30", Branch: "North", Quantity: 1},
		},
		{
			name: "negative quantity clamps to zero",
			in:   UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: -3},
			want: UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 0},
		},
		{
			name: "unknown type passes through trimmed",
			in:   UniformPayload{Type: "  Jacket  ", Size: "L", Branch: "North", Quantity: 1},
			want: UniformPayload{Type: "Jacket", Size: "L", Branch: "North", Quantity: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUniform(tt.in)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestUpsertUniformSumsOnKeyMatch(t *testing.T) {
	doc := DefaultDocument()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 2})
	UpsertUniform(doc, UniformPayload{Type: "shirt", Size: "m", Branch: "NORTH", Quantity: 3})

	if len(doc.Uniforms) != 1 {
		t.Fatalf("Expected one row after case-folded upsert, got %d", len(doc.Uniforms))
	}
	if doc.Uniforms[0].Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", doc.Uniforms[0].Quantity)
	}
	if doc.Uniforms[0].ID == "" {
		t.Error("Expected the inserted row to carry an id")
	}
}

func TestDecrementUniformRemovesAtZero(t *testing.T) {
	doc := DefaultDocument()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 2})

	deducted := DecrementUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 5})
	if deducted != 2 {
		t.Errorf("Expected deduction capped at available stock, got %d", deducted)
	}
	if len(doc.Uniforms) != 0 {
		t.Errorf("Expected the exhausted row to be removed, got %d rows", len(doc.Uniforms))
	}

	if got := DecrementUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 1}); got != 0 {
		t.Errorf("Expected no deduction from missing stock, got %d", got)
	}
}

func TestDeductAcrossAlterationsRoundRobin(t *testing.T) {
	doc := DefaultDocument()
	for _, alteration := range []string{"Hemmed", "Taped", "Plain"} {
		UpsertUniform(doc, UniformPayload{
			Alteration: alteration, Type: "Shirt", Size: "M", Branch: "BranchA", Quantity: 2,
		})
	}

	adjustments := DeductAcrossAlterations(doc, "Shirt", "M", 5, "BranchA", []string{"Hemmed", "Taped", "Plain"})

	var total int64
	for _, adjustment := range adjustments {
		total += adjustment.Quantity
		if adjustment.Quantity < 0 {
			t.Errorf("Expected non-negative adjustment, got %+v", adjustment)
		}
	}
	if total != 5 {
		t.Errorf("Expected adjustments to sum to 5, got %d", total)
	}

	var remaining int64
	for _, entry := range doc.Uniforms {
		if entry.Quantity < 0 {
			t.Errorf("Expected no alteration below zero, got %+v", entry)
		}
		remaining += entry.Quantity
	}
	if remaining != 1 {
		t.Errorf("Expected 1 unit left in stock, got %d", remaining)
	}
	// Round-robin takes one from each bucket before a second pass, so
	// the first two buckets are drained and the third keeps one unit.
	if len(doc.Uniforms) != 1 || doc.Uniforms[0].Alteration != "Plain" {
		t.Errorf("Expected only the Plain bucket to survive, got %+v", doc.Uniforms)
	}
}

func TestDeductAcrossAlterationsSingleCandidate(t *testing.T) {
	doc := DefaultDocument()
	UpsertUniform(doc, UniformPayload{Type: "Pants", Size: "32x30", Branch: "North", Quantity: 4})

	adjustments := DeductAcrossAlterations(doc, "Pants", "32x30", 3, "North", nil)
	if len(adjustments) != 1 || adjustments[0].Quantity != 3 {
		t.Fatalf("Expected one adjustment of 3, got %+v", adjustments)
	}
	if doc.Uniforms[0].Quantity != 1 {
		t.Errorf("Expected 1 unit remaining, got %d", doc.Uniforms[0].Quantity)
	}
}

func TestDeductAcrossAlterationsTerminatesOnExhaustion(t *testing.T) {
	doc := DefaultDocument()
	UpsertUniform(doc, UniformPayload{Alteration: "A", Type: "Shirt", Size: "M", Branch: "North", Quantity: 1})

	adjustments := DeductAcrossAlterations(doc, "Shirt", "M", 4, "North", []string{"A", "B", "C"})
	var total int64
	for _, adjustment := range adjustments {
		total += adjustment.Quantity
	}
	if total != 1 {
		t.Errorf("Expected only available stock deducted, got %d", total)
	}
}

func TestDeductAcrossAlterationsRejectsBlankIdentity(t *testing.T) {
	doc := DefaultDocument()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 2})

	if got := DeductAcrossAlterations(doc, "Shirt", "", 1, "North", nil); len(got) != 0 {
		t.Errorf("Expected no deduction without a size, got %+v", got)
	}
	if got := DeductAcrossAlterations(doc, "Shirt", "M", 1, "", nil); len(got) != 0 {
		t.Errorf("Expected no deduction without a branch, got %+v", got)
	}
}

func TestParseIssuedQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 1},
		{"4", 4},
		{" 3 ", 3},
		{"5", 0},
		{"0", 0},
		{"-2", 0},
		{"lots", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseIssuedQuantity(tt.in); got != tt.want {
			t.Errorf("ParseIssuedQuantity(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseAlterationList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma list", "Hemmed, Taped", []string{"Hemmed", "Taped"}},
		{"json array", `["Hemmed","Taped"]`, []string{"Hemmed", "Taped"}},
		{"case-insensitive dedupe keeps first", "Hemmed, hemmed, Taped", []string{"Hemmed", "Taped"}},
		{"empty", "   ", nil},
		{"blank entries dropped", ",,Taped,", []string{"Taped"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAlterationList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}
