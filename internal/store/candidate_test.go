package store

import (
	"errors"
	"testing"

	kerrors "opsvault/internal/errors"
)

func processableDoc() *Document {
	doc := DefaultDocument()
	doc.Kanban.Columns = []Column{{ID: "col-1", Name: "NEO", Order: 1}}
	doc.Kanban.Cards = []Card{{
		UUID:          "card-1",
		CandidateName: "Pat Doe",
		ICIMSID:       "IC-9",
		EmployeeID:    "E-7",
		JobID:         "1234",
		ReqID:         "REQ-1",
		JobName:       "Driver",
		JobLocation:   "Depot",
		Manager:       "Sam",
		Branch:        "North",
		ColumnID:      "col-1",
		Order:         1,
	}}
	return doc
}

func TestProcessCandidateHappyPath(t *testing.T) {
	doc := processableDoc()

	result, err := ProcessCandidate(doc, "card-1", "", "0905", "1737")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}
	if len(doc.Kanban.Cards) != 0 {
		t.Error("Expected the processed card removed")
	}
	if len(doc.Kanban.Candidates) != 1 {
		t.Fatalf("Expected one candidate row, got %d", len(doc.Kanban.Candidates))
	}
	row := doc.Kanban.Candidates[0]
	if row["Neo Arrival Time"] != "09:00" {
		t.Errorf("Expected arrival rounded to 09:00, got %q", row["Neo Arrival Time"])
	}
	if row["Neo Departure Time"] != "17:30" {
		t.Errorf("Expected departure rounded to 17:30, got %q", row["Neo Departure Time"])
	}
	if row["Total Neo Hours"] != "8.50" {
		t.Errorf("Expected 8.50 total hours, got %q", row["Total Neo Hours"])
	}
	if row["Job ID Name"] != "1234 Driver" {
		t.Errorf("Expected the joined job id name, got %q", row["Job ID Name"])
	}
	if row["Branch"] != "North" {
		t.Errorf("Expected the card's branch kept, got %q", row["Branch"])
	}
	if result.TotalHours != "8.50" {
		t.Errorf("Expected result hours 8.50, got %q", result.TotalHours)
	}
}

func TestProcessCandidateScrubsPII(t *testing.T) {
	doc := processableDoc()
	row := NewCandidateRow("card-1")
	row["Social"] = "123-45-6789"
	row["DOB"] = "1990-01-01"
	row["Contact Phone"] = "555-0100"
	doc.Kanban.Candidates = []CandidateRow{row}

	result, err := ProcessCandidate(doc, "card-1", "", "0900", "1700")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}

	live := doc.Kanban.Candidates[0]
	for _, field := range SensitivePIIFields {
		if live[field] != "" {
			t.Errorf("Expected %q scrubbed, got %q", field, live[field])
		}
	}
	if live["ICIMS ID"] != "IC-9" {
		t.Error("Expected non-sensitive identifiers kept on the row")
	}

	// The recycle snapshot keeps the pre-scrub data so undo restores it.
	item := PopRecycle(doc, result.UndoID)
	if item == nil {
		t.Fatal("Expected a recycle entry")
	}
	if item.Candidates[0]["Social"] != "123-45-6789" {
		t.Error("Expected the snapshot to carry the original PII")
	}
	if item.Cards[0].ICIMSID != "IC-9" {
		t.Error("Expected the snapshot card unscrubbed")
	}
}

func TestProcessCandidateDeductsUniforms(t *testing.T) {
	doc := processableDoc()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "L", Branch: "North", Quantity: 5})
	UpsertUniform(doc, UniformPayload{Alteration: "Cargo", Type: "Pants", Size: "32x30", Branch: "North", Quantity: 5})

	row := NewCandidateRow("card-1")
	row["Uniforms Issued"] = "Yes"
	row["Issued Shirt Size"] = "l"
	row["Issued Shirts Given"] = "2"
	row["Issued Waist"] = "32"
	row["Issued Inseam"] = "30"
	row["Issued Pants Given"] = "3"
	row["Issued Pants Type"] = "Cargo"
	doc.Kanban.Candidates = []CandidateRow{row}

	result, err := ProcessCandidate(doc, "card-1", "North", "0900", "1700")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}

	var shirtLeft, pantsLeft int64 = -1, -1
	for _, entry := range doc.Uniforms {
		switch entry.Type {
		case "Shirt":
			shirtLeft = entry.Quantity
		case "Pants":
			pantsLeft = entry.Quantity
		}
	}
	if shirtLeft != 3 {
		t.Errorf("Expected 3 shirts left, got %d", shirtLeft)
	}
	if pantsLeft != 2 {
		t.Errorf("Expected 2 pants left, got %d", pantsLeft)
	}

	var total int64
	for _, adjustment := range result.Adjustments {
		total += adjustment.Quantity
	}
	if total != 5 {
		t.Errorf("Expected 5 total units issued, got %d", total)
	}
}

func TestProcessCandidateSkipsUniformsWhenNotIssued(t *testing.T) {
	doc := processableDoc()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "L", Branch: "North", Quantity: 5})

	row := NewCandidateRow("card-1")
	row["Issued Shirt Size"] = "L"
	row["Issued Shirts Given"] = "2"
	doc.Kanban.Candidates = []CandidateRow{row}

	result, err := ProcessCandidate(doc, "card-1", "", "0900", "1700")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}
	if len(result.Adjustments) != 0 {
		t.Errorf("Expected no deductions without Uniforms Issued=yes, got %+v", result.Adjustments)
	}
	if doc.Uniforms[0].Quantity != 5 {
		t.Errorf("Expected stock untouched, got %d", doc.Uniforms[0].Quantity)
	}
}

func TestProcessCandidateErrors(t *testing.T) {
	doc := processableDoc()
	doc.Kanban.Cards[0].Branch = ""

	if _, err := ProcessCandidate(doc, "missing", "North", "0900", "1700"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := ProcessCandidate(doc, "card-1", "", "0900", "1700"); !errors.Is(err, kerrors.ErrBranchRequired) {
		t.Errorf("Expected ErrBranchRequired, got %v", err)
	}
	if _, err := ProcessCandidate(doc, "card-1", "North", "9am", "1700"); !errors.Is(err, kerrors.ErrInvalidTime) {
		t.Errorf("Expected ErrInvalidTime, got %v", err)
	}
}

func TestProcessCandidateOvernightShift(t *testing.T) {
	doc := processableDoc()
	_, err := ProcessCandidate(doc, "card-1", "", "2200", "0600")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}
	if got := doc.Kanban.Candidates[0]["Total Neo Hours"]; got != "8.00" {
		t.Errorf("Expected an overnight shift to wrap to 8.00 hours, got %q", got)
	}
}

func TestProcessCandidateUndoRestoresEverything(t *testing.T) {
	doc := processableDoc()
	UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "L", Branch: "North", Quantity: 2})
	row := NewCandidateRow("card-1")
	row["Uniforms Issued"] = "yes"
	row["Issued Shirt Size"] = "L"
	row["Issued Shirts Given"] = "2"
	doc.Kanban.Candidates = []CandidateRow{row}

	result, err := ProcessCandidate(doc, "card-1", "", "0900", "1700")
	if err != nil {
		t.Fatalf("ProcessCandidate failed: %v", err)
	}
	if len(doc.Uniforms) != 0 {
		t.Fatal("Expected the shirt stock drained")
	}

	item := PopRecycle(doc, result.UndoID)
	if item == nil {
		t.Fatal("Expected a recycle entry")
	}
	if !Restore(doc, item) {
		t.Fatal("Expected Restore to succeed")
	}
	if len(doc.Kanban.Cards) != 1 || doc.Kanban.Cards[0].UUID != "card-1" {
		t.Error("Expected the card restored")
	}
	if len(doc.Uniforms) != 1 || doc.Uniforms[0].Quantity != 2 {
		t.Errorf("Expected the issued shirts re-credited, got %+v", doc.Uniforms)
	}
}

func TestRemoveCandidate(t *testing.T) {
	doc := processableDoc()
	doc.Kanban.Candidates = []CandidateRow{NewCandidateRow("card-1")}

	undoID, err := RemoveCandidate(doc, "card-1")
	if err != nil {
		t.Fatalf("RemoveCandidate failed: %v", err)
	}
	if len(doc.Kanban.Cards) != 0 || len(doc.Kanban.Candidates) != 0 {
		t.Error("Expected the card and row removed")
	}
	item := PopRecycle(doc, undoID)
	if item == nil || len(item.Cards) != 1 || len(item.Candidates) != 1 {
		t.Fatalf("Expected a combined snapshot, got %+v", item)
	}

	if _, err := RemoveCandidate(doc, "card-1"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a missing candidate, got %v", err)
	}
}
