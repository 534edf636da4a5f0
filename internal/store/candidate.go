package store

import (
	"strings"

	kerrors "opsvault/internal/errors"
)

// ProcessResult reports the outcome of processing a candidate out of
// the pipeline.
type ProcessResult struct {
	UndoID      string
	Adjustments []UniformPayload
	TotalHours  string
}

// EnsureCandidateRow finds the candidate's data row, creating one
// seeded from the card when it does not exist, and backfills any
// missing schema fields.
func EnsureCandidateRow(doc *Document, candidateID string) CandidateRow {
	for i := range doc.Kanban.Candidates {
		if doc.Kanban.Candidates[i].ID() == candidateID {
			doc.Kanban.Candidates[i].EnsureFields()
			doc.Kanban.Candidates[i][CandidateIDField] = candidateID
			return doc.Kanban.Candidates[i]
		}
	}
	row := NewCandidateRow(candidateID)
	for _, card := range doc.Kanban.Cards {
		if card.UUID == candidateID {
			row["Candidate Name"] = card.CandidateName
			row["REQ ID"] = card.ReqID
			break
		}
	}
	doc.Kanban.Candidates = append(doc.Kanban.Candidates, row)
	return row
}

// JobIDName joins the job id and name into the display form used on
// candidate rows.
func JobIDName(jobID, jobName string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{strings.TrimSpace(jobID), strings.TrimSpace(jobName)} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// ProcessCandidate finalizes a candidate: it records NEO arrival and
// departure times (rounded to the quarter hour), copies the card's
// identity fields onto the data row, deducts issued uniforms from the
// ledger, scrubs the sensitive PII fields, and removes the card. The
// pre-scrub card and row go into the recycle bin together with the
// uniform adjustments so an undo can put everything back.
func ProcessCandidate(doc *Document, candidateID, branch, arrival, departure string) (*ProcessResult, error) {
	candidateID = ClampString(candidateID, 128, true)
	if candidateID == "" {
		return nil, kerrors.ErrNotFound
	}

	cardIndex := -1
	for i := range doc.Kanban.Cards {
		if doc.Kanban.Cards[i].UUID == candidateID {
			cardIndex = i
			break
		}
	}
	if cardIndex < 0 {
		return nil, kerrors.ErrNotFound
	}

	selectedBranch := ClampString(branch, 40, true)
	if selectedBranch == "" {
		selectedBranch = doc.Kanban.Cards[cardIndex].Branch
	}
	if selectedBranch == "" {
		return nil, kerrors.ErrBranchRequired
	}

	arrivalMinutes, ok := ParseMilitaryTime(arrival)
	if !ok {
		return nil, kerrors.ErrInvalidTime
	}
	departureMinutes, ok := ParseMilitaryTime(departure)
	if !ok {
		return nil, kerrors.ErrInvalidTime
	}
	arrivalMinutes = RoundToQuarterHour(arrivalMinutes)
	departureMinutes = RoundToQuarterHour(departureMinutes)

	preCard := doc.Kanban.Cards[cardIndex]
	preRow := EnsureCandidateRow(doc, candidateID).clone()

	totalMinutes := departureMinutes - arrivalMinutes
	if totalMinutes < 0 {
		totalMinutes += 24 * 60
	}
	totalHours := FormatTotalHours(totalMinutes)

	doc.Kanban.Cards[cardIndex].Branch = selectedBranch
	doc.Kanban.Cards[cardIndex].UpdatedAt = NowMillis()

	row := EnsureCandidateRow(doc, candidateID)
	row["Candidate Name"] = preCard.CandidateName
	row["ICIMS ID"] = preCard.ICIMSID
	row["Employee ID"] = preCard.EmployeeID
	row["REQ ID"] = preCard.ReqID
	row["Job ID Name"] = JobIDName(preCard.JobID, preCard.JobName)
	row["Job Location"] = preCard.JobLocation
	row["Manager"] = preCard.Manager
	row["Branch"] = selectedBranch
	row["Neo Arrival Time"] = FormatMilitaryTime(arrivalMinutes)
	row["Neo Departure Time"] = FormatMilitaryTime(departureMinutes)
	row["Total Neo Hours"] = totalHours

	shirtPlan, pantsPlan := buildDeductionPlans(row)

	for _, field := range SensitivePIIFields {
		row[field] = ""
	}

	var adjustments []UniformPayload
	if shirtPlan != nil {
		adjustments = append(adjustments, DeductAcrossAlterations(
			doc, "Shirt", shirtPlan.size, shirtPlan.quantity, selectedBranch, shirtPlan.alterations)...)
	}
	if pantsPlan != nil {
		adjustments = append(adjustments, DeductAcrossAlterations(
			doc, "Pants", pantsPlan.size, pantsPlan.quantity, selectedBranch, pantsPlan.alterations)...)
	}

	doc.Kanban.Cards[cardIndex].ICIMSID = ""
	doc.Kanban.Cards[cardIndex].EmployeeID = ""

	kept := doc.Kanban.Cards[:0]
	for _, card := range doc.Kanban.Cards {
		if card.UUID != candidateID {
			kept = append(kept, card)
		}
	}
	doc.Kanban.Cards = kept

	undoID := PushRecycle(doc, RecycleItem{
		Type:               RecycleKanbanCards,
		Cards:              []Card{preCard},
		Candidates:         []CandidateRow{preRow},
		UniformAdjustments: adjustments,
	})

	return &ProcessResult{
		UndoID:      undoID,
		Adjustments: adjustments,
		TotalHours:  totalHours,
	}, nil
}

type deductionPlan struct {
	size        string
	quantity    int64
	alterations []string
}

// buildDeductionPlans reads the issuance fields off a candidate row.
// The Issued* fields take precedence over the plain sizing fields, and
// nothing is planned unless "Uniforms Issued" says yes.
func buildDeductionPlans(row CandidateRow) (shirt, pants *deductionPlan) {
	if !strings.EqualFold(strings.TrimSpace(row["Uniforms Issued"]), "yes") {
		return nil, nil
	}

	shirtSize := ClampString(row["Issued Shirt Size"], 40, true)
	if shirtSize == "" {
		shirtSize = ClampString(row["Shirt Size"], 40, true)
	}
	shirtsGivenValue := row["Issued Shirts Given"]
	if strings.TrimSpace(shirtsGivenValue) == "" {
		shirtsGivenValue = row["Shirts Given"]
	}
	shirtsGiven := ParseIssuedQuantity(shirtsGivenValue)
	shirtType := row["Issued Shirt Type"]
	if strings.TrimSpace(shirtType) == "" {
		shirtType = row["Shirt Type"]
	}
	if shirtSize != "" && shirtsGiven > 0 {
		shirt = &deductionPlan{
			size:        shirtSize,
			quantity:    shirtsGiven,
			alterations: ParseAlterationList(shirtType),
		}
	}

	waist := ClampString(row["Issued Waist"], 2, true)
	if waist == "" {
		waist = ClampString(row["Waist"], 2, true)
	}
	inseam := ClampString(row["Issued Inseam"], 2, true)
	if inseam == "" {
		inseam = ClampString(row["Inseam"], 2, true)
	}
	pantsSize := ClampString(row["Issued Pants Size"], 40, true)
	if pantsSize == "" {
		pantsSize = ClampString(row["Pants Size"], 40, true)
	}
	if pantsSize == "" && waist != "" && inseam != "" {
		pantsSize = waist + "x" + inseam
	}
	pantsGivenValue := row["Issued Pants Given"]
	if strings.TrimSpace(pantsGivenValue) == "" {
		pantsGivenValue = row["Pants Given"]
	}
	pantsGiven := ParseIssuedQuantity(pantsGivenValue)
	pantsType := row["Issued Pants Type"]
	if strings.TrimSpace(pantsType) == "" {
		pantsType = row["Pants Type"]
	}
	if pantsSize != "" && pantsGiven > 0 {
		pants = &deductionPlan{
			size:        pantsSize,
			quantity:    pantsGiven,
			alterations: []string{ClampString(pantsType, 80, true)},
		}
	}
	return shirt, pants
}

// clone copies a candidate row so recycle snapshots do not alias the
// live map.
func (r CandidateRow) clone() CandidateRow {
	out := make(CandidateRow, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// RemoveCandidate scrubs a candidate's PII and removes the card and row
// without processing, pushing a combined recycle entry.
func RemoveCandidate(doc *Document, candidateID string) (string, error) {
	candidateID = ClampString(candidateID, 128, true)
	if candidateID == "" {
		return "", kerrors.ErrNotFound
	}
	var preCards []Card
	kept := doc.Kanban.Cards[:0]
	for _, card := range doc.Kanban.Cards {
		if card.UUID == candidateID {
			preCards = append(preCards, card)
		} else {
			kept = append(kept, card)
		}
	}
	doc.Kanban.Cards = kept

	var preRows []CandidateRow
	keptRows := doc.Kanban.Candidates[:0]
	for _, row := range doc.Kanban.Candidates {
		if row.ID() == candidateID {
			preRows = append(preRows, row.clone())
		} else {
			keptRows = append(keptRows, row)
		}
	}
	doc.Kanban.Candidates = keptRows

	if len(preCards) == 0 && len(preRows) == 0 {
		return "", kerrors.ErrNotFound
	}
	return PushRecycle(doc, RecycleItem{
		Type:       RecycleKanbanCards,
		Cards:      preCards,
		Candidates: preRows,
	}), nil
}
