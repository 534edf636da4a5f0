package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CurrentVersion is the document schema version this build reads and
// writes.
const CurrentVersion = 3

// Table identifiers, in display order.
const (
	TableKanbanColumns    = "kanban_columns"
	TableKanbanCards      = "kanban_cards"
	TableCandidateData    = "candidate_data"
	TableUniformInventory = "uniform_inventory"
	TableWeeklyEntries    = "weekly_entries"
	TableTodos            = "todos"
)

// TableOrder lists every table in its canonical order.
var TableOrder = []string{
	TableKanbanColumns,
	TableKanbanCards,
	TableCandidateData,
	TableUniformInventory,
	TableWeeklyEntries,
	TableTodos,
}

// TableDisplayName maps a table id to its human-readable name.
func TableDisplayName(tableID string) string {
	switch tableID {
	case TableKanbanColumns:
		return "Kanban Columns"
	case TableKanbanCards:
		return "Kanban Cards"
	case TableCandidateData:
		return "Onboarding Candidate Data"
	case TableUniformInventory:
		return "Uniform Inventory"
	case TableWeeklyEntries:
		return "Weekly Entries"
	case TableTodos:
		return "Todos"
	}
	return tableID
}

// CandidateFields is the fixed schema of a candidate row. Every row
// carries exactly these keys; "candidate UUID" ties the row to its
// kanban card.
var CandidateFields = []string{
	"Candidate Name",
	"Hire Date",
	"ICIMS ID",
	"Employee ID",
	"Neo Arrival Time",
	"Neo Departure Time",
	"Total Neo Hours",
	"REQ ID",
	"Job ID Name",
	"Job Location",
	"Manager",
	"Branch",
	"Contact Phone",
	"Contact Email",
	"Background Provider",
	"Background Cleared Date",
	"Background MVR Flag",
	"License Type",
	"MA CORI Status",
	"MA CORI Date",
	"NH GC Status",
	"NH GC Expiration Date",
	"NH GC ID Number",
	"ME GC Status",
	"ME GC Expiration Date",
	"ID Type",
	"State Abbreviation",
	"ID Number",
	"DOB",
	"EXP",
	"Other ID Type",
	"Social",
	"Bank Name",
	"Account Type",
	"Routing Number",
	"Account Number",
	"Shirt Size",
	"Waist",
	"Inseam",
	"Issued Shirt Size",
	"Issued Waist",
	"Issued Inseam",
	"Issued Pants Size",
	"Issued Shirt Type",
	"Issued Shirts Given",
	"Issued Pants Type",
	"Issued Pants Given",
	"Uniforms Issued",
	"Shirt Type",
	"Shirts Given",
	"Pants Type",
	"Pants Given",
	"Pants Size",
	"Boots Size",
	"Emergency Contact Name",
	"Emergency Contact Relationship",
	"Emergency Contact Phone",
	"Additional Details",
	"Additional Notes",
	"candidate UUID",
}

// SensitivePIIFields are the candidate row fields blanked when a
// candidate is processed out of the pipeline.
var SensitivePIIFields = []string{
	"Contact Phone",
	"Contact Email",
	"Background Provider",
	"Background Cleared Date",
	"Background MVR Flag",
	"License Type",
	"MA CORI Status",
	"MA CORI Date",
	"NH GC Status",
	"NH GC Expiration Date",
	"NH GC ID Number",
	"ME GC Status",
	"ME GC Expiration Date",
	"ID Type",
	"State Abbreviation",
	"ID Number",
	"DOB",
	"EXP",
	"Other ID Type",
	"Social",
	"Bank Name",
	"Account Type",
	"Routing Number",
	"Account Number",
	"Emergency Contact Name",
	"Emergency Contact Relationship",
	"Emergency Contact Phone",
	"Additional Details",
	"Additional Notes",
}

// CandidateIDField is the candidate row key that carries the row id.
const CandidateIDField = "candidate UUID"

// Column is a kanban pipeline stage.
type Column struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int64  `json:"order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Card is a candidate's kanban card. The sensitive identifiers
// (ICIMSID, EmployeeID) are blanked when the candidate is processed.
type Card struct {
	UUID          string `json:"uuid"`
	CandidateName string `json:"candidate_name"`
	ICIMSID       string `json:"icims_id"`
	EmployeeID    string `json:"employee_id"`
	JobID         string `json:"job_id"`
	ReqID         string `json:"req_id"`
	JobName       string `json:"job_name"`
	JobLocation   string `json:"job_location"`
	Manager       string `json:"manager"`
	Branch        string `json:"branch"`
	ColumnID      string `json:"column_id"`
	Order         int64  `json:"order"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// CandidateRow is a flat field→value record keyed by CandidateFields.
type CandidateRow map[string]string

// ID returns the row's candidate UUID, empty when unset.
func (r CandidateRow) ID() string {
	return r[CandidateIDField]
}

// NewCandidateRow returns a row with every schema field present and
// empty, bound to the given id.
func NewCandidateRow(id string) CandidateRow {
	row := make(CandidateRow, len(CandidateFields))
	for _, field := range CandidateFields {
		row[field] = ""
	}
	row[CandidateIDField] = id
	return row
}

// EnsureFields adds any missing schema field as empty. Existing values
// are kept.
func (r CandidateRow) EnsureFields() {
	for _, field := range CandidateFields {
		if _, ok := r[field]; !ok {
			r[field] = ""
		}
	}
}

// UniformEntry is one inventory row. Rows at quantity zero are removed
// rather than kept.
type UniformEntry struct {
	ID         string `json:"id"`
	Alteration string `json:"alteration"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Waist      string `json:"waist"`
	Inseam     string `json:"inseam"`
	Quantity   int64  `json:"quantity"`
	Branch     string `json:"branch"`
}

// DayEntry is a single day's time record inside a week.
type DayEntry struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Content string `json:"content"`
}

// WeekRecord groups day entries under a week-start key.
type WeekRecord struct {
	WeekStart string              `json:"week_start"`
	WeekEnd   string              `json:"week_end"`
	Entries   map[string]DayEntry `json:"entries"`
}

// Todo is a checklist item.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt"`
}

// Kanban holds the onboarding pipeline: columns, cards, and the
// candidate rows that shadow the cards.
type Kanban struct {
	Columns    []Column       `json:"columns"`
	Cards      []Card         `json:"cards"`
	Candidates []CandidateRow `json:"candidates"`
}

// Recycle is the bounded undo/redo store.
type Recycle struct {
	Items []RecycleItem `json:"items"`
	Redo  []RecycleItem `json:"redo"`
}

// Document is the whole decrypted payload.
type Document struct {
	Version  int64                 `json:"version"`
	Kanban   Kanban                `json:"kanban"`
	Uniforms []UniformEntry        `json:"uniforms"`
	Weekly   map[string]WeekRecord `json:"weekly"`
	Todos    []Todo                `json:"todos"`
	Recycle  Recycle               `json:"recycle"`
}

// nowFn is the package clock; tests swap it out.
var nowFn = time.Now

// NowMillis returns the current time as unix milliseconds in string
// form, the document's timestamp format.
func NowMillis() string {
	return strconv.FormatInt(nowFn().UnixMilli(), 10)
}

// NewID returns a fresh row identifier.
func NewID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "id-" + NowMillis() + "-" + hex[:20]
}

// ClampString strips control characters and truncates to maxLen runes.
// When trim is set, surrounding whitespace is removed first.
func ClampString(value string, maxLen int, trim bool) string {
	out := value
	if trim {
		out = strings.TrimSpace(out)
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, ch := range out {
		if ch >= 32 && ch != 127 {
			b.WriteRune(ch)
		}
	}
	out = b.String()
	runes := []rune(out)
	if len(runes) > maxLen {
		out = string(runes[:maxLen])
	}
	return out
}

// ParseNonNegativeInt parses a loose quantity value, clamping to zero.
func ParseNonNegativeInt(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
