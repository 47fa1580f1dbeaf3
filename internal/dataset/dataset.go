package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Source column labels as they appear in the export header.
const (
	ColDate          = "Data"
	ColParticipant   = "Participante"
	ColDirector      = "Diretor"
	ColCourse        = "Curso"
	ColDuration      = "Duração"
	ColParticipation = "Participação"
	ColParticipationPct = "% Participação"
	ColCameraPct     = "% Câmera aberta"
	ColSurvey        = "Respondeu a Pesquisa de Satisfação?"
	ColStatus        = "Status"
	ColAbsenceReason = "Motivo Ausência"
)

// Literal status values the export uses for the derived booleans.
const (
	statusPresent  = "Presente"
	surveyAnswered = "Sim"
)

// RequiredColumns lists the columns a file must carry to be accepted.
// ColAbsenceReason is optional.
var RequiredColumns = []string{
	ColDate,
	ColParticipant,
	ColDirector,
	ColCourse,
	ColDuration,
	ColParticipation,
	ColParticipationPct,
	ColCameraPct,
	ColSurvey,
	ColStatus,
}

// Record is one normalized observation: one participant in one session of
// one course, on one date, under one director. Duplicate rows are valid
// and counted separately; the table has no primary key.
type Record struct {
	// Date is nil when the source date did not parse; the row is kept.
	Date *time.Time `json:"date"`

	Participant string `json:"participant"`
	Director    string `json:"director"`
	Course      string `json:"course"`

	// DurationMin and ParticipationMin are elapsed minutes derived from
	// the HH:MM:SS fields. Malformed time text degrades to 0.
	DurationMin      float64 `json:"duration_min"`
	ParticipationMin float64 `json:"participation_min"`

	// ParticipationPct is the row-level participation percentage (0-100).
	ParticipationPct float64 `json:"participation_pct"`

	// CameraPct is nil when the export did not report camera time for the
	// row. A missing value is distinct from 0.
	CameraPct *float64 `json:"camera_pct"`

	SurveyResponded bool `json:"survey_responded"`
	Attended        bool `json:"attended"`

	Status        string `json:"status"`
	AbsenceReason string `json:"absence_reason,omitempty"`
}

// Table is the canonical dataset. It is immutable by convention: every
// aggregation and filter is a pure read returning fresh values.
type Table struct {
	Records []Record
}

// NewTable returns an empty canonical table. An absent source file loads
// as an empty table, not as an error; callers detect "no data yet" via
// Len() == 0.
func NewTable() *Table {
	return &Table{Records: []Record{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// SchemaError reports required columns missing from a candidate file.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset file is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// EncodingError reports that every decoder in the fallback chain failed.
type EncodingError struct {
	Attempted []string
	Cause     error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("could not decode dataset file (tried %s): %v", strings.Join(e.Attempted, ", "), e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}
