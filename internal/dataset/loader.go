package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// fallbackEncodings is the decoder chain tried in order. The first one
// that decodes and parses cleanly wins; an encoding is never partially
// applied.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", unicode.UTF8},
	{"iso-8859-1", charmap.ISO8859_1},
	{"iso-8859-15", charmap.ISO8859_15},
	{"windows-1252", charmap.Windows1252},
}

// Load reads the dataset file at path and parses it into the canonical
// table. A missing file is not an error: it yields an empty table so the
// caller can prompt for an upload instead of failing.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("dataset file not found, starting with empty table",
				slog.String("path", path))
			return NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and parses raw dataset bytes into the canonical table.
func Parse(data []byte) (*Table, error) {
	decoded, name, err := Decode(data)
	if err != nil {
		return nil, err
	}
	table, err := parseCSV(decoded)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset parsed",
		slog.String("encoding", name),
		slog.Int("rows", table.Len()))
	return table, nil
}

// Decode runs the encoding fallback chain and returns the UTF-8 bytes of
// the first decoder whose output is both valid text and structurally
// parseable CSV. It fails with EncodingError only after exhausting the
// chain.
func Decode(data []byte) ([]byte, string, error) {
	var attempted []string
	var lastErr error
	for _, fe := range fallbackEncodings {
		attempted = append(attempted, fe.name)
		decoded, err := decodeWith(fe.enc, data)
		if err != nil {
			lastErr = err
			continue
		}
		if err := checkDelimited(decoded); err != nil {
			lastErr = err
			continue
		}
		return decoded, fe.name, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no decoder accepted the input")
	}
	return nil, "", &EncodingError{Attempted: attempted, Cause: lastErr}
}

func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	// The x/text UTF-8 decoder substitutes U+FFFD for invalid bytes
	// instead of failing, which would mask a legacy-encoded file. Check
	// strictly so the chain can fall through to the charmap decoders.
	if enc == unicode.UTF8 {
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("input is not valid UTF-8")
		}
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("decoded text is not valid UTF-8")
	}
	return decoded, nil
}

// checkDelimited verifies the decoded bytes read as semicolon-delimited
// CSV without structural errors. Field contents are not judged here.
func checkDelimited(decoded []byte) error {
	r := newReader(bytes.NewReader(decoded))
	for {
		_, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// ValidateHeader checks a header row against RequiredColumns and returns
// a SchemaError naming every missing column.
func ValidateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[normalizeHeader(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// normalizeHeader trims whitespace and a UTF-8 BOM, which Excel prepends
// to the first header cell.
func normalizeHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

func parseCSV(decoded []byte) (*Table, error) {
	r := newReader(bytes.NewReader(decoded))

	header, err := r.Read()
	if err == io.EOF {
		// A file with no header at all has every required column missing.
		return nil, &SchemaError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	table := NewTable()
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}
		status := cell(row, ColStatus)
		rec := Record{
			Date:             parseDate(cell(row, ColDate)),
			Participant:      cell(row, ColParticipant),
			Director:         cell(row, ColDirector),
			Course:           cell(row, ColCourse),
			DurationMin:      parseClock(cell(row, ColDuration)),
			ParticipationMin: parseClock(cell(row, ColParticipation)),
			ParticipationPct: parsePercent(cell(row, ColParticipationPct)),
			CameraPct:        parsePercentNullable(cell(row, ColCameraPct)),
			SurveyResponded:  cell(row, ColSurvey) == surveyAnswered,
			Attended:         status == statusPresent,
			Status:           status,
			AbsenceReason:    cell(row, ColAbsenceReason),
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
