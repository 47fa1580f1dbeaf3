package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tdpulse/internal/analytics"
	"tdpulse/internal/insights"
	"tdpulse/internal/services"
)

func overviewFixture() *services.Overview {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &services.Overview{
		Summary: analytics.SummaryMetrics{
			TotalParticipants: 4,
			TotalPresent:      3,
			PresenceRate:      75,
			AvgParticipation:  37.5,
			SurveysResponded:  2,
			SurveyRate:        66.67,
			AvgCamera:         60,
			DistinctCourses:   2,
			DistinctDirectors: 2,
		},
		Courses: []analytics.GroupMetrics{
			{Key: "Gestão", Present: 1, Total: 2, PresenceRate: 50},
			{Key: "Liderança", Present: 2, Total: 2, PresenceRate: 100},
		},
		Directors: []analytics.GroupMetrics{
			{Key: "Carlos", Present: 3, Total: 3, PresenceRate: 100},
		},
		Participants: []analytics.ParticipantMetrics{
			{Participant: "Ana", Director: "Carlos", Present: 2, Invitations: 2, PresenceRate: 100},
		},
		TimeSeries: []analytics.DatePoint{
			{Date: nil, Course: "Gestão", Total: 1},
			{Date: &date, Course: "Liderança", Present: 2, Total: 2, PresenceRate: 100},
		},
		Insights: []insights.Finding{
			{Title: "Insight 1", Description: "d1", Methodology: "m1"},
		},
		Actions: []insights.Finding{
			{Title: "Action 1", Description: "a1", Methodology: "ma1"},
		},
	}
}

func TestCSVWriterWriteOverview(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	paths, err := w.WriteOverview(overviewFixture(), "report")
	require.NoError(t, err)
	require.Len(t, paths, 6)

	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report_courses.csv"))
	require.NoError(t, err)
	// BOM prefix so spreadsheet tools read the accents correctly.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two courses
	assert.Equal(t, "Course", rows[0][0])
	assert.Equal(t, "Gestão", rows[1][0])
	assert.Equal(t, "100.00", rows[2][3])
}

func TestCSVWriterUndatedLabel(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)
	w.BOMPrefix = false

	_, err := w.WriteOverview(overviewFixture(), "report")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "report_timeseries.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "(no date)")
	assert.Contains(t, string(data), "15/03/2024")
}

func TestExcelWriterWriteOverview(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, nil)

	path, err := w.WriteOverview(overviewFixture(), "report")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t,
		[]string{"Summary", "Courses", "Directors", "Participants", "TimeSeries", "Insights"},
		sheets)

	metric, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total participation records", metric)

	course, err := f.GetCellValue("Courses", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Liderança", course)

	insight, err := f.GetCellValue("Insights", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Insight 1", insight)
}

func TestExcelWriterKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, nil)

	path, err := w.WriteOverview(overviewFixture(), "named.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "named.xlsx"), path)
}
