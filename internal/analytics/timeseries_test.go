package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdpulse/internal/dataset"
)

func TestTimeSeriesAscendingDates(t *testing.T) {
	table := &dataset.Table{Records: []dataset.Record{
		{Date: datePtr(2024, 3, 15), Course: "B", Attended: true},
		{Date: datePtr(2024, 1, 10), Course: "A", Attended: true},
		{Date: datePtr(2024, 3, 15), Course: "B", Attended: false},
	}}

	points := TimeSeries(table)
	require.Len(t, points, 2)

	require.NotNil(t, points[0].Date)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *points[0].Date)
	assert.Equal(t, 1, points[0].Total)

	assert.Equal(t, 2, points[1].Total)
	assert.Equal(t, 1, points[1].Present)
	assert.InDelta(t, 50.0, points[1].PresenceRate, 1e-9)
}

func TestTimeSeriesUndatedBucketFirst(t *testing.T) {
	table := &dataset.Table{Records: []dataset.Record{
		{Date: datePtr(2024, 1, 10), Course: "A", Attended: true},
		{Date: nil, Course: "B", Attended: false},
		{Date: nil, Course: "C", Attended: true},
	}}

	points := TimeSeries(table)
	require.Len(t, points, 2)

	undated := points[0]
	assert.Nil(t, undated.Date)
	assert.Equal(t, 2, undated.Total)
	assert.Equal(t, 1, undated.Present)
	// Representative course label is the first row seen in the bucket.
	assert.Equal(t, "B", undated.Course)

	assert.NotNil(t, points[1].Date)
}

func TestTimeSeriesEmptyTable(t *testing.T) {
	assert.Empty(t, TimeSeries(dataset.NewTable()))
}

func TestTimeSeriesBucketMetrics(t *testing.T) {
	table := &dataset.Table{Records: []dataset.Record{
		{Date: datePtr(2024, 2, 1), Course: "A", Attended: true, DurationMin: 60, ParticipationMin: 30, SurveyResponded: true, CameraPct: floatPtr(80)},
		{Date: datePtr(2024, 2, 1), Course: "A", Attended: true, DurationMin: 60, ParticipationMin: 60},
	}}

	points := TimeSeries(table)
	require.Len(t, points, 1)
	p := points[0]
	assert.InDelta(t, 100.0, p.PresenceRate, 1e-9)
	assert.InDelta(t, 75.0, p.AvgParticipation, 1e-9)
	assert.InDelta(t, 50.0, p.SurveyRate, 1e-9)
	assert.InDelta(t, 80.0, p.AvgCamera, 1e-9)
}
