package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdpulse/internal/analytics"
	"tdpulse/internal/dataset"
)

func TestGenerateExactlyFivePairs(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{name: "empty input", in: Input{Table: dataset.NewTable()}},
		{
			name: "everything firing",
			in: Input{
				Summary: analytics.SummaryMetrics{
					PresenceRate:      40,
					AvgParticipation:  30,
					SurveyRate:        20,
					AvgCamera:         55,
					DistinctCourses:   3,
					TotalParticipants: 100,
				},
				ByCourse: []analytics.GroupMetrics{
					{Key: "A", PresenceRate: 90}, {Key: "B", PresenceRate: 30},
				},
				ByDirector: []analytics.GroupMetrics{
					{Key: "X", PresenceRate: 95}, {Key: "Y", PresenceRate: 20},
				},
				Table: &dataset.Table{Records: []dataset.Record{
					{Attended: true, ParticipationPct: 5},
					{Attended: true, ParticipationPct: 95},
				}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, acts := Generate(tt.in)
			assert.Len(t, ins, ReportSize)
			assert.Len(t, acts, ReportSize)
			for i := range ins {
				assert.NotEmpty(t, ins[i].Title)
				assert.NotEmpty(t, ins[i].Methodology)
				assert.NotEmpty(t, acts[i].Title)
			}
		})
	}
}

func TestPresenceRuleBands(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		title string
	}{
		{name: "below low", rate: 69.9, title: "Presence Rate Below Ideal"},
		{name: "middle band", rate: 70, title: "Presence Rate Within Expectations"},
		{name: "just under high", rate: 84.9, title: "Presence Rate Within Expectations"},
		{name: "at high", rate: 85, title: "Excellent Presence Rate"},
		{name: "zero", rate: 0, title: "Presence Rate Below Ideal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, _, ok := presenceRule(Input{Summary: analytics.SummaryMetrics{PresenceRate: tt.rate}})
			require.True(t, ok)
			assert.Equal(t, tt.title, ins.Title)
		})
	}
}

func TestParticipationRuleHasNoMiddleBand(t *testing.T) {
	low, _, ok := participationRule(Input{Summary: analytics.SummaryMetrics{AvgParticipation: 59.9}})
	require.True(t, ok)
	assert.Equal(t, "Low Engagement During Sessions", low.Title)

	high, _, ok := participationRule(Input{Summary: analytics.SummaryMetrics{AvgParticipation: 80}})
	require.True(t, ok)
	assert.Equal(t, "High Engagement Level", high.Title)

	// Mid-range values contribute nothing and the slot falls through.
	_, _, ok = participationRule(Input{Summary: analytics.SummaryMetrics{AvgParticipation: 70}})
	assert.False(t, ok)
}

func TestSurveyRule(t *testing.T) {
	low, _, ok := surveyRule(Input{Summary: analytics.SummaryMetrics{SurveyRate: 49.9}})
	require.True(t, ok)
	assert.Equal(t, "Low Feedback Rate", low.Title)

	good, _, ok := surveyRule(Input{Summary: analytics.SummaryMetrics{SurveyRate: 50}})
	require.True(t, ok)
	assert.Equal(t, "Good Feedback Collection Rate", good.Title)
}

func TestVarianceRulesNeedTwoGroups(t *testing.T) {
	single := []analytics.GroupMetrics{{Key: "Only", PresenceRate: 10}}

	_, _, ok := courseVarianceRule(Input{ByCourse: single})
	assert.False(t, ok)

	_, _, ok = directorVarianceRule(Input{ByDirector: single})
	assert.False(t, ok)
}

func TestCourseVarianceRule(t *testing.T) {
	t.Run("fires above threshold and names extremes", func(t *testing.T) {
		ins, act, ok := courseVarianceRule(Input{ByCourse: []analytics.GroupMetrics{
			{Key: "Liderança", PresenceRate: 95},
			{Key: "Gestão", PresenceRate: 40},
		}})
		require.True(t, ok)
		assert.Contains(t, ins.Description, "Liderança")
		assert.Contains(t, ins.Description, "Gestão")
		assert.Contains(t, act.Description, "Liderança")
	})

	t.Run("quiet below threshold", func(t *testing.T) {
		// Spread of 10 points: sample std dev ~7.07, under the 15 cutoff.
		_, _, ok := courseVarianceRule(Input{ByCourse: []analytics.GroupMetrics{
			{Key: "A", PresenceRate: 80},
			{Key: "B", PresenceRate: 90},
		}})
		assert.False(t, ok)
	})
}

func TestDirectorVarianceRule(t *testing.T) {
	_, _, ok := directorVarianceRule(Input{ByDirector: []analytics.GroupMetrics{
		{Key: "X", PresenceRate: 80},
		{Key: "Y", PresenceRate: 60},
	}})
	// Sample std dev ~14.1, under the 20 cutoff.
	assert.False(t, ok)

	ins, _, ok := directorVarianceRule(Input{ByDirector: []analytics.GroupMetrics{
		{Key: "X", PresenceRate: 90},
		{Key: "Y", PresenceRate: 30},
	}})
	require.True(t, ok)
	assert.Equal(t, "Cultural Misalignment Between Areas", ins.Title)
}

func TestIndividualVarianceRule(t *testing.T) {
	t.Run("attended rows only", func(t *testing.T) {
		// The extreme values sit on absent rows, so the rule stays quiet.
		_, _, ok := individualVarianceRule(Input{Table: &dataset.Table{Records: []dataset.Record{
			{Attended: false, ParticipationPct: 0},
			{Attended: false, ParticipationPct: 100},
			{Attended: true, ParticipationPct: 70},
			{Attended: true, ParticipationPct: 75},
		}}})
		assert.False(t, ok)
	})

	t.Run("fires on wide spread", func(t *testing.T) {
		ins, _, ok := individualVarianceRule(Input{Table: &dataset.Table{Records: []dataset.Record{
			{Attended: true, ParticipationPct: 5},
			{Attended: true, ParticipationPct: 95},
		}}})
		require.True(t, ok)
		assert.Equal(t, "High Variability in Individual Engagement", ins.Title)
	})

	t.Run("nil table", func(t *testing.T) {
		_, _, ok := individualVarianceRule(Input{})
		assert.False(t, ok)
	})
}

func TestBackfills(t *testing.T) {
	_, _, ok := cameraBackfill(Input{Summary: analytics.SummaryMetrics{AvgCamera: 0}})
	assert.False(t, ok, "camera backfill needs a reported camera average")

	ins, _, ok := cameraBackfill(Input{Summary: analytics.SummaryMetrics{AvgCamera: 12.5}})
	require.True(t, ok)
	assert.Equal(t, "Visual Engagement Analysis", ins.Title)

	_, _, ok = diversityBackfill(Input{})
	assert.True(t, ok, "diversity backfill always contributes")

	_, _, ok = reachBackfill(Input{})
	assert.True(t, ok, "reach backfill always contributes")
}

func TestGeneratePadsWithMonitoring(t *testing.T) {
	// Presence middle band, no participation band, good survey rate, no
	// variance, no camera data: four ladder entries fire (presence,
	// survey, diversity, reach) and the fifth slot is the neutral pad.
	ins, acts := Generate(Input{Summary: analytics.SummaryMetrics{
		PresenceRate:     75,
		AvgParticipation: 70,
		SurveyRate:       60,
	}, Table: dataset.NewTable()})

	require.Len(t, ins, ReportSize)
	titles := make([]string, len(ins))
	for i, f := range ins {
		titles[i] = f.Title
	}
	assert.Equal(t, []string{
		"Presence Rate Within Expectations",
		"Good Feedback Collection Rate",
		"Diversity of Courses Offered",
		"Training Program Reach",
		"Continued Indicator Monitoring",
	}, titles)
	assert.Equal(t, "Keep the Data Collection Cadence", acts[ReportSize-1].Title)
}

func TestGenerateTruncatesAtFive(t *testing.T) {
	in := Input{
		Summary: analytics.SummaryMetrics{
			PresenceRate:     40, // rule 1
			AvgParticipation: 30, // rule 2
			SurveyRate:       20, // rule 3
			AvgCamera:        55,
		},
		ByCourse: []analytics.GroupMetrics{
			{Key: "A", PresenceRate: 90}, {Key: "B", PresenceRate: 30}, // rule 4
		},
		ByDirector: []analytics.GroupMetrics{
			{Key: "X", PresenceRate: 95}, {Key: "Y", PresenceRate: 20}, // rule 5
		},
		Table: &dataset.Table{Records: []dataset.Record{
			{Attended: true, ParticipationPct: 5},
			{Attended: true, ParticipationPct: 95}, // rule 6 would fire
		}},
	}

	ins, _ := Generate(in)
	require.Len(t, ins, ReportSize)
	// The first five rules fill the report; rule 6 and the backfills
	// never get a slot.
	assert.Equal(t, "Presence Rate Below Ideal", ins[0].Title)
	assert.Equal(t, "Cultural Misalignment Between Areas", ins[4].Title)
	for _, f := range ins {
		assert.NotEqual(t, "High Variability in Individual Engagement", f.Title)
	}
}
