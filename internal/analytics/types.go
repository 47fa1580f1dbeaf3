package analytics

import "time"

// SummaryMetrics is the overall engagement snapshot for a table.
type SummaryMetrics struct {
	TotalParticipants int     `json:"total_participants"`
	TotalPresent      int     `json:"total_present"`
	PresenceRate      float64 `json:"presence_rate"`

	// AvgParticipation is time-weighted: summed participation minutes
	// over summed duration minutes across all rows, times 100.
	AvgParticipation float64 `json:"avg_participation"`

	SurveysResponded int     `json:"surveys_responded"`
	SurveyRate       float64 `json:"survey_rate"`

	// AvgCamera is the mean camera percentage over rows that reported
	// one; 0 when no row did.
	AvgCamera float64 `json:"avg_camera"`

	DistinctCourses   int `json:"distinct_courses"`
	DistinctDirectors int `json:"distinct_directors"`

	// StatusCounts breaks rows down by the free-text status label.
	StatusCounts map[string]int `json:"status_counts,omitempty"`
	// AbsenceReasons counts stated reasons over non-attended rows.
	AbsenceReasons map[string]int `json:"absence_reasons,omitempty"`
}

// GroupMetrics is one row of the by-course or by-director breakdown.
type GroupMetrics struct {
	Key string `json:"key"`

	Present          int     `json:"present"`
	Total            int     `json:"total"`
	ParticipationMin float64 `json:"participation_min"`
	DurationMin      float64 `json:"duration_min"`
	SurveysResponded int     `json:"surveys_responded"`

	PresenceRate     float64 `json:"presence_rate"`
	AvgParticipation float64 `json:"avg_participation"`
	SurveyRate       float64 `json:"survey_rate"`
	AvgCamera        float64 `json:"avg_camera"`
}

// ParticipantMetrics is one row of the per-participant view.
type ParticipantMetrics struct {
	Participant string `json:"participant"`
	// Director is the one on the participant's first row in source order;
	// participants are assumed single-director and the first value wins.
	Director string `json:"director"`

	Present     int `json:"present"`
	Invitations int `json:"invitations"`

	// AvgParticipation here is the arithmetic mean of the participant's
	// row-level percentages, not the time-weighted formula.
	AvgParticipation float64 `json:"avg_participation"`

	SurveysResponded int     `json:"surveys_responded"`
	AvgCamera        float64 `json:"avg_camera"`
	DistinctCourses  int     `json:"distinct_courses"`

	PresenceRate float64 `json:"presence_rate"`
	SurveyRate   float64 `json:"survey_rate"`
}

// DatePoint is one bucket of the date series. Date is nil for the bucket
// of rows whose source date did not parse; that bucket, when present,
// sorts first.
type DatePoint struct {
	Date *time.Time `json:"date"`

	// Course is the course label of the first row seen for the date, a
	// representative label for display only.
	Course string `json:"course"`

	Present          int     `json:"present"`
	Total            int     `json:"total"`
	ParticipationMin float64 `json:"participation_min"`
	DurationMin      float64 `json:"duration_min"`
	SurveysResponded int     `json:"surveys_responded"`

	PresenceRate     float64 `json:"presence_rate"`
	AvgParticipation float64 `json:"avg_participation"`
	SurveyRate       float64 `json:"survey_rate"`
	AvgCamera        float64 `json:"avg_camera"`
}
