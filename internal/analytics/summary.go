package analytics

import "tdpulse/internal/dataset"

// Summary computes the overall engagement metrics for a table. It works
// unchanged on a zero-row table, returning zero-valued rates.
func Summary(t *dataset.Table) SummaryMetrics {
	var (
		present        int
		surveys        int
		partMin        float64
		durMin         float64
		camera         []float64
		courses        = map[string]struct{}{}
		directors      = map[string]struct{}{}
		statusCounts   = map[string]int{}
		absenceReasons = map[string]int{}
	)

	for _, rec := range t.Records {
		if rec.Attended {
			present++
		}
		if rec.SurveyResponded {
			surveys++
		}
		partMin += rec.ParticipationMin
		durMin += rec.DurationMin
		if rec.CameraPct != nil {
			camera = append(camera, *rec.CameraPct)
		}
		courses[rec.Course] = struct{}{}
		directors[rec.Director] = struct{}{}
		if rec.Status != "" {
			statusCounts[rec.Status]++
		}
		if !rec.Attended && rec.AbsenceReason != "" {
			absenceReasons[rec.AbsenceReason]++
		}
	}

	return SummaryMetrics{
		TotalParticipants: t.Len(),
		TotalPresent:      present,
		PresenceRate:      ratio(float64(present), float64(t.Len())),
		AvgParticipation:  ratio(partMin, durMin),
		SurveysResponded:  surveys,
		SurveyRate:        ratio(float64(surveys), float64(present)),
		AvgCamera:         Round2(mean(camera)),
		DistinctCourses:   len(courses),
		DistinctDirectors: len(directors),
		StatusCounts:      statusCounts,
		AbsenceReasons:    absenceReasons,
	}
}
