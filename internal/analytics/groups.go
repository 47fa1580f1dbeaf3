package analytics

import (
	"sort"

	"tdpulse/internal/dataset"
)

// ByCourse groups the table by course label.
func ByCourse(t *dataset.Table) []GroupMetrics {
	return groupBy(t, func(rec dataset.Record) string { return rec.Course })
}

// ByDirector groups the table by organizational owner.
func ByDirector(t *dataset.Table) []GroupMetrics {
	return groupBy(t, func(rec dataset.Record) string { return rec.Director })
}

// groupBy is the shared algorithm behind the by-course and by-director
// views. Output order is alphabetical by key for determinism; callers
// re-sort for display as needed.
func groupBy(t *dataset.Table, key func(dataset.Record) string) []GroupMetrics {
	type acc struct {
		GroupMetrics
		camera []float64
	}
	groups := map[string]*acc{}
	for _, rec := range t.Records {
		k := key(rec)
		g, ok := groups[k]
		if !ok {
			g = &acc{GroupMetrics: GroupMetrics{Key: k}}
			groups[k] = g
		}
		g.Total++
		if rec.Attended {
			g.Present++
		}
		if rec.SurveyResponded {
			g.SurveysResponded++
		}
		g.ParticipationMin += rec.ParticipationMin
		g.DurationMin += rec.DurationMin
		if rec.CameraPct != nil {
			g.camera = append(g.camera, *rec.CameraPct)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupMetrics, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		g.PresenceRate = ratio(float64(g.Present), float64(g.Total))
		g.AvgParticipation = ratio(g.ParticipationMin, g.DurationMin)
		g.SurveyRate = ratio(float64(g.SurveysResponded), float64(g.Present))
		g.AvgCamera = Round2(mean(g.camera))
		out = append(out, g.GroupMetrics)
	}
	return out
}
