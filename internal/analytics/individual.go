package analytics

import "tdpulse/internal/dataset"

// Individual computes per-participant metrics. Participants appear in
// first-seen source order.
func Individual(t *dataset.Table) []ParticipantMetrics {
	type acc struct {
		ParticipantMetrics
		partPct []float64
		camera  []float64
		courses map[string]struct{}
	}
	var order []string
	people := map[string]*acc{}

	for _, rec := range t.Records {
		p, ok := people[rec.Participant]
		if !ok {
			p = &acc{
				ParticipantMetrics: ParticipantMetrics{
					Participant: rec.Participant,
					Director:    rec.Director,
				},
				courses: map[string]struct{}{},
			}
			people[rec.Participant] = p
			order = append(order, rec.Participant)
		}
		p.Invitations++
		if rec.Attended {
			p.Present++
		}
		if rec.SurveyResponded {
			p.SurveysResponded++
		}
		p.partPct = append(p.partPct, rec.ParticipationPct)
		if rec.CameraPct != nil {
			p.camera = append(p.camera, *rec.CameraPct)
		}
		p.courses[rec.Course] = struct{}{}
	}

	out := make([]ParticipantMetrics, 0, len(order))
	for _, name := range order {
		p := people[name]
		// Unweighted mean across the participant's sessions, unlike the
		// time-weighted summary formula.
		p.AvgParticipation = Round2(mean(p.partPct))
		p.AvgCamera = Round2(mean(p.camera))
		p.DistinctCourses = len(p.courses)
		p.PresenceRate = ratio(float64(p.Present), float64(p.Invitations))
		p.SurveyRate = ratio(float64(p.SurveysResponded), float64(p.Present))
		out = append(out, p.ParticipantMetrics)
	}
	return out
}
