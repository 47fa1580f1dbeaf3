// Package insights turns the computed engagement aggregates into a fixed
// set of qualitative findings and recommended actions.
//
// This is a deterministic decision table, not a statistical model. Rules
// are evaluated in a fixed order, each contributing at most one
// insight/action pair; descriptive backfill entries follow, and the
// result is truncated or padded to exactly ReportSize of each. Every
// finding carries a short methodology note naming the statistic behind
// it, as a human-readable audit trail.
package insights

import (
	"fmt"

	"tdpulse/internal/analytics"
	"tdpulse/internal/dataset"
)

// ReportSize is the exact number of insights and actions returned.
const ReportSize = 5

// Metric thresholds behind the rules. Percent points.
const (
	PresenceLow  = 70.0 // below: presence under the market benchmark
	PresenceHigh = 85.0 // at or above: presence considered excellent

	ParticipationLow  = 60.0 // below: weak in-session engagement
	ParticipationHigh = 80.0 // at or above: strong in-session engagement

	SurveyLow = 50.0 // below: feedback collection too thin

	CourseSpread     = 15.0 // std dev of presence across courses
	DirectorSpread   = 20.0 // std dev of presence across directors
	IndividualSpread = 30.0 // std dev of row participation, attended rows
)

// Finding is a single insight or action shown to the reporting audience.
type Finding struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Methodology string `json:"methodology"`
}

// Input carries the aggregates a generation pass reads. Table is the
// same (already filtered) table the aggregates were computed from; the
// individual-variance rule needs its attended rows.
type Input struct {
	Summary    analytics.SummaryMetrics
	ByCourse   []analytics.GroupMetrics
	ByDirector []analytics.GroupMetrics
	Table      *dataset.Table
}

// A rule inspects the input and contributes at most one insight/action
// pair. Insight and action at the same position are correlated by
// generation order.
type rule func(Input) (insight, action Finding, ok bool)

// Generate evaluates the rule ladder over the aggregates and returns
// exactly ReportSize insights and ReportSize actions.
func Generate(in Input) (insights, actions []Finding) {
	for _, r := range ruleLadder {
		if len(insights) == ReportSize {
			break
		}
		ins, act, ok := r(in)
		if !ok {
			continue
		}
		insights = append(insights, ins)
		actions = append(actions, act)
	}
	for len(insights) < ReportSize {
		insights = append(insights, monitoringInsight)
		actions = append(actions, monitoringAction)
	}
	return insights, actions
}

// ruleLadder fixes evaluation order: the six metric rules first, then the
// descriptive backfill entries.
var ruleLadder = []rule{
	presenceRule,
	participationRule,
	surveyRule,
	courseVarianceRule,
	directorVarianceRule,
	individualVarianceRule,
	cameraBackfill,
	diversityBackfill,
	reachBackfill,
}

func presenceRule(in Input) (Finding, Finding, bool) {
	rate := in.Summary.PresenceRate
	switch {
	case rate < PresenceLow:
		return Finding{
				Title: "Presence Rate Below Ideal",
				Description: fmt.Sprintf("The current presence rate is %.1f%%, meaning roughly %.1f%% of invited professionals are not attending the training sessions.",
					rate, 100-rate),
				Methodology: fmt.Sprintf("Presence rate compared against the %.0f%% market benchmark for corporate training.", PresenceLow),
			}, Finding{
				Title:       "Introduce Pre-Session Engagement Strategies",
				Description: "Send personalized reminders 48h and 24h ahead, build expectation around the content and align schedules with managers so professionals are released to attend.",
				Methodology: "Based on studies showing a 15-20% presence lift from well-timed reminders.",
			}, true
	case rate >= PresenceHigh:
		return Finding{
				Title: "Excellent Presence Rate",
				Description: fmt.Sprintf("The presence rate of %.1f%% sits above the %.0f%% benchmark, showing strong organizational commitment to development.",
					rate, PresenceLow),
				Methodology: fmt.Sprintf("Presence rate compared against the %.0f%% benchmark with a positive trend reading.", PresenceLow),
			}, Finding{
				Title:       "Keep and Replicate Winning Practices",
				Description: "Document the practices behind this presence level and replicate them across other areas and training programs.",
				Methodology: "Success-pattern identification through comparative analysis.",
			}, true
	default:
		return Finding{
				Title:       "Presence Rate Within Expectations",
				Description: fmt.Sprintf("The presence rate of %.1f%% is within the expected range, with room to improve.", rate),
				Methodology: fmt.Sprintf("Presence rate compared against the %.0f%% benchmark, with growth-gap analysis.", PresenceLow),
			}, Finding{
				Title:       "Optimize the Invitation Process",
				Description: "Improve the communication around sessions, highlight the benefits and create a sense of urgency in the invitations.",
				Methodology: "Gap analysis between the current rate and the attainable maximum.",
			}, true
	}
}

// participationRule has no middle band on purpose: values in
// [ParticipationLow, ParticipationHigh) contribute nothing and the slot
// falls through to the backfill ladder.
func participationRule(in Input) (Finding, Finding, bool) {
	avg := in.Summary.AvgParticipation
	switch {
	case avg < ParticipationLow:
		return Finding{
				Title: "Low Engagement During Sessions",
				Description: fmt.Sprintf("Average participation is %.1f%%, indicating that even attendees are not fully engaged while sessions run.",
					avg),
				Methodology: "Average participation time measured against total session duration.",
			}, Finding{
				Title:       "Redesign the Teaching Methodology",
				Description: "Add interactivity, strategic breaks, hands-on activities and gamification to lift engagement during the sessions.",
				Methodology: "Based on neuroscience findings that interactivity raises retention by 40-60%.",
			}, true
	case avg >= ParticipationHigh:
		return Finding{
				Title: "High Engagement Level",
				Description: fmt.Sprintf("Average participation of %.1f%% indicates attendees stay highly engaged throughout the sessions.",
					avg),
				Methodology: "Average participation time compared with total course duration.",
			}, Finding{
				Title:       "Use the High Engagement to Deepen Content",
				Description: "Consider raising the complexity or length of the sessions, given the demonstrated absorption capacity.",
				Methodology: "Positive correlation between engagement and learning capacity.",
			}, true
	default:
		return Finding{}, Finding{}, false
	}
}

func surveyRule(in Input) (Finding, Finding, bool) {
	rate := in.Summary.SurveyRate
	if rate < SurveyLow {
		return Finding{
				Title: "Low Feedback Rate",
				Description: fmt.Sprintf("Only %.1f%% of attendees answer the satisfaction survey, limiting the program's capacity for continuous improvement.",
					rate),
				Methodology: "Share of answered surveys over attendees present.",
			}, Finding{
				Title:       "Simplify and Encourage Survey Responses",
				Description: "Cut the number of questions, send reminders, offer incentives and show how the feedback drives improvements.",
				Methodology: "Based on studies showing 30-50% higher response rates with shorter surveys and incentives.",
			}, true
	}
	return Finding{
			Title: "Good Feedback Collection Rate",
			Description: fmt.Sprintf("A %.1f%% survey response rate gives a solid base for satisfaction analysis and continuous improvement.",
				rate),
			Methodology: "Share of collected feedback over attendees present.",
		}, Finding{
			Title:       "Deepen the Feedback Analysis",
			Description: "Build sentiment dashboards, spot recurring patterns in the answers and turn repeated feedback into concrete improvements.",
			Methodology: "Reuse of already-collected data for deeper findings.",
		}, true
}

func courseVarianceRule(in Input) (Finding, Finding, bool) {
	best, worst, spread, ok := presenceSpread(in.ByCourse)
	if !ok || spread <= CourseSpread {
		return Finding{}, Finding{}, false
	}
	return Finding{
			Title: "High Performance Variation Across Courses",
			Description: fmt.Sprintf("There is a significant gap between courses: %s reaches %.1f%% presence while %s sits at %.1f%%.",
				best.Key, best.PresenceRate, worst.Key, worst.PresenceRate),
			Methodology: "Standard deviation of presence rate across courses, with the extremes identified.",
		}, Finding{
			Title: "Replicate Practices From High-Performing Courses",
			Description: fmt.Sprintf("Study what makes %s more attractive and apply those strategies to %s and other low-performing courses.",
				best.Key, worst.Key),
			Methodology: "Comparative analysis between high and low performing courses to isolate success factors.",
		}, true
}

func directorVarianceRule(in Input) (Finding, Finding, bool) {
	best, worst, spread, ok := presenceSpread(in.ByDirector)
	if !ok || spread <= DirectorSpread {
		return Finding{}, Finding{}, false
	}
	return Finding{
			Title: "Cultural Misalignment Between Areas",
			Description: fmt.Sprintf("The %s area shows %.1f%% presence while %s shows %.1f%%, pointing to different levels of priority given to development.",
				best.Key, best.PresenceRate, worst.Key, worst.PresenceRate),
			Methodology: "Standard deviation of presence rate across directorates, reading the gap as cultural.",
		}, Finding{
			Title: "Create a Cross-Area Mentoring Program",
			Description: fmt.Sprintf("Connect leaders from %s with %s to share engagement practices and build cultural alignment.",
				best.Key, worst.Key),
			Methodology: "Knowledge transfer through internal benchmarking between high and low performing areas.",
		}, true
}

func individualVarianceRule(in Input) (Finding, Finding, bool) {
	if in.Table == nil {
		return Finding{}, Finding{}, false
	}
	var pct []float64
	for _, rec := range in.Table.Records {
		if rec.Attended {
			pct = append(pct, rec.ParticipationPct)
		}
	}
	spread := analytics.SampleStdDev(pct)
	if spread <= IndividualSpread {
		return Finding{}, Finding{}, false
	}
	return Finding{
			Title: "High Variability in Individual Engagement",
			Description: fmt.Sprintf("Participation varies widely between professionals (standard deviation of %.1f%%), with some deeply engaged and others barely participating.",
				spread),
			Methodology: "Standard deviation of row-level participation percentage over attended rows.",
		}, Finding{
			Title:       "Create Personalized Development Tracks",
			Description: "Identify low-participation professionals and offer shorter sessions, alternative schedules or different methodologies that fit their profile.",
			Methodology: "Participant segmentation from engagement patterns found through statistical analysis.",
		}, true
}

// presenceSpread returns the max and min presence-rate groups and the
// standard deviation across groups. ok is false with fewer than two
// groups, so the variance rules never fire on a single course/director.
func presenceSpread(groups []analytics.GroupMetrics) (best, worst analytics.GroupMetrics, spread float64, ok bool) {
	if len(groups) < 2 {
		return best, worst, 0, false
	}
	rates := make([]float64, len(groups))
	best, worst = groups[0], groups[0]
	for i, g := range groups {
		rates[i] = g.PresenceRate
		if g.PresenceRate > best.PresenceRate {
			best = g
		}
		if g.PresenceRate < worst.PresenceRate {
			worst = g
		}
	}
	return best, worst, analytics.SampleStdDev(rates), true
}

func cameraBackfill(in Input) (Finding, Finding, bool) {
	avg := in.Summary.AvgCamera
	if avg <= 0 {
		return Finding{}, Finding{}, false
	}
	return Finding{
			Title: "Visual Engagement Analysis",
			Description: fmt.Sprintf("The average camera-on rate is %.1f%%, a read on the level of visual interaction during sessions.",
				avg),
			Methodology: "Mean camera-on percentage over rows that reported one.",
		}, Finding{
			Title:       "Encourage Camera Use for Stronger Connection",
			Description: "Build a camera-on culture, highlight the benefits of visual interaction and make the environment welcoming enough for participants to feel comfortable.",
			Methodology: "Correlation between camera use and engagement and content retention.",
		}, true
}

func diversityBackfill(in Input) (Finding, Finding, bool) {
	return Finding{
			Title: "Diversity of Courses Offered",
			Description: fmt.Sprintf("The program offers %d distinct course(s), showing variety in the development portfolio.",
				in.Summary.DistinctCourses),
			Methodology: "Count of unique course labels in the dataset.",
		}, Finding{
			Title:       "Expand the Training Portfolio",
			Description: "Consider adding new courses based on identified needs and participant feedback.",
			Methodology: "Knowledge-gap analysis and identified development opportunities.",
		}, true
}

func reachBackfill(in Input) (Finding, Finding, bool) {
	return Finding{
			Title: "Training Program Reach",
			Description: fmt.Sprintf("The program reached %d participation record(s), the footprint of the organizational development effort.",
				in.Summary.TotalParticipants),
			Methodology: "Total count of participation records in the dataset.",
		}, Finding{
			Title:       "Broaden the Program's Reach",
			Description: "Identify professionals who have not yet taken part and create inclusion strategies to widen the program's impact.",
			Methodology: "Program coverage against the total of eligible professionals.",
		}, true
}

// Neutral pad used only when the full ladder still yields fewer than
// ReportSize pairs.
var (
	monitoringInsight = Finding{
		Title:       "Continued Indicator Monitoring",
		Description: "Current indicators raise no further findings; keep tracking presence, participation and feedback as the dataset grows.",
		Methodology: "Residual reading after the full rule ladder.",
	}
	monitoringAction = Finding{
		Title:       "Keep the Data Collection Cadence",
		Description: "Maintain the session export routine so the indicator history stays complete and comparable over time.",
		Methodology: "Data-quality practice; no metric threshold involved.",
	}
)
