package exporter

import (
	"fmt"
	"strconv"

	"tdpulse/internal/analytics"
	"tdpulse/internal/insights"
	"tdpulse/internal/services"
)

// dateLayout matches the dataset's own date convention.
const dateLayout = "02/01/2006"

// undatedLabel marks the bucket of rows whose source date did not parse.
const undatedLabel = "(no date)"

// sheet is one exportable table: a name, a header row and data rows.
type sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// sheetsFor flattens an overview into the exportable tables, in the
// order they appear in the workbook.
func sheetsFor(o *services.Overview) []sheet {
	return []sheet{
		summarySheet(o.Summary),
		groupSheet("Courses", "Course", o.Courses),
		groupSheet("Directors", "Director", o.Directors),
		participantSheet(o.Participants),
		timeSeriesSheet(o.TimeSeries),
		findingsSheet(o.Insights, o.Actions),
	}
}

func summarySheet(s analytics.SummaryMetrics) sheet {
	return sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total participation records", strconv.Itoa(s.TotalParticipants)},
			{"Total present", strconv.Itoa(s.TotalPresent)},
			{"Presence rate (%)", formatPct(s.PresenceRate)},
			{"Average participation (%)", formatPct(s.AvgParticipation)},
			{"Surveys responded", strconv.Itoa(s.SurveysResponded)},
			{"Survey rate (%)", formatPct(s.SurveyRate)},
			{"Average camera-on (%)", formatPct(s.AvgCamera)},
			{"Distinct courses", strconv.Itoa(s.DistinctCourses)},
			{"Distinct directors", strconv.Itoa(s.DistinctDirectors)},
		},
	}
}

func groupSheet(name, keyLabel string, groups []analytics.GroupMetrics) sheet {
	sh := sheet{
		Name: name,
		Headers: []string{keyLabel, "Present", "Total", "Presence rate (%)",
			"Avg participation (%)", "Surveys responded", "Survey rate (%)", "Avg camera (%)"},
	}
	for _, g := range groups {
		sh.Rows = append(sh.Rows, []string{
			g.Key,
			strconv.Itoa(g.Present),
			strconv.Itoa(g.Total),
			formatPct(g.PresenceRate),
			formatPct(g.AvgParticipation),
			strconv.Itoa(g.SurveysResponded),
			formatPct(g.SurveyRate),
			formatPct(g.AvgCamera),
		})
	}
	return sh
}

func participantSheet(people []analytics.ParticipantMetrics) sheet {
	sh := sheet{
		Name: "Participants",
		Headers: []string{"Participant", "Director", "Present", "Invitations",
			"Presence rate (%)", "Avg participation (%)", "Surveys responded",
			"Survey rate (%)", "Avg camera (%)", "Distinct courses"},
	}
	for _, p := range people {
		sh.Rows = append(sh.Rows, []string{
			p.Participant,
			p.Director,
			strconv.Itoa(p.Present),
			strconv.Itoa(p.Invitations),
			formatPct(p.PresenceRate),
			formatPct(p.AvgParticipation),
			strconv.Itoa(p.SurveysResponded),
			formatPct(p.SurveyRate),
			formatPct(p.AvgCamera),
			strconv.Itoa(p.DistinctCourses),
		})
	}
	return sh
}

func timeSeriesSheet(points []analytics.DatePoint) sheet {
	sh := sheet{
		Name: "TimeSeries",
		Headers: []string{"Date", "Course", "Present", "Total", "Presence rate (%)",
			"Avg participation (%)", "Survey rate (%)", "Avg camera (%)"},
	}
	for _, p := range points {
		date := undatedLabel
		if p.Date != nil {
			date = p.Date.Format(dateLayout)
		}
		sh.Rows = append(sh.Rows, []string{
			date,
			p.Course,
			strconv.Itoa(p.Present),
			strconv.Itoa(p.Total),
			formatPct(p.PresenceRate),
			formatPct(p.AvgParticipation),
			formatPct(p.SurveyRate),
			formatPct(p.AvgCamera),
		})
	}
	return sh
}

func findingsSheet(ins, acts []insights.Finding) sheet {
	sh := sheet{
		Name: "Insights",
		Headers: []string{"#", "Insight", "Insight detail", "Action", "Action detail",
			"Methodology"},
	}
	for i := range ins {
		action := insights.Finding{}
		if i < len(acts) {
			action = acts[i]
		}
		sh.Rows = append(sh.Rows, []string{
			strconv.Itoa(i + 1),
			ins[i].Title,
			ins[i].Description,
			action.Title,
			action.Description,
			ins[i].Methodology,
		})
	}
	return sh
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
