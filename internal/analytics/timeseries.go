package analytics

import (
	"sort"
	"time"

	"tdpulse/internal/dataset"
)

// TimeSeries buckets the table by exact date value, ascending. Rows whose
// date did not parse form a single bucket placed FIRST, before any dated
// bucket; they are never silently dropped.
func TimeSeries(t *dataset.Table) []DatePoint {
	type acc struct {
		DatePoint
		camera []float64
	}
	buckets := map[time.Time]*acc{}
	var undated *acc

	for _, rec := range t.Records {
		var b *acc
		if rec.Date == nil {
			if undated == nil {
				undated = &acc{DatePoint: DatePoint{Course: rec.Course}}
			}
			b = undated
		} else {
			d := *rec.Date
			b = buckets[d]
			if b == nil {
				date := d
				b = &acc{DatePoint: DatePoint{Date: &date, Course: rec.Course}}
				buckets[d] = b
			}
		}
		b.Total++
		if rec.Attended {
			b.Present++
		}
		if rec.SurveyResponded {
			b.SurveysResponded++
		}
		b.ParticipationMin += rec.ParticipationMin
		b.DurationMin += rec.DurationMin
		if rec.CameraPct != nil {
			b.camera = append(b.camera, *rec.CameraPct)
		}
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	finish := func(b *acc) DatePoint {
		b.PresenceRate = ratio(float64(b.Present), float64(b.Total))
		b.AvgParticipation = ratio(b.ParticipationMin, b.DurationMin)
		b.SurveyRate = ratio(float64(b.SurveysResponded), float64(b.Present))
		b.AvgCamera = Round2(mean(b.camera))
		return b.DatePoint
	}

	out := make([]DatePoint, 0, len(dates)+1)
	if undated != nil {
		out = append(out, finish(undated))
	}
	for _, d := range dates {
		out = append(out, finish(buckets[d]))
	}
	return out
}
