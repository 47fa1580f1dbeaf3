package dataset

import "time"

// FilterDateRange returns a fresh table holding rows whose date falls in
// [from, to]. A nil bound is open. Rows without a date are excluded
// whenever any bound is set.
func (t *Table) FilterDateRange(from, to *time.Time) *Table {
	if from == nil && to == nil {
		return t.clone()
	}
	out := NewTable()
	for _, rec := range t.Records {
		if rec.Date == nil {
			continue
		}
		if from != nil && rec.Date.Before(*from) {
			continue
		}
		if to != nil && rec.Date.After(*to) {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// FilterCourse returns a fresh table holding rows for the given course.
func (t *Table) FilterCourse(course string) *Table {
	if course == "" {
		return t.clone()
	}
	out := NewTable()
	for _, rec := range t.Records {
		if rec.Course == course {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// FilterDirector returns a fresh table holding rows for the given director.
func (t *Table) FilterDirector(director string) *Table {
	if director == "" {
		return t.clone()
	}
	out := NewTable()
	for _, rec := range t.Records {
		if rec.Director == director {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

func (t *Table) clone() *Table {
	out := NewTable()
	out.Records = append(out.Records, t.Records...)
	return out
}
