// Package analytics computes the aggregate engagement views over a
// canonical dataset table: the overall summary, per-course and
// per-director breakdowns, per-participant metrics and the date series.
//
// Every function is a pure read over an immutable table snapshot; callers
// pre-filter the table (date range, course, director) before passing it
// in. All rate computations guard division by zero by defining the result
// as 0, and every percentage is rounded to 2 decimal places at the point
// of computation so repeated reads are stable.
//
// Two different participation averages exist on purpose. The summary and
// group views use the time-weighted formula (summed participation minutes
// over summed duration minutes); the per-participant view uses the plain
// arithmetic mean of that participant's row percentages. The asymmetry
// matches how the reporting audience reads the two tables.
package analytics
