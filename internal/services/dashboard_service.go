// Package services composes the store, the analytics views and the
// insight generator behind the HTTP handlers.
package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tdpulse/internal/analytics"
	"tdpulse/internal/dataset"
	"tdpulse/internal/insights"
	"tdpulse/internal/store"
)

// Filter narrows the table before aggregation. Zero values leave the
// corresponding dimension unfiltered.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Course   string
	Director string
}

func (f Filter) apply(t *dataset.Table) *dataset.Table {
	t = t.FilterDateRange(f.From, f.To)
	t = t.FilterCourse(f.Course)
	return t.FilterDirector(f.Director)
}

// Overview bundles every aggregate view plus the generated findings.
type Overview struct {
	Summary      analytics.SummaryMetrics       `json:"summary"`
	Courses      []analytics.GroupMetrics       `json:"courses"`
	Directors    []analytics.GroupMetrics       `json:"directors"`
	Participants []analytics.ParticipantMetrics `json:"participants"`
	TimeSeries   []analytics.DatePoint          `json:"time_series"`
	Insights     []insights.Finding             `json:"insights"`
	Actions      []insights.Finding             `json:"actions"`
}

// DashboardService serves the aggregate views over the stored dataset.
type DashboardService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(st *store.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  st,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// table loads the dataset and applies the filter. The result is a fresh
// snapshot; aggregations over it never see concurrent mutation.
func (s *DashboardService) table(ctx context.Context, f Filter) (*dataset.Table, error) {
	t, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return f.apply(t), nil
}

// Overview computes all five views and the findings in one pass. The
// views are independent pure reads over the same immutable snapshot, so
// they fan out concurrently.
func (s *DashboardService) Overview(ctx context.Context, f Filter) (*Overview, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, err
	}

	var out Overview
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { out.Summary = analytics.Summary(t); return nil })
	g.Go(func() error { out.Courses = analytics.ByCourse(t); return nil })
	g.Go(func() error { out.Directors = analytics.ByDirector(t); return nil })
	g.Go(func() error { out.Participants = analytics.Individual(t); return nil })
	g.Go(func() error { out.TimeSeries = analytics.TimeSeries(t); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Insights, out.Actions = insights.Generate(insights.Input{
		Summary:    out.Summary,
		ByCourse:   out.Courses,
		ByDirector: out.Directors,
		Table:      t,
	})

	s.logger.DebugContext(ctx, "overview computed",
		slog.Int("rows", t.Len()),
		slog.Int("courses", len(out.Courses)),
		slog.Int("directors", len(out.Directors)))
	return &out, nil
}

// Summary returns the overall metrics for the filtered table.
func (s *DashboardService) Summary(ctx context.Context, f Filter) (analytics.SummaryMetrics, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return analytics.SummaryMetrics{}, err
	}
	return analytics.Summary(t), nil
}

// ByCourse returns the per-course breakdown for the filtered table.
func (s *DashboardService) ByCourse(ctx context.Context, f Filter) ([]analytics.GroupMetrics, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ByCourse(t), nil
}

// ByDirector returns the per-director breakdown for the filtered table.
func (s *DashboardService) ByDirector(ctx context.Context, f Filter) ([]analytics.GroupMetrics, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.ByDirector(t), nil
}

// Participants returns the per-participant view for the filtered table.
func (s *DashboardService) Participants(ctx context.Context, f Filter) ([]analytics.ParticipantMetrics, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.Individual(t), nil
}

// TimeSeries returns the date series for the filtered table.
func (s *DashboardService) TimeSeries(ctx context.Context, f Filter) ([]analytics.DatePoint, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.TimeSeries(t), nil
}

// Insights generates the findings for the filtered table.
func (s *DashboardService) Insights(ctx context.Context, f Filter) ([]insights.Finding, []insights.Finding, error) {
	t, err := s.table(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	ins, acts := insights.Generate(insights.Input{
		Summary:    analytics.Summary(t),
		ByCourse:   analytics.ByCourse(t),
		ByDirector: analytics.ByDirector(t),
		Table:      t,
	})
	return ins, acts, nil
}
