package http

import (
	"context"

	"tdpulse/internal/analytics"
	"tdpulse/internal/insights"
	"tdpulse/internal/services"
)

// DashboardServiceInterface defines the aggregate views the dashboard
// handler serves.
type DashboardServiceInterface interface {
	Overview(ctx context.Context, f services.Filter) (*services.Overview, error)
	Summary(ctx context.Context, f services.Filter) (analytics.SummaryMetrics, error)
	ByCourse(ctx context.Context, f services.Filter) ([]analytics.GroupMetrics, error)
	ByDirector(ctx context.Context, f services.Filter) ([]analytics.GroupMetrics, error)
	Participants(ctx context.Context, f services.Filter) ([]analytics.ParticipantMetrics, error)
	TimeSeries(ctx context.Context, f services.Filter) ([]analytics.DatePoint, error)
	Insights(ctx context.Context, f services.Filter) ([]insights.Finding, []insights.Finding, error)
}
