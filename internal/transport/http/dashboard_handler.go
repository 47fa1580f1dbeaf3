package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "tdpulse/internal/errors"
	"tdpulse/internal/services"
)

const filterDateLayout = "02/01/2006"

// DashboardHandler serves the aggregate engagement views.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/summary", h.GetSummary)
	r.Get("/courses", h.GetCourses)
	r.Get("/directors", h.GetDirectors)
	r.Get("/participants", h.GetParticipants)
	r.Get("/timeseries", h.GetTimeSeries)
	r.Get("/insights", h.GetInsights)

	return r
}

// filterQuery mirrors the supported filter query parameters. Dates use
// the dataset's own DD/MM/YYYY convention.
type filterQuery struct {
	From     string `validate:"omitempty,datetime=02/01/2006"`
	To       string `validate:"omitempty,datetime=02/01/2006"`
	Course   string `validate:"omitempty,max=200"`
	Director string `validate:"omitempty,max=200"`
}

// parseFilter extracts and validates the shared filter query parameters.
func (h *DashboardHandler) parseFilter(r *http.Request) (services.Filter, error) {
	q := filterQuery{
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		Course:   r.URL.Query().Get("course"),
		Director: r.URL.Query().Get("director"),
	}
	if err := h.validate.Struct(q); err != nil {
		return services.Filter{}, apierrors.ErrValidation("filter",
			"invalid filter parameters: dates must use DD/MM/YYYY")
	}

	f := services.Filter{Course: q.Course, Director: q.Director}
	if q.From != "" {
		from, _ := time.Parse(filterDateLayout, q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(filterDateLayout, q.To)
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return services.Filter{}, apierrors.ErrValidation("filter", "'to' date precedes 'from' date")
	}
	return f, nil
}

// GetOverview returns every view plus the findings in one response.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	overview, err := h.service.Overview(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, overview)
}

// GetSummary returns the overall metrics.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	summary, err := h.service.Summary(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetCourses returns the per-course breakdown.
func (h *DashboardHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	groups, err := h.service.ByCourse(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"courses": groups, "count": len(groups)})
}

// GetDirectors returns the per-director breakdown.
func (h *DashboardHandler) GetDirectors(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	groups, err := h.service.ByDirector(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"directors": groups, "count": len(groups)})
}

// GetParticipants returns the per-participant view.
func (h *DashboardHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	people, err := h.service.Participants(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"participants": people, "count": len(people)})
}

// GetTimeSeries returns the date series.
func (h *DashboardHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	points, err := h.service.TimeSeries(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"points": points, "count": len(points)})
}

// GetInsights returns the generated findings and recommended actions.
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	ins, acts, err := h.service.Insights(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"insights": ins, "actions": acts})
}
