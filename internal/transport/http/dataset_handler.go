package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "tdpulse/internal/errors"
	"tdpulse/internal/store"
)

// DatasetStoreInterface is the slice of the store the dataset handler
// needs: validated replacement and status reporting.
type DatasetStoreInterface interface {
	Replace(ctx context.Context, r io.Reader) (int, error)
	Describe(ctx context.Context) (store.Status, error)
}

// DatasetHandler handles dataset upload and status requests.
type DatasetHandler struct {
	store          DatasetStoreInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(st DatasetStoreInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{
		store:          st,
		logger:         logger.With(slog.String("component", "dataset_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/status", h.GetStatus)

	return r
}

// Upload accepts a replacement dataset file, re-validates its schema and
// swaps it in atomically. A rejected file leaves the previous dataset
// untouched; the response for a rejection names the missing columns.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	body, err := h.uploadBody(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer body.Close()

	rows, err := h.store.Replace(r.Context(), body)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset upload accepted", slog.Int("rows", rows))
	render.JSON(w, r, map[string]interface{}{
		"status":  "accepted",
		"rows":    rows,
		"message": "Dataset replaced successfully",
	})
}

// uploadBody returns the dataset bytes from either a multipart "file"
// part or, for text bodies, the raw request body.
func (h *DatasetHandler) uploadBody(r *http.Request) (io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, apierrors.ErrValidation("Content-Type", "Content-Type header is required")
	}
	if r.Body == nil {
		return nil, apierrors.ErrInvalidRequest
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err == nil {
		file, _, ferr := r.FormFile("file")
		if ferr != nil {
			return nil, apierrors.ErrValidation("file", "multipart upload must carry a 'file' part")
		}
		return file, nil
	} else if err == http.ErrNotMultipart {
		return r.Body, nil
	} else {
		return nil, apierrors.InvalidRequestWithError(err)
	}
}

// GetStatus reports the current dataset: row count, content hash and
// load time. A zero-row dataset is a normal 200, not an error, so the
// display layer can prompt for an upload.
func (h *DatasetHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.store.Describe(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, status)
}
