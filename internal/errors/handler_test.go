package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdpulse/internal/dataset"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorSchemaError(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dataset", nil)

	h.HandleError(rec, req, &dataset.SchemaError{Missing: []string{"Curso", "Duração"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeDatasetSchema, problem["type"])
	assert.Equal(t, "/api/dataset", problem["instance"])
	assert.ElementsMatch(t, []interface{}{"Curso", "Duração"}, problem["missing_columns"])
}

func TestHandleErrorEncodingError(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dataset", nil)

	h.HandleError(rec, req, &dataset.EncodingError{
		Attempted: []string{"utf-8", "iso-8859-1"},
		Cause:     errors.New("bad bytes"),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeDatasetEncoding, problem["type"])
	assert.ElementsMatch(t, []interface{}{"utf-8", "iso-8859-1"}, problem["attempted_encodings"])
}

func TestHandleErrorAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "dataset empty", err: ErrDatasetEmpty, wantStatus: http.StatusUnprocessableEntity, wantType: TypeDatasetEmpty},
		{name: "validation", err: ErrValidation("from", "bad date"), wantStatus: http.StatusBadRequest, wantType: TypeValidation},
		{name: "not found", err: ErrNotFound, wantStatus: http.StatusNotFound, wantType: TypeNotFound},
		{name: "rate limit", err: ErrRateLimitExceeded, wantStatus: http.StatusTooManyRequests, wantType: TypeRateLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, decodeProblem(t, rec)["type"])
		})
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	h.HandleError(rec, req, errors.New("database on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, problem["type"])
	// Internal detail must not leak.
	assert.NotContains(t, problem["detail"], "database on fire")
}

func TestHandleErrorContextCancelled(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	h.HandleError(rec, req, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, TypeTimeout, decodeProblem(t, rec)["type"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(422, TypeDatasetSchema, "Dataset Schema Invalid", "missing", "/upload").
		WithExtension("missing_columns", []string{"Curso"})

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TypeDatasetSchema, out["type"])
	assert.Equal(t, float64(422), out["status"])
	assert.Equal(t, []interface{}{"Curso"}, out["missing_columns"])
}
