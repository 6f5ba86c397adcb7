// file: internal/response/response_test.go
package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picnicquest/internal/services"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &resp
}

func TestWriteSuccessEnvelope(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	builder := NewBuilder(logger, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spots", nil)

	builder.WriteSuccess(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotZero(t, resp.Timestamp)
}

func TestWriteErrorMapsServiceStatus(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	builder := NewBuilder(logger, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/99", nil)

	builder.WriteError(rec, req, services.EntityNotFoundError("booking", 99))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeBody(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Type)
}

func TestWriteErrorMasksInternalDetails(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	builder := NewBuilder(logger, true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)

	builder.WriteError(rec, req, services.NewInternalError("connection string leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeBody(t, rec)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "connection string")
}

func TestParsePaginationDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews", nil)

	params := ParsePagination(req)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, "desc", params.Order)
}

func TestParsePaginationPageAlias(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?page=3&limit=10", nil)

	params := ParsePagination(req)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 20, params.Offset)
}

func TestParsePaginationCapsLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews?limit=5000", nil)

	params := ParsePagination(req)
	assert.Equal(t, 100, params.Limit)
}
