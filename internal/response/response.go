// file: internal/response/response.go
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"picnicquest/internal/middleware"
	"picnicquest/internal/services"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder writes standardized JSON responses
type Builder struct {
	logger *zap.Logger

	// maskInternal hides internal error messages from clients
	maskInternal bool
}

// NewBuilder creates a new response builder
func NewBuilder(logger *zap.Logger, maskInternal bool) *Builder {
	return &Builder{
		logger:       logger,
		maskInternal: maskInternal,
	}
}

// WriteSuccess writes a 200 response with the given payload
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, http.StatusOK, &APIResponse{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 response with the given payload
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, http.StatusCreated, &APIResponse{
		Success: true,
		Data:    data,
	})
}

// WriteNoContent writes a 204 response
func (b *Builder) WriteNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteServiceUnavailable writes a 503 with the given payload
func (b *Builder) WriteServiceUnavailable(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, http.StatusServiceUnavailable, &APIResponse{
		Success: false,
		Data:    data,
	})
}

// WriteError maps a service error to its HTTP status and writes it
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := services.GetServiceError(err)
	status := serviceErr.GetStatusCode()

	message := serviceErr.Message
	if b.maskInternal && status >= http.StatusInternalServerError {
		message = "An internal error occurred"
	}

	if status >= http.StatusInternalServerError {
		b.logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	b.writeJSON(w, r, status, &APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:    serviceErr.Type,
			Message: message,
			Code:    serviceErr.Code,
			Details: serviceErr.Details,
		},
	})
}

func (b *Builder) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp *APIResponse) {
	resp.RequestID = middleware.GetRequestID(r.Context())
	resp.Timestamp = time.Now().Unix()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}
