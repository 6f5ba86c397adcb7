// file: internal/response/pagination.go
package response

import (
	"net/http"
	"strconv"

	"picnicquest/internal/models"
)

// ParsePagination reads limit, offset, sort and order query parameters.
// Missing or malformed values fall back to the model defaults.
func ParsePagination(r *http.Request) models.PaginationParams {
	query := r.URL.Query()

	params := models.PaginationParams{
		Sort:  query.Get("sort"),
		Order: query.Get("order"),
	}

	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}

	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			params.Offset = offset
		}
	}

	// page is a convenience alias for offset = (page-1)*limit
	if raw := query.Get("page"); raw != "" && params.Offset == 0 {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			limit := params.Limit
			if limit <= 0 {
				limit = 20
			}
			params.Offset = (page - 1) * limit
		}
	}

	params.Normalize()
	return params
}
