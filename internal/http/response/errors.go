package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
)

// StatusForAggregateCode maps aggregate error codes onto HTTP statuses.
func StatusForAggregateCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodePreconditionFailed:
		return http.StatusUnprocessableEntity
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondAggregateError translates an aggregate failure into an API error
// envelope. Errors without an aggregate code become a plain 500.
func RespondAggregateError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	if code == "" {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondError(c, StatusForAggregateCode(code), string(code), err)
}
