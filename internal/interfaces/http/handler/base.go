// Package handler implements the partner-facing HTTP endpoints. The wire
// contract is fixed: raw JSON documents on success and a bare
// {"error": message} object on failure.
package handler

import (
	"errors"
	"net/http"

	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// errorBody is the contract's only error shape
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps an error onto the contract's status codes. Domain errors
// carry their own partner-visible messages; anything else is masked behind
// the generic 500 body.
func respondError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusForCode(domainErr.Code), errorBody{Error: domainErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{Error: "Internal server error"})
}

func statusForCode(code string) int {
	switch code {
	case "INVALID_INPUT":
		return http.StatusBadRequest
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "NOT_FOUND":
		return http.StatusNotFound
	case "CONCURRENCY_CONFLICT":
		return http.StatusConflict
	case "LABEL_UNAVAILABLE":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
