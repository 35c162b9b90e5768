package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/swishlab/hooprank/internal/adapters/repository"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
	"github.com/swishlab/hooprank/internal/domain/predict"
)

const defaultLimit = 25

// parseLimit reads ?limit=N, defaulting when absent and enforcing the
// configured cap.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		if defaultLimit < maxLimit {
			return defaultLimit, nil
		}
		return maxLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("%w: limit %d > %d", ErrLimitExceeded, n, maxLimit)
	}
	return n, nil
}

// classify maps service errors onto HTTP status and error codes.
func classify(err error) (int, string) {
	switch {
	case isNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ncaa.ErrUnknownVariant):
		return http.StatusBadRequest, "unknown_model"
	case errors.Is(err, predict.ErrInvalidLocation),
		errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrEmptyBoard):
		return http.StatusServiceUnavailable, "not_ready"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
