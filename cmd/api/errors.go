package main

import (
	"errors"
	"net/http"

	"medi-plans/internal/plans"
	"medi-plans/internal/providers/medicare"
	"medi-plans/internal/scanner"
)

// statusFor maps a lookup error to the status of a JSON route
func statusFor(err error) int {
	switch {
	case errors.Is(err, scanner.ErrNotZip),
		errors.Is(err, medicare.ErrInvalidState),
		errors.Is(err, medicare.ErrInvalidZip),
		errors.Is(err, medicare.ErrInvalidPlanID),
		errors.Is(err, medicare.ErrInvalidPathSegment):
		return http.StatusBadRequest
	case medicare.IsNotFound(err), errors.Is(err, plans.ErrCountyNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
