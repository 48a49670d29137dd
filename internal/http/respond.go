package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/auth"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeFieldError(w http.ResponseWriter, status int, field, msg string) {
	writeJSON(w, status, map[string]map[string][]string{
		"errors": {field: {msg}},
	})
}

// writeDomainError maps service and repository errors to HTTP responses.
// Anything unrecognised is logged and reported as a 500.
func writeDomainError(w http.ResponseWriter, logger *log.Logger, err error) {
	var (
		validation *railway.ValidationError
		outOfRange *booking.OutOfRangeError
		seatTaken  *booking.SeatTakenError
		conflict   *booking.ConflictError
		permission *auth.PermissionError
	)

	switch {
	case errors.As(err, &validation):
		writeFieldError(w, http.StatusBadRequest, validation.Field, validation.Message)
	case errors.As(err, &outOfRange):
		writeFieldError(w, http.StatusBadRequest, outOfRange.Field, outOfRange.Error())
	case errors.As(err, &seatTaken):
		writeFieldError(w, http.StatusBadRequest, "tickets", seatTaken.Error())
	case errors.As(err, &conflict):
		writeFieldError(w, http.StatusConflict, "tickets", conflict.Message())
	case errors.As(err, &permission):
		status := http.StatusForbidden
		if !permission.Identity.Authenticated() {
			status = http.StatusUnauthorized
		}
		writeError(w, status, permission.Error())
	case errors.Is(err, railway.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		logger.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
