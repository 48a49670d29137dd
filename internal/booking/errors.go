package booking

import (
	"fmt"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// OutOfRangeError reports a cargo or seat number outside the train's bounds.
type OutOfRangeError struct {
	Field string
	Min   int
	Max   int
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be in range [%d, %d], not %d", e.Field, e.Min, e.Max, e.Value)
}

// SeatTakenError reports a (cargo, seat) already booked on the journey,
// either by a persisted ticket or by an earlier ticket of the same order.
type SeatTakenError struct {
	JourneyID int64
	Cargo     int
	Seat      int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d in cargo %d is already taken on journey %d", e.Seat, e.Cargo, e.JourneyID)
}

// ConflictError is returned when the database rejects the order after the
// pre-checks passed, or the transaction times out. The order was not created
// and the request may be retried. The place is set when the conflicting
// ticket is known.
type ConflictError struct {
	JourneyID int64
	Cargo     int
	Seat      int
	Cause     error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message(), e.Cause)
}

// Message is the client-facing part of the error, without database detail.
func (e *ConflictError) Message() string {
	if e.Seat == 0 {
		return "order conflicted with a concurrent booking, please retry"
	}
	return fmt.Sprintf("seat %d in cargo %d was booked concurrently on journey %d, please retry", e.Seat, e.Cargo, e.JourneyID)
}

func (e *ConflictError) Unwrap() error { return e.Cause }

func (e *ConflictError) Retryable() bool { return true }

func invalidTicket(field, message string) error {
	return &railway.ValidationError{Field: field, Message: message}
}
