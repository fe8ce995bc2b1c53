package booking

import (
	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// ===============================
// Booking Status
// ===============================

// transitions lists the states reachable from each state. Anything not
// listed is terminal.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingConfirmed: {
		models.BookingCompleted,
		models.BookingAbsent,
		models.BookingCancelled,
	},
}

func IsTerminal(s models.BookingStatus) bool {
	return len(transitions[s]) == 0
}

// CanTransition refuses any move that is not an outgoing edge of from.
func CanTransition(from, to models.BookingStatus) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func ParseStatus(raw string) (models.BookingStatus, error) {
	switch s := models.BookingStatus(raw); s {
	case models.BookingConfirmed, models.BookingCompleted,
		models.BookingAbsent, models.BookingCancelled:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

func InitialStatus() models.BookingStatus {
	return models.BookingConfirmed
}
