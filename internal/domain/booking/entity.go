package booking

import (
	"time"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	return move(b, models.BookingCancelled, now)
}

func MarkAbsent(b *models.Booking, now time.Time) error {
	return move(b, models.BookingAbsent, now)
}

// Complete closes the booking as attended by attendantID and settles
// payment. Payment is never touched by any other transition.
func Complete(b *models.Booking, attendantID string, now time.Time) error {
	if err := move(b, models.BookingCompleted, now); err != nil {
		return err
	}

	b.PaymentStatus = models.PaymentPaid
	b.BarberID = attendantID
	return nil
}

func move(b *models.Booking, to models.BookingStatus, now time.Time) error {
	if err := CanTransition(b.Status, to); err != nil {
		return err
	}

	b.Status = to
	b.UpdatedAt = now
	return nil
}
