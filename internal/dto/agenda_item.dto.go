package dto

import "github.com/BruksfildServices01/turnolibre/internal/models"

// AgendaItemDTO is a booking as the agenda shows it, with the service
// and barber resolved to names.
type AgendaItemDTO struct {
	ID            string               `json:"id"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	ClientID      string               `json:"clientId"`
	ClientName    string               `json:"clientName"`
	ClientPhone   string               `json:"clientPhone"`
	ServiceID     string               `json:"serviceId"`
	ServiceName   string               `json:"serviceName"`
	BarberID      string               `json:"barberId"`
	BarberName    string               `json:"barberName"`
}

// NewAgendaItems resolves names against shop. Deleted services or staff
// keep their id and an empty name.
func NewAgendaItems(shop *models.Shop, bookings []models.Booking) []AgendaItemDTO {
	services := make(map[string]string, len(shop.Services))
	for _, s := range shop.Services {
		services[s.ID] = s.Name
	}
	barbers := make(map[string]string, len(shop.Barbers))
	for _, b := range shop.Barbers {
		barbers[b.ID] = b.Name
	}

	out := make([]AgendaItemDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, AgendaItemDTO{
			ID:            b.ID,
			Date:          b.Date,
			Time:          b.Time,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			ClientID:      b.ClientID,
			ClientName:    b.ClientName,
			ClientPhone:   b.ClientPhone,
			ServiceID:     b.ServiceID,
			ServiceName:   services[b.ServiceID],
			BarberID:      b.BarberID,
			BarberName:    barbers[b.BarberID],
		})
	}
	return out
}
