package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingAbsent    BookingStatus = "ABSENT"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

type Booking struct {
	ID            string        `json:"id"`
	ShopSlug      string        `json:"shopSlug"`
	ServiceID     string        `json:"serviceId"`
	BarberID      string        `json:"barberId"`
	ClientID      string        `json:"clientId"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	ClientName    string        `json:"clientName"`
	ClientPhone   string        `json:"clientPhone"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// BookingRecord is the persisted row behind a Booking document.
type BookingRecord struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ShopSlug  string    `gorm:"size:100;index:idx_bookings_shop_date;not null" json:"shop_slug"`
	Date      string    `gorm:"size:10;index:idx_bookings_shop_date" json:"date"`
	Data      string    `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BookingRecord) TableName() string {
	return "bookings"
}
