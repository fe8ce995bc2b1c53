package models

import "time"

type Plan string

const (
	PlanFree  Plan = "FREE"
	PlanBasic Plan = "BASIC"
	PlanPro   Plan = "PRO"
)

// MainBranch is the implicit branch every shop has. Staff and stock
// without an explicit branch belong to it.
const MainBranch = "Casa Central"

// Features is the closed set of plan-gated capabilities.
type Features struct {
	MercadoPago      bool   `json:"mercadoPago"`
	MercadoPagoToken string `json:"mercadoPagoToken,omitempty"`
	WhatsApp         bool   `json:"whatsapp"`
	MultiBranch      bool   `json:"multiBranch"`
	Memberships      bool   `json:"memberships"`
	Inventory        bool   `json:"inventory"`
	Receptions       bool   `json:"receptions"`
}

type NotificationPreferences struct {
	EmailNewBooking   bool `json:"emailNewBooking"`
	EmailCancellation bool `json:"emailCancellation"`
	PushDailySummary  bool `json:"pushDailySummary"`
	SMSReminders      bool `json:"smsReminders"`
}

type Branch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
}

// Shop is the tenant document. It is read and written as a whole.
type Shop struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Logo         string `json:"logo"`
	ThemeColor   string `json:"themeColor"`
	Description  string `json:"description"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Timezone     string `json:"timezone,omitempty"`
	Active       bool   `json:"active"`
	CustomDomain string `json:"customDomain,omitempty"`

	AdminUser         string `json:"adminUser"`
	AdminPasswordHash string `json:"adminPasswordHash,omitempty"`

	Plan     Plan     `json:"plan"`
	Features Features `json:"features"`

	OpeningHours      []DaySchedule            `json:"openingHours"`
	BranchSchedules   map[string][]DaySchedule `json:"branchSchedules,omitempty"`
	NotificationPrefs NotificationPreferences  `json:"notificationPrefs"`
	Branches          []Branch                 `json:"branches"`

	Services        []Service        `json:"services"`
	Barbers         []Barber         `json:"barbers"`
	Clients         []Client         `json:"clients"`
	MembershipPlans []MembershipPlan `json:"membershipPlans"`
	Inventory       []StockItem      `json:"inventory"`
	Receptions      []StockItem      `json:"receptions"`

	// Revision is bumped by every successful write and guards against
	// lost updates between concurrent editors.
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Redacted returns a copy safe to send to clients: credential hashes and
// the payment token are stripped.
func (s Shop) Redacted() Shop {
	out := s
	out.AdminPasswordHash = ""
	out.Features.MercadoPagoToken = ""

	out.Barbers = make([]Barber, len(s.Barbers))
	for i, b := range s.Barbers {
		b.PasswordHash = ""
		out.Barbers[i] = b
	}
	return out
}

// ShopRecord is the persisted row behind a Shop document.
type ShopRecord struct {
	Slug      string    `gorm:"primaryKey;size:100" json:"slug"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Data      string    `gorm:"type:jsonb;not null" json:"-"`
	Revision  int64     `gorm:"not null;default:0" json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShopRecord) TableName() string {
	return "shops"
}
