package models

type ClientType string

const (
	ClientRegular ClientType = "REGULAR"
	ClientExpress ClientType = "EXPRESS"
)

type ClientMembership struct {
	ID            string `json:"id,omitempty"`
	PlanID        string `json:"planId"`
	PlanName      string `json:"planName"`
	SessionsTotal int    `json:"sessionsTotal"`
	SessionsUsed  int    `json:"sessionsUsed"`
	StartDate     string `json:"startDate"`
	ExpiryDate    string `json:"expiryDate"`
	Cancelled     bool   `json:"cancelled,omitempty"`
}

// Client belongs to one shop. Phone is stored in canonical form.
type Client struct {
	ID               string             `json:"id"`
	ShopSlug         string             `json:"shopSlug"`
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	Phone            string             `json:"phone"`
	Type             ClientType         `json:"type"`
	Notes            string             `json:"notes,omitempty"`
	ActiveMembership *ClientMembership  `json:"activeMembership,omitempty"`
	PastMemberships  []ClientMembership `json:"pastMemberships,omitempty"`
	LastVisit        string             `json:"lastVisit,omitempty"`
}

func (c Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
