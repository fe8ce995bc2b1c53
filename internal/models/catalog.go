package models

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

type MembershipPlan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Sessions     int     `json:"sessions"`
	Price        float64 `json:"price"`
	ValidityDays int     `json:"validityDays"`
	Description  string  `json:"description,omitempty"`
	Active       bool    `json:"active"`
}

// Barber is a staff member. Credentials are optional; only staff with a
// username can log in.
type Barber struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialties  []string `json:"specialties"`
	Avatar       string   `json:"avatar"`
	Active       bool     `json:"active"`
	Username     string   `json:"username,omitempty"`
	PasswordHash string   `json:"passwordHash,omitempty"`
	Branch       string   `json:"branch,omitempty"`
}

// BranchName resolves the staff member's branch, defaulting to the main one.
func (b Barber) BranchName() string {
	if b.Branch == "" {
		return MainBranch
	}
	return b.Branch
}
