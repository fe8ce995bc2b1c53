package client

import (
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

const (
	MembershipAny     = ""
	MembershipWith    = "WITH"
	MembershipWithout = "WITHOUT"
)

// Filter narrows the client directory. Zero values match everything.
// LastVisitFrom/To are inclusive "YYYY-MM-DD" bounds; clients that never
// visited are excluded once either bound is set.
type Filter struct {
	Search        string
	Type          models.ClientType
	Membership    string
	LastVisitFrom string
	LastVisitTo   string
}

func Apply(clients []models.Client, f Filter) []models.Client {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	searchDigits := digits(search)

	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if search != "" {
			name := strings.ToLower(c.FullName())
			byPhone := searchDigits != "" && strings.Contains(digits(c.Phone), searchDigits)
			if !strings.Contains(name, search) && !byPhone {
				continue
			}
		}

		if f.Type != "" && c.Type != f.Type {
			continue
		}

		switch f.Membership {
		case MembershipWith:
			if c.ActiveMembership == nil {
				continue
			}
		case MembershipWithout:
			if c.ActiveMembership != nil {
				continue
			}
		}

		if f.LastVisitFrom != "" || f.LastVisitTo != "" {
			if c.LastVisit == "" {
				continue
			}
			if f.LastVisitFrom != "" && c.LastVisit < f.LastVisitFrom {
				continue
			}
			if f.LastVisitTo != "" && c.LastVisit > f.LastVisitTo {
				continue
			}
		}

		out = append(out, c)
	}
	return out
}
