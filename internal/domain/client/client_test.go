package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"351 555-1234", "+5493515551234"},
		{"5493515551234", "+5493515551234"},
		{"+54 9 351 555 1234", "+5493515551234"},
		{"(0351) 15-555", "+549035115555"},
		{"", "+549"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestNormalizePhoneIsIdempotent(t *testing.T) {
	for _, raw := range []string{"351 555-1234", "5493515551234", "11 4444 5555"} {
		once := NormalizePhone(raw)
		assert.Equal(t, once, NormalizePhone(once))
	}
}

func TestFindByPhone(t *testing.T) {
	clients := []models.Client{
		{ID: "1", Phone: "+5493515551234"},
		{ID: "2", Phone: "+5491144445555"},
		{ID: "3", Phone: ""},
	}

	tests := []struct {
		name    string
		partial string
		wantID  string
	}{
		{"stored contains input", "5551234", "1"},
		{"input contains stored", "0000+5491144445555", "2"},
		{"formatted input", "(11) 4444-5555", "2"},
		{"no match", "987654321", ""},
		{"empty input never matches", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindByPhone(clients, tt.partial)
			if tt.wantID == "" {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestFindByPhoneReturnsPointerIntoSlice(t *testing.T) {
	clients := []models.Client{{ID: "1", Phone: "+5493515551234"}}

	got, ok := FindByPhone(clients, "3515551234")
	require.True(t, ok)
	got.LastVisit = "2026-01-01"

	assert.Equal(t, "2026-01-01", clients[0].LastVisit)
}

func TestAssertPhoneAvailable(t *testing.T) {
	clients := []models.Client{
		{ID: "1", Phone: "+5493515551234"},
		{ID: "2", Phone: "+5491144445555"},
	}

	assert.NoError(t, AssertPhoneAvailable(clients, "+5493510000000", ""))
	assert.NoError(t, AssertPhoneAvailable(clients, "+5493515551234", "1"), "own phone on edit")

	err := AssertPhoneAvailable(clients, "+5493515551234", "2")
	assert.True(t, httperr.IsBusiness(err, "phone_already_registered"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	assert.NoError(t, AssertPhoneAvailable(clients, "+549351555123", ""), "exact match only")
}

func TestApplyFilter(t *testing.T) {
	clients := []models.Client{
		{ID: "1", FirstName: "Juan", LastName: "Pérez", Phone: "+5493515551234", Type: models.ClientRegular, LastVisit: "2026-02-10",
			ActiveMembership: &models.ClientMembership{PlanName: "Pack"}},
		{ID: "2", FirstName: "Lucía", LastName: "Gómez", Phone: "+5491144445555", Type: models.ClientExpress},
		{ID: "3", FirstName: "Juana", LastName: "Ruiz", Phone: "+5493519990000", Type: models.ClientRegular, LastVisit: "2026-03-01"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"everything", Filter{}, []string{"1", "2", "3"}},
		{"name search", Filter{Search: "juan"}, []string{"1", "3"}},
		{"phone search", Filter{Search: "4444"}, []string{"2"}},
		{"type", Filter{Type: models.ClientExpress}, []string{"2"}},
		{"with membership", Filter{Membership: MembershipWith}, []string{"1"}},
		{"without membership", Filter{Membership: MembershipWithout}, []string{"2", "3"}},
		{"visit range", Filter{LastVisitFrom: "2026-02-01", LastVisitTo: "2026-02-28"}, []string{"1"}},
		{"visit from", Filter{LastVisitFrom: "2026-02-11"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(clients, tt.filter)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	clients := []models.Client{
		{FirstName: "Juan", LastName: "Pérez", Phone: "+5493515551234", Type: models.ClientRegular, LastVisit: "2026-02-10",
			ActiveMembership: &models.ClientMembership{PlanName: "Pack 4"}},
		{FirstName: "Ana, María", LastName: `O"Neil`, Phone: "+5491144445555", Type: models.ClientExpress},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, clients))

	want := "Nombre,Apellido,Telefono,Tipo,Ultima Visita,Membresia\n" +
		"Juan,Pérez,+5493515551234,REGULAR,2026-02-10,Pack 4\n" +
		`"Ana, María","O""Neil",+5491144445555,EXPRESS,,` + "\n"
	assert.Equal(t, want, buf.String())
}
