package client

import (
	"encoding/csv"
	"io"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

var exportHeader = []string{"Nombre", "Apellido", "Telefono", "Tipo", "Ultima Visita", "Membresia"}

// WriteCSV writes the directory export. Fields containing commas, quotes
// or newlines are quoted.
func WriteCSV(w io.Writer, clients []models.Client) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, c := range clients {
		plan := ""
		if c.ActiveMembership != nil {
			plan = c.ActiveMembership.PlanName
		}

		if err := cw.Write([]string{
			c.FirstName,
			c.LastName,
			c.Phone,
			string(c.Type),
			c.LastVisit,
			plan,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
