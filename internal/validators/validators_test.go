package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHexColor(t *testing.T) {
	for in, want := range map[string]bool{
		"#d4af37": true,
		"#FFF":    true,
		"d4af37":  false,
		"#12345":  false,
		"#gggggg": false,
		"":        false,
	} {
		assert.Equal(t, want, IsHexColor(in), in)
	}
}

func TestIsHostname(t *testing.T) {
	for in, want := range map[string]bool{
		"turnos.mibarberia.com":  true,
		"Turnos.MiBarberia.com.": true,
		"localhost":              false,
		"-bad.com":               false,
		"bad-.com":               false,
		"a..b":                   false,
		"192.168.0.1":            false,
		"con espacio.com":        false,
	} {
		assert.Equal(t, want, IsHostname(in), in)
	}
}
