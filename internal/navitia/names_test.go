package navitia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLocationName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"redundant parenthetical", "Thionville (Thionville)", "Thionville"},
		{"case-insensitive match", "Metz (METZ)", "Metz"},
		{"whitespace tolerated", "Metz  ( metz )", "Metz"},
		{"informative parenthetical kept", "Paris (Gare du Nord)", "Paris (Gare du Nord)"},
		{"no parenthetical", "Luxembourg", "Luxembourg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLocationName(tt.in))
		})
	}
}

func TestCleanLocationNameIdempotent(t *testing.T) {
	for _, in := range []string{
		"Thionville (Thionville)",
		"Paris (Gare du Nord)",
		"Metz",
		"",
	} {
		once := CleanLocationName(in)
		assert.Equal(t, once, CleanLocationName(once), "input %q", in)
	}
}

func TestNormalizeStopName(t *testing.T) {
	assert.Equal(t, "thionville", NormalizeStopName("Thionville (Thionville)"))
	assert.Equal(t, "thionville", NormalizeStopName("  THIONVILLE  "))
	assert.Equal(t, NormalizeStopName("Metz (Metz)"), NormalizeStopName("metz"))
}
