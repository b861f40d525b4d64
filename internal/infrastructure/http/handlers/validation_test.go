package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	require.Equal(t, "ann@x.com", SanitizeEmail("  Ann@X.com  "))
	require.Equal(t, "", SanitizeEmail(strings.Repeat("a", MaxEmailLength)+"@x.com"))
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "Ann", SanitizeName("  Ann  "))
	require.Equal(t, "", SanitizeName(strings.Repeat("n", MaxNameLength+1)))
}

func TestSanitizePassword(t *testing.T) {
	require.Equal(t, "Secr3t!", SanitizePassword(" Secr3t! "))
	require.Equal(t, "", SanitizePassword(strings.Repeat("p", MaxPasswordLength+1)))
}
