package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Звезда", "Звезда"},
		{"A/B:C", "A_B_C"},
		{"  СК  Орбита  ", "СК_Орбита"},
		{`клуб "Юность"`, "клуб_Юность"},
		{"", ""},
		{"   ", ""},
		{"a\\b|c?d", "a_b_c_d"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, SanitizeFileName(c.in), "input %q", c.in)
	}
}

func TestSanitizeFileNameIdempotent(t *testing.T) {
	inputs := []string{"A/B:C", "  СК  Орбита  ", "Звезда", `x*y?z`, "a  b\tc"}
	for _, in := range inputs {
		once := SanitizeFileName(in)
		require.Equal(t, once, SanitizeFileName(once), "input %q", in)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	require.Equal(t, "Иванова И.И., ВК", JoinNonEmpty(", ", "Иванова И.И.", "ВК"))
	require.Equal(t, "Иванова И.И.", JoinNonEmpty(", ", "Иванова И.И.", ""))
	require.Equal(t, "ВК", JoinNonEmpty(", ", "", "ВК"))
	require.Equal(t, "", JoinNonEmpty(", ", "", ""))
}
