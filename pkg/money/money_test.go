package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePennies(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000.00", 100000},
		{"-500.00", -50000},
		{"19.99", 1999},
		{"1,234.56", 123456},
		{"£12.34", 1234},
		{"-£1,234.56", -123456},
		{"0.01", 1},
		{"7", 700},
	}
	for _, tc := range cases {
		got, err := ParsePennies(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePenniesRejects(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "12.345", "1..2"} {
		_, err := ParsePennies(in)
		assert.Error(t, err, in)
	}
}

func TestFormatPennies(t *testing.T) {
	assert.Equal(t, "-1234.56", FormatPennies(-123456))
	assert.Equal(t, "19.99", FormatPennies(1999))
	assert.Equal(t, "0.00", FormatPennies(0))
	assert.Equal(t, "0.05", FormatPennies(5))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "-£1,234.56", Display(-123456))
	assert.Equal(t, "£19.99", Display(1999))
}
