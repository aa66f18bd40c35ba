package money

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRL(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"70,01", 70.01},
		{"1.234,56", 1234.56},
		{" 35,00 ", 35},
		{"0,99", 0.99},
		{"140", 140},
		{"1.000.000,00", 1000000},
	}
	for _, tc := range cases {
		got, err := ParseBRL(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseBRLInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12,34,56", "R$ 10"} {
		_, err := ParseBRL(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "70.01", FormatAmount(70.01))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "35.00", FormatAmount(35))
	assert.Equal(t, "999999.99", FormatAmount(999999.99))

	// two decimals, no thousands separator, across the supported range
	for _, v := range []float64{0, 0.01, 1, 12.5, 1234.56, 99999.9, 999999.99} {
		s := FormatAmount(v)
		require.NotContains(t, s, ",")
		parts := strings.Split(s, ".")
		require.Len(t, parts, 2, "value %v -> %q", v, s)
		assert.Len(t, parts[1], 2, "value %v -> %q", v, s)
	}
}

func TestCentsComparison(t *testing.T) {
	// 0.1+0.2 is the classic float trap; cents comparison must absorb it.
	assert.True(t, EqualCents(0.1+0.2, 0.3))
	assert.True(t, EqualCents(70.01, 70.011))
	assert.False(t, EqualCents(70.01, 70.02))
	assert.Equal(t, int64(7001), Cents(70.01))
}

func TestOrderTotal(t *testing.T) {
	cases := []struct {
		q    int
		p, d float64
		want float64
	}{
		{2, 35.00, 0.01, 70.01},
		{1, 35.00, 0.00, 35.00},
		{3, 33.33, 0.07, 100.06},
		{10, 42.90, 0.99, 429.99},
	}
	for _, tc := range cases {
		got := OrderTotal(tc.q, tc.p, tc.d)
		assert.Equal(t, tc.want, got, fmt.Sprintf("q=%d p=%v d=%v", tc.q, tc.p, tc.d))
	}
}
