package model

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"0.12345", "0.12"},
		{"0.129999", "0.13"},
		{"1234.104", "1234.1"},
		{"1234.105", "1234.11"},
		{"1234.115", "1234.12"},
		{"1234.145", "1234.15"},
		{"1234.144", "1234.14"},
		{"1234.991", "1234.99"},
		{"6.125", "6.13"},
		{"-0.005", "-0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundCents(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.4", 0},
		{"0.5", 1},
		{"2.5", 3},
		{"4", 4},
		{"7.49", 7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundHalfUp(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got.IntPart())
		})
	}
}

func TestPGNumeric(t *testing.T) {
	d := decimal.RequireFromString("96.13")
	n := ToPGNumeric(d)
	assert.True(t, n.Valid)

	back, err := FromPGNumeric(n)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))

	zero, err := FromPGNumeric(pgtype.Numeric{})
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = FromPGNumeric(pgtype.Numeric{Int: big.NewInt(1), NaN: true, Valid: true})
	require.Error(t, err)
}
