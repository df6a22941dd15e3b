package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero", "0", "₹ 0/-"},
		{"small", "999", "₹ 999/-"},
		{"thousand", "1000", "₹ 1,000/-"},
		{"lakh", "100000", "₹ 1,00,000/-"},
		{"odd head", "341000", "₹ 3,41,000/-"},
		{"crore", "12345678", "₹ 1,23,45,678/-"},
		{"rounds half up", "84000.5", "₹ 84,001/-"},
		{"rounds down", "84000.49", "₹ 84,000/-"},
		{"negative", "-1500", "₹ -1,500/-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyIndianGrouping(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", "1"},
		{"1234", "1,234"},
		{"12345", "12,345"},
		{"123456", "1,23,456"},
		{"1234567", "12,34,567"},
		{"123456789", "12,34,56,789"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, applyIndianGrouping(tt.in), tt.in)
	}
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, "Rs. 4,25,000/-", FormatText(decimal.NewFromInt(425000)))
}
