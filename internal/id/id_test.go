package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRowID(t *testing.T) {
	tests := []struct {
		seq  int
		want string
	}{
		{1, "r001"},
		{42, "r042"},
		{1234, "r1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRowID(tt.seq))
	}
}

func TestParseRowID(t *testing.T) {
	seq, err := ParseRowID("r007")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	for _, bad := range []string{"", "7", "rx", "r000", "row1"} {
		_, err := ParseRowID(bad)
		assert.Error(t, err, "ParseRowID(%q)", bad)
	}
}

func TestFormatEstimateNumber(t *testing.T) {
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "EST-2025-03-001", FormatEstimateNumber("", date, 1))
	assert.Equal(t, "SSI-2025-03-012", FormatEstimateNumber("SSI", date, 12))
}
