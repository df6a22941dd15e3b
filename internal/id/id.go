package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatRowID returns a row ID like "r001".
func FormatRowID(seq int) string {
	return fmt.Sprintf("r%03d", seq)
}

// ParseRowID parses "r001" into its sequence number.
func ParseRowID(rowID string) (int, error) {
	if !strings.HasPrefix(rowID, "r") {
		return 0, fmt.Errorf("invalid row ID format: %q", rowID)
	}
	seq, err := strconv.Atoi(rowID[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid sequence in row ID %q: %w", rowID, err)
	}
	if seq < 1 {
		return 0, fmt.Errorf("invalid sequence in row ID %q: must be positive", rowID)
	}
	return seq, nil
}

// FormatEstimateNumber returns an estimate reference like "EST-2025-01-001".
func FormatEstimateNumber(prefix string, date time.Time, seq int) string {
	if prefix == "" {
		prefix = "EST"
	}
	return fmt.Sprintf("%s-%04d-%02d-%03d", prefix, date.Year(), int(date.Month()), seq)
}
