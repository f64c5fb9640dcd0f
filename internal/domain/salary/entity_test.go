package salary

import "testing"

func TestMonthKey(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  string
	}{
		{2025, 3, "2025-03"},
		{2025, 12, "2025-12"},
		{2024, 1, "2024-01"},
		{999, 7, "0999-07"},
	}

	for _, tt := range tests {
		if got := MonthKey(tt.year, tt.month); got != tt.want {
			t.Errorf("MonthKey(%d, %d) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}
