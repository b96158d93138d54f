package utils

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{65432, "01:05"},
		{3600000, "60:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.ms); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
