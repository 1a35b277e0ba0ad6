package pricing

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", day(2026, 6, 10), day(2026, 6, 10), 0},
		{"one night", day(2026, 6, 10), day(2026, 6, 11), 1},
		{"week", day(2026, 6, 10), day(2026, 6, 17), 7},
		{"inverted range", day(2026, 6, 17), day(2026, 6, 10), 0},
		{"month boundary", day(2026, 6, 29), day(2026, 7, 2), 3},
		{"year boundary", day(2026, 12, 30), day(2027, 1, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.start, tt.end); got != tt.want {
				t.Errorf("Nights(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestNights_PartialDayRoundsUp(t *testing.T) {
	start := day(2026, 6, 10)
	end := start.Add(25 * time.Hour)

	if got := Nights(start, end); got != 2 {
		t.Errorf("expected 25h span to count as 2 nights, got %d", got)
	}
}

func TestNights_NeverNegative(t *testing.T) {
	starts := []time.Time{
		day(2026, 6, 10),
		day(2026, 6, 11),
		day(2027, 1, 1),
	}
	end := day(2026, 6, 10)

	for _, start := range starts {
		if got := Nights(start, end); got < 0 {
			t.Errorf("Nights(%v, %v) = %d, expected non-negative", start, end, got)
		}
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		rate  float64
		want  float64
	}{
		{"three nights at 120", day(2026, 6, 10), day(2026, 6, 13), 120, 360},
		{"zero nights", day(2026, 6, 10), day(2026, 6, 10), 120, 0},
		{"zero rate", day(2026, 6, 10), day(2026, 6, 13), 0, 0},
		{"fractional rate", day(2026, 6, 10), day(2026, 6, 12), 99.50, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Total(tt.start, tt.end, tt.rate); got != tt.want {
				t.Errorf("Total = %v, want %v", got, tt.want)
			}
		})
	}
}
