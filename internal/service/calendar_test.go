package service

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}

	cases := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"普通月份", date(2025, time.March, 15), 1, date(2025, time.April, 15)},
		{"跨年", date(2025, time.November, 10), 3, date(2026, time.February, 10)},
		{"多年", date(2025, time.January, 1), 24, date(2027, time.January, 1)},
		{"月末收敛到二月", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"闰年二月", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"三十一日到三十日", date(2025, time.March, 31), 1, date(2025, time.April, 30)},
		{"十二个月整", date(2025, time.June, 15), 12, date(2026, time.June, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := addMonths(tc.start, tc.months)
			if !got.Equal(tc.want) {
				t.Fatalf("addMonths(%v, %d) = %v, want %v", tc.start, tc.months, got, tc.want)
			}
		})
	}
}

func TestAddMonthsKeepsClock(t *testing.T) {
	start := time.Date(2025, time.May, 20, 23, 59, 58, 0, time.UTC)
	got := addMonths(start, 2)
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 58 {
		t.Fatalf("addMonths changed time of day: got %v", got)
	}
}
