package engine

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"plain step", day(2020, time.May, 15), 2, day(2020, time.July, 15)},
		{"year rollover", day(2020, time.November, 10), 3, day(2021, time.February, 10)},
		{"clamp to feb", day(2023, time.January, 31), 1, day(2023, time.February, 28)},
		{"clamp to leap feb", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"clamp thirty day month", day(2020, time.March, 31), 1, day(2020, time.April, 30)},
		{"negative step", day(2020, time.March, 31), -1, day(2020, time.February, 29)},
		{"negative multi year", day(2020, time.January, 15), -13, day(2018, time.December, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := addMonths(tt.from, tt.months); !got.Equal(tt.want) {
				t.Errorf("addMonths(%s, %d) = %s, want %s",
					tt.from.Format("2006-01-02"), tt.months, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestMergeDates(t *testing.T) {
	a := []time.Time{day(2020, time.January, 1), day(2020, time.January, 5)}
	b := []time.Time{day(2020, time.January, 1), day(2020, time.January, 3), day(2020, time.January, 5)}

	got := mergeDates(a, b)
	want := []time.Time{day(2020, time.January, 1), day(2020, time.January, 3), day(2020, time.January, 5)}
	if len(got) != len(want) {
		t.Fatalf("mergeDates() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("mergeDates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
