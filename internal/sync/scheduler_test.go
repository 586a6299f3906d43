package sync

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	sched := NewScheduler(nil, 12, testLogger())

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the hour fires same day",
			now:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
			want: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour rolls to next day",
			now:  time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour rolls to next day",
			now:  time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "end of month rolls over",
			now:  time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sched.nextRun(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("nextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestNewScheduler_ClampsBadHour(t *testing.T) {
	for _, hour := range []int{-1, 24, 99} {
		sched := NewScheduler(nil, hour, testLogger())
		if sched.hour != 12 {
			t.Errorf("hour %d: clamped to %d, want 12", hour, sched.hour)
		}
	}
}
