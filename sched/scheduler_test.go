package sched

import (
	"testing"
	"time"
)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	s := New()
	calls := 0
	s.After(100*time.Millisecond, func() { calls++ })

	s.Advance(50 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("fired early")
	}
	s.Advance(50 * time.Millisecond)
	s.Advance(500 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", s.Pending())
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	s := New()
	fired := false
	h := s.After(10*time.Millisecond, func() { fired = true })
	if !h.Pending() {
		t.Fatalf("handle should be pending")
	}
	if !h.Cancel() {
		t.Fatalf("Cancel should report true the first time")
	}
	if h.Cancel() {
		t.Fatalf("Cancel should report false the second time")
	}
	s.Advance(time.Second)
	if fired {
		t.Fatalf("cancelled callback fired")
	}
	var zero Handle
	if zero.Cancel() || zero.Pending() {
		t.Fatalf("zero handle must be inert")
	}
}

func TestRepeatWithCount(t *testing.T) {
	cases := []struct {
		name  string
		count int
		step  time.Duration
		steps int
		want  []int
	}{
		{"one_per_frame", 3, 10 * time.Millisecond, 5, []int{1, 2, 3}},
		{"catch_up_in_one_frame", 3, 35 * time.Millisecond, 1, []int{1, 2, 3}},
		{"partial", 4, 10 * time.Millisecond, 2, []int{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			var got []int
			s.Repeat(10*time.Millisecond, tc.count, func(n int) { got = append(got, n) })
			for i := 0; i < tc.steps; i++ {
				s.Advance(tc.step)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestOrderIsDueTimeThenScheduling(t *testing.T) {
	s := New()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "late") })
	s.After(10*time.Millisecond, func() { order = append(order, "early-a") })
	s.After(10*time.Millisecond, func() { order = append(order, "early-b") })
	s.Advance(30 * time.Millisecond)

	want := []string{"early-a", "early-b", "late"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestScheduledDuringAdvanceWaits(t *testing.T) {
	s := New()
	inner := 0
	s.After(0, func() {
		s.After(0, func() { inner++ })
	})
	s.Advance(time.Millisecond)
	if inner != 0 {
		t.Fatalf("nested callback should wait for the next Advance")
	}
	s.Advance(time.Millisecond)
	if inner != 1 {
		t.Fatalf("nested callback should fire on the next Advance, got %d", inner)
	}
}

func TestEveryFrameAndClear(t *testing.T) {
	s := New()
	frames := 0
	var lastDT time.Duration
	h := s.EveryFrame(func(now, dt time.Duration) {
		frames++
		lastDT = dt
	})
	s.Advance(16 * time.Millisecond)
	s.Advance(17 * time.Millisecond)
	if frames != 2 || lastDT != 17*time.Millisecond {
		t.Fatalf("frames=%d lastDT=%v", frames, lastDT)
	}
	if s.Now() != 33*time.Millisecond {
		t.Fatalf("Now = %v", s.Now())
	}
	s.Clear()
	s.Advance(16 * time.Millisecond)
	if frames != 2 {
		t.Fatalf("Clear should drop frame callbacks")
	}
	if h.Pending() {
		t.Fatalf("handle should not be pending after Clear")
	}
}
