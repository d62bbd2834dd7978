package sched

import (
	"sort"
	"time"
)

type timerKind int

const (
	kindOnce timerKind = iota
	kindRepeat
	kindFrame
)

type timer struct {
	id       uint64
	kind     timerKind
	due      time.Duration
	interval time.Duration
	left     int // remaining repeats, <0 = forever
	fired    int
	once     func()
	repeat   func(n int)
	frame    func(now, dt time.Duration)
	dead     bool
}

// Scheduler runs deferred callbacks against a clock that only moves when
// Advance is called, once per frame. Nothing runs on another goroutine.
type Scheduler struct {
	now    time.Duration
	timers []*timer
	byID   map[uint64]*timer
	nextID uint64
}

func New() *Scheduler {
	return &Scheduler{byID: make(map[uint64]*timer)}
}

// Handle cancels a scheduled callback. The zero Handle is inert.
type Handle struct {
	s  *Scheduler
	id uint64
}

// Cancel stops the callback and reports whether it was still pending.
func (h Handle) Cancel() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	t, ok := h.s.byID[h.id]
	if !ok || t.dead {
		return false
	}
	t.dead = true
	delete(h.s.byID, h.id)
	return true
}

// Pending reports whether the callback can still fire.
func (h Handle) Pending() bool {
	if h.s == nil || h.id == 0 {
		return false
	}
	t, ok := h.s.byID[h.id]
	return ok && !t.dead
}

func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if s == nil || fn == nil {
		return Handle{}
	}
	if d < 0 {
		d = 0
	}
	return s.add(&timer{kind: kindOnce, due: s.now + d, once: fn})
}

// Repeat runs fn every interval, count times (count <= 0 repeats until
// cancelled). fn receives the 1-based repetition number.
func (s *Scheduler) Repeat(interval time.Duration, count int, fn func(n int)) Handle {
	if s == nil || fn == nil || interval <= 0 {
		return Handle{}
	}
	left := count
	if count <= 0 {
		left = -1
	}
	return s.add(&timer{kind: kindRepeat, due: s.now + interval, interval: interval, left: left, repeat: fn})
}

// EveryFrame runs fn on each Advance until cancelled.
func (s *Scheduler) EveryFrame(fn func(now, dt time.Duration)) Handle {
	if s == nil || fn == nil {
		return Handle{}
	}
	return s.add(&timer{kind: kindFrame, frame: fn})
}

func (s *Scheduler) add(t *timer) Handle {
	if s.byID == nil {
		s.byID = make(map[uint64]*timer)
	}
	s.nextID++
	t.id = s.nextID
	s.timers = append(s.timers, t)
	s.byID[t.id] = t
	return Handle{s: s, id: t.id}
}

// Advance moves the clock by dt and fires what came due, earliest first and
// in scheduling order on ties. Callbacks scheduled during Advance wait for
// the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	now := s.now

	var due, frames []*timer
	for _, t := range s.timers {
		if t.kind == kindFrame {
			frames = append(frames, t)
		} else {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })

	for _, t := range due {
		if t.dead || t.due > now {
			continue
		}
		if t.kind == kindOnce {
			s.retire(t)
			t.once()
			continue
		}
		for !t.dead && t.due <= now {
			t.fired++
			t.due += t.interval
			if t.left > 0 {
				t.left--
				if t.left == 0 {
					s.retire(t)
				}
			}
			t.repeat(t.fired)
		}
	}
	for _, t := range frames {
		if !t.dead {
			t.frame(now, dt)
		}
	}
	s.compact()
}

func (s *Scheduler) retire(t *timer) {
	t.dead = true
	delete(s.byID, t.id)
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Pending returns the number of callbacks that can still fire.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	return len(s.byID)
}

// Clear cancels everything. The clock keeps its value.
func (s *Scheduler) Clear() {
	if s == nil {
		return
	}
	for _, t := range s.timers {
		t.dead = true
	}
	s.timers = nil
	s.byID = make(map[uint64]*timer)
}
