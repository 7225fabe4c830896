package core

// TimerID identifies a callback registered with a Scheduler.
// The zero value never identifies a live timer.
type TimerID uint64

// dueEpsilon absorbs float drift when a timer falls due exactly on a frame
// boundary (e.g. 4 * (1/3)s against a 4/3s period).
const dueEpsilon = 1e-9

// TimerFunc is invoked when a timer fires. late is how far (in seconds)
// the end of the current frame lies past the timer's due time; callbacks
// use it to compensate positions for sub-frame timing.
type TimerFunc func(late float64)

type timer struct {
	id     TimerID
	due    float64
	period float64 // 0 for one-shot timers
	fn     TimerFunc
}

// Scheduler is a logical, frame-driven timer wheel. Nothing blocks: the host
// calls Advance once per frame and every callback that fell due during that
// frame fires synchronously, in due order.
type Scheduler struct {
	now    float64
	target float64
	nextID TimerID
	timers []*timer
}

// NewScheduler creates an empty scheduler at logical time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time in seconds. Inside a callback this is
// the callback's due time.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After registers a one-shot callback that fires delay seconds from now.
func (s *Scheduler) After(delay float64, fn TimerFunc) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.add(s.now+delay, 0, fn)
}

// Every registers a repeating callback with the given period. The first
// firing happens one period from now. A non-positive period registers nothing
// and returns the zero TimerID.
func (s *Scheduler) Every(period float64, fn TimerFunc) TimerID {
	if period <= 0 {
		return 0
	}
	return s.add(s.now+period, period, fn)
}

func (s *Scheduler) add(due, period float64, fn TimerFunc) TimerID {
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:     s.nextID,
		due:    due,
		period: period,
		fn:     fn,
	})
	return s.nextID
}

// Cancel removes a pending timer. Cancelling an unknown, fired or already
// cancelled timer is a no-op. Returns whether a timer was removed.
func (s *Scheduler) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of registered timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear drops every pending timer without firing it.
func (s *Scheduler) Clear() {
	s.timers = s.timers[:0]
}

// Advance moves logical time forward by dt, firing every timer that falls
// due in (now, now+dt]. Repeating timers that are more than one period
// behind fire once per elapsed period so their cadence never drifts.
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		return
	}
	s.target = s.now + dt

	for {
		t := s.earliestDue()
		if t == nil {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			s.Cancel(t.id)
		}
		t.fn(s.target - s.now)
	}

	s.now = s.target
}

// earliestDue returns the timer with the smallest due time that is within
// the current frame, or nil. Ties resolve by registration order.
func (s *Scheduler) earliestDue() *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > s.target+dueEpsilon {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
