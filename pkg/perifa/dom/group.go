package dom

import "time"

// Timers owns a set of scheduled callbacks so they can be cancelled together.
// The zero value is not usable; create one with NewTimers.
type Timers struct {
	scheduler Scheduler
	pending   map[*ownedTimer]struct{}
}

type ownedTimer struct {
	timer Timer
}

// NewTimers creates an empty timer group on the given scheduler.
func NewTimers(s Scheduler) *Timers {
	return &Timers{
		scheduler: s,
		pending:   make(map[*ownedTimer]struct{}),
	}
}

// After schedules fn and tracks it until it fires or is stopped.
func (t *Timers) After(d time.Duration, fn func()) Timer {
	owned := &ownedTimer{}
	t.pending[owned] = struct{}{}
	owned.timer = t.scheduler.AfterFunc(d, func() {
		delete(t.pending, owned)
		fn()
	})
	return stopper(func() bool {
		if _, ok := t.pending[owned]; !ok {
			return false
		}
		delete(t.pending, owned)
		return owned.timer.Stop()
	})
}

// StopAll cancels every callback that has not fired yet.
func (t *Timers) StopAll() {
	for owned := range t.pending {
		owned.timer.Stop()
		delete(t.pending, owned)
	}
}

// Pending returns the number of callbacks still scheduled.
func (t *Timers) Pending() int {
	return len(t.pending)
}

type stopper func() bool

func (s stopper) Stop() bool { return s() }

// Releases collects listener releases so a view can detach all of them at
// once.
type Releases []Release

// Add appends r.
func (rs *Releases) Add(r Release) {
	if r != nil {
		*rs = append(*rs, r)
	}
}

// ReleaseAll calls every collected release and empties the set.
func (rs *Releases) ReleaseAll() {
	for _, r := range *rs {
		r()
	}
	*rs = nil
}
