package memory

import (
	"sort"
	"time"

	"github.com/perifanotoque/perifa/pkg/perifa/dom"
)

// maxFlushSteps bounds Flush so a callback that keeps rescheduling itself
// cannot spin forever.
const maxFlushSteps = 10000

// Clock is a virtual event-loop clock. Callbacks only run when the clock is
// advanced, on the goroutine that advances it.
type Clock struct {
	now     time.Duration
	seq     uint64
	pending []*scheduled
}

type scheduled struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (s *scheduled) Stop() bool {
	if s.stopped || s.fired {
		return false
	}
	s.stopped = true
	return true
}

// NewClock creates a clock at virtual time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) dom.Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	s := &scheduled{at: c.now + d, seq: c.seq, fn: fn}
	c.pending = append(c.pending, s)
	return s
}

// Advance moves the clock forward by d, running every callback that falls due
// in scheduling order.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.next(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = target
}

// Flush runs callbacks until nothing is pending.
func (c *Clock) Flush() {
	for i := 0; i < maxFlushSteps; i++ {
		next := c.next(-1)
		if next == nil {
			return
		}
		if next.at > c.now {
			c.now = next.at
		}
		next.fired = true
		next.fn()
	}
}

// Pending returns the number of callbacks that have neither fired nor been
// stopped.
func (c *Clock) Pending() int {
	c.compact()
	return len(c.pending)
}

// next pops the earliest due callback. A negative limit means no limit.
func (c *Clock) next(limit time.Duration) *scheduled {
	c.compact()
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at == c.pending[j].at {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at < c.pending[j].at
	})
	first := c.pending[0]
	if limit >= 0 && first.at > limit {
		return nil
	}
	c.pending = c.pending[1:]
	return first
}

func (c *Clock) compact() {
	live := c.pending[:0]
	for _, s := range c.pending {
		if !s.stopped && !s.fired {
			live = append(live, s)
		}
	}
	c.pending = live
}
