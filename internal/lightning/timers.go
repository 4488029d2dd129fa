package lightning

import (
	"container/heap"
	"time"
)

// Timers is a one-shot timer queue driven by simulated elapsed time.
//
// Nothing fires on its own: Advance moves the clock and runs every timer that
// came due, earliest first, ties in scheduling order. Callbacks run on the
// caller's goroutine and may schedule further timers.
type Timers struct {
	now time.Duration
	q   timerQueue
	seq uint64
}

func NewTimers() *Timers { return &Timers{} }

func (t *Timers) Now() time.Duration { return t.now }
func (t *Timers) Pending() int       { return len(t.q) }

// AfterFunc schedules fn to run once d after the current time. Negative d
// counts as zero.
func (t *Timers) AfterFunc(d time.Duration, fn func()) *Timer {
	t.seq++
	tm := &Timer{owner: t, due: t.now + max(d, 0), fn: fn, seq: t.seq}
	heap.Push(&t.q, tm)
	return tm
}

// Advance moves the clock to now and fires due timers. Moving backwards is
// ignored. It returns how many timers fired.
func (t *Timers) Advance(now time.Duration) int {
	if now > t.now {
		t.now = now
	}
	fired := 0
	for len(t.q) > 0 && t.q[0].due <= t.now {
		tm := heap.Pop(&t.q).(*Timer)
		tm.fired = true
		fired++
		if tm.fn != nil {
			tm.fn()
		}
	}
	return fired
}

// Timer is a handle to one scheduled callback.
type Timer struct {
	owner *Timers
	due   time.Duration
	fn    func()
	seq   uint64
	index int
	fired bool
}

func (tm *Timer) Due() time.Duration { return tm.due }
func (tm *Timer) Fired() bool        { return tm.fired }

// Active reports whether the timer is still waiting to fire.
func (tm *Timer) Active() bool { return tm.index >= 0 && !tm.fired }

// Stop cancels the timer. It reports whether the call prevented the timer
// from firing.
func (tm *Timer) Stop() bool {
	if tm == nil || !tm.Active() {
		return false
	}
	heap.Remove(&tm.owner.q, tm.index)
	return true
}

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	tm := x.(*Timer)
	tm.index = len(*q)
	*q = append(*q, tm)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	tm := old[n-1]
	old[n-1] = nil
	tm.index = -1
	*q = old[:n-1]
	return tm
}
