package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidFireTime = errors.New("scheduler: invalid fire time")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

// Notice announces an upcoming event. FireAt is when it is emitted, StartsAt
// when the event begins.
type Notice struct {
	EventID  string
	Title    string
	Location string
	StartsAt time.Time
	FireAt   time.Time
}

type noticeQueue []Notice

func (q noticeQueue) Len() int { return len(q) }

func (q noticeQueue) Less(i, j int) bool {
	return q[i].FireAt.Before(q[j].FireAt)
}

func (q noticeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *noticeQueue) Push(x any) {
	*q = append(*q, x.(Notice))
}

func (q *noticeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine emits notices on C at their fire time. Sends never block: when the
// consumer falls behind, notices are counted as dropped.
type Engine struct {
	mu      sync.Mutex
	queue   noticeQueue
	out     chan Notice
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
	now     func() time.Time
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(noticeQueue, 0),
		out:    make(chan Notice, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

func (e *Engine) C() <-chan Notice {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(n Notice) error {
	if n.FireAt.IsZero() {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	heap.Push(&e.queue, n)
	e.signalWakeup()
	return nil
}

// Reset replaces every pending notice with ns. Each snapshot is a full
// replacement of the event set, so pending notices are rebuilt from it.
func (e *Engine) Reset(ns []Notice) error {
	for _, n := range ns {
		if n.FireAt.IsZero() {
			return ErrInvalidFireTime
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	e.queue = append(make(noticeQueue, 0, len(ns)), ns...)
	heap.Init(&e.queue)
	e.signalWakeup()
	return nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.FireAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, n := range e.popDue(e.now()) {
				select {
				case e.out <- n:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Notice, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Notice{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []Notice {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Notice, 0)
	for len(e.queue) > 0 {
		if e.queue[0].FireAt.After(now) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(Notice))
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
