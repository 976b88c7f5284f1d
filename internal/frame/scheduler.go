package frame

import (
	"sync"
	"time"
)

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

// Callback runs once on the next frame; now is the frame timestamp.
type Callback func(now time.Duration)

type request struct {
	id ID
	cb Callback
}

// Scheduler is the main-loop clock: it runs animation-frame callbacks and tasks posted from
// other goroutines, all on the goroutine that calls Tick. The driver (window loop, ticker or
// a test) decides when a frame happens and what time it is.
type Scheduler struct {
	mu      sync.Mutex
	nextID  ID
	pending []request
	due     map[ID]struct{} // callbacks of the running Tick not yet run or cancelled
	posted  []func()
	frames  uint64
	now     time.Duration
}

// New returns an idle scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// RequestFrame schedules cb for the next Tick. Callbacks requested while a Tick is running
// wait for the following one, so a callback that re-requests itself runs once per frame.
func (s *Scheduler) RequestFrame(cb Callback) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending = append(s.pending, request{id: s.nextID, cb: cb})
	return s.nextID
}

// CancelFrame drops a pending callback. Unknown or already-run IDs are ignored.
func (s *Scheduler) CancelFrame(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.due, id)
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Post queues fn to run on the main loop at the start of the next Tick. Safe for
// concurrent use; this is how background work hands results back.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Tick runs one frame: first every posted task, then every callback requested before
// this call, in request order.
func (s *Scheduler) Tick(now time.Duration) {
	s.mu.Lock()
	tasks := s.posted
	s.posted = nil
	s.now = now
	s.frames++
	s.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}

	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.due = make(map[ID]struct{}, len(due))
	for _, r := range due {
		s.due[r.id] = struct{}{}
	}
	s.mu.Unlock()

	for _, r := range due {
		if !s.take(r.id) {
			continue
		}
		r.cb(now)
	}
}

// take reports whether id is still due in the running Tick and marks it run.
func (s *Scheduler) take(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.due[id]
	delete(s.due, id)
	return ok
}

// Pending reports how many frame callbacks and posted tasks are waiting.
func (s *Scheduler) Pending() (frames, tasks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending), len(s.posted)
}

// Frames is the number of Ticks run so far.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Now is the timestamp of the last Tick.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
