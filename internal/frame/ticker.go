package frame

import (
	"context"
	"time"
)

// RunTicker drives s from a wall-clock ticker at fps frames per second until ctx is done
// or, when limit is positive, limit frames have run. It returns ctx.Err() when cancelled
// and nil when the limit is reached.
func RunTicker(ctx context.Context, s *Scheduler, fps, limit int) error {
	if fps <= 0 {
		fps = 60
	}
	start := time.Now()
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for n := 0; limit <= 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tick := <-t.C:
			s.Tick(tick.Sub(start))
		}
	}
	return nil
}
