package schedule

import (
	"context"

	"golang.org/x/time/rate"
)

// Driver is a frame loop that ticks a Scheduler at a fixed frame rate.
type Driver struct {
	sched   *Scheduler
	limiter *rate.Limiter

	// OnFrame, when set, is called after every tick with the frame number
	// (starting at 1) and the number of steps run.
	OnFrame func(frame, steps int)
}

// NewDriver creates a driver ticking s at fps frames per second. A
// non-positive fps ticks as fast as possible.
func NewDriver(s *Scheduler, fps float64) *Driver {
	limit := rate.Inf
	if fps > 0 {
		limit = rate.Limit(fps)
	}
	return &Driver{sched: s, limiter: rate.NewLimiter(limit, 1)}
}

// Run ticks until the scheduler is empty or ctx is done, and returns the
// number of frames ticked. The error is ctx's error when it stopped early.
func (d *Driver) Run(ctx context.Context) (int, error) {
	frames := 0
	for d.sched.Len() > 0 {
		if err := d.limiter.Wait(ctx); err != nil {
			return frames, err
		}
		steps := d.sched.Tick()
		frames++
		if d.OnFrame != nil {
			d.OnFrame(frames, steps)
		}
	}
	return frames, nil
}
