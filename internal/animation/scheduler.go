package animation

import "time"

// RealScheduler runs callbacks on wall-clock timers. Speed scales every
// delay: 2 plays twice as fast, 0 fires each step immediately.
type RealScheduler struct {
	Speed float64
}

func (r RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(r.scale(d), f)
}

func (r RealScheduler) scale(d time.Duration) time.Duration {
	if r.Speed <= 0 {
		return 0
	}
	return time.Duration(float64(d) / r.Speed)
}
