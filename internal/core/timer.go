package core

import "time"

// FrameClock paces playback so that one frame is shown per frame delay,
// independent of how often the caller polls it.
type FrameClock struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFrameClock constructs a clock advancing once every delayCS centiseconds.
func NewFrameClock(delayCS int) *FrameClock {
	fc := &FrameClock{now: time.Now}
	fc.SetDelay(delayCS)
	fc.accumulator = fc.step
	return fc
}

// SetDelay changes the frame delay. Non-positive delays fall back to 6cs.
func (f *FrameClock) SetDelay(delayCS int) {
	if delayCS <= 0 {
		delayCS = 6
	}
	f.step = time.Duration(delayCS) * 10 * time.Millisecond
}

// Step returns the current frame duration.
func (f *FrameClock) Step() time.Duration { return f.step }

// ShouldAdvance reports whether the next frame is due.
func (f *FrameClock) ShouldAdvance() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
