package utils

import "time"

// DeltaTimer measures the time between consecutive frames.
type DeltaTimer struct {
	last time.Time
	// Now defaults to time.Now
	Now func() time.Time
}

// Next returns the time since the previous call, or 0 on the first one.
func (d *DeltaTimer) Next() time.Duration {
	// one timestamp per frame so rounding errors do not accumulate
	now := d.now()

	defer d.Set(now)
	if d.last.IsZero() {
		return 0
	}
	return now.Sub(d.last)
}

func (d *DeltaTimer) Set(t time.Time) {
	d.last = t
}

func (d *DeltaTimer) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
