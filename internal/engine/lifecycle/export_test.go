package lifecycle

import "time"

// WithClock replaces the clock used for install timestamps.
func (i *Installer) WithClock(now func() time.Time) *Installer {
	i.now = now
	return i
}
