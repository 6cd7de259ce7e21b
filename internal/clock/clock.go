package clock

import "time"

// Clock abstracts time so invoice numbering, consent checks and caches can
// be tested with a fixed instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
