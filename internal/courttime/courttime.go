package courttime

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timestamp is a point in time in unix seconds, as read from the trusted clock.
// Dispute deadlines and claim-queue end times are expressed in it.
type Timestamp int64

// Now reads the trusted clock.
func Now(c clock.Clock) Timestamp {
	return FromTime(c.Now())
}

// FromTime truncates t to whole seconds.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// ToTime converts a Timestamp to a standard UTC time.Time
func (ts Timestamp) ToTime() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Add returns ts shifted by d, truncated to whole seconds.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	return ts + Timestamp(d/time.Second)
}

// Before reports whether the time instant ts is before u
func (ts Timestamp) Before(u Timestamp) bool {
	return ts < u
}

// After reports whether the time instant ts is after u
func (ts Timestamp) After(u Timestamp) bool {
	return ts > u
}

func (ts Timestamp) String() string {
	return ts.ToTime().Format(time.RFC3339)
}
