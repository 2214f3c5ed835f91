package remediation

import "time"

// SetNow replaces the clock used for request timestamps.
func (c *Coordinator) SetNow(now func() time.Time) {
	c.now = now
}
