package flux

import "time"

// SetNow replaces the clock used for reconcile request timestamps.
func (c *Client) SetNow(now func() time.Time) {
	c.now = now
}
