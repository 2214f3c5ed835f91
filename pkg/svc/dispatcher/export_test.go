package dispatcher

import "time"

// SetNow replaces the clock used for workload ages.
func (d *Dispatcher) SetNow(now func() time.Time) {
	d.now = now
}
