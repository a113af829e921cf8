package poller

// RefreshCounter tracks how many frames have been pushed since the last
// full display clear. E-paper panels accumulate ghosting; clearing every
// threshold-and-one pushes keeps the picture crisp.
type RefreshCounter struct {
	count     int
	threshold int
}

// NewRefreshCounter creates a counter that signals a clear once more than
// threshold frames have been pushed since the last one
func NewRefreshCounter(threshold int) *RefreshCounter {
	return &RefreshCounter{threshold: threshold}
}

// Due counts one frame push and reports whether a full display clear is due
// before it. When due, the counter resets so the cleared display starts a
// fresh cycle with the frame that triggered the clear.
func (c *RefreshCounter) Due() bool {
	c.count++
	if c.count > c.threshold {
		c.count = 0
		return true
	}
	return false
}
