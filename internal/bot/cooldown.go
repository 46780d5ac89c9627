package bot

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// Cooldown allows each user at most limit commands per fixed window.
type Cooldown struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewCooldown(limit int, period time.Duration) *Cooldown {
	return &Cooldown{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records an invocation by userID and reports whether it is within the
// limit. A non-positive limit disables the cooldown.
func (c *Cooldown) Allow(userID string) bool {
	if c.limit <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[userID]
	if !ok || now.Sub(w.start) >= c.period {
		c.windows[userID] = &window{start: now, count: 1}
		return true
	}

	if w.count >= c.limit {
		return false
	}
	w.count++
	return true
}

// Sweep drops windows that have ended.
func (c *Cooldown) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for id, w := range c.windows {
		if now.Sub(w.start) >= c.period {
			delete(c.windows, id)
		}
	}
}
