package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles interactive saves per chat.
type Limiter interface {
	Allow(chatID int64) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerChat keeps one token bucket per chat and forgets chats that have been
// idle for longer than the sweep interval.
type PerChat struct {
	mu      sync.Mutex
	chats   map[int64]*entry
	every   rate.Limit
	burst   int
	idle    time.Duration
	lastGC  time.Time
	nowFunc func() time.Time
}

// NewPerChat allows one save every interval per chat with the given burst.
// A non-positive interval disables limiting.
func NewPerChat(interval time.Duration, burst int) *PerChat {
	every := rate.Inf
	if interval > 0 {
		every = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &PerChat{
		chats:   make(map[int64]*entry),
		every:   every,
		burst:   burst,
		idle:    10 * time.Minute,
		nowFunc: time.Now,
	}
}

var _ Limiter = (*PerChat)(nil)

func (l *PerChat) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	l.sweep(now)

	e, ok := l.chats[chatID]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.chats[chatID] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

func (l *PerChat) sweep(now time.Time) {
	if now.Sub(l.lastGC) < l.idle {
		return
	}
	for id, e := range l.chats {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.chats, id)
		}
	}
	l.lastGC = now
}
