package application

import (
	"math"
	"sync"
	"time"

	"lotobot/domain/entities"
)

// Cooldown actions
const (
	ActionDraw  = "draw"
	ActionCheck = "check"
)

type cooldownKey struct {
	chatID   int64
	playerID int64
	action   string
}

// CooldownGuard rate limits repeated actions per player and chat
type CooldownGuard struct {
	mu     sync.Mutex
	last   map[cooldownKey]time.Time
	window map[string]time.Duration
	now    func() time.Time
}

// NewCooldownGuard creates a guard with one window per action. A zero window disables the action's limit.
func NewCooldownGuard(windows map[string]time.Duration) *CooldownGuard {
	return &CooldownGuard{
		last:   make(map[cooldownKey]time.Time),
		window: windows,
		now:    time.Now,
	}
}

// Allow records the action and returns a rate limited error if it came too soon
func (g *CooldownGuard) Allow(chatID, playerID int64, action string) error {
	window := g.window[action]
	if window <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	key := cooldownKey{chatID: chatID, playerID: playerID, action: action}
	if last, ok := g.last[key]; ok {
		if wait := window - now.Sub(last); wait > 0 {
			seconds := int(math.Ceil(wait.Seconds()))
			return entities.NewGameError(entities.KindRateLimited, "slow down, try %s again in %ds", action, seconds)
		}
	}
	g.last[key] = now
	g.prune(now)
	return nil
}

// prune drops entries older than every window so the map does not grow without bound
func (g *CooldownGuard) prune(now time.Time) {
	var longest time.Duration
	for _, w := range g.window {
		longest = max(longest, w)
	}
	for key, at := range g.last {
		if now.Sub(at) > longest {
			delete(g.last, key)
		}
	}
}
