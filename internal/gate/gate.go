// Package gate answers whether a named capability is available yet.
// The unlock schedule is process-wide constant configuration: built
// once at startup, never mutated, and checked against the wall clock
// on every call.
package gate

import (
	"sort"
	"time"
)

// Capabilities with a fixed unlock instant.
const (
	CapabilityTasks   = "tasks"
	CapabilityGallery = "gallery"
)

// Gate resolves capability availability at call time. The boundary is
// closed-open: a capability is unlocked at and after its instant.
type Gate struct {
	schedule map[string]time.Time
	now      func() time.Time
}

// New builds a gate from a capability -> unlock instant mapping. The
// mapping is copied; later mutation of the argument has no effect.
func New(schedule map[string]time.Time) *Gate {
	copied := make(map[string]time.Time, len(schedule))
	for name, at := range schedule {
		copied[name] = at
	}
	return &Gate{
		schedule: copied,
		now:      time.Now,
	}
}

// DefaultSchedule is the deployment schedule used when the config file
// does not override it.
func DefaultSchedule() map[string]time.Time {
	ist := time.FixedZone("IST", 5*3600+30*60)
	return map[string]time.Time{
		CapabilityTasks:   time.Date(2025, time.December, 19, 9, 30, 0, 0, ist),
		CapabilityGallery: time.Date(2025, time.December, 22, 12, 0, 0, 0, ist),
	}
}

// IsUnlocked reports whether the capability is available right now.
// Unknown capabilities stay locked.
func (g *Gate) IsUnlocked(capability string) bool {
	at, ok := g.schedule[capability]
	if !ok {
		return false
	}
	return !g.now().Before(at)
}

// UnlockAt returns the unlock instant for a capability, if scheduled.
func (g *Gate) UnlockAt(capability string) (time.Time, bool) {
	at, ok := g.schedule[capability]
	return at, ok
}

// Capabilities lists every scheduled capability in stable order.
func (g *Gate) Capabilities() []string {
	names := make([]string, 0, len(g.schedule))
	for name := range g.schedule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithClock swaps the wall-clock source. Tests only.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}
