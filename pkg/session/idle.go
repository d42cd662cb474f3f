// Package session tracks signed-in sessions and logs them out after a period
// without user activity.
package session

import (
	"log"
	"pos_backend/pkg/models"
	"strings"
	"sync"
	"time"
)

// Signal is a user-activity event reported by the client.
type Signal string

const (
	PointerDown Signal = "pointerdown"
	PointerMove Signal = "pointermove"
	KeyPress    Signal = "keypress"
	Scroll      Signal = "scroll"
	TouchStart  Signal = "touchstart"
)

// Signals lists every signal that resets the idle countdown.
var Signals = []Signal{PointerDown, PointerMove, KeyPress, Scroll, TouchStart}

// ParseSignal accepts a signal name in any case.
func ParseSignal(name string) (Signal, bool) {
	s := Signal(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Signals {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Revoked keys are remembered long enough to outlive any token that carries them.
const revokedRetention = 8 * 24 * time.Hour

type entry struct {
	staffID string
	timer   *time.Timer
	gen     uint64
}

// IdleTracker runs one countdown per session key. A key whose countdown runs
// out, or that was ended, stays revoked.
type IdleTracker struct {
	mu       sync.Mutex
	timeout  time.Duration
	sessions map[string]*entry
	revoked  map[string]time.Time
	onExpire func(key, staffID string)
	onRevoke func(models.RevokedSession)
	stopped  bool
}

// NewIdleTracker creates a tracker. A zero timeout disables the countdown.
func NewIdleTracker(timeout time.Duration) *IdleTracker {
	if timeout < 0 {
		timeout = 0
	}
	return &IdleTracker{
		timeout:  timeout,
		sessions: make(map[string]*entry),
		revoked:  make(map[string]time.Time),
	}
}

// OnExpire registers a callback run after a countdown expires.
func (t *IdleTracker) OnExpire(fn func(key, staffID string)) {
	t.mu.Lock()
	t.onExpire = fn
	t.mu.Unlock()
}

// OnRevoke registers a callback run after every revocation, so it can be
// persisted and restored with Restore after a restart.
func (t *IdleTracker) OnRevoke(fn func(models.RevokedSession)) {
	t.mu.Lock()
	t.onRevoke = fn
	t.mu.Unlock()
}

// Restore marks previously persisted keys as revoked. Entries older than the
// retention window are skipped. It returns the number restored.
func (t *IdleTracker) Restore(revs []models.RevokedSession) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, rev := range revs {
		if rev.Key == "" || time.Since(rev.RevokedAt) > revokedRetention {
			continue
		}
		if e, ok := t.sessions[rev.Key]; ok {
			e.gen++
			if e.timer != nil {
				e.timer.Stop()
			}
			delete(t.sessions, rev.Key)
		}
		t.revoked[rev.Key] = rev.RevokedAt
		n++
	}
	return n
}

// Timeout returns the current idle limit.
func (t *IdleTracker) Timeout() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeout
}

// Begin starts tracking a freshly signed-in session.
func (t *IdleTracker) Begin(key, staffID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.revoked, key)
	if e, ok := t.sessions[key]; ok {
		e.staffID = staffID
		t.armLocked(key, e)
		return
	}
	e := &entry{staffID: staffID}
	t.sessions[key] = e
	t.armLocked(key, e)
}

// Check reports whether key may still be used. Keys the tracker has not seen,
// for example after a restart, are adopted with a full countdown.
func (t *IdleTracker) Check(key, staffID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.revoked[key]; ok {
		return false
	}
	if _, ok := t.sessions[key]; !ok {
		e := &entry{staffID: staffID}
		t.sessions[key] = e
		t.armLocked(key, e)
	}
	return true
}

// Activity resets the countdown of a live session. It returns false when the
// key is unknown or revoked.
func (t *IdleTracker) Activity(key string, _ Signal) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.sessions[key]
	if !ok {
		return false
	}
	t.armLocked(key, e)
	return true
}

// End revokes a session, as on logout.
func (t *IdleTracker) End(key, staffID string) {
	t.mu.Lock()
	rev := t.revokeLocked(key)
	if rev.StaffID == "" {
		rev.StaffID = staffID
	}
	fn := t.onRevoke
	t.mu.Unlock()

	if fn != nil {
		fn(rev)
	}
}

// Revoked reports whether key was ended or timed out.
func (t *IdleTracker) Revoked(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[key]
	return ok
}

// SetTimeout changes the idle limit and restarts every countdown with it.
// Zero stops all countdowns; sessions stay signed in.
func (t *IdleTracker) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.timeout = d
	for key, e := range t.sessions {
		t.armLocked(key, e)
	}
	log.Printf("⏱️  Idle timeout set to %s for %d session(s)", d, len(t.sessions))
}

// Stop cancels every countdown. The tracker ignores later calls to arm timers.
func (t *IdleTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for _, e := range t.sessions {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
}

// armLocked restarts the countdown of e. Callbacks of older generations are ignored.
func (t *IdleTracker) armLocked(key string, e *entry) {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if t.timeout == 0 || t.stopped {
		return
	}
	gen := e.gen
	e.timer = time.AfterFunc(t.timeout, func() { t.expire(key, gen) })
}

func (t *IdleTracker) expire(key string, gen uint64) {
	t.mu.Lock()
	e, ok := t.sessions[key]
	if !ok || e.gen != gen {
		t.mu.Unlock()
		return
	}
	staffID := e.staffID
	rev := t.revokeLocked(key)
	fn, persist := t.onExpire, t.onRevoke
	t.mu.Unlock()

	log.Printf("💤 Session for staff %s logged out after inactivity", staffID)
	if persist != nil {
		persist(rev)
	}
	if fn != nil {
		fn(key, staffID)
	}
}

func (t *IdleTracker) revokeLocked(key string) models.RevokedSession {
	now := time.Now()
	rev := models.RevokedSession{Key: key, RevokedAt: now}
	if e, ok := t.sessions[key]; ok {
		rev.StaffID = e.staffID
		e.gen++
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(t.sessions, key)
	}

	t.revoked[key] = now
	for k, at := range t.revoked {
		if now.Sub(at) > revokedRetention {
			delete(t.revoked, k)
		}
	}
	return rev
}
