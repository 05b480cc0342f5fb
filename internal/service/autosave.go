package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// AutoSaver coalesces repeated save intents into a single delayed write per
// key. Scheduling again before the timer fires restarts it, so the save that
// eventually runs reflects the latest state (last-write-wins, not merge).
//
// Each AutoSaver owns its timers; Close cancels everything, which callers tie
// to their own teardown so no save fires after its owner is gone.
type AutoSaver struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func NewAutoSaver() *AutoSaver {
	return &AutoSaver{timers: make(map[string]*time.Timer)}
}

// Schedule cancels any pending timer for key and arms a new one. When it
// fires, the pending entry is cleared and save runs; a failed scheduled save
// is logged, not retried, so background persistence never interrupts the
// caller.
func (a *AutoSaver) Schedule(key string, save func() error, delay time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	if timer, ok := a.timers[key]; ok {
		timer.Stop()
	}

	a.timers[key] = time.AfterFunc(delay, func() {
		a.mu.Lock()
		delete(a.timers, key)
		a.mu.Unlock()

		if err := save(); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Auto-save failed")
		}
	})
}

// ForceSave cancels any pending timer for key and runs save synchronously.
// Unlike a scheduled save, the error propagates to the caller. No timeout is
// imposed: a hung store call hangs the forced save with it.
func (a *AutoSaver) ForceSave(key string, save func() error) error {
	a.Cancel(key)

	if err := save(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Force save failed")
		return err
	}
	return nil
}

// Cancel drops a pending timer for key without invoking its save.
func (a *AutoSaver) Cancel(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if timer, ok := a.timers[key]; ok {
		timer.Stop()
		delete(a.timers, key)
	}
}

// Pending reports whether a save is currently scheduled for key.
func (a *AutoSaver) Pending(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.timers[key]
	return ok
}

// Close cancels every pending timer and rejects further scheduling.
func (a *AutoSaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	for key, timer := range a.timers {
		timer.Stop()
		delete(a.timers, key)
	}
}
