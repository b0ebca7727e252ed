package preferences

import "sync"

// Store holds the live settings shared between the UI and the timing core.
// The countdown machine reads a snapshot through Current on every tick, so
// mid-run edits apply immediately.
type Store struct {
	mu       sync.Mutex
	settings Settings
}

// NewStore creates a store seeded with settings.
func NewStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Current returns the settings snapshot.
func (store *Store) Current() Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.settings
}

// Replace swaps in new settings.
func (store *Store) Replace(settings Settings) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.settings = settings
}

// SetMuted flips the quick mute toggle without touching other settings.
func (store *Store) SetMuted(muted bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.settings.Muted = muted
}
