package voice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrWong99/voxroll/internal/rollstore"
)

// Manager caches generated profiles per user and owns the authoritative
// in-memory roll mapping. Profiles are regenerated lazily: the cache entry
// for a user is dropped whenever their roll changes, and the next Voice call
// rebuilds it from (user ID, roll).
//
// All methods are safe for concurrent use; one mutex guards both maps so a
// roll change and a concurrent voice lookup for the same user cannot
// interleave.
type Manager struct {
	mu     sync.Mutex
	voices map[uint64]Profile
	rolls  map[uint64]uint64

	synth *Synthesizer
	store rollstore.Store
}

// NewManager creates a Manager that generates profiles with synth and
// persists rolls through store.
func NewManager(synth *Synthesizer, store rollstore.Store) *Manager {
	return &Manager{
		voices: map[uint64]Profile{},
		rolls:  map[uint64]uint64{},
		synth:  synth,
		store:  store,
	}
}

// LoadRolls replaces the in-memory roll mapping with the persisted one and
// clears the profile cache. Call once at startup.
func (m *Manager) LoadRolls(ctx context.Context) error {
	rolls, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("voice: load rolls: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.voices = map[uint64]Profile{}
	slog.Info("voice rolls loaded", "count", len(rolls))
	return nil
}

// Voice returns the cached profile for userID, generating and caching it if
// absent. Users without an explicit roll use roll 0.
func (m *Manager) Voice(userID uint64) Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.voices[userID]; ok {
		return p
	}

	roll := m.rolls[userID]
	p := m.synth.Generate(userID, roll)
	m.voices[userID] = p
	slog.Debug("voice generated", "user_id", userID, "roll", roll)
	return p
}

// Roll returns the current roll for userID (0 if never set).
func (m *Manager) Roll(userID uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rolls[userID]
}

// SetRoll records a new roll for userID, invalidates the cached profile,
// and persists the full mapping. The in-memory state is updated even when
// persistence fails, so the new voice takes effect immediately; the error
// reports that it will not survive a restart.
func (m *Manager) SetRoll(ctx context.Context, userID, roll uint64) error {
	m.mu.Lock()
	m.rolls[userID] = roll
	delete(m.voices, userID)
	snapshot := make(map[uint64]uint64, len(m.rolls))
	for id, r := range m.rolls {
		snapshot[id] = r
	}
	m.mu.Unlock()

	slog.Info("voice roll set", "user_id", userID, "roll", roll)
	if err := m.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("voice: save rolls: %w", err)
	}
	return nil
}

// ClearVoice drops the cached profile for userID without touching the roll.
func (m *Manager) ClearVoice(userID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.voices, userID)
}
