// Package rollstore persists the per-user roll values that seed voice
// generation. Only the roll is stored — profiles are regenerated from
// (user ID, roll) on demand, so losing the cache is harmless but losing a
// roll changes a user's voice.
//
// Two implementations are provided: [FileStore] keeps the rolls as a single
// JSON document on disk (the default, suitable for one-guild deployments)
// and [PostgresStore] keeps them in a PostgreSQL table.
package rollstore

import "context"

// Store loads and saves the complete user-to-roll mapping. Save always
// writes the full mapping; partial updates are the caller's concern (the
// voice manager owns the authoritative in-memory copy).
type Store interface {
	// Load returns the persisted mapping. A store with no persisted state
	// returns an empty, non-nil map.
	Load(ctx context.Context) (map[uint64]uint64, error)

	// Save persists the given mapping, replacing any previous state.
	Save(ctx context.Context, rolls map[uint64]uint64) error
}
