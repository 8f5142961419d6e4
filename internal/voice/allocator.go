package voice

import "sync"

// Allocator hands out single-character voice selectors from a fixed palette
// in round-robin order. It backs the legacy selector mode where the speech
// engine picks one of its built-in voices by letter instead of receiving a
// full generated profile.
//
// The cursor only ever advances: removing a user frees their mapping entry
// but does not rewind the rotation, so a departing and rejoining user will
// usually receive a different selector. That is the intended fairness
// behaviour, not a leak.
//
// All methods are safe for concurrent use.
type Allocator struct {
	mu      sync.Mutex
	palette []rune
	byUser  map[uint64]rune
	next    int
}

// NewAllocator creates an Allocator over the given palette. The palette
// must be non-empty and is copied; the rotation starts at its first entry.
func NewAllocator(palette []rune) *Allocator {
	p := make([]rune, len(palette))
	copy(p, palette)
	return &Allocator{
		palette: p,
		byUser:  map[uint64]rune{},
	}
}

// Assign returns the selector for userID, allocating the next palette entry
// on first use.
func (a *Allocator) Assign(userID uint64) rune {
	a.mu.Lock()
	defer a.mu.Unlock()

	if v, ok := a.byUser[userID]; ok {
		return v
	}

	v := a.palette[a.next]
	a.byUser[userID] = v
	a.next = (a.next + 1) % len(a.palette)
	return v
}

// Remove deletes the selector mapping for userID. The rotation cursor is
// left untouched.
func (a *Allocator) Remove(userID uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.byUser, userID)
}

// Users returns the IDs that currently hold a selector, in no particular
// order.
func (a *Allocator) Users() []uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]uint64, 0, len(a.byUser))
	for id := range a.byUser {
		ids = append(ids, id)
	}
	return ids
}
