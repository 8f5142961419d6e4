package voice

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-memory rollstore.Store that records calls and can be
// made to fail on demand.
type fakeStore struct {
	rolls   map[uint64]uint64
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeStore) Load(_ context.Context) (map[uint64]uint64, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make(map[uint64]uint64, len(f.rolls))
	for id, r := range f.rolls {
		out[id] = r
	}
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, rolls map[uint64]uint64) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rolls = rolls
	return nil
}

func newTestManager(t *testing.T, store *fakeStore) *Manager {
	t.Helper()
	return NewManager(mustSynthesizer(t, PolicyStream), store)
}

func TestManager_VoiceIsCached(t *testing.T) {
	t.Parallel()
	m := newTestManager(t, &fakeStore{})

	const user = 1001
	a := m.Voice(user)
	b := m.Voice(user)
	if a != b {
		t.Fatal("repeated Voice calls returned different profiles")
	}
}

func TestManager_SetRollInvalidatesCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &fakeStore{}
	m := newTestManager(t, store)

	const user = 2002
	before := m.Voice(user)

	if err := m.SetRoll(ctx, user, 7); err != nil {
		t.Fatalf("SetRoll unexpected error: %v", err)
	}
	if got := m.Roll(user); got != 7 {
		t.Fatalf("Roll = %d, want 7", got)
	}
	if store.saves != 1 {
		t.Fatalf("store saved %d times, want 1", store.saves)
	}

	after := m.Voice(user)
	if before == after {
		t.Fatal("roll change did not produce a new profile")
	}

	// The regenerated profile must match a fresh synthesis for the new roll.
	want := mustSynthesizer(t, PolicyStream).Generate(user, 7)
	if after != want {
		t.Fatalf("profile after roll change = %+v, want %+v", after, want)
	}
}

func TestManager_SetRollSurvivesSaveFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := newTestManager(t, store)

	const user = 3003
	if err := m.SetRoll(ctx, user, 11); err == nil {
		t.Fatal("expected save error to propagate")
	}
	// The new roll still takes effect in memory.
	if got := m.Roll(user); got != 11 {
		t.Fatalf("Roll = %d, want 11 despite failed persistence", got)
	}
}

func TestManager_LoadRollsReplacesState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &fakeStore{rolls: map[uint64]uint64{42: 5}}
	m := newTestManager(t, store)

	// Warm the cache with the default roll first.
	stale := m.Voice(42)

	if err := m.LoadRolls(ctx); err != nil {
		t.Fatalf("LoadRolls unexpected error: %v", err)
	}
	if got := m.Roll(42); got != 5 {
		t.Fatalf("Roll = %d, want 5 after load", got)
	}

	fresh := m.Voice(42)
	if fresh == stale {
		t.Fatal("LoadRolls did not clear the profile cache")
	}
}

func TestManager_LoadRollsError(t *testing.T) {
	t.Parallel()
	store := &fakeStore{loadErr: errors.New("connection refused")}
	m := newTestManager(t, store)

	if err := m.LoadRolls(context.Background()); err == nil {
		t.Fatal("expected load error to propagate")
	}
}

func TestAllocator_RoundRobin(t *testing.T) {
	t.Parallel()
	a := NewAllocator([]rune("abc"))

	if got := a.Assign(1); got != 'a' {
		t.Errorf("first assign = %q, want %q", got, 'a')
	}
	if got := a.Assign(2); got != 'b' {
		t.Errorf("second assign = %q, want %q", got, 'b')
	}
	// Repeated assigns are stable.
	if got := a.Assign(1); got != 'a' {
		t.Errorf("repeated assign = %q, want %q", got, 'a')
	}
	if got := a.Assign(3); got != 'c' {
		t.Errorf("third assign = %q, want %q", got, 'c')
	}
	// Palette wraps around.
	if got := a.Assign(4); got != 'a' {
		t.Errorf("fourth assign = %q, want %q", got, 'a')
	}
}

func TestAllocator_RemoveDoesNotRewindCursor(t *testing.T) {
	t.Parallel()
	a := NewAllocator([]rune("abc"))

	a.Assign(1) // a
	a.Assign(2) // b
	a.Remove(1)

	// The freed letter is not handed back; the rotation continues.
	if got := a.Assign(3); got != 'c' {
		t.Errorf("assign after remove = %q, want %q", got, 'c')
	}
	// The removed user rejoining gets the next slot, not their old one.
	if got := a.Assign(1); got != 'a' {
		t.Errorf("rejoin assign = %q, want %q", got, 'a')
	}

	if got := len(a.Users()); got != 3 {
		t.Errorf("Users() returned %d ids, want 3", got)
	}
}
