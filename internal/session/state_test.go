package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	onboarded := &Session{Profile: Profile{IsOnboarded: true}}
	notOnboarded := &Session{Profile: Profile{IsOnboarded: false}}

	tests := []struct {
		name             string
		cached           *Session
		providerSignedIn bool
		want             State
	}{
		{"nothing", nil, false, StateUnauthenticated},
		{"provider only", nil, true, StateProviderOnly},
		{"synced not onboarded", notOnboarded, true, StateSyncedNotOnboarded},
		{"synced onboarded", onboarded, true, StateSyncedOnboarded},
		// A stale cache with no provider sign-in still counts as synced;
		// the caller decides whether to trust it
		{"cache without provider", onboarded, false, StateSyncedOnboarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cached, tt.providerSignedIn))
		})
	}
}

type fakeSyncer struct {
	session *Session
	err     error
	calls   int
}

func (f *fakeSyncer) ExternalLogin(ctx context.Context, identity Identity) (*Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.session
	return &copied, nil
}

func testSession(onboarded bool) *Session {
	return &Session{
		Profile: Profile{
			ID:          "user-1",
			Email:       "alice@example.com",
			IsOnboarded: onboarded,
		},
		Token:     "token-1",
		FetchedAt: time.Now(),
	}
}

func TestReconcile_OnboardedCacheIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession(true))
	syncer := &fakeSyncer{session: testSession(true)}
	r := NewReconciler(store, syncer)

	result, err := r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.NoError(t, err)

	assert.False(t, result.Synced)
	assert.False(t, result.Reload)
	assert.Equal(t, 0, syncer.calls)
	assert.True(t, result.Session.Profile.IsOnboarded)
}

func TestReconcile_ProviderOnlySyncsAndReloads(t *testing.T) {
	store := NewMemoryStore()
	syncer := &fakeSyncer{session: testSession(false)}
	r := NewReconciler(store, syncer)

	result, err := r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.NoError(t, err)

	assert.True(t, result.Synced)
	assert.True(t, result.Reload)
	assert.Equal(t, 1, syncer.calls)

	saved, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "token-1", saved.Token)
}

func TestReconcile_NotOnboardedResyncs(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession(false))
	syncer := &fakeSyncer{session: testSession(false)}
	r := NewReconciler(store, syncer)

	// Flag unchanged: sync happens but no reload
	result, err := r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.False(t, result.Reload)

	// Backend says onboarding completed out of band: reload
	syncer.session = testSession(true)
	result, err = r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.True(t, result.Reload)

	// Next pass sees the onboarded cache and stops syncing
	result, err = r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.False(t, result.Synced)
}

func TestReconcile_SyncFailureKeepsCache(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession(false))
	syncer := &fakeSyncer{err: errors.New("backend down")}
	r := NewReconciler(store, syncer)

	result, err := r.Reconcile(context.Background(), Identity{Email: "alice@example.com"})
	require.Error(t, err)
	require.NotNil(t, result.Session)
	assert.Equal(t, "token-1", result.Session.Token)

	cached, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "token-1", cached.Token)
}

func TestSignOut(t *testing.T) {
	store := NewMemoryStore()
	store.Save(testSession(true))
	r := NewReconciler(store, &fakeSyncer{})

	r.SignOut()

	_, ok := store.Load()
	assert.False(t, ok)
	assert.Equal(t, StateUnauthenticated, Classify(nil, false))
}

func TestMemoryStore_CopySemantics(t *testing.T) {
	store := NewMemoryStore()
	original := testSession(false)
	store.Save(original)

	original.Token = "mutated"

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "token-1", loaded.Token)

	loaded.Token = "mutated again"
	reloaded, _ := store.Load()
	assert.Equal(t, "token-1", reloaded.Token)
}

func TestNotifications_CapAndOrder(t *testing.T) {
	n := NewNotifications()

	n.Push("first", "oldest")
	n.Push("second", "newest")

	list := n.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)

	for i := 0; i < 100; i++ {
		n.Push("bulk", "entry")
	}
	assert.Len(t, n.List(), maxNotifications)

	n.Clear()
	assert.Empty(t, n.List())
}
