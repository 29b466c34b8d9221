package session

import (
	"context"
	"fmt"
	"sync"
)

// Syncer exchanges an identity-provider-verified identity for a local
// session. Implemented by Client against the backend.
type Syncer interface {
	ExternalLogin(ctx context.Context, identity Identity) (*Session, error)
}

// Store persists the cached session between navigations.
type Store interface {
	Load() (*Session, bool)
	Save(*Session)
	Clear()
}

// Result reports what a reconciliation pass did.
type Result struct {
	Session *Session
	// Synced is true when the backend was consulted on this pass.
	Synced bool
	// Reload is true when the client must rebuild its state: either no
	// session was cached before, or the onboarding flag changed out of band.
	Reload bool
}

// Reconciler runs on every navigation while signed in through the identity
// provider and converges the cached session on the backend record.
type Reconciler struct {
	store  Store
	syncer Syncer
}

func NewReconciler(store Store, syncer Syncer) *Reconciler {
	return &Reconciler{store: store, syncer: syncer}
}

// Reconcile applies the transition rules:
//
//	synced-onboarded           -> no-op
//	provider-only              -> sync, reload
//	synced-not-onboarded       -> sync, reload only if onboarding flipped
func (r *Reconciler) Reconcile(ctx context.Context, identity Identity) (Result, error) {
	cached, hadCache := r.store.Load()

	if hadCache && cached.Profile.IsOnboarded {
		return Result{Session: cached}, nil
	}

	fresh, err := r.syncer.ExternalLogin(ctx, identity)
	if err != nil {
		return Result{Session: cached}, fmt.Errorf("failed to sync session: %w", err)
	}

	r.store.Save(fresh)

	reload := !hadCache || cached.Profile.IsOnboarded != fresh.Profile.IsOnboarded

	return Result{Session: fresh, Synced: true, Reload: reload}, nil
}

// SignOut drops the cached session.
func (r *Reconciler) SignOut() {
	r.store.Clear()
}

// MemoryStore is an in-memory Store, the direct analogue of the browser's
// single-tab session storage: no cross-instance synchronization.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, false
	}
	copied := *s.session
	return &copied, true
}

func (s *MemoryStore) Save(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}
