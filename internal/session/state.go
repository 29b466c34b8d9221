// Package session implements the client side of identity management: a
// locally cached session, the reconciliation state machine that keeps it
// consistent with the backend record and the external identity provider,
// and the capped notification list.
package session

import "time"

// State is the client's identity state, derived from the cached session and
// whether an identity-provider sign-in is active.
type State int

const (
	// StateUnauthenticated: no provider sign-in and no cached session.
	StateUnauthenticated State = iota
	// StateProviderOnly: the provider vouches for the user but no local
	// session has been established yet.
	StateProviderOnly
	// StateSyncedNotOnboarded: a session exists but the profile has not
	// completed onboarding; it must be re-synced on every navigation.
	StateSyncedNotOnboarded
	// StateSyncedOnboarded: a session exists and onboarding is complete;
	// no sync is needed.
	StateSyncedOnboarded
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateProviderOnly:
		return "provider-only"
	case StateSyncedNotOnboarded:
		return "synced-not-onboarded"
	case StateSyncedOnboarded:
		return "synced-onboarded"
	default:
		return "unknown"
	}
}

// Profile is the slice of the backend profile the client caches.
type Profile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Skills         []string `json:"skills"`
	ProfilePicture string   `json:"profilePicture"`
	IsOnboarded    bool     `json:"isOnboarded"`
}

// Session is the locally cached profile plus the bearer token.
type Session struct {
	Profile   Profile   `json:"user"`
	Token     string    `json:"token"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Identity is what the external identity provider vouches for.
type Identity struct {
	Email          string
	Name           string
	ProfilePicture string
}

// Classify maps the cached session and provider status onto a State.
func Classify(cached *Session, providerSignedIn bool) State {
	switch {
	case cached == nil && !providerSignedIn:
		return StateUnauthenticated
	case cached == nil:
		return StateProviderOnly
	case cached.Profile.IsOnboarded:
		return StateSyncedOnboarded
	default:
		return StateSyncedNotOnboarded
	}
}
