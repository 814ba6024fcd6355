package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// SessionReader exposes the current session snapshot.
type SessionReader interface {
	Snapshot() domain.Session
}

// SessionListener receives session transitions.
type SessionListener func(domain.SessionEvent)

// SessionNotifier fans session transitions out to subscribers.
type SessionNotifier interface {
	Publish(event domain.SessionEvent)
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn SessionListener) (unsubscribe func())
}

// SessionAuthenticator is the part of the session controller the navigator
// drives: it reads the session and can establish a new one.
type SessionAuthenticator interface {
	SessionReader
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error)
}
