package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

// Navigator tracks the current location and the single pending navigation
// intent left behind when the guard bounced a visitor to the login page.
// It follows session events so that losing the session on a protected page
// moves the visitor to login.
type Navigator struct {
	auth   ports.SessionAuthenticator
	guard  *RouteGuard
	logger zerolog.Logger

	mu      sync.Mutex
	current string
	intent  string

	unsubscribe func()
}

func NewNavigator(auth ports.SessionAuthenticator, notifier ports.SessionNotifier, logger zerolog.Logger) *Navigator {
	n := &Navigator{
		auth:    auth,
		guard:   NewRouteGuard(auth),
		logger:  logger.With().Str("component", "navigator").Logger(),
		current: domain.PathHome,
	}
	if notifier != nil {
		n.unsubscribe = notifier.Subscribe(n.onSessionEvent)
	}
	return n
}

// Navigate moves to location, following a guard redirect when there is one.
// On GuardLoading the location is kept and re-checked once the session
// settles.
func (n *Navigator) Navigate(location string) domain.GuardDecision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.apply(location)
}

// Resume re-checks the current location against the session.
func (n *Navigator) Resume() domain.GuardDecision {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.apply(n.current)
}

func (n *Navigator) apply(location string) domain.GuardDecision {
	d := n.guard.Check(location)
	switch d.Outcome {
	case domain.GuardRedirect:
		n.intent = d.Intent
		n.current = d.Location
		n.logger.Debug().Str("intent", d.Intent).Msg("redirected to login")
	default:
		n.current = location
	}
	return d
}

// Login authenticates and returns where the user should land: the pending
// intent if one exists, consumed here, or the role's default landing.
func (n *Navigator) Login(ctx context.Context, email, password string) (string, error) {
	user, err := n.auth.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return n.land(user), nil
}

// Signup creates an account and lands like Login does.
func (n *Navigator) Signup(ctx context.Context, input domain.SignupInput) (string, error) {
	user, err := n.auth.Signup(ctx, input)
	if err != nil {
		return "", err
	}
	return n.land(user), nil
}

func (n *Navigator) land(user *domain.User) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	target := n.intent
	n.intent = ""
	if target == "" {
		target = domain.DefaultLanding(user.Role)
	}
	n.apply(target)
	return n.current
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Intent returns the pending intent without consuming it.
func (n *Navigator) Intent() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.intent
}

// Close stops following session events.
func (n *Navigator) Close() {
	if n.unsubscribe != nil {
		n.unsubscribe()
	}
}

func (n *Navigator) onSessionEvent(ev domain.SessionEvent) {
	if ev.Current.State != domain.StateAnonymous {
		return
	}
	if d := n.Resume(); d.Outcome == domain.GuardRedirect {
		n.logger.Info().
			Str("reason", string(ev.Reason)).
			Str("intent", d.Intent).
			Msg("session ended on a protected page")
	}
}
