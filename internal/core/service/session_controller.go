package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

const hydrateTimeout = 30 * time.Second

// SessionController owns the client session. It is built once at startup and
// passed to everything that needs to know who is logged in.
//
// State lives behind a mutex; backend calls run outside it and their results
// are applied when they return, so overlapping logins resolve to whichever
// response arrives last.
type SessionController struct {
	store    ports.SessionStore
	api      ports.AuthAPI
	notifier ports.SessionNotifier
	logger   zerolog.Logger

	mu      sync.Mutex
	session domain.Session

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSessionController hydrates from store before returning. Without a stored
// token the session is Anonymous right away. With one, the cached user is
// exposed while a background refresh validates the token.
func NewSessionController(store ports.SessionStore, api ports.AuthAPI, notifier ports.SessionNotifier, logger zerolog.Logger) *SessionController {
	c := &SessionController{
		store:    store,
		api:      api,
		notifier: notifier,
		logger:   logger.With().Str("component", "session").Logger(),
		session:  domain.Session{State: domain.StateUnhydrated},
		ready:    make(chan struct{}),
	}
	c.hydrate()
	return c
}

func (c *SessionController) hydrate() {
	token, ok := c.store.Token()
	if !ok {
		// A cached user without a token is stale.
		c.store.Clear()

		c.mu.Lock()
		c.transition(domain.Session{State: domain.StateAnonymous}, domain.ReasonHydrated)
		c.mu.Unlock()
		c.markReady()
		return
	}

	cached, _ := c.store.User()

	c.mu.Lock()
	c.transition(domain.Session{
		State:   domain.StateHydrating,
		Token:   token,
		User:    cached,
		Loading: true,
	}, domain.ReasonHydrated)
	c.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), hydrateTimeout)
		defer cancel()
		c.Refresh(ctx)
		c.markReady()
	}()
}

// Ready is closed once hydration has settled on Authenticated or Anonymous.
func (c *SessionController) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until hydration completes or ctx is done.
func (c *SessionController) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login authenticates against the backend. On failure the session is left as
// it was and the error is returned, matching domain.ErrInvalidCredentials when
// the backend rejected the pair.
func (c *SessionController) Login(ctx context.Context, email, password string) (*domain.User, error) {
	res, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.logger.Info().Err(err).Str("email", email).Msg("login failed")
		return nil, err
	}
	c.establish(res, domain.ReasonLogin)
	return res.User, nil
}

// Signup creates an account and logs it in. Failures match
// domain.ErrEmailAlreadyExists or domain.ErrValidation and leave the session
// as it was.
func (c *SessionController) Signup(ctx context.Context, input domain.SignupInput) (*domain.User, error) {
	res, err := c.api.Signup(ctx, input)
	if err != nil {
		c.logger.Info().Err(err).Str("email", input.Email).Msg("signup failed")
		return nil, err
	}
	c.establish(res, domain.ReasonSignup)
	return res.User, nil
}

func (c *SessionController) establish(res *domain.AuthResult, reason domain.TransitionReason) {
	c.mu.Lock()
	c.store.SetToken(res.Token)
	c.store.SetUser(res.User)
	c.transition(domain.Session{
		State: domain.StateAuthenticated,
		Token: res.Token,
		User:  res.User,
	}, reason)
	c.mu.Unlock()

	c.markReady()
	c.logger.Info().
		Int64("user_id", res.User.ID).
		Str("role", string(res.User.Role)).
		Str("reason", string(reason)).
		Msg("session established")
}

// Refresh re-reads the user from the backend. Any failure downgrades the
// session to Anonymous and clears the store; the error itself is absorbed.
// The token validated is the one the session holds, not a fresh store read,
// so another process rewriting the store cannot strand hydration. A result
// that arrives after the token changed underneath it is dropped.
//
// The role is fixed for the life of a session: a user coming back with a
// different role ends the session as expired.
func (c *SessionController) Refresh(ctx context.Context) domain.Session {
	c.mu.Lock()
	token, prev := c.session.Token, c.session.User
	if token == "" {
		defer c.mu.Unlock()
		c.store.Clear()
		c.transition(domain.Session{State: domain.StateAnonymous}, domain.ReasonExpired)
		return c.session
	}
	c.mu.Unlock()

	user, err := c.api.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Token != token {
		c.logger.Debug().Msg("discarding refresh result for a replaced session")
		return c.session
	}

	if err == nil && prev != nil && user.Role != prev.Role {
		c.logger.Warn().
			Int64("user_id", user.ID).
			Str("was", string(prev.Role)).
			Str("now", string(user.Role)).
			Msg("role changed mid-session, logging out")
		err = domain.ErrUnauthorized
	}

	if err != nil {
		c.logger.Info().Err(err).Msg("session refresh failed, logging out")
		c.store.Clear()
		c.transition(domain.Session{State: domain.StateAnonymous}, domain.ReasonExpired)
		return c.session
	}

	c.store.SetUser(user)
	reason := domain.ReasonRefreshed
	if c.session.State == domain.StateHydrating {
		reason = domain.ReasonHydrated
	}
	c.transition(domain.Session{
		State: domain.StateAuthenticated,
		Token: token,
		User:  user,
	}, reason)
	return c.session
}

// Logout clears the session unconditionally. Calling it again is harmless.
func (c *SessionController) Logout() {
	c.mu.Lock()
	c.store.Clear()
	c.transition(domain.Session{State: domain.StateAnonymous}, domain.ReasonLogout)
	c.mu.Unlock()

	c.markReady()
}

// HandleUnauthorized reacts to the gateway evicting the stored session after
// a 401. It is a no-op when nobody is logged in.
func (c *SessionController) HandleUnauthorized() {
	c.mu.Lock()
	if c.session.State == domain.StateAnonymous {
		c.mu.Unlock()
		return
	}
	c.transition(domain.Session{State: domain.StateAnonymous}, domain.ReasonEvicted)
	c.mu.Unlock()

	c.markReady()
}

// Snapshot returns a copy of the current session.
func (c *SessionController) Snapshot() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *SessionController) IsAuthenticated() bool {
	return c.Snapshot().IsAuthenticated()
}

// User returns the current user, or nil when anonymous.
func (c *SessionController) User() *domain.User {
	return c.Snapshot().User
}

// transition must be called with c.mu held. Publishing under the lock keeps
// events in transition order.
func (c *SessionController) transition(next domain.Session, reason domain.TransitionReason) {
	prev := c.session
	c.session = next

	metrics.SessionTransitionsTotal.WithLabelValues(next.State.String(), string(reason)).Inc()
	c.logger.Debug().
		Stringer("from", prev.State).
		Stringer("to", next.State).
		Str("reason", string(reason)).
		Msg("session transition")

	if c.notifier != nil {
		c.notifier.Publish(domain.SessionEvent{Previous: prev, Current: next, Reason: reason})
	}
}

func (c *SessionController) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}
