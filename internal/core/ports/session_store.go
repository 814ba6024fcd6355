package ports

import "github.com/gigsly/gigsly-client/internal/core/domain"

// SessionStore persists the bearer token and the cached user for one client
// installation. Implementations never fail: storage errors are logged and
// read back as absent. Writing one key never touches the other.
type SessionStore interface {
	Token() (string, bool)
	// SetToken stores token; an empty token deletes it.
	SetToken(token string)
	User() (*domain.User, bool)
	// SetUser stores u; nil deletes it.
	SetUser(u *domain.User)
	// Clear removes both keys. Idempotent.
	Clear()
}
