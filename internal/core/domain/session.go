package domain

// SessionState is the lifecycle position of the client session.
type SessionState int

const (
	StateUnhydrated SessionState = iota
	StateHydrating
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateUnhydrated:
		return "unhydrated"
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the controller state.
type Session struct {
	State   SessionState
	Token   string
	User    *User
	Loading bool
}

// IsAuthenticated holds exactly when a user record is present.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Role returns the session user's role, or "" when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// TransitionReason labels why the session changed.
type TransitionReason string

const (
	ReasonHydrated  TransitionReason = "hydrated"
	ReasonLogin     TransitionReason = "login"
	ReasonSignup    TransitionReason = "signup"
	ReasonRefreshed TransitionReason = "refreshed"
	ReasonExpired   TransitionReason = "expired"
	ReasonLogout    TransitionReason = "logout"
	ReasonEvicted   TransitionReason = "evicted"
)

// SessionEvent is published on every session transition.
type SessionEvent struct {
	Previous Session
	Current  Session
	Reason   TransitionReason
}
