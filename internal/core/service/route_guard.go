package service

import (
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

// RouteGuard decides whether a navigation renders, waits or redirects. It is a
// pure function of the current session.
type RouteGuard struct {
	session ports.SessionReader
}

func NewRouteGuard(session ports.SessionReader) *RouteGuard {
	return &RouteGuard{session: session}
}

// Check evaluates location against the live session. While the session is
// still hydrating a protected location reports GuardLoading and never
// redirects.
func (g *RouteGuard) Check(location string) domain.GuardDecision {
	if !domain.IsProtected(location) {
		return domain.GuardDecision{Outcome: domain.GuardRender, Location: location}
	}

	s := g.session.Snapshot()
	switch {
	case s.Loading || s.State == domain.StateHydrating || s.State == domain.StateUnhydrated:
		return domain.GuardDecision{Outcome: domain.GuardLoading, Location: location}
	case !s.IsAuthenticated():
		return domain.GuardDecision{
			Outcome:  domain.GuardRedirect,
			Location: domain.PathLogin,
			Intent:   location,
		}
	default:
		return domain.GuardDecision{Outcome: domain.GuardRender, Location: location}
	}
}
