package service

import (
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

var unknownActionNotice = domain.Notice{
	Title:       "Not available",
	Description: "This action is not available for your account.",
}

// Resolve decides whether user may perform action. A nil user is sent to the
// login page; a role outside the action's rule gets the rule's notice.
func Resolve(action domain.Action, user *domain.User) domain.Decision {
	if user == nil {
		return domain.Decision{Outcome: domain.OutcomeRedirectToAuth, Location: domain.PathLogin}
	}

	rule, ok := domain.RuleFor(action)
	if !ok {
		return domain.Decision{Outcome: domain.OutcomeDenyWithNotice, Notice: unknownActionNotice}
	}
	if !rule.Permits(user.Role) {
		return domain.Decision{Outcome: domain.OutcomeDenyWithNotice, Notice: rule.Notice}
	}
	return domain.Decision{Outcome: domain.OutcomeProceed}
}

// ActionResolver evaluates actions against the live session. Nothing is
// cached; every call reads a fresh snapshot.
type ActionResolver struct {
	session ports.SessionReader
}

func NewActionResolver(session ports.SessionReader) *ActionResolver {
	return &ActionResolver{session: session}
}

func (r *ActionResolver) Resolve(action domain.Action) domain.Decision {
	return Resolve(action, r.session.Snapshot().User)
}
