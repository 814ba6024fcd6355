package domain

import (
	"net/url"
	"strings"
)

const (
	PathHome               = "/"
	PathAbout              = "/about"
	PathContact            = "/contact"
	PathProfessionals      = "/professionals"
	PathLogin              = "/login"
	PathSignup             = "/signup"
	PathBrowse             = "/browse"
	PathPostTask           = "/post-task"
	PathCreateProfile      = "/create-profile"
	PathFindWork           = "/find-work"
	PathGiveFeedback       = "/give-feedback"
	PathDashboardTasks     = "/dashboard/tasks"
	PathDashboardProposals = "/dashboard/proposals"
)

// protectedRoutes require an authenticated session to render.
var protectedRoutes = map[string]struct{}{
	PathBrowse:             {},
	PathPostTask:           {},
	PathCreateProfile:      {},
	PathFindWork:           {},
	PathGiveFeedback:       {},
	PathDashboardTasks:     {},
	PathDashboardProposals: {},
}

// CleanPath strips the query, fragment and trailing slash from a location.
func CleanPath(location string) string {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// IsProtected reports whether location needs an authenticated session.
func IsProtected(location string) bool {
	_, ok := protectedRoutes[CleanPath(location)]
	return ok
}

// DefaultLanding is where a user goes after login when no intent is pending.
func DefaultLanding(role Role) string {
	if role == RoleProfessional {
		return PathFindWork
	}
	return PathPostTask
}

// GuardOutcome is what the route guard tells the presentation layer to do.
type GuardOutcome int

const (
	GuardRender GuardOutcome = iota
	GuardLoading
	GuardRedirect
)

func (o GuardOutcome) String() string {
	switch o {
	case GuardRender:
		return "render"
	case GuardLoading:
		return "loading"
	case GuardRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// GuardDecision is the verdict for one navigation. Intent is only set on a
// redirect and carries the location originally requested.
type GuardDecision struct {
	Outcome  GuardOutcome
	Location string
	Intent   string
}
