package domain

import (
	"slices"

	"github.com/samber/lo"
)

// Action names a role-gated user intent.
type Action string

const (
	ActionPostTask            Action = "post-task"
	ActionHire                Action = "hire"
	ActionManageTaskProposals Action = "manage-task-proposals"
	ActionFindWork            Action = "find-work"
	ActionApply               Action = "apply"
	ActionUpdateProfile       Action = "update-profile"
	ActionMyProposals         Action = "my-proposals"
	ActionLeaveFeedback       Action = "leave-feedback"
	ActionBrowseTasks         Action = "browse-tasks"
	ActionMyTasks             Action = "my-tasks"
)

// Notice is the user-facing rejection shown when a role does not qualify.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AccessRule is the set of roles allowed to perform an action.
type AccessRule struct {
	Roles  []Role
	Notice Notice
}

// Permits reports whether role satisfies the rule. Unknown roles never do.
func (r AccessRule) Permits(role Role) bool {
	return role.Valid() && lo.Contains(r.Roles, role)
}

var (
	clientRoles   = []Role{RoleClient, RoleAdmin}
	proRoles      = []Role{RoleProfessional}
	reviewerRoles = []Role{RoleClient, RoleProfessional}
	memberRoles   = []Role{RoleClient, RoleProfessional, RoleAdmin}

	clientsOnly       = "Clients only"
	professionalsOnly = "Professionals only"
)

// AccessRules is the single rule table shared by the action resolver, the CLI
// submit checks and the backend RBAC middleware.
var AccessRules = map[Action]AccessRule{
	ActionPostTask: {Roles: clientRoles, Notice: Notice{
		Title: clientsOnly, Description: "Sign up as a client to post tasks.",
	}},
	ActionHire: {Roles: clientRoles, Notice: Notice{
		Title: clientsOnly, Description: "Only clients can hire professionals.",
	}},
	ActionManageTaskProposals: {Roles: clientRoles, Notice: Notice{
		Title: clientsOnly, Description: "Only clients can review proposals on their tasks.",
	}},
	ActionFindWork: {Roles: proRoles, Notice: Notice{
		Title: professionalsOnly, Description: "Create a professional account to find work.",
	}},
	ActionApply: {Roles: proRoles, Notice: Notice{
		Title: professionalsOnly, Description: "Create a professional account to apply for tasks.",
	}},
	ActionUpdateProfile: {Roles: proRoles, Notice: Notice{
		Title: professionalsOnly, Description: "Only professionals can maintain a professional profile.",
	}},
	ActionMyProposals: {Roles: proRoles, Notice: Notice{
		Title: professionalsOnly, Description: "Switch to a professional account to manage proposals.",
	}},
	ActionLeaveFeedback: {Roles: reviewerRoles, Notice: Notice{
		Title: "Clients and professionals only", Description: "Only clients and professionals can leave feedback.",
	}},
	ActionBrowseTasks: {Roles: memberRoles, Notice: Notice{
		Title: "Members only", Description: "Log in with a Gigsly account to browse tasks.",
	}},
	ActionMyTasks: {Roles: memberRoles, Notice: Notice{
		Title: "Members only", Description: "Log in with a Gigsly account to see your tasks.",
	}},
}

// RuleFor looks up the rule for a. Unknown actions have no rule.
func RuleFor(a Action) (AccessRule, bool) {
	r, ok := AccessRules[a]
	return r, ok
}

// Actions lists every gated action in a stable order.
func Actions() []Action {
	keys := lo.Keys(AccessRules)
	slices.Sort(keys)
	return keys
}

// Outcome is the verdict of the action resolver.
type Outcome int

const (
	OutcomeProceed Outcome = iota
	OutcomeDenyWithNotice
	OutcomeRedirectToAuth
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProceed:
		return "proceed"
	case OutcomeDenyWithNotice:
		return "deny"
	case OutcomeRedirectToAuth:
		return "redirect-to-auth"
	default:
		return "unknown"
	}
}

// Decision is returned for every (action, user) evaluation.
type Decision struct {
	Outcome  Outcome
	Notice   Notice
	Location string
}

// Reason is the short user-facing label of a denial.
func (d Decision) Reason() string {
	return d.Notice.Title
}
