package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

func runRBAC(action domain.Action, actor *ports.Actor) (bool, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ports.ActorContextKey, *actor)
	}

	called := false
	err := RBAC(action)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRBAC_Allowed(t *testing.T) {
	called, err := runRBAC(domain.ActionPostTask, &ports.Actor{UserID: 1, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRBAC_AdminInheritsClientActions(t *testing.T) {
	called, err := runRBAC(domain.ActionManageTaskProposals, &ports.Actor{UserID: 3, Role: domain.RoleAdmin})
	if err != nil || !called {
		t.Fatalf("admin should pass client gates: err=%v called=%v", err, called)
	}
}

func TestRBAC_Forbidden(t *testing.T) {
	called, err := runRBAC(domain.ActionApply, &ports.Actor{UserID: 1, Role: domain.RoleClient})
	if called {
		t.Fatalf("next must not be called")
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != domain.AccessRules[domain.ActionApply].Notice.Description {
		t.Fatalf("expected the rule notice, got %v", he.Message)
	}
}

func TestRBAC_UnknownActionDeniesEveryone(t *testing.T) {
	called, err := runRBAC(domain.Action("launch-rockets"), &ports.Actor{UserID: 3, Role: domain.RoleAdmin})
	var he *echo.HTTPError
	if called || !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown action, got %v (called=%v)", err, called)
	}
}

func TestRBAC_MissingActor(t *testing.T) {
	called, err := runRBAC(domain.ActionPostTask, nil)
	var he *echo.HTTPError
	if called || !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without actor, got %v", err)
	}
}
