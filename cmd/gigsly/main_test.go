package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// fakeBackend answers the handful of endpoints the commands below touch.
type fakeBackend struct {
	mu       sync.Mutex
	users    map[string]domain.User // by token
	password map[string]string      // by email
	byEmail  map[string]domain.User
	posted   []domain.TaskDraft
}

func newFakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	b := &fakeBackend{
		users:    map[string]domain.User{},
		password: map[string]string{},
		byEmail:  map[string]domain.User{},
	}
	b.add(domain.User{ID: 1, FullName: "Cleo Client", Email: "cleo@example.com", Role: domain.RoleClient}, "secret123")
	b.add(domain.User{
		ID: 2, FullName: "Pat Pro", Email: "pat@example.com", Role: domain.RoleProfessional,
		PrimaryCategory: "Plumbing", Skills: []string{"pipes", "boilers"},
	}, "secret123")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("GET /api/auth/me", b.me)
	mux.HandleFunc("GET /api/tasks", b.tasks)
	mux.HandleFunc("POST /api/tasks", b.postTask)
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.DefaultCategories)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (b *fakeBackend) add(u domain.User, password string) {
	b.password[u.Email] = password
	b.byEmail[u.Email] = u
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Password string }
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.byEmail[req.Email]
	if !ok || b.password[req.Email] != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": 401, "message": "invalid credentials"})
		return
	}
	token := "tok-" + req.Email
	b.users[token] = u
	writeJSON(w, http.StatusOK, domain.AuthResult{Token: token, TokenType: domain.DefaultTokenType, User: &u})
}

func (b *fakeBackend) caller(r *http.Request) (domain.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	return u, ok
}

func (b *fakeBackend) me(w http.ResponseWriter, r *http.Request) {
	u, ok := b.caller(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": 401})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *fakeBackend) tasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.caller(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": 401})
		return
	}
	from := 50.0
	writeJSON(w, http.StatusOK, []domain.Task{
		{ID: 10, Title: "Fix the sink", Status: domain.TaskOpen, Priority: "HIGH", BudgetMin: &from, ClientName: "Cleo Client"},
	})
}

func (b *fakeBackend) postTask(w http.ResponseWriter, r *http.Request) {
	u, ok := b.caller(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": 401})
		return
	}
	var draft domain.TaskDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)

	b.mu.Lock()
	b.posted = append(b.posted, draft)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, domain.Task{ID: 11, Title: draft.Title, Status: domain.TaskOpen, ClientID: u.ID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cliHarness runs the gigsly command against a fake backend with a file
// store in a temp dir.
type cliHarness struct {
	t   *testing.T
	url string
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	srv := newFakeBackend(t)
	dir := t.TempDir()

	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "off")
	t.Setenv("GIGSLY_STORE_DRIVER", "file")
	t.Setenv("GIGSLY_STORE_DIR", filepath.Join(dir, "session"))
	t.Setenv("GIGSLY_CONFIG", filepath.Join(dir, "missing.toml"))

	return &cliHarness{t: t, url: srv.URL}
}

func (h *cliHarness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer

	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	cmd.Reader = strings.NewReader(stdin)

	argv := append([]string{"gigsly", "--api-url", h.url}, args...)
	err := cmd.Run(context.Background(), argv)
	return out.String(), err
}

func TestCLI_LoginPersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "login", "--email", "cleo@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Cleo Client (CLIENT). Next: /post-task")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleo Client <cleo@example.com>")

	out, err = h.run("", "--json", "whoami")
	require.NoError(t, err)
	var who struct {
		State string       `json:"state"`
		User  *domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "authenticated", who.State)
	assert.Equal(t, int64(1), who.User.ID)

	_, err = h.run("", "logout")
	require.NoError(t, err)

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestCLI_WrongPassword(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "login", "--email", "cleo@example.com", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestCLI_ProtectedPageNeedsLogin(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "open", "/browse")
	require.NoError(t, err)
	assert.Equal(t, "redirect -> /login (will return to /browse after login)\n", out)

	_, err = h.run("", "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an account")

	out, err = h.run("", "open", "/about")
	require.NoError(t, err)
	assert.Equal(t, "render /about\n", out)
}

func TestCLI_RoleGatedActions(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "can", "post-task")
	require.NoError(t, err)
	assert.Equal(t, "log in required\n", out)

	_, err = h.run("", "login", "--email", "pat@example.com", "--password", "secret123")
	require.NoError(t, err)

	out, err = h.run("", "can", "post-task")
	require.NoError(t, err)
	assert.Equal(t, "Clients only: Sign up as a client to post tasks.\n", out)

	out, err = h.run("", "can", "apply")
	require.NoError(t, err)
	assert.Equal(t, "allowed\n", out)

	// The professional is stopped before anything reaches the backend.
	_, err = h.run("", "post-task", "--title", "Paint fence", "--description", "Two coats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Clients only")
}

func TestCLI_ClientPostsAndBrowsesTasks(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "login", "--email", "cleo@example.com", "--password", "secret123")
	require.NoError(t, err)

	out, err := h.run("", "post-task", "--title", "Paint fence", "--description", "Two coats", "--budget-max", "120", "--deadline", "2026-11-01")
	require.NoError(t, err)
	assert.Contains(t, out, `Posted task #11 "Paint fence" (OPEN)`)

	out, err = h.run("", "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix the sink")
	assert.Contains(t, out, "from 50.00")
}

func TestCLI_CategoriesArePublic(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "categories")
	require.NoError(t, err)
	for _, c := range domain.DefaultCategories {
		assert.Contains(t, out, c.Name)
	}
}

func TestCLI_ShellResumesIntentAfterLogin(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"open /give-feedback",
		"where",
		"login cleo@example.com secret123",
		"where",
		"whoami",
		"quit",
	}, "\n")

	out, err := h.run(script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "redirect -> /login (will return to /give-feedback after login)")
	assert.Contains(t, out, "/login (pending /give-feedback)")
	assert.Contains(t, out, "logged in, now at /give-feedback")
	assert.Contains(t, out, "Cleo Client <cleo@example.com> CLIENT")
	assert.Contains(t, out, "gigsly:/give-feedback> ")
}

func TestCLI_ShellRejectedLoginKeepsIntent(t *testing.T) {
	h := newHarness(t)

	script := "open /dashboard/tasks\nlogin cleo@example.com wrong\nwhere\nbogus\n"
	out, err := h.run(script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "error: invalid email or password")
	assert.Contains(t, out, "/login (pending /dashboard/tasks)")
	assert.Contains(t, out, `error: unknown command "bogus", try help`)
}

func TestCLI_ShellLogoutLeavesProtectedPage(t *testing.T) {
	h := newHarness(t)

	script := "login cleo@example.com secret123\nopen /dashboard/tasks\nlogout\nwhere\nquit\n"
	out, err := h.run(script, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "logged out, now at /login")
	assert.Contains(t, out, "gigsly:/login> ")
	assert.Contains(t, out, "/login (pending /dashboard/tasks)")
}

func TestCLI_CreateProfileIsForProfessionals(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "create-profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an account")

	_, err = h.run("", "login", "--email", "cleo@example.com", "--password", "secret123")
	require.NoError(t, err)
	_, err = h.run("", "create-profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Professionals only")

	_, err = h.run("", "login", "--email", "pat@example.com", "--password", "secret123")
	require.NoError(t, err)
	out, err := h.run("", "create-profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Plumbing")
	assert.Contains(t, out, "pipes, boilers")
}
