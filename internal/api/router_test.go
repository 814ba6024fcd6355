package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
	"github.com/gigsly/gigsly-client/internal/core/service"
	"github.com/gigsly/gigsly-client/internal/infrastructure/gateway"
	"github.com/gigsly/gigsly-client/internal/infrastructure/storage"
)

// memBackend is an in-memory stand-in for the Mongo repositories.
type memBackend struct {
	mu        sync.Mutex
	users     map[int64]*domain.User
	tasks     map[int64]*domain.Task
	proposals map[int64]*domain.Proposal
	reviews   map[string]bool
	nextID    int64
}

func newMemBackend() *memBackend {
	return &memBackend{
		users:     map[int64]*domain.User{},
		tasks:     map[int64]*domain.Task{},
		proposals: map[int64]*domain.Proposal{},
		reviews:   map[string]bool{},
	}
}

func (m *memBackend) id() int64 {
	m.nextID++
	return m.nextID
}

type memUsers struct{ *memBackend }

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	clone.ID = r.id()
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r memUsers) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memTasks struct{ *memBackend }

func (r memTasks) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.id()
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r memTasks) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r memTasks) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if f.ClientID != 0 && t.ClientID != f.ClientID {
			continue
		}
		if f.AssignedProfessionalID != 0 && (t.AssignedProfessionalID == nil || *t.AssignedProfessionalID != f.AssignedProfessionalID) {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r memTasks) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

type memProposals struct{ *memBackend }

func (r memProposals) Create(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	clone := *p
	r.proposals[p.ID] = &clone
	return nil
}

func (r memProposals) FindByID(_ context.Context, id int64) (*domain.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.proposals[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	clone := *p
	return &clone, nil
}

func (r memProposals) filter(match func(*domain.Proposal) bool) []*domain.Proposal {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Proposal
	for _, p := range r.proposals {
		if match(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out
}

func (r memProposals) ListByProfessional(_ context.Context, id int64) ([]*domain.Proposal, error) {
	return r.filter(func(p *domain.Proposal) bool { return p.ProfessionalID == id }), nil
}

func (r memProposals) ListByTask(_ context.Context, id int64) ([]*domain.Proposal, error) {
	return r.filter(func(p *domain.Proposal) bool { return p.TaskID == id }), nil
}

func (r memProposals) Exists(_ context.Context, taskID, professionalID int64) (bool, error) {
	return len(r.filter(func(p *domain.Proposal) bool {
		return p.TaskID == taskID && p.ProfessionalID == professionalID
	})) > 0, nil
}

func (r memProposals) Update(_ context.Context, p *domain.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.proposals[p.ID] = &clone
	return nil
}

type memFeedback struct{ *memBackend }

func (r memFeedback) ListCategories(context.Context) ([]domain.Category, error) {
	return domain.DefaultCategories, nil
}

func (r memFeedback) SeedCategories(context.Context, []domain.Category) error { return nil }

func (r memFeedback) SaveReview(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%d/%d/%d", rv.TaskID, rv.ReviewerID, rv.RevieweeID)
	if r.reviews[key] {
		return domain.ErrDuplicateReview
	}
	r.reviews[key] = true
	return nil
}

func (r memFeedback) SaveContactQuery(context.Context, *domain.ContactQuery) error { return nil }

const routerSecret = "router-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := newMemBackend()
	tasks := memTasks{mem}
	log := zerolog.Nop()

	e := New(Dependencies{
		AuthService:     service.NewAuthService(memUsers{mem}, routerSecret, time.Hour),
		TaskService:     service.NewTaskService(tasks, log),
		ProposalService: service.NewProposalService(memProposals{mem}, tasks, log),
		FeedbackService: service.NewFeedbackService(memFeedback{mem}, tasks, log),
		JWTSecret:       routerSecret,
		Registerer:      prometheus.NewRegistry(),
	}, log)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

// clientSession is one logged-in CLI user talking to the test server.
type clientSession struct {
	store  *storage.MemoryStore
	ctrl   *service.SessionController
	market *gateway.MarketplaceAPI
}

func newClientSession(t *testing.T, srv *httptest.Server) *clientSession {
	t.Helper()
	store := storage.NewMemoryStore()
	gw := gateway.New(srv.URL+"/api", store, zerolog.Nop())
	ctrl := service.NewSessionController(store, gateway.NewAuthAPI(gw), nil, zerolog.Nop())
	gw.OnUnauthorized(ctrl.HandleUnauthorized)
	return &clientSession{store: store, ctrl: ctrl, market: gateway.NewMarketplaceAPI(gw)}
}

func signup(t *testing.T, s *clientSession, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := s.ctrl.Signup(context.Background(), domain.SignupInput{
		FullName: name, Email: email, Password: "secret123", Role: role,
	})
	require.NoError(t, err)
	require.True(t, s.ctrl.IsAuthenticated())
	return u
}

func TestRouter_MarketplaceFlowThroughClient(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := newClientSession(t, srv)
	pro := newClientSession(t, srv)
	signup(t, client, "Cleo Client", "cleo@example.com", domain.RoleClient)
	proUser := signup(t, pro, "Pat Pro", "pat@example.com", domain.RoleProfessional)

	task, err := client.market.PostTask(ctx, domain.TaskDraft{Title: "Fix sink", Description: "Leaking under the counter"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskOpen, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	open, err := pro.market.ListTasks(ctx, domain.TaskOpen)
	require.NoError(t, err)
	require.Len(t, open, 1)

	amount := 80.0
	proposal, err := pro.market.SubmitProposal(ctx, domain.ProposalDraft{TaskID: task.ID, Message: "On it", ProposedAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalPending, proposal.Status)

	_, err = pro.market.SubmitProposal(ctx, domain.ProposalDraft{TaskID: task.ID, Message: "Again"})
	assert.Equal(t, http.StatusConflict, gateway.StatusOf(err))

	// A role-gated endpoint answers 403 and leaves the session alone.
	_, err = pro.market.PostTask(ctx, domain.TaskDraft{Title: "Nope", Description: "Nope"})
	assert.Equal(t, http.StatusForbidden, gateway.StatusOf(err))
	assert.True(t, pro.ctrl.IsAuthenticated())

	listed, err := client.market.TaskProposals(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	accepted, err := client.market.UpdateProposalStatus(ctx, proposal.ID, domain.ProposalAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalAccepted, accepted.Status)

	mine, err := pro.market.MyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.TaskInProgress, mine[0].Status)

	require.NoError(t, client.market.LeaveReview(ctx, domain.Review{TaskID: task.ID, RevieweeID: proUser.ID, Rating: 5}))

	professionals, err := client.market.ListProfessionals(ctx)
	require.NoError(t, err)
	require.Len(t, professionals, 1)
	assert.Equal(t, "pat@example.com", professionals[0].Email)

	categories, err := client.market.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(domain.DefaultCategories))
}

func TestRouter_RejectedTokenEvictsClientSession(t *testing.T) {
	srv := newTestServer(t)
	s := newClientSession(t, srv)
	signup(t, s, "Cleo Client", "cleo@example.com", domain.RoleClient)

	s.store.SetToken("forged")
	_, err := s.market.MyTasks(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, domain.StateAnonymous, s.ctrl.Snapshot().State)
	_, ok := s.store.Token()
	assert.False(t, ok)
	_, ok = s.store.User()
	assert.False(t, ok)
}

func TestRouter_LoginAndDuplicateSignup(t *testing.T) {
	srv := newTestServer(t)
	first := newClientSession(t, srv)
	signup(t, first, "Cleo Client", "cleo@example.com", domain.RoleClient)

	second := newClientSession(t, srv)
	_, err := second.ctrl.Signup(context.Background(), domain.SignupInput{
		FullName: "Cleo Again", Email: "cleo@example.com", Password: "secret123", Role: domain.RoleClient,
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.False(t, second.ctrl.IsAuthenticated())

	_, err = second.ctrl.Login(context.Background(), "cleo@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	u, err := second.ctrl.Login(context.Background(), "cleo@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, u.Role)

	// A fresh controller over the same store hydrates from the saved token.
	again := service.NewSessionController(second.store, gateway.NewAuthAPI(gateway.New(srv.URL+"/api", second.store, zerolog.Nop())), nil, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, again.WaitReady(ctx))
	assert.Equal(t, domain.StateAuthenticated, again.Snapshot().State)
	assert.Equal(t, u.ID, again.User().ID)
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, "/api/tasks", body.Path)
}

func TestRouter_Liveness(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
