package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

type stubProposalService struct {
	submitFn  func(ctx context.Context, actor ports.Actor, draft domain.ProposalDraft) (*domain.Proposal, error)
	mineFn    func(ctx context.Context, actor ports.Actor) ([]*domain.Proposal, error)
	forTaskFn func(ctx context.Context, actor ports.Actor, taskID int64) ([]*domain.Proposal, error)
	updateFn  func(ctx context.Context, actor ports.Actor, id int64, status domain.ProposalStatus) (*domain.Proposal, error)
}

func (s *stubProposalService) Submit(ctx context.Context, actor ports.Actor, draft domain.ProposalDraft) (*domain.Proposal, error) {
	return s.submitFn(ctx, actor, draft)
}

func (s *stubProposalService) Mine(ctx context.Context, actor ports.Actor) ([]*domain.Proposal, error) {
	return s.mineFn(ctx, actor)
}

func (s *stubProposalService) ForTask(ctx context.Context, actor ports.Actor, taskID int64) ([]*domain.Proposal, error) {
	return s.forTaskFn(ctx, actor, taskID)
}

func (s *stubProposalService) UpdateStatus(ctx context.Context, actor ports.Actor, id int64, status domain.ProposalStatus) (*domain.Proposal, error) {
	return s.updateFn(ctx, actor, id, status)
}

var proCaller = ports.Actor{UserID: 2, Name: "Pat", Role: domain.RoleProfessional}

func TestProposalHandler_Submit(t *testing.T) {
	e := newEcho()
	handler := NewProposalHandler(&stubProposalService{
		submitFn: func(ctx context.Context, actor ports.Actor, draft domain.ProposalDraft) (*domain.Proposal, error) {
			if draft.TaskID != 11 || draft.ProposedAmount == nil || *draft.ProposedAmount != 99.5 {
				t.Fatalf("unexpected draft %+v", draft)
			}
			return &domain.Proposal{ID: 1, TaskID: draft.TaskID, ProfessionalID: actor.UserID, Status: domain.ProposalPending}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodPost, "/api/proposals",
		`{"taskId":11,"message":"I can help","proposedAmount":99.5,"estimatedDuration":"2 days"}`)
	withActor(c, proCaller)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProposalHandler_Submit_Duplicate(t *testing.T) {
	e := newEcho()
	handler := NewProposalHandler(&stubProposalService{
		submitFn: func(context.Context, ports.Actor, domain.ProposalDraft) (*domain.Proposal, error) {
			return nil, domain.ErrDuplicateProposal
		},
	})

	c, _ := jsonContext(e, http.MethodPost, "/api/proposals", `{"taskId":11,"message":"again"}`)
	withActor(c, proCaller)

	if err := handler.Submit(c); !errors.Is(err, domain.ErrDuplicateProposal) {
		t.Fatalf("expected ErrDuplicateProposal, got %v", err)
	}
}

func TestProposalHandler_Submit_Validation(t *testing.T) {
	e := newEcho()
	handler := NewProposalHandler(&stubProposalService{})

	c, _ := jsonContext(e, http.MethodPost, "/api/proposals", `{"proposedAmount":-1}`)
	withActor(c, proCaller)

	err := handler.Submit(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, f := range []string{"taskId", "message", "proposedAmount"} {
		if _, ok := ve.Fields[f]; !ok {
			t.Fatalf("expected message for %s, got %v", f, ve.Fields)
		}
	}
}

func TestProposalHandler_ForTaskAndUpdate(t *testing.T) {
	e := newEcho()
	handler := NewProposalHandler(&stubProposalService{
		forTaskFn: func(ctx context.Context, actor ports.Actor, taskID int64) ([]*domain.Proposal, error) {
			if taskID != 11 {
				t.Fatalf("unexpected task id %d", taskID)
			}
			return []*domain.Proposal{{ID: 1, TaskID: 11}}, nil
		},
		updateFn: func(ctx context.Context, actor ports.Actor, id int64, status domain.ProposalStatus) (*domain.Proposal, error) {
			if id != 1 || status != domain.ProposalAccepted {
				t.Fatalf("unexpected args %d %s", id, status)
			}
			return &domain.Proposal{ID: id, Status: status}, nil
		},
	})

	c, rec := jsonContext(e, http.MethodGet, "/api/proposals/task/11", "")
	withActor(c, clientCaller)
	c.SetParamNames("id")
	c.SetParamValues("11")
	if err := handler.ForTask(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("ForTask: code %d err %v", rec.Code, err)
	}

	c, rec = jsonContext(e, http.MethodPost, "/api/proposals/1/status", `{"status":"ACCEPTED"}`)
	withActor(c, clientCaller)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.UpdateStatus(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("UpdateStatus: code %d err %v", rec.Code, err)
	}
}

func TestProposalHandler_Mine_Forbidden(t *testing.T) {
	e := newEcho()
	handler := NewProposalHandler(&stubProposalService{
		mineFn: func(context.Context, ports.Actor) ([]*domain.Proposal, error) {
			return nil, domain.ErrForbidden
		},
	})

	c, _ := jsonContext(e, http.MethodGet, "/api/proposals/mine", "")
	withActor(c, clientCaller)
	if err := handler.Mine(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
