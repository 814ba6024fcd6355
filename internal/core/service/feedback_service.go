package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

const (
	minRating = 1
	maxRating = 5
)

type FeedbackService struct {
	repo  ports.FeedbackRepository
	tasks ports.TaskRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewFeedbackService(repo ports.FeedbackRepository, tasks ports.TaskRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, tasks: tasks, log: log, now: time.Now}
}

func (s *FeedbackService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// LeaveReview records feedback from actor about another participant of the
// same task. Both reviewer and reviewee must be the task's client or its
// assigned professional.
func (s *FeedbackService) LeaveReview(ctx context.Context, actor ports.Actor, review domain.Review) (*domain.Review, error) {
	if !domain.AccessRules[domain.ActionLeaveFeedback].Permits(actor.Role) {
		return nil, fmt.Errorf("leave review: %w", domain.ErrForbidden)
	}

	fields := map[string]string{}
	if review.TaskID <= 0 {
		fields["taskId"] = "Task id is required"
	}
	if review.RevieweeID <= 0 {
		fields["revieweeId"] = "Reviewee id is required"
	}
	if review.Rating < minRating || review.Rating > maxRating {
		fields["rating"] = fmt.Sprintf("Rating must be between %d and %d", minRating, maxRating)
	}
	if len(fields) > 0 {
		return nil, domain.NewFieldError(fields)
	}

	task, err := s.tasks.FindByID(ctx, review.TaskID)
	if err != nil {
		return nil, err
	}

	if review.RevieweeID == actor.UserID {
		return nil, domain.NewFieldError(map[string]string{"revieweeId": "Reviewer and reviewee cannot be the same"})
	}
	if !participant(task, actor.UserID) || !participant(task, review.RevieweeID) {
		return nil, domain.NewFieldError(map[string]string{"revieweeId": "Only participants of the task can review each other"})
	}

	review.ReviewerID = actor.UserID
	review.Comment = strings.TrimSpace(review.Comment)
	review.CreatedAt = s.now().UTC()

	if err := s.repo.SaveReview(ctx, &review); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("task_id", review.TaskID).
		Int64("reviewer_id", review.ReviewerID).
		Int64("reviewee_id", review.RevieweeID).
		Int("rating", review.Rating).
		Msg("review recorded")
	return &review, nil
}

// SubmitContactQuery stores a message from the public contact form.
func (s *FeedbackService) SubmitContactQuery(ctx context.Context, query domain.ContactQuery) (*domain.ContactQuery, error) {
	query.Name = strings.TrimSpace(query.Name)
	query.Email = strings.TrimSpace(query.Email)
	query.Message = strings.TrimSpace(query.Message)

	fields := map[string]string{}
	if query.Name == "" {
		fields["name"] = "Name is required"
	}
	if _, err := mail.ParseAddress(query.Email); err != nil {
		fields["email"] = "Please provide a valid email"
	}
	if query.Message == "" {
		fields["message"] = "Message is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewFieldError(fields)
	}

	query.CreatedAt = s.now().UTC()
	if err := s.repo.SaveContactQuery(ctx, &query); err != nil {
		return nil, err
	}
	return &query, nil
}

func participant(task *domain.Task, userID int64) bool {
	if task.ClientID == userID {
		return true
	}
	return task.AssignedProfessionalID != nil && *task.AssignedProfessionalID == userID
}
