package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// FeedbackService covers the catalog, reviews and the public contact form.
type FeedbackService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	LeaveReview(ctx context.Context, actor Actor, review domain.Review) (*domain.Review, error)
	SubmitContactQuery(ctx context.Context, query domain.ContactQuery) (*domain.ContactQuery, error)
}
