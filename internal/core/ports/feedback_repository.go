package ports

import (
	"context"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

// FeedbackRepository stores the catalog, reviews and contact queries.
type FeedbackRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// SeedCategories inserts categories only when the catalog is empty.
	SeedCategories(ctx context.Context, categories []domain.Category) error
	// SaveReview returns domain.ErrDuplicateReview when the reviewer already
	// reviewed the reviewee on the same task.
	SaveReview(ctx context.Context, review *domain.Review) error
	SaveContactQuery(ctx context.Context, query *domain.ContactQuery) error
}
