package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const (
	categoriesCollection     = "categories"
	reviewsCollection        = "reviews"
	contactQueriesCollection = "contact_queries"
)

type FeedbackRepository struct {
	categories *mongo.Collection
	reviews    *mongo.Collection
	queries    *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{
		categories: db.Collection(categoriesCollection),
		reviews:    db.Collection(reviewsCollection),
		queries:    db.Collection(contactQueriesCollection),
	}
}

func (r *FeedbackRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := []domain.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

func (r *FeedbackRepository) SeedCategories(ctx context.Context, categories []domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.categories.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 || len(categories) == 0 {
		return nil
	}

	docs := make([]any, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, c)
	}
	if _, err := r.categories.InsertMany(ctx, docs); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) SaveReview(ctx context.Context, review *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateReview
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) SaveContactQuery(ctx context.Context, query *domain.ContactQuery) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.queries.InsertOne(ctx, query); err != nil {
		return fmt.Errorf("insert contact query: %w", err)
	}
	return nil
}

// EnsureIndexes allows one review per (task, reviewer, reviewee).
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "task_id", Value: 1},
			{Key: "reviewer_id", Value: 1},
			{Key: "reviewee_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
