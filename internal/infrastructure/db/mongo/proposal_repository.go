package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const proposalsCollection = "proposals"

type ProposalRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{
		col: db.Collection(proposalsCollection),
		ids: newSequence(db, proposalsCollection),
	}
}

// Create assigns p.ID and inserts the proposal. The unique (task, professional)
// index turns a racing duplicate into domain.ErrDuplicateProposal.
func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	p.ID = id

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProposal
		}
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

func (r *ProposalRepository) FindByID(ctx context.Context, id int64) (*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Proposal
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProposalRepository) ListByProfessional(ctx context.Context, professionalID int64) ([]*domain.Proposal, error) {
	return r.list(ctx, bson.M{"professional_id": professionalID})
}

func (r *ProposalRepository) ListByTask(ctx context.Context, taskID int64) ([]*domain.Proposal, error) {
	return r.list(ctx, bson.M{"task_id": taskID})
}

func (r *ProposalRepository) Exists(ctx context.Context, taskID, professionalID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx,
		bson.M{"task_id": taskID, "professional_id": professionalID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count proposals: %w", err)
	}
	return n > 0, nil
}

func (r *ProposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

// EnsureIndexes creates the proposal indexes, including the one-bid-per-task
// uniqueness constraint.
func (r *ProposalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "task_id", Value: 1}, {Key: "professional_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "professional_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *ProposalRepository) list(ctx context.Context, filter bson.M) ([]*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	var out []*domain.Proposal
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}
	return out, nil
}
