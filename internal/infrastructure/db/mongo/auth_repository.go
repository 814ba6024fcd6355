package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const usersCollection = "users"

type AuthRepository struct {
	coll *mongo.Collection
	ids  sequence
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{
		coll: db.Collection(usersCollection),
		ids:  newSequence(db, usersCollection),
	}
}

type mongoUser struct {
	ID           int64    `bson:"_id"`
	FullName     string   `bson:"full_name"`
	Email        string   `bson:"email"`
	PasswordHash string   `bson:"password_hash"`
	Role         string   `bson:"role"`
	Mobile       string   `bson:"mobile,omitempty"`
	Bio          string   `bson:"bio,omitempty"`
	Category     string   `bson:"primary_category,omitempty"`
	Skills       []string `bson:"skills,omitempty"`
	HourlyRate   *float64 `bson:"hourly_rate,omitempty"`
	Location     string   `bson:"location,omitempty"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

// EnsureIndexes makes email unique so concurrent signups cannot both succeed.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	return err
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := toMongoUser(user)
	doc.ID = id
	doc.CreatedAt = now.Unix()
	doc.UpdatedAt = now.Unix()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AuthRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"role": string(role)}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *AuthRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Mobile:       u.Mobile,
		Bio:          u.Bio,
		Category:     u.PrimaryCategory,
		Skills:       u.Skills,
		HourlyRate:   u.HourlyRate,
		Location:     u.Location,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:              mu.ID,
		FullName:        mu.FullName,
		Email:           mu.Email,
		PasswordHash:    mu.PasswordHash,
		Role:            domain.Role(mu.Role),
		Mobile:          mu.Mobile,
		Bio:             mu.Bio,
		PrimaryCategory: mu.Category,
		Skills:          mu.Skills,
		HourlyRate:      mu.HourlyRate,
		Location:        mu.Location,
		CreatedAt:       unixToTime(mu.CreatedAt),
		UpdatedAt:       unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
