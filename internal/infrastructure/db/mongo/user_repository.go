package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Username            string             `bson:"username"`
	Email               string             `bson:"email"`
	PasswordHash        string             `bson:"password_hash"`
	Role                string             `bson:"role"`
	FailedLoginAttempts int                `bson:"failed_login_attempts"`
	LockUntil           *time.Time         `bson:"lock_until,omitempty"`
	LastLoginAttempt    *time.Time         `bson:"last_login_attempt,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  mu.ID.Hex(),
		Username:            mu.Username,
		Email:               mu.Email,
		PasswordHash:        mu.PasswordHash,
		Role:                mu.Role,
		FailedLoginAttempts: mu.FailedLoginAttempts,
		LockUntil:           mu.LockUntil,
		LastLoginAttempt:    mu.LastLoginAttempt,
		CreatedAt:           mu.CreatedAt,
		UpdatedAt:           mu.UpdatedAt,
	}
}

// EnsureIndexes creates the unique indexes backing the email and username
// invariants. Call once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:            user.Username,
		Email:               user.Email,
		PasswordHash:        user.PasswordHash,
		Role:                user.Role,
		FailedLoginAttempts: user.FailedLoginAttempts,
		LockUntil:           user.LockUntil,
		LastLoginAttempt:    user.LastLoginAttempt,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"updated_at":    user.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	return r.FindByID(ctx, user.ID)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RecordFailedAttempt increments the failure counter with a single atomic
// update and reads back the new count, so two concurrent failures each see a
// distinct value. When the count reaches the policy threshold the lock is
// applied conditionally on that observed count.
func (r *MongoUserRepository) RecordFailedAttempt(ctx context.Context, id string, now time.Time, policy domain.LockoutPolicy) (*time.Time, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"failed_login_attempts": 1},
			"$set": bson.M{"last_login_attempt": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("record failed attempt: %w", err)
	}

	if mu.FailedLoginAttempts < policy.Threshold {
		return nil, nil
	}

	until := now.Add(policy.Duration)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "failed_login_attempts": mu.FailedLoginAttempts},
		bson.M{"$set": bson.M{
			"lock_until":            until,
			"failed_login_attempts": 0,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("apply lock: %w", err)
	}
	// A concurrent attempt moved the counter after our read; that attempt
	// owns the lock, so this one must not report an expiry it never wrote.
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return &until, nil
}

func (r *MongoUserRepository) ResetLoginState(ctx context.Context, id string, now time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":   bson.M{"failed_login_attempts": 0, "last_login_attempt": now},
			"$unset": bson.M{"lock_until": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reset login state: %w", err)
	}
	return nil
}

// MonthlySignupStats groups accounts created since the cutoff by calendar
// month of their created_at.
func (r *MongoUserRepository) MonthlySignupStats(ctx context.Context, since time.Time) ([]domain.MonthlySignups, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$project", Value: bson.M{"month": bson.M{"$month": "$created_at"}}}},
		{{Key: "$group", Value: bson.M{"_id": "$month", "total": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("signup stats: %w", err)
	}
	defer cur.Close(ctx)

	var stats []domain.MonthlySignups
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("signup stats decode: %w", err)
	}
	return stats, nil
}
