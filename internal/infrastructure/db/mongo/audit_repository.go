package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

const auditCollection = "login_events"

// auditRetention bounds how long login events stay queryable.
const auditRetention = 30 * 24 * time.Hour

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoLoginEvent struct {
	Email     string    `bson:"email"`
	IP        string    `bson:"ip"`
	UserAgent string    `bson:"user_agent,omitempty"`
	Success   bool      `bson:"success"`
	Reason    string    `bson:"reason"`
	Timestamp time.Time `bson:"timestamp"`
}

// EnsureIndexes creates the TTL index that expires old login events.
func (r *MongoAuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) InsertLoginEvent(ctx context.Context, event *domain.LoginEvent) error {
	doc := mongoLoginEvent{
		Email:     event.Email,
		IP:        event.IP,
		UserAgent: event.UserAgent,
		Success:   event.Success,
		Reason:    event.Reason,
		Timestamp: event.Timestamp,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}
	return nil
}
