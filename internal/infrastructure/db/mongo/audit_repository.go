package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soccerhub/account-service/internal/core/domain"
)

const auditCollection = "account_audit"

type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

// Timestamp is a BSON date, so millisecond precision survives storage and
// the oldest-first sort stays stable for entries written inside one second.
type mongoAuditEntry struct {
	AccountID int       `bson:"account_id"`
	Email     string    `bson:"email"`
	Action    string    `bson:"action"`
	Actor     string    `bson:"actor,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func toAuditDoc(entry *domain.AuditEntry) mongoAuditEntry {
	return mongoAuditEntry{
		AccountID: entry.AccountID,
		Email:     entry.Email,
		Action:    string(entry.Action),
		Actor:     entry.Actor,
		Timestamp: entry.Timestamp.UTC().Truncate(time.Millisecond),
	}
}

func fromAuditDoc(m mongoAuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AccountID: m.AccountID,
		Email:     m.Email,
		Action:    domain.AuditAction(m.Action),
		Actor:     m.Actor,
		Timestamp: m.Timestamp.UTC(),
	}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toAuditDoc(entry)); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// FindByAccount returns the audit trail of one account, oldest entry first.
func (r *AuditRepository) FindByAccount(ctx context.Context, accountID int) ([]domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.AuditEntry
	for cursor.Next(ctx) {
		var m mongoAuditEntry
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, fromAuditDoc(m))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	return entries, nil
}
