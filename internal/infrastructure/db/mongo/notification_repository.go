package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/board-service/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

// Insert stores n and sets its ID.
func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	recipient, err := primitive.ObjectIDFromHex(n.RecipientID)
	if err != nil {
		return fmt.Errorf("%w: recipient %q", domain.ErrInvalidID, n.RecipientID)
	}

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := notificationDoc{
		Recipient: recipient,
		Type:      string(n.Type),
		Message:   n.Message,
		Workspace: optionalOID(n.WorkspaceID),
		Board:     optionalOID(n.BoardID),
		Card:      optionalOID(n.CardID),
		Read:      n.Read,
		CreatedAt: createdAt,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid.Hex()
	}
	n.CreatedAt = createdAt
	return nil
}

// EnsureIndexes creates the recipient inbox index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func optionalOID(id string) *primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return &oid
}
