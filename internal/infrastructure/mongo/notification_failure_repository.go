package mongo

import (
	"context"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/sngm3741/granite-company/api/internal/infrastructure/messenger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationFailureRepository は failed_notifications コレクションへの書き込みを担う。
type NotificationFailureRepository struct {
	failures *mongo.Collection
	now      func() time.Time
}

func NewNotificationFailureRepository(db *mongo.Database, collection string) *NotificationFailureRepository {
	return &NotificationFailureRepository{
		failures: db.Collection(collection),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Save は status=pending で失敗内容を記録する。
func (r *NotificationFailureRepository) Save(ctx context.Context, failure messenger.Failure) error {
	now := r.now()
	errText := ""
	if failure.Err != nil {
		errText = failure.Err.Error()
	}
	doc := FailedNotificationDocument{
		ID:          primitive.NewObjectID(),
		Target:      failure.Target,
		Destination: failure.Destination,
		Identifier:  failure.Identifier,
		Text:        failure.Text,
		Payload:     failure.Payload,
		Error:       errText,
		Attempts:    failure.Attempts,
		Status:      "pending",
		CreatedAt:   now,
		LastTriedAt: now,
	}
	if _, err := r.failures.InsertOne(ctx, doc); err != nil {
		return domain.NewStoreError("insert failed notification", err)
	}
	return nil
}
