package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository はレビューを MongoDB で扱う。Public / Admin 両方のポートを満たす。
type ReviewRepository struct {
	reviews *mongo.Collection
}

// NewReviewRepository は reviews コレクションを束縛したリポジトリを生成する。
func NewReviewRepository(db *mongo.Database, reviewCollection string) *ReviewRepository {
	return &ReviewRepository{reviews: db.Collection(reviewCollection)}
}

// Create はレビューを追加し、採番した ID をドメインモデルへ反映する。
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review == nil {
		return errors.New("review payload is nil")
	}
	doc, err := mapDomainReviewToDocument(review)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return domain.NewStoreError("insert review", err)
	}
	review.ID = doc.ID.Hex()
	review.CreatedAt = doc.CreatedAt
	review.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID は存在しない場合 nil, nil を返す。
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	objectID, err := parseObjectID("id", id)
	if err != nil {
		return nil, err
	}
	var doc ReviewDocument
	if err := r.reviews.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.NewStoreError("find review", err)
	}
	review, err := mapReviewDocument(doc)
	if err != nil {
		return nil, domain.NewStoreError("decode review", err)
	}
	return &review, nil
}

// Update は検証済みの編集内容を適用し、更新後のレビューを返す。
// createdAt・galleryId・userId は更新対象に含めない。
func (r *ReviewRepository) Update(ctx context.Context, id string, changes domain.ReviewChanges) (*domain.Review, error) {
	set := bson.M{}
	if changes.ReviewText != nil {
		set["reviewText"] = changes.ReviewText.String()
	}
	if changes.Rating != nil {
		set["rating"] = changes.Rating.Int()
	}
	if changes.Status != "" {
		set["status"] = changes.Status.String()
	}
	updatedAt := changes.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	set["updatedAt"] = updatedAt
	return r.findOneAndSet(ctx, "update review", id, set)
}

// SetStatus はモデレーション状態だけを書き換える。
func (r *ReviewRepository) SetStatus(ctx context.Context, id string, status domain.ReviewStatus, now time.Time) (*domain.Review, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be one of pending, approved, rejected")
	}
	return r.findOneAndSet(ctx, "set review status", id, bson.M{
		"status":    status.String(),
		"updatedAt": now.UTC(),
	})
}

func (r *ReviewRepository) findOneAndSet(ctx context.Context, op, id string, set bson.M) (*domain.Review, error) {
	objectID, err := parseObjectID("id", id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated ReviewDocument
	if err := r.reviews.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.NewStoreError(op, err)
	}
	review, err := mapReviewDocument(updated)
	if err != nil {
		return nil, domain.NewStoreError("decode review", err)
	}
	return &review, nil
}

// Delete は削除できたかどうかを返す。
func (r *ReviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := parseObjectID("id", id)
	if err != nil {
		return false, err
	}
	result, err := r.reviews.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, domain.NewStoreError("delete review", err)
	}
	return result.DeletedCount > 0, nil
}

// FindByUser は投稿者のレビューを新しい順に返す。
func (r *ReviewRepository) FindByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}
	return r.find(ctx, "find reviews by user", bson.M{"userId": userID})
}

// FindByGallery はギャラリー項目のレビューを新しい順に返す。status が空なら全状態。
func (r *ReviewRepository) FindByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error) {
	objectID, err := parseObjectID("galleryId", galleryID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"galleryId": objectID}
	if status != "" {
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "must be one of pending, approved, rejected")
		}
		filter["status"] = status.String()
	}
	return r.find(ctx, "find reviews by gallery", filter)
}

// FindByStatus は全ギャラリー横断のモデレーションキューを返す。status が空なら全件。
func (r *ReviewRepository) FindByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	filter := bson.M{}
	if status != "" {
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "must be one of pending, approved, rejected")
		}
		filter["status"] = status.String()
	}
	return r.find(ctx, "find reviews by status", filter)
}

func (r *ReviewRepository) find(ctx context.Context, op string, filter bson.M) ([]domain.Review, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviews.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		review, err := mapReviewDocument(doc)
		if err != nil {
			return nil, domain.NewStoreError("decode review", err)
		}
		reviews = append(reviews, review)
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	return reviews, nil
}

// EnsureIndexes は一覧系クエリで使うインデックスを作成する。
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "galleryId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.reviews.Indexes().CreateMany(ctx, models); err != nil {
		return domain.NewStoreError("create review indexes", err)
	}
	return nil
}
