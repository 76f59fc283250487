package mongo

import (
	"context"
	"errors"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryRepository は施工事例を MongoDB で扱う。
type GalleryRepository struct {
	gallery *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database, galleryCollection string) *GalleryRepository {
	return &GalleryRepository{gallery: db.Collection(galleryCollection)}
}

// Find は新しい順に全件を返す。
func (r *GalleryRepository) Find(ctx context.Context) ([]domain.GalleryItem, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.gallery.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, domain.NewStoreError("find gallery", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.GalleryItem, 0)
	for cursor.Next(ctx) {
		var doc GalleryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, domain.NewStoreError("find gallery", err)
		}
		item, err := mapGalleryDocument(doc)
		if err != nil {
			return nil, domain.NewStoreError("decode gallery item", err)
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.NewStoreError("find gallery", err)
	}
	return items, nil
}

// FindByID は存在しない場合 nil, nil を返す。
func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	objectID, err := parseObjectID("id", id)
	if err != nil {
		return nil, err
	}
	var doc GalleryDocument
	if err := r.gallery.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.NewStoreError("find gallery item", err)
	}
	item, err := mapGalleryDocument(doc)
	if err != nil {
		return nil, domain.NewStoreError("decode gallery item", err)
	}
	return &item, nil
}

// Create は施工事例を追加し、採番した ID を反映する。
func (r *GalleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	if item == nil {
		return errors.New("gallery item payload is nil")
	}
	doc := mapDomainGalleryToDocument(item)
	doc.ID = primitive.NewObjectID()
	if _, err := r.gallery.InsertOne(ctx, doc); err != nil {
		return domain.NewStoreError("insert gallery item", err)
	}
	item.ID = doc.ID.Hex()
	item.CreatedAt = doc.CreatedAt
	return nil
}

// EnsureIndexes は一覧の並び順に使うインデックスを作成する。
func (r *GalleryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.gallery.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return domain.NewStoreError("create gallery indexes", err)
}
