package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/sngm3741/granite-company/api/internal/infrastructure/messenger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGalleryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	createdAt := time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC)

	mt.Run("find maps documents", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		ns := mt.DB.Name() + ".gallery"
		doc := GalleryDocument{
			ID:           primitive.NewObjectID(),
			Title:        "Granite kitchen",
			Material:     "Granite",
			MainImageURL: "https://cdn.example.com/main.jpg",
			Images: map[string]GalleryImageDocument{
				"main": {URL: "https://cdn.example.com/main.jpg", ExternalAssetID: "asset-1", IsMain: true},
			},
			Specifications: []SpecificationDocument{{Key: "Thickness", Value: "3cm"}, {Key: "Finish", Value: "Polished"}},
			CreatedAt:      createdAt,
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toBSOND(mt.T, doc)))

		items, err := repo.Find(context.Background())
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		item := items[0]
		assert.Equal(mt, doc.ID.Hex(), item.ID)
		assert.Equal(mt, "Granite kitchen", item.Title)
		assert.Equal(mt, "asset-1", item.Images["main"].ExternalAssetID)
		assert.True(mt, item.Images["main"].IsMain)
		assert.Equal(mt, []domain.Specification{{Key: "Thickness", Value: "3cm"}, {Key: "Finish", Value: "Polished"}}, item.Specifications)
		assert.Equal(mt, createdAt, item.CreatedAt)
	})

	mt.Run("find rejects untitled document", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		ns := mt.DB.Name() + ".gallery"
		doc := GalleryDocument{ID: primitive.NewObjectID(), CreatedAt: createdAt}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toBSOND(mt.T, doc)))

		_, err := repo.Find(context.Background())
		assert.ErrorIs(mt, err, domain.ErrCorruptDocument)
	})

	mt.Run("find by id absent", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		ns := mt.DB.Name() + ".gallery"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		item, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Nil(mt, item)
	})

	mt.Run("find by id malformed", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, domain.ErrValidation)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		item := &domain.GalleryItem{Title: "Vanity top"}
		require.NoError(mt, repo.Create(context.Background(), item))
		assert.Len(mt, item.ID, 24)
		assert.False(mt, item.CreatedAt.IsZero())
	})

	mt.Run("create wraps store failure", func(mt *mtest.T) {
		repo := NewGalleryRepository(mt.DB, "gallery")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		err := repo.Create(context.Background(), &domain.GalleryItem{Title: "Vanity top"})
		assert.ErrorIs(mt, err, domain.ErrStore)
	})
}

func TestNotificationFailureRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		repo := NewNotificationFailureRepository(mt.DB, "failed_notifications")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Save(context.Background(), messenger.Failure{
			Target:      "admin_notification",
			Destination: "discord",
			Identifier:  "review-1",
			Text:        "new review",
			Attempts:    3,
		})
		require.NoError(mt, err)
	})

	mt.Run("save failure", func(mt *mtest.T) {
		repo := NewNotificationFailureRepository(mt.DB, "failed_notifications")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		err := repo.Save(context.Background(), messenger.Failure{Target: "admin_notification"})
		assert.ErrorIs(mt, err, domain.ErrStore)
	})
}
