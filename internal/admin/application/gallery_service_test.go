package application

import (
	"context"
	"testing"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGalleryService_Create(t *testing.T) {
	repo := new(mockGalleryRepository)
	now := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	svc := NewGalleryService(repo).(*galleryService)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.GalleryItem")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.GalleryItem).ID = "g1" }).
		Return(nil)

	item, err := svc.Create(ctx, CreateGalleryItemCommand{
		Title:    " Marble fireplace ",
		Material: "Marble",
		Images: map[string]GalleryImageCommand{
			"hero": {URL: "https://cdn.example.com/hero.jpg", ExternalAssetID: "a1", IsMain: true},
		},
		Specifications: []SpecificationCommand{{Key: "Edge", Value: "Ogee"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "g1", item.ID)
	assert.Equal(t, "Marble fireplace", item.Title)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", item.MainImageURL)
	assert.Equal(t, now, item.CreatedAt)
	repo.AssertExpectations(t)
}

func TestGalleryService_Create_Invalid(t *testing.T) {
	repo := new(mockGalleryRepository)
	svc := NewGalleryService(repo)

	_, err := svc.Create(context.Background(), CreateGalleryItemCommand{Title: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
