package application

import (
	"context"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

// ReviewRepository exposes moderation operations on reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	SetStatus(ctx context.Context, id string, status domain.ReviewStatus, now time.Time) (*domain.Review, error)
	FindByGallery(ctx context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error)
	FindByStatus(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error)
}

// GalleryRepository exposes admin operations on gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
}

// ModerationService describes admin review use-cases.
type ModerationService interface {
	Queue(ctx context.Context, status string) ([]domain.Review, error)
	Detail(ctx context.Context, id string) (*domain.Review, error)
	SetStatus(ctx context.Context, id string, status string) (*domain.Review, error)
	ListByGallery(ctx context.Context, galleryID string, status string) ([]domain.Review, error)
}

// GalleryService describes admin gallery use-cases.
type GalleryService interface {
	Create(ctx context.Context, cmd CreateGalleryItemCommand) (*domain.GalleryItem, error)
}

// CreateGalleryItemCommand contains inputs for creating a gallery item.
type CreateGalleryItemCommand struct {
	Title          string
	Category       string
	Material       string
	Description    string
	MainImageURL   string
	Images         map[string]GalleryImageCommand
	Client         string
	Location       string
	Specifications []SpecificationCommand
}

// GalleryImageCommand represents an image hosted by the asset service.
type GalleryImageCommand struct {
	URL             string
	ExternalAssetID string
	IsMain          bool
}

type SpecificationCommand struct {
	Key   string
	Value string
}
