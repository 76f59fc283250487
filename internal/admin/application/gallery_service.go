package application

import (
	"context"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

// galleryService implements GalleryService.
type galleryService struct {
	repo GalleryRepository
	now  func() time.Time
}

func NewGalleryService(repo GalleryRepository) GalleryService {
	return &galleryService{repo: repo, now: time.Now}
}

func (s *galleryService) Create(ctx context.Context, cmd CreateGalleryItemCommand) (*domain.GalleryItem, error) {
	item := buildGalleryItemFromCommand(cmd)
	if err := item.Normalize(); err != nil {
		return nil, err
	}
	item.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func buildGalleryItemFromCommand(cmd CreateGalleryItemCommand) *domain.GalleryItem {
	var images map[string]domain.GalleryImage
	if len(cmd.Images) > 0 {
		images = make(map[string]domain.GalleryImage, len(cmd.Images))
		for key, image := range cmd.Images {
			images[key] = domain.GalleryImage{
				URL:             domain.ImageURL(image.URL),
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}
	specs := make([]domain.Specification, 0, len(cmd.Specifications))
	for _, spec := range cmd.Specifications {
		specs = append(specs, domain.Specification{Key: spec.Key, Value: spec.Value})
	}
	return &domain.GalleryItem{
		Title:          cmd.Title,
		Category:       cmd.Category,
		Material:       cmd.Material,
		Description:    cmd.Description,
		MainImageURL:   cmd.MainImageURL,
		Images:         images,
		Client:         cmd.Client,
		Location:       cmd.Location,
		Specifications: specs,
	}
}
