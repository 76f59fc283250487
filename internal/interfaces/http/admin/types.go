package admin

import "time"

type adminReviewResponse struct {
	ID         string    `json:"id"`
	GalleryID  string    `json:"galleryId"`
	UserID     string    `json:"userId"`
	UserEmail  string    `json:"userEmail,omitempty"`
	ReviewText string    `json:"reviewText"`
	Rating     int       `json:"rating"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type adminReviewListResponse struct {
	Items []adminReviewResponse `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type galleryImageRequest struct {
	URL             string `json:"url" validate:"required,url"`
	ExternalAssetID string `json:"externalAssetId,omitempty" validate:"max=200"`
	IsMain          bool   `json:"isMain"`
}

type specificationRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"max=500"`
}

type createGalleryItemRequest struct {
	Title          string                         `json:"title" validate:"required,max=200"`
	Category       string                         `json:"category,omitempty" validate:"max=100"`
	Material       string                         `json:"material,omitempty" validate:"max=100"`
	Description    string                         `json:"description,omitempty" validate:"max=5000"`
	MainImageURL   string                         `json:"mainImageUrl,omitempty" validate:"omitempty,url"`
	Images         map[string]galleryImageRequest `json:"images,omitempty" validate:"dive"`
	Client         string                         `json:"client,omitempty" validate:"max=200"`
	Location       string                         `json:"location,omitempty" validate:"max=200"`
	Specifications []specificationRequest         `json:"specifications,omitempty" validate:"dive"`
}

type adminGalleryImageResponse struct {
	URL             string `json:"url"`
	ExternalAssetID string `json:"externalAssetId,omitempty"`
	IsMain          bool   `json:"isMain"`
}

type adminSpecificationResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type adminGalleryItemResponse struct {
	ID             string                               `json:"id"`
	Title          string                               `json:"title"`
	Category       string                               `json:"category,omitempty"`
	Material       string                               `json:"material,omitempty"`
	Description    string                               `json:"description,omitempty"`
	MainImageURL   string                               `json:"mainImageUrl,omitempty"`
	Images         map[string]adminGalleryImageResponse `json:"images,omitempty"`
	Client         string                               `json:"client,omitempty"`
	Location       string                               `json:"location,omitempty"`
	Specifications []adminSpecificationResponse         `json:"specifications,omitempty"`
	CreatedAt      time.Time                            `json:"createdAt"`
}
