package public

import "time"

type galleryImagePayload struct {
	URL             string `json:"url"`
	ExternalAssetID string `json:"externalAssetId,omitempty"`
	IsMain          bool   `json:"isMain"`
}

type specificationPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type galleryItemResponse struct {
	ID             string                         `json:"id"`
	Title          string                         `json:"title"`
	Category       string                         `json:"category,omitempty"`
	Material       string                         `json:"material,omitempty"`
	Description    string                         `json:"description,omitempty"`
	MainImageURL   string                         `json:"mainImageUrl,omitempty"`
	Images         map[string]galleryImagePayload `json:"images,omitempty"`
	Client         string                         `json:"client,omitempty"`
	Location       string                         `json:"location,omitempty"`
	Specifications []specificationPayload         `json:"specifications,omitempty"`
	AverageRating  float64                        `json:"averageRating"`
	ReviewCount    int                            `json:"reviewCount"`
	CreatedAt      time.Time                      `json:"createdAt"`
}

type galleryListResponse struct {
	Items []galleryItemResponse `json:"items"`
}

type reviewResponse struct {
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

type reviewListResponse struct {
	Items []reviewResponse `json:"items"`
}

type createReviewRequest struct {
	ReviewText string `json:"reviewText" validate:"required"`
	Rating     int    `json:"rating" validate:"gte=1,lte=5"`
}

type updateReviewRequest struct {
	ReviewText *string `json:"reviewText,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
}

type contactRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	ProjectType string `json:"projectType,omitempty" validate:"max=100"`
	Message     string `json:"message" validate:"required,max=5000"`
}

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}
