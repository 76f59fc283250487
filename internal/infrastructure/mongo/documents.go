package mongo

import (
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewDocument は reviews コレクションのスキーマ。
type ReviewDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	GalleryID  primitive.ObjectID `bson:"galleryId"`
	UserID     string             `bson:"userId"`
	UserEmail  string             `bson:"userEmail,omitempty"`
	ReviewText string             `bson:"reviewText"`
	Rating     int                `bson:"rating"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// GalleryDocument は gallery コレクションのスキーマ。平均評価・件数は保存しない。
type GalleryDocument struct {
	ID             primitive.ObjectID              `bson:"_id"`
	Title          string                          `bson:"title"`
	Category       string                          `bson:"category,omitempty"`
	Material       string                          `bson:"material,omitempty"`
	Description    string                          `bson:"description,omitempty"`
	MainImageURL   string                          `bson:"mainImageUrl,omitempty"`
	Images         map[string]GalleryImageDocument `bson:"images,omitempty"`
	Client         string                          `bson:"client,omitempty"`
	Location       string                          `bson:"location,omitempty"`
	Specifications []SpecificationDocument         `bson:"specifications,omitempty"`
	CreatedAt      time.Time                       `bson:"createdAt"`
}

// GalleryImageDocument は images マップの値。
type GalleryImageDocument struct {
	URL             string `bson:"url"`
	ExternalAssetID string `bson:"externalAssetId,omitempty"`
	IsMain          bool   `bson:"isMain,omitempty"`
}

type SpecificationDocument struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// FailedNotificationDocument は配送できなかった管理者通知を再送用に保持する。
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Target      string             `bson:"target"`
	Destination string             `bson:"destination"`
	Identifier  string             `bson:"identifier"`
	Text        string             `bson:"text"`
	Payload     map[string]string  `bson:"payload,omitempty"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	LastTriedAt time.Time          `bson:"lastTriedAt"`
}

func corruptDocument(collection string, id primitive.ObjectID, reason string) error {
	return fmt.Errorf("%w: %s %s: %s", domain.ErrCorruptDocument, collection, id.Hex(), reason)
}

// mapReviewDocument は保存済みドキュメントをドメイン Review に復元する。
// 不正な値は補正せず ErrCorruptDocument を返す。
func mapReviewDocument(doc ReviewDocument) (domain.Review, error) {
	if doc.ID.IsZero() {
		return domain.Review{}, corruptDocument("reviews", doc.ID, "missing _id")
	}
	if doc.GalleryID.IsZero() {
		return domain.Review{}, corruptDocument("reviews", doc.ID, "missing galleryId")
	}
	if strings.TrimSpace(doc.UserID) == "" {
		return domain.Review{}, corruptDocument("reviews", doc.ID, "missing userId")
	}
	status := domain.ReviewStatus(doc.Status)
	if !status.Valid() {
		return domain.Review{}, corruptDocument("reviews", doc.ID, fmt.Sprintf("unknown status %q", doc.Status))
	}
	rating, err := domain.NewRating(doc.Rating)
	if err != nil {
		return domain.Review{}, corruptDocument("reviews", doc.ID, err.Error())
	}
	text, err := domain.NewReviewText(doc.ReviewText)
	if err != nil {
		return domain.Review{}, corruptDocument("reviews", doc.ID, err.Error())
	}

	updatedAt := doc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = doc.CreatedAt
	}
	return domain.Review{
		ID:         doc.ID.Hex(),
		GalleryID:  doc.GalleryID.Hex(),
		UserID:     doc.UserID,
		UserEmail:  domain.Email(doc.UserEmail),
		ReviewText: text,
		Rating:     rating,
		Status:     status,
		CreatedAt:  doc.CreatedAt.UTC(),
		UpdatedAt:  updatedAt.UTC(),
	}, nil
}

// mapDomainReviewToDocument はドメイン Review を保存形式に射影する。ID は呼び出し側で採番する。
func mapDomainReviewToDocument(review *domain.Review) (ReviewDocument, error) {
	galleryID, err := parseObjectID("galleryId", review.GalleryID)
	if err != nil {
		return ReviewDocument{}, err
	}
	createdAt := review.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := review.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return ReviewDocument{
		GalleryID:  galleryID,
		UserID:     review.UserID,
		UserEmail:  review.UserEmail.String(),
		ReviewText: review.ReviewText.String(),
		Rating:     review.Rating.Int(),
		Status:     review.Status.String(),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// mapGalleryDocument は保存済みドキュメントをドメイン GalleryItem に復元する。
func mapGalleryDocument(doc GalleryDocument) (domain.GalleryItem, error) {
	if doc.ID.IsZero() {
		return domain.GalleryItem{}, corruptDocument("gallery", doc.ID, "missing _id")
	}
	if strings.TrimSpace(doc.Title) == "" {
		return domain.GalleryItem{}, corruptDocument("gallery", doc.ID, "missing title")
	}

	var images map[string]domain.GalleryImage
	if len(doc.Images) > 0 {
		images = make(map[string]domain.GalleryImage, len(doc.Images))
		for key, image := range doc.Images {
			images[key] = domain.GalleryImage{
				URL:             domain.ImageURL(image.URL),
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}

	var specs []domain.Specification
	if len(doc.Specifications) > 0 {
		specs = make([]domain.Specification, 0, len(doc.Specifications))
		for _, spec := range doc.Specifications {
			specs = append(specs, domain.Specification{Key: spec.Key, Value: spec.Value})
		}
	}

	return domain.GalleryItem{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Category:       doc.Category,
		Material:       doc.Material,
		Description:    doc.Description,
		MainImageURL:   doc.MainImageURL,
		Images:         images,
		Client:         doc.Client,
		Location:       doc.Location,
		Specifications: specs,
		CreatedAt:      doc.CreatedAt.UTC(),
	}, nil
}

func mapDomainGalleryToDocument(item *domain.GalleryItem) GalleryDocument {
	var images map[string]GalleryImageDocument
	if len(item.Images) > 0 {
		images = make(map[string]GalleryImageDocument, len(item.Images))
		for key, image := range item.Images {
			images[key] = GalleryImageDocument{
				URL:             image.URL.String(),
				ExternalAssetID: image.ExternalAssetID,
				IsMain:          image.IsMain,
			}
		}
	}
	var specs []SpecificationDocument
	if len(item.Specifications) > 0 {
		specs = make([]SpecificationDocument, 0, len(item.Specifications))
		for _, spec := range item.Specifications {
			specs = append(specs, SpecificationDocument{Key: spec.Key, Value: spec.Value})
		}
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return GalleryDocument{
		Title:          item.Title,
		Category:       item.Category,
		Material:       item.Material,
		Description:    item.Description,
		MainImageURL:   item.MainImageURL,
		Images:         images,
		Client:         item.Client,
		Location:       item.Location,
		Specifications: specs,
		CreatedAt:      createdAt,
	}
}

// parseObjectID は不正な 16 進 ID を ValidationError として返す。
func parseObjectID(field, id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, domain.NewValidationError(field, "is not a valid id")
	}
	return objectID, nil
}
