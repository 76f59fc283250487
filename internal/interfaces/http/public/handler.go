package public

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/granite-company/api/internal/public/application"
)

// ContactRelay hands contact messages to the messenger gateway.
type ContactRelay interface {
	Configured() bool
	SendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             *log.Logger
	galleryQueries     publicapp.GalleryQueryService
	reviews            publicapp.ReviewService
	contactRelay       ContactRelay
	contactDestination string
	newReference       func() string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger             *log.Logger
	GalleryQueries     publicapp.GalleryQueryService
	Reviews            publicapp.ReviewService
	ContactRelay       ContactRelay
	ContactDestination string
	NewReference       func() string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	newReference := cfg.NewReference
	if newReference == nil {
		newReference = newContactReference
	}
	return &Handler{
		logger:             cfg.Logger,
		galleryQueries:     cfg.GalleryQueries,
		reviews:            cfg.Reviews,
		contactRelay:       cfg.ContactRelay,
		contactDestination: strings.TrimSpace(cfg.ContactDestination),
		newReference:       newReference,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/gallery", h.galleryListHandler())
	r.Get("/gallery/{id}", h.galleryDetailHandler())
	r.Get("/gallery/{id}/reviews", h.galleryReviewsHandler())
	r.Post("/contact", h.contactHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/auth/verify", h.authVerifyHandler())
		r.Post("/gallery/{id}/reviews", h.reviewCreateHandler())
		r.Get("/me/reviews", h.myReviewsHandler())
		r.Patch("/reviews/{id}", h.reviewUpdateHandler())
		r.Delete("/reviews/{id}", h.reviewDeleteHandler())
	})
}
