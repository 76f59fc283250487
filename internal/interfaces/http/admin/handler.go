package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/granite-company/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger         *log.Logger
	moderation     adminapp.ModerationService
	galleryService adminapp.GalleryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *log.Logger
	Moderation     adminapp.ModerationService
	GalleryService adminapp.GalleryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:         cfg.Logger,
		moderation:     cfg.Moderation,
		galleryService: cfg.GalleryService,
	}
}

// Register mounts admin routes onto router. 認証と管理者判定は呼び出し側のミドルウェアで行う。
func (h *Handler) Register(r chi.Router) {
	r.Get("/reviews", h.reviewQueueHandler())
	r.Get("/reviews/{id}", h.reviewDetailHandler())
	r.Patch("/reviews/{id}/status", h.reviewStatusHandler())
	r.Get("/gallery/{id}/reviews", h.galleryReviewsHandler())
	r.Post("/gallery", h.galleryCreateHandler())
}
