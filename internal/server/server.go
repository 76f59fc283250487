package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	adminapp "github.com/sngm3741/granite-company/api/internal/admin/application"
	"github.com/sngm3741/granite-company/api/internal/config"
	"github.com/sngm3741/granite-company/api/internal/infrastructure/messenger"
	mongodoc "github.com/sngm3741/granite-company/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/granite-company/api/internal/interfaces/http/admin"
	publichttp "github.com/sngm3741/granite-company/api/internal/interfaces/http/public"
	"github.com/sngm3741/granite-company/api/internal/observability"
	publicapp "github.com/sngm3741/granite-company/api/internal/public/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const serviceName = "granite-company-api"

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	addr           string
	allowedOrigins []string
	jwt            config.JWTConfig
	jwtAudience    string
	adminUserIDs   map[string]struct{}

	reviewRepo  *mongodoc.ReviewRepository
	galleryRepo *mongodoc.GalleryRepository

	publicHandler *publichttp.Handler
	adminHandler  *adminhttp.Handler
}

// New は Config と Mongo クライアントを受け取り、リポジトリ・サービス・ハンドラを組み立てた Server を返す。
func New(cfg config.Config, client *mongo.Client) *Server {
	database := client.Database(cfg.MongoDatabase)

	reviewRepo := mongodoc.NewReviewRepository(database, cfg.ReviewCollection)
	galleryRepo := mongodoc.NewGalleryRepository(database, cfg.GalleryCollection)
	failureRepo := mongodoc.NewNotificationFailureRepository(database, cfg.FailedNotificationCollection)

	messengerClient := messenger.NewClient(messenger.Config{
		Endpoint:      cfg.MessengerEndpoint,
		Timeout:       cfg.MessengerTimeout,
		RatePerSecond: cfg.MessengerRatePerSecond,
		Logger:        cfg.ServerLog,
	})
	notifier := messenger.NewReviewNotifier(messenger.ReviewNotifierConfig{
		Sender:       messengerClient,
		Failures:     failureRepo,
		Destination:  cfg.AdminDestination,
		AdminBaseURL: cfg.AdminReviewBaseURL,
		Delay:        500 * time.Millisecond,
		OnFailure:    observability.NotificationFailures.Inc,
		Logger:       cfg.ServerLog,
	})

	reviewService := publicapp.NewReviewService(reviewRepo, galleryRepo, notifier)
	galleryQueries := publicapp.NewGalleryQueryService(galleryRepo, reviewRepo, cfg.GalleryFanoutLimit)

	srv := newServer(cfg)
	srv.client = client
	srv.reviewRepo = reviewRepo
	srv.galleryRepo = galleryRepo
	srv.publicHandler = publichttp.NewHandler(publichttp.Config{
		Logger:             cfg.ServerLog,
		GalleryQueries:     galleryQueries,
		Reviews:            reviewService,
		ContactRelay:       messengerClient,
		ContactDestination: cfg.ContactDestination,
	})
	srv.adminHandler = adminhttp.NewHandler(adminhttp.Config{
		Logger:         cfg.ServerLog,
		Moderation:     adminapp.NewModerationService(reviewRepo),
		GalleryService: adminapp.NewGalleryService(galleryRepo),
	})
	return srv
}

// newServer は認証・CORS まわりの設定だけを持つ Server を返す。
func newServer(cfg config.Config) *Server {
	admins := make(map[string]struct{}, len(cfg.AdminUserIDs))
	for _, id := range cfg.AdminUserIDs {
		admins[id] = struct{}{}
	}
	return &Server{
		logger:         cfg.ServerLog,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		jwt:            cfg.JWT,
		jwtAudience:    cfg.JWTAudience,
		adminUserIDs:   admins,
	}
}

// Router はミドルウェアと全ルートを組み立てる。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(observability.PrometheusMetrics(serviceName))
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Handle("/metrics", observability.Handler())

	if s.publicHandler != nil {
		s.publicHandler.Register(router, s.authMiddleware)
	}
	if s.adminHandler != nil {
		router.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.requireAdmin)
			s.adminHandler.Register(r)
		})
	}
	return router
}

// Run はインデックスを用意してから HTTP サーバーを起動し、シグナル受信まで待つ。
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		s.logger.Printf("インデックスの作成に失敗しました: %v", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.reviewRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.galleryRepo.EnsureIndexes(ctx)
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if s.client == nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": "database not connected"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && s.logger != nil {
		s.logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を行う。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
