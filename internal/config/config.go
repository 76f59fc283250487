package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	ReviewCollection             string
	GalleryCollection            string
	FailedNotificationCollection string
	Timeout                      time.Duration
	ServerLog                    *log.Logger
	JWT                          JWTConfig
	JWTAudience                  string
	AdminUserIDs                 []string
	AllowedOrigins               []string
	MessengerEndpoint            string
	MessengerTimeout             time.Duration
	MessengerRatePerSecond       int
	AdminDestination             string
	ContactDestination           string
	AdminReviewBaseURL           string
	GalleryFanoutLimit           int
}

// Load reads environment variables (and an optional .env file) and returns a populated Config.
func Load() (Config, error) {
	// .env は任意。存在しなければ環境変数だけで構成する。
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		return Config{}, errors.New("AUTH_JWT_SECRET must be configured")
	}

	timeout, err := parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	messengerTimeout, err := parseDuration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	ratePerSecond, err := parseInt("MESSENGER_RATE_PER_SECOND", 5)
	if err != nil {
		return Config{}, err
	}
	fanoutLimit, err := parseInt("GALLERY_FANOUT_LIMIT", 8)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "granite-company"),
		ReviewCollection:             envOrDefault("REVIEW_COLLECTION", "reviews"),
		GalleryCollection:            envOrDefault("GALLERY_COLLECTION", "gallery"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		ServerLog:                    log.New(os.Stdout, "[granite-company-api] ", log.LstdFlags|log.Lshortfile),
		JWT: JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "granite-company-auth"),
			Secret: []byte(secret),
		},
		JWTAudience:            strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AdminUserIDs:           parseList("ADMIN_USER_IDS", nil),
		AllowedOrigins:         parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MessengerEndpoint:      strings.TrimRight(strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")), "/"),
		MessengerTimeout:       messengerTimeout,
		MessengerRatePerSecond: ratePerSecond,
		AdminDestination:       envOrDefault("MESSENGER_ADMIN_DESTINATION", "discord"),
		ContactDestination:     envOrDefault("MESSENGER_CONTACT_DESTINATION", "discord"),
		AdminReviewBaseURL:     strings.TrimSpace(os.Getenv("ADMIN_REVIEW_BASE_URL")),
		GalleryFanoutLimit:     fanoutLimit,
	}

	cfg.ServerLog.Printf("loaded config: db=%q messengerEndpoint=%q admins=%d", cfg.MongoDatabase, cfg.MessengerEndpoint, len(cfg.AdminUserIDs))

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("%s: must be a non-negative integer", key)
	}
	return parsed, nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
