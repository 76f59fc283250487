package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/ratelimit"
)

// ErrNotConfigured はゲートウェイ URL が未設定のときに返す。
var ErrNotConfigured = errors.New("messenger gateway is not configured")

// ErrCircuitOpen はゲートウェイ障害が続いて送信を遮断している状態。
var ErrCircuitOpen = gobreaker.ErrOpenState

// Config defines dependencies required by Client.
type Config struct {
	Endpoint      string
	Timeout       time.Duration
	RatePerSecond int
	HTTPClient    *http.Client
	Logger        *log.Logger
}

// Client はメッセンジャーゲートウェイの POST /messages を呼び出す。
// 送信はレートリミッタで間引き、サーキットブレーカ越しに行う。
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
	limiter    ratelimit.Limiter
	breaker    *gobreaker.CircuitBreaker[struct{}]
	logger     *log.Logger
}

// NewClient constructs a messenger client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RatePerSecond > 0 {
		limiter = ratelimit.New(cfg.RatePerSecond)
	}
	logger := cfg.Logger

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "messenger-gateway",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Printf("サーキットブレーカ状態変更: %s %s -> %s", name, from, to)
			}
		},
	})

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		timeout:    timeout,
		limiter:    limiter,
		breaker:    breaker,
		logger:     logger,
	}
}

// Configured はゲートウェイ URL が設定されているかを返す。
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// Send は 1 回だけ送信する。ステータス 400 以上はエラー。
func (c *Client) Send(ctx context.Context, destination, userID, text string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   text,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	c.limiter.Take()
	// 待機中に呼び出し元の期限が切れていれば送らない。
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, body)
	})
	return err
}

func (c *Client) post(ctx context.Context, body []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.endpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}

// SendWithRetry は最大 attempts 回まで送信を試みる。ブレーカが開いていれば即座に諦める。
func (c *Client) SendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	if strings.TrimSpace(destination) == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := c.Send(ctx, destination, userID, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrCircuitOpen) {
			break
		}
		if delay > 0 && i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
