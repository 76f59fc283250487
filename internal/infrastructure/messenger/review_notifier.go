package messenger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
)

// Failure は配送できなかった通知 1 件。
type Failure struct {
	Target      string
	Destination string
	Identifier  string
	Text        string
	Payload     map[string]string
	Err         error
	Attempts    int
}

// FailureRecorder は配送失敗を後で再送できるよう保存する。
type FailureRecorder interface {
	Save(ctx context.Context, failure Failure) error
}

// Sender はゲートウェイへのリトライ付き送信。
type Sender interface {
	SendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error
}

// ReviewNotifier は新規レビューを管理者チャンネルへ知らせる。
type ReviewNotifier struct {
	sender       Sender
	failures     FailureRecorder
	destination  string
	adminBaseURL string
	attempts     int
	delay        time.Duration
	onFailure    func()
	logger       *log.Logger
}

// ReviewNotifierConfig defines dependencies required by ReviewNotifier.
type ReviewNotifierConfig struct {
	Sender       Sender
	Failures     FailureRecorder
	Destination  string
	AdminBaseURL string
	Attempts     int
	Delay        time.Duration
	OnFailure    func()
	Logger       *log.Logger
}

func NewReviewNotifier(cfg ReviewNotifierConfig) *ReviewNotifier {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	return &ReviewNotifier{
		sender:       cfg.Sender,
		failures:     cfg.Failures,
		destination:  strings.TrimSpace(cfg.Destination),
		adminBaseURL: strings.TrimSpace(cfg.AdminBaseURL),
		attempts:     attempts,
		delay:        cfg.Delay,
		onFailure:    cfg.OnFailure,
		logger:       cfg.Logger,
	}
}

// ReviewSubmitted は送信に失敗しても呼び出し元へエラーを返さない。
// リトライ後も失敗した場合は FailureRecorder へ記録する。
func (n *ReviewNotifier) ReviewSubmitted(ctx context.Context, review domain.Review, item domain.GalleryItem) {
	if n == nil || n.sender == nil || n.destination == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	identifier := review.ID
	if identifier == "" {
		identifier = "admin"
	}
	message := BuildReviewMessage(n.adminBaseURL, review, item)

	err := n.sender.SendWithRetry(ctx, n.destination, identifier, message, n.attempts, n.delay)
	if err == nil {
		return
	}
	if n.logger != nil {
		n.logger.Printf("管理者通知の送信に失敗: %v", err)
	}
	if n.onFailure != nil {
		n.onFailure()
	}
	if n.failures == nil {
		return
	}
	failure := Failure{
		Target:      "admin_notification",
		Destination: n.destination,
		Identifier:  identifier,
		Text:        message,
		Payload: map[string]string{
			"reviewId":     review.ID,
			"galleryId":    review.GalleryID,
			"galleryTitle": item.Title,
			"userId":       review.UserID,
			"rating":       fmt.Sprintf("%d", review.Rating.Int()),
		},
		Err:      err,
		Attempts: n.attempts,
	}
	if saveErr := n.failures.Save(ctx, failure); saveErr != nil && n.logger != nil {
		n.logger.Printf("failed_notifications への保存に失敗: %v", saveErr)
	}
}

// BuildReviewMessage は管理者向けの新規レビュー通知本文を組み立てる。
func BuildReviewMessage(adminBaseURL string, review domain.Review, item domain.GalleryItem) string {
	var builder strings.Builder
	reviewer := review.UserEmail.String()
	if reviewer == "" {
		reviewer = review.UserID
	}
	builder.WriteString(fmt.Sprintf("**%s** から新しいレビュー投稿があります。\n", reviewer))
	builder.WriteString(fmt.Sprintf("- 施工事例: %s\n", item.Title))
	builder.WriteString(fmt.Sprintf("- 評価: %d / 5\n", review.Rating.Int()))
	builder.WriteString(fmt.Sprintf("- 本文: %s\n", review.ReviewText.String()))
	if review.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("[管理画面で確認](%s/%s)\n", strings.TrimRight(adminBaseURL, "/"), review.ID))
	}
	return builder.String()
}
