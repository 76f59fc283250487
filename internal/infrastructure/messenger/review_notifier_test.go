package messenger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	args := m.Called(ctx, destination, userID, text, attempts, delay)
	return args.Error(0)
}

type mockFailureRecorder struct {
	mock.Mock
}

func (m *mockFailureRecorder) Save(ctx context.Context, failure Failure) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}

func sampleReview() (domain.Review, domain.GalleryItem) {
	review := domain.Review{
		ID:         "r1",
		GalleryID:  "g1",
		UserID:     "u1",
		UserEmail:  "u1@example.com",
		ReviewText: "Stunning finish",
		Rating:     5,
		Status:     domain.StatusPending,
	}
	return review, domain.GalleryItem{ID: "g1", Title: "Quartz island"}
}

func TestReviewNotifier_Delivered(t *testing.T) {
	sender := new(mockSender)
	failures := new(mockFailureRecorder)
	notifier := NewReviewNotifier(ReviewNotifierConfig{
		Sender:       sender,
		Failures:     failures,
		Destination:  "discord",
		AdminBaseURL: "https://admin.example.com/reviews/",
	})
	review, item := sampleReview()

	sender.On("SendWithRetry", mock.Anything, "discord", "r1", mock.MatchedBy(func(text string) bool {
		return assert.ObjectsAreEqual(BuildReviewMessage("https://admin.example.com/reviews/", review, item), text)
	}), 3, time.Duration(0)).Return(nil)

	notifier.ReviewSubmitted(context.Background(), review, item)

	sender.AssertExpectations(t)
	failures.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReviewNotifier_PersistsFailure(t *testing.T) {
	sender := new(mockSender)
	failures := new(mockFailureRecorder)
	failed := 0
	notifier := NewReviewNotifier(ReviewNotifierConfig{
		Sender:      sender,
		Failures:    failures,
		Destination: "discord",
		Attempts:    2,
		OnFailure:   func() { failed++ },
	})
	review, item := sampleReview()

	sendErr := errors.New("gateway down")
	sender.On("SendWithRetry", mock.Anything, "discord", "r1", mock.Anything, 2, time.Duration(0)).Return(sendErr)
	failures.On("Save", mock.Anything, mock.MatchedBy(func(f Failure) bool {
		return f.Target == "admin_notification" &&
			f.Identifier == "r1" &&
			f.Attempts == 2 &&
			errors.Is(f.Err, sendErr) &&
			f.Payload["galleryTitle"] == "Quartz island"
	})).Return(nil)

	notifier.ReviewSubmitted(context.Background(), review, item)

	failures.AssertExpectations(t)
	assert.Equal(t, 1, failed)
}

func TestReviewNotifier_NoDestination(t *testing.T) {
	sender := new(mockSender)
	notifier := NewReviewNotifier(ReviewNotifierConfig{Sender: sender})
	review, item := sampleReview()

	notifier.ReviewSubmitted(context.Background(), review, item)
	sender.AssertNotCalled(t, "SendWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildReviewMessage(t *testing.T) {
	review, item := sampleReview()
	message := BuildReviewMessage("https://admin.example.com/reviews/", review, item)

	require.Contains(t, message, "u1@example.com")
	assert.Contains(t, message, "Quartz island")
	assert.Contains(t, message, "5 / 5")
	assert.Contains(t, message, "https://admin.example.com/reviews/r1")

	noLink := BuildReviewMessage("", review, item)
	assert.NotContains(t, noLink, "管理画面")
}
