package application

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryReviews はステータス絞り込みと新しい順の並びを再現するインメモリ実装。
type memoryReviews struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]domain.Review
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{byID: map[string]domain.Review{}}
}

func (m *memoryReviews) Create(_ context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	review.ID = "r" + strconv.Itoa(m.nextID)
	m.byID[review.ID] = *review
	return nil
}

func (m *memoryReviews) FindByID(_ context.Context, id string) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (m *memoryReviews) Update(_ context.Context, id string, changes domain.ReviewChanges) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	review.Apply(changes)
	m.byID[id] = review
	return &review, nil
}

func (m *memoryReviews) setStatus(id string, status domain.ReviewStatus, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review := m.byID[id]
	review.Status = status
	review.UpdatedAt = now
	m.byID[id] = review
}

func (m *memoryReviews) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	delete(m.byID, id)
	return ok, nil
}

func (m *memoryReviews) FindByUser(_ context.Context, userID string) ([]domain.Review, error) {
	return m.filter(func(r domain.Review) bool { return r.UserID == userID }), nil
}

func (m *memoryReviews) FindByGallery(_ context.Context, galleryID string, status domain.ReviewStatus) ([]domain.Review, error) {
	return m.filter(func(r domain.Review) bool {
		return r.GalleryID == galleryID && (status == "" || r.Status == status)
	}), nil
}

func (m *memoryReviews) filter(keep func(domain.Review) bool) []domain.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.Review, 0)
	for _, review := range m.byID {
		if keep(review) {
			result = append(result, review)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

type memoryGallery struct {
	items []domain.GalleryItem
}

func (m *memoryGallery) Find(context.Context) ([]domain.GalleryItem, error) {
	return append([]domain.GalleryItem(nil), m.items...), nil
}

func (m *memoryGallery) FindByID(_ context.Context, id string) (*domain.GalleryItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func TestReviewLifecycle_AggregateFollowsApproval(t *testing.T) {
	ctx := context.Background()
	reviews := newMemoryReviews()
	gallery := &memoryGallery{items: []domain.GalleryItem{{ID: "g1", Title: "Kitchen"}}}

	clock := fixedNow
	svc := NewReviewService(reviews, gallery, nil).(*reviewService)
	svc.now = func() time.Time { return clock }
	queries := NewGalleryQueryService(gallery, reviews, 2)

	created, err := svc.Create(ctx, CreateReviewCommand{
		GalleryID: "g1", UserID: "u1", UserEmail: "u1@example.com", ReviewText: "Solid work", Rating: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)

	pending, err := svc.ListByGallery(ctx, "g1", domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	approved, err := svc.ListByGallery(ctx, "g1", domain.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	detail, err := queries.Detail(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{}, detail.Rating)

	status, err := domain.Moderate("approved")
	require.NoError(t, err)
	reviews.setStatus(created.ID, status, clock.Add(time.Hour))

	approved, err = svc.ListByGallery(ctx, "g1", domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	detail, err = queries.Detail(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingSummary{AverageRating: 4, ReviewCount: 1}, detail.Rating)

	clock = clock.Add(2 * time.Hour)
	rating := 2
	edited, err := svc.Update(ctx, created.ID, domain.ReviewPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, edited.Status)
	assert.Equal(t, created.CreatedAt, edited.CreatedAt)

	items, err := queries.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Rating.ReviewCount)
	assert.Equal(t, 0.0, items[0].Rating.AverageRating)

	mine, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.StatusPending, mine[0].Status)
	assert.Equal(t, 2, mine[0].Rating.Int())
}
