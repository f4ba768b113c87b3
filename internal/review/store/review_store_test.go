package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
)

func newReview(movieInfoID int64, comment string, rating float64) *domain.Review {
	return &domain.Review{MovieInfoID: &movieInfoID, Comment: comment, Rating: rating}
}

func TestCreateAssignsID(t *testing.T) {
	s := NewInMemoryReviewStore()
	ctx := context.Background()

	first := newReview(1, "Awesome Movie", 9.0)
	second := newReview(1, "Awesome Movie1", 9.5)
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))

	assert.NotEmpty(t, first.ReviewID)
	assert.NotEmpty(t, second.ReviewID)
	assert.NotEqual(t, first.ReviewID, second.ReviewID)
}

func TestListByMovieInfoID(t *testing.T) {
	s := NewInMemoryReviewStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newReview(1, "Awesome Movie", 9.0)))
	require.NoError(t, s.Create(ctx, newReview(1, "Awesome Movie1", 9.5)))
	require.NoError(t, s.Create(ctx, newReview(2, "Excellent Movie", 8.0)))

	all, err := s.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	movieOne := int64(1)
	filtered, err := s.List(ctx, &movieOne)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestUpdateOnlyMutableFields(t *testing.T) {
	s := NewInMemoryReviewStore()
	ctx := context.Background()

	review := newReview(1, "Awesome Movie", 9.0)
	require.NoError(t, s.Create(ctx, review))

	otherMovie := int64(42)
	updated, err := s.Update(ctx, review.ReviewID, &domain.Review{
		MovieInfoID: &otherMovie,
		Comment:     "Not an awesome movie",
		Rating:      8.0,
	})
	require.NoError(t, err)

	assert.Equal(t, review.ReviewID, updated.ReviewID)
	assert.Equal(t, "Not an awesome movie", updated.Comment)
	assert.Equal(t, 8.0, updated.Rating)
	// The movie reference is immutable once written.
	require.NotNil(t, updated.MovieInfoID)
	assert.Equal(t, int64(1), *updated.MovieInfoID)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	s := NewInMemoryReviewStore()
	_, err := s.Update(context.Background(), "unknown", newReview(1, "c", 1.0))
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteAbsentIDSucceeds(t *testing.T) {
	s := NewInMemoryReviewStore()
	assert.NoError(t, s.Delete(context.Background(), "unknown"))
}

func TestDeleteCompactsInsertionOrder(t *testing.T) {
	s := NewInMemoryReviewStore()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		review := newReview(1, "Awesome Movie", 9.0)
		require.NoError(t, s.Create(ctx, review))
		require.NoError(t, s.Delete(ctx, review.ReviewID))
	}
	assert.Empty(t, s.order, "deleted ids must not accumulate")

	require.NoError(t, s.Create(ctx, newReview(2, "Excellent Movie", 8.0)))
	all, err := s.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Excellent Movie", all[0].Comment)
}
