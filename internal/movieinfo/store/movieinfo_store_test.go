package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
)

func newMovieInfo(name string, year int) *domain.MovieInfo {
	return &domain.MovieInfo{
		Name:        name,
		Year:        year,
		Cast:        []string{"Christian Bale", "Michael Caine"},
		ReleaseDate: domain.NewDate(year, time.June, 15),
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		info := newMovieInfo("Batman Begins", 2005)
		require.NoError(t, s.Create(ctx, info))
		require.NotEmpty(t, info.MovieInfoID)
		assert.False(t, seen[info.MovieInfoID], "identifier reused")
		seen[info.MovieInfoID] = true
	}
}

func TestGetByIDMissIsNotFound(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	_, err := s.GetByID(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)
}

func TestListFilters(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newMovieInfo("Batman Begins", 2005)))
	require.NoError(t, s.Create(ctx, newMovieInfo("The Dark Knight", 2008)))
	require.NoError(t, s.Create(ctx, newMovieInfo("Mr. & Mrs. Smith", 2005)))

	all, err := s.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byYear, err := s.List(ctx, ListParams{Year: 2005})
	require.NoError(t, err)
	assert.Len(t, byYear, 2)

	byName, err := s.List(ctx, ListParams{Name: "Batman Begins"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	// Both filters combine with AND: the intersection of the two above.
	both, err := s.List(ctx, ListParams{Year: 2005, Name: "Batman Begins"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Batman Begins", both[0].Name)
	assert.Equal(t, 2005, both[0].Year)
}

func TestUpdateUnknownIDCreatesNothing(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	_, err := s.Update(ctx, "unknown", newMovieInfo("Batman Begins", 2005))
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)

	all, err := s.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateReplacesMutableFieldsAndPreservesID(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	info := newMovieInfo("Batman Begins", 2005)
	require.NoError(t, s.Create(ctx, info))
	id := info.MovieInfoID

	replacement := &domain.MovieInfo{
		MovieInfoID: "ignored",
		Name:        "Batman Begins 1",
		Year:        2006,
		Cast:        []string{"Christian Bale"},
		ReleaseDate: domain.NewDate(2006, time.January, 1),
	}
	updated, err := s.Update(ctx, id, replacement)
	require.NoError(t, err)

	assert.Equal(t, id, updated.MovieInfoID)
	assert.Equal(t, "Batman Begins 1", updated.Name)
	assert.Equal(t, 2006, updated.Year)
	assert.Equal(t, []string{"Christian Bale"}, []string(updated.Cast))

	stored, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestDeleteIsUnconditional(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	info := newMovieInfo("Batman Begins", 2005)
	require.NoError(t, s.Create(ctx, info))
	require.NoError(t, s.Delete(ctx, info.MovieInfoID))

	_, err := s.GetByID(ctx, info.MovieInfoID)
	assert.ErrorIs(t, err, ErrMovieInfoNotFound)

	// Deleting an id that never existed is not an error in this service.
	assert.NoError(t, s.Delete(ctx, "unknown"))
}

func TestDeleteCompactsInsertionOrder(t *testing.T) {
	s := NewInMemoryMovieInfoStore()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		info := newMovieInfo("Batman Begins", 2005)
		require.NoError(t, s.Create(ctx, info))
		require.NoError(t, s.Delete(ctx, info.MovieInfoID))
	}
	assert.Empty(t, s.order, "deleted ids must not accumulate")

	require.NoError(t, s.Create(ctx, newMovieInfo("The Dark Knight", 2008)))
	all, err := s.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "The Dark Knight", all[0].Name)
}
