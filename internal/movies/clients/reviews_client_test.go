package clients

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReviewsClientForTest(upstream *httptest.Server) *ReviewsClient {
	c := NewReviewsClient(upstream.URL+"/v1/reviews", discardLogger())
	c.delay = time.Millisecond
	return c
}

func TestFetchReviewsSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("movieInfoId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"reviewId":"abc","movieInfoId":1,"comment":"Awesome Movie","rating":9.0}]`))
	}))
	defer upstream.Close()

	reviews, err := newReviewsClientForTest(upstream).FetchReviews(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Awesome Movie", reviews[0].Comment)
}

func TestFetchReviews404IsEmptyNotError(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer upstream.Close()

	reviews, err := newReviewsClientForTest(upstream).FetchReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Equal(t, int32(1), calls.Load(), "the empty-on-404 path must not be retried")
}

func TestFetchReviewsClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad movieInfoId"))
	}))
	defer upstream.Close()

	_, err := newReviewsClientForTest(upstream).FetchReviews(context.Background(), "1")
	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "bad movieInfoId", clientErr.Message)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchReviewsServerErrorRetriedThenSurfaced(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("reviews backend down"))
	}))
	defer upstream.Close()

	_, err := newReviewsClientForTest(upstream).FetchReviews(context.Background(), "1")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Server Exception in ReviewsService: reviews backend down", serverErr.Message)
	// Initial attempt plus the full retry budget.
	assert.Equal(t, int32(1+maxRetries), calls.Load())
}

func TestFetchReviewsRecoversWithinRetryBudget(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	reviews, err := newReviewsClientForTest(upstream).FetchReviews(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchMovieInfo404IsClientError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer upstream.Close()

	c := NewMovieInfoClient(upstream.URL+"/v1/movieinfos", discardLogger())
	c.delay = time.Millisecond
	_, err := c.FetchMovieInfo(context.Background(), "abc")
	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	assert.Equal(t, "There is no MovieInfo available for the passed in Id : abc", clientErr.Message)
}

func TestFetchMovieInfoSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/movieinfos/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"movieInfoId":"abc","name":"Batman Begins","year":2005,"cast":["Christian Bale"],"release_date":"2005-06-15"}`))
	}))
	defer upstream.Close()

	c := NewMovieInfoClient(upstream.URL+"/v1/movieinfos", discardLogger())
	info, err := c.FetchMovieInfo(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Batman Begins", info.Name)
	assert.Equal(t, 2005, info.Year)
}
