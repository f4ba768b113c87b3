// Package clients holds the outbound HTTP clients of the movies service.
// Only server-class upstream failures are retried, with a small fixed-delay
// budget; client-class failures and the empty-on-404 path surface immediately.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	reviewdomain "github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
)

const (
	maxRetries = 3
	retryDelay = time.Second
)

// ReviewsClient fetches reviews from the review service over HTTP.
type ReviewsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	delay      time.Duration
}

// NewReviewsClient creates a client for the review service. baseURL points at
// the /v1/reviews resource and comes from configuration.
func NewReviewsClient(baseURL string, logger *slog.Logger) *ReviewsClient {
	return &ReviewsClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		delay:      retryDelay,
	}
}

// FetchReviews returns all reviews for the given movie info id. An upstream
// 404 is an empty result, not an error. 5xx responses are retried up to
// maxRetries times with a fixed delay; exhausting the budget surfaces the
// last ServerError.
func (c *ReviewsClient) FetchReviews(ctx context.Context, movieInfoID string) ([]*reviewdomain.Review, error) {
	var reviews []*reviewdomain.Review
	operation := func() error {
		var err error
		reviews, err = c.fetchOnce(ctx, movieInfoID)
		if err != nil {
			var serverErr *ServerError
			if errors.As(err, &serverErr) {
				c.logger.WarnContext(ctx, "Retrying reviews fetch after server error",
					slog.String("movieInfoID", movieInfoID), slog.Int("status", serverErr.StatusCode))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.delay), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *ReviewsClient) fetchOnce(ctx context.Context, movieInfoID string) ([]*reviewdomain.Review, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid reviews url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("movieInfoId", movieInfoID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reviews request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reviews request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return []*reviewdomain.Review{}, nil
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServerError{
			Message:    "Server Exception in ReviewsService: " + string(body),
			StatusCode: resp.StatusCode,
		}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(resp.Body)
		return nil, &ClientError{Message: string(body), StatusCode: resp.StatusCode}
	}

	var reviews []*reviewdomain.Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews response: %w", err)
	}
	return reviews, nil
}
