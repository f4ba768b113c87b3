package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	infodomain "github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
)

// MovieInfoClient fetches movie infos from the movie info service over HTTP.
type MovieInfoClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	delay      time.Duration
}

// NewMovieInfoClient creates a client for the movie info service. baseURL
// points at the /v1/movieinfos resource and comes from configuration.
func NewMovieInfoClient(baseURL string, logger *slog.Logger) *MovieInfoClient {
	return &MovieInfoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		delay:      retryDelay,
	}
}

// FetchMovieInfo returns the movie info for id. Unlike reviews, a 404 here is
// a ClientError: a movie without an info record cannot be composed at all.
// 5xx responses are retried with the same fixed-delay budget as reviews.
func (c *MovieInfoClient) FetchMovieInfo(ctx context.Context, movieInfoID string) (*infodomain.MovieInfo, error) {
	var info *infodomain.MovieInfo
	operation := func() error {
		var err error
		info, err = c.fetchOnce(ctx, movieInfoID)
		if err != nil {
			var serverErr *ServerError
			if errors.As(err, &serverErr) {
				c.logger.WarnContext(ctx, "Retrying movie info fetch after server error",
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
	return info, nil
}

func (c *MovieInfoClient) fetchOnce(ctx context.Context, movieInfoID string) (*infodomain.MovieInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+movieInfoID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build movie info request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("movie info request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &ClientError{
			Message:    "There is no MovieInfo available for the passed in Id : " + movieInfoID,
			StatusCode: http.StatusNotFound,
		}
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServerError{
			Message:    "Server Exception in MoviesInfoService: " + string(body),
			StatusCode: resp.StatusCode,
		}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(resp.Body)
		return nil, &ClientError{Message: string(body), StatusCode: resp.StatusCode}
	}

	var info infodomain.MovieInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode movie info response: %w", err)
	}
	return &info, nil
}
