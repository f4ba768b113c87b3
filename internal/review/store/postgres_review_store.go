package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
)

// PostgresReviewStore implements ReviewStore on PostgreSQL.
type PostgresReviewStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresReviewStore(db *sqlx.DB, logger *slog.Logger) (*PostgresReviewStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresReviewStore{db: db, logger: logger}, nil
}

func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	if review.ReviewID == "" {
		review.ReviewID = uuid.NewString()
	}
	query := `INSERT INTO reviews (review_id, movie_info_id, comment, rating) VALUES ($1, $2, $3, $4)`

	s.logger.DebugContext(ctx, "Executing Create review query", slog.String("reviewID", review.ReviewID))
	_, err := s.db.ExecContext(ctx, query, review.ReviewID, review.MovieInfoID, review.Comment, review.Rating)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create review in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT review_id, movie_info_id, comment, rating FROM reviews WHERE review_id = $1`
	var review domain.Review

	s.logger.DebugContext(ctx, "Executing GetReviewByID query", slog.String("reviewID", id))
	err := s.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get review from DB", slog.String("reviewID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}
	return &review, nil
}

func (s *PostgresReviewStore) List(ctx context.Context, movieInfoID *int64) ([]*domain.Review, error) {
	query := `SELECT review_id, movie_info_id, comment, rating FROM reviews`
	var args []interface{}
	if movieInfoID != nil {
		query += ` WHERE movie_info_id = $1`
		args = append(args, *movieInfoID)
	}

	s.logger.DebugContext(ctx, "Executing List reviews query", slog.String("query", query), slog.Any("args", args))
	reviews := []*domain.Review{}
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list reviews from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Update follows read-check-write: an unknown id reports ErrReviewNotFound
// without touching the table. Only comment and rating are mutable.
func (s *PostgresReviewStore) Update(ctx context.Context, id string, review *domain.Review) (*domain.Review, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Comment = review.Comment
	existing.Rating = review.Rating

	query := `UPDATE reviews SET comment = $1, rating = $2 WHERE review_id = $3`
	s.logger.DebugContext(ctx, "Executing Update review query", slog.String("reviewID", id))
	if _, err := s.db.ExecContext(ctx, query, existing.Comment, existing.Rating, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update review in DB", slog.String("reviewID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return existing, nil
}

func (s *PostgresReviewStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE review_id = $1`
	s.logger.DebugContext(ctx, "Executing Delete review query", slog.String("reviewID", id))
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete review from DB", slog.String("reviewID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
