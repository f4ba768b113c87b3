package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
)

// PostgresMovieInfoStore implements MovieInfoStore on PostgreSQL.
type PostgresMovieInfoStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresMovieInfoStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieInfoStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMovieInfoStore{db: db, logger: logger}, nil
}

func (s *PostgresMovieInfoStore) Create(ctx context.Context, info *domain.MovieInfo) error {
	if info.MovieInfoID == "" {
		info.MovieInfoID = uuid.NewString()
	}
	query := `INSERT INTO movie_infos (movie_info_id, name, year, cast_members, release_date)
              VALUES ($1, $2, $3, $4, $5)`

	s.logger.DebugContext(ctx, "Executing Create movie info query", slog.String("movieInfoID", info.MovieInfoID), slog.String("name", info.Name))
	_, err := s.db.ExecContext(ctx, query,
		info.MovieInfoID, info.Name, info.Year, pq.Array(info.Cast), info.ReleaseDate,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create movie info in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie info: %w", err)
	}
	return nil
}

func (s *PostgresMovieInfoStore) GetByID(ctx context.Context, id string) (*domain.MovieInfo, error) {
	query := `SELECT movie_info_id, name, year, cast_members, release_date FROM movie_infos WHERE movie_info_id = $1`
	var info domain.MovieInfo

	s.logger.DebugContext(ctx, "Executing GetMovieInfoByID query", slog.String("movieInfoID", id))
	err := s.db.GetContext(ctx, &info, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieInfoNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie info from DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie info by id: %w", err)
	}
	return &info, nil
}

func (s *PostgresMovieInfoStore) List(ctx context.Context, params ListParams) ([]*domain.MovieInfo, error) {
	query := `SELECT movie_info_id, name, year, cast_members, release_date FROM movie_infos WHERE 1=1`

	var args []interface{}
	var conditions []string
	argID := 1

	if params.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argID))
		args = append(args, params.Year)
		argID++
	}
	if params.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name = $%d", argID))
		args = append(args, params.Name)
		argID++
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	s.logger.DebugContext(ctx, "Executing List movie infos query", slog.String("query", query), slog.Any("args", args))
	infos := []*domain.MovieInfo{}
	if err := s.db.SelectContext(ctx, &infos, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movie infos from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movie infos: %w", err)
	}
	return infos, nil
}

// Update follows read-check-write: an unknown id reports ErrMovieInfoNotFound
// without touching the table.
func (s *PostgresMovieInfoStore) Update(ctx context.Context, id string, info *domain.MovieInfo) (*domain.MovieInfo, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = info.Name
	existing.Year = info.Year
	existing.Cast = info.Cast
	existing.ReleaseDate = info.ReleaseDate

	query := `UPDATE movie_infos SET name = $1, year = $2, cast_members = $3, release_date = $4 WHERE movie_info_id = $5`
	s.logger.DebugContext(ctx, "Executing Update movie info query", slog.String("movieInfoID", id))
	if _, err := s.db.ExecContext(ctx, query, existing.Name, existing.Year, pq.Array(existing.Cast), existing.ReleaseDate, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update movie info in DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update movie info: %w", err)
	}
	return existing, nil
}

// Delete removes the row unconditionally; deleting an absent id still succeeds.
func (s *PostgresMovieInfoStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM movie_infos WHERE movie_info_id = $1`
	s.logger.DebugContext(ctx, "Executing Delete movie info query", slog.String("movieInfoID", id))
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie info from DB", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie info: %w", err)
	}
	return nil
}
