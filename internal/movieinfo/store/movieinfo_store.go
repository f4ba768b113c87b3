package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
)

var ErrMovieInfoNotFound = errors.New("movie info not found")

// ListParams carries the optional equality filters for List. Zero values mean
// "no filter"; when both are set they are combined with AND.
type ListParams struct {
	Year int
	Name string
}

type MovieInfoStore interface {
	// Create persists a new movie info, assigning MovieInfoID.
	Create(ctx context.Context, info *domain.MovieInfo) error
	GetByID(ctx context.Context, id string) (*domain.MovieInfo, error)
	List(ctx context.Context, params ListParams) ([]*domain.MovieInfo, error)
	// Update replaces the mutable fields of an existing record. The stored
	// identifier is preserved; an unknown id reports ErrMovieInfoNotFound and
	// performs no write.
	Update(ctx context.Context, id string, info *domain.MovieInfo) (*domain.MovieInfo, error)
	// Delete removes the record if present. Deleting an unknown id is not an
	// error for this service.
	Delete(ctx context.Context, id string) error
}

// InMemoryMovieInfoStore keeps movie infos in a map. It backs tests and local
// runs without a database; insertion order is preserved for List.
type InMemoryMovieInfoStore struct {
	mu    sync.RWMutex
	infos map[string]*domain.MovieInfo
	order []string
}

func NewInMemoryMovieInfoStore() *InMemoryMovieInfoStore {
	return &InMemoryMovieInfoStore{infos: make(map[string]*domain.MovieInfo)}
}

func (s *InMemoryMovieInfoStore) Create(ctx context.Context, info *domain.MovieInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info.MovieInfoID == "" {
		info.MovieInfoID = uuid.NewString()
	}
	stored := *info
	s.infos[stored.MovieInfoID] = &stored
	s.order = append(s.order, stored.MovieInfoID)
	return nil
}

func (s *InMemoryMovieInfoStore) GetByID(ctx context.Context, id string) (*domain.MovieInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.infos[id]
	if !ok {
		return nil, ErrMovieInfoNotFound
	}
	found := *info
	return &found, nil
}

func (s *InMemoryMovieInfoStore) List(ctx context.Context, params ListParams) ([]*domain.MovieInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.MovieInfo, 0, len(s.order))
	for _, id := range s.order {
		info, ok := s.infos[id]
		if !ok {
			continue
		}
		if params.Year != 0 && info.Year != params.Year {
			continue
		}
		if params.Name != "" && info.Name != params.Name {
			continue
		}
		found := *info
		result = append(result, &found)
	}
	return result, nil
}

func (s *InMemoryMovieInfoStore) Update(ctx context.Context, id string, info *domain.MovieInfo) (*domain.MovieInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.infos[id]
	if !ok {
		return nil, ErrMovieInfoNotFound
	}
	existing.Name = info.Name
	existing.Year = info.Year
	existing.Cast = info.Cast
	existing.ReleaseDate = info.ReleaseDate
	updated := *existing
	return &updated, nil
}

func (s *InMemoryMovieInfoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.infos[id]; !ok {
		return nil
	}
	delete(s.infos, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
