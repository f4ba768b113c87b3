package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewStore interface {
	// Create persists a new review, assigning ReviewID.
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	// List returns all reviews, or only those for movieInfoID when non-nil.
	List(ctx context.Context, movieInfoID *int64) ([]*domain.Review, error)
	// Update replaces comment and rating of an existing review; an unknown id
	// reports ErrReviewNotFound and performs no write.
	Update(ctx context.Context, id string, review *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryReviewStore keeps reviews in a map; insertion order is preserved
// for List. It backs tests and local runs without a database.
type InMemoryReviewStore struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
	order   []string
}

func NewInMemoryReviewStore() *InMemoryReviewStore {
	return &InMemoryReviewStore{reviews: make(map[string]*domain.Review)}
}

func (s *InMemoryReviewStore) Create(ctx context.Context, review *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ReviewID == "" {
		review.ReviewID = uuid.NewString()
	}
	stored := *review
	s.reviews[stored.ReviewID] = &stored
	s.order = append(s.order, stored.ReviewID)
	return nil
}

func (s *InMemoryReviewStore) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	found := *review
	return &found, nil
}

func (s *InMemoryReviewStore) List(ctx context.Context, movieInfoID *int64) ([]*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Review, 0, len(s.order))
	for _, id := range s.order {
		review, ok := s.reviews[id]
		if !ok {
			continue
		}
		if movieInfoID != nil && (review.MovieInfoID == nil || *review.MovieInfoID != *movieInfoID) {
			continue
		}
		found := *review
		result = append(result, &found)
	}
	return result, nil
}

func (s *InMemoryReviewStore) Update(ctx context.Context, id string, review *domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	existing.Comment = review.Comment
	existing.Rating = review.Rating
	updated := *existing
	return &updated, nil
}

func (s *InMemoryReviewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return nil
	}
	delete(s.reviews, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
