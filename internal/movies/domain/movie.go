// Package domain holds the composed movie view served by the movies service.
package domain

import (
	infodomain "github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
	reviewdomain "github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
)

// Movie is a movie info joined with its reviews, fetched from the two
// upstream services at request time. There is no stored counterpart.
type Movie struct {
	MovieInfo  infodomain.MovieInfo   `json:"movieInfo"`
	ReviewList []*reviewdomain.Review `json:"reviewList"`
}
