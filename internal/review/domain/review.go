// Package domain holds the review model and its boundary validation.
package domain

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Review is the review entity. ReviewID is assigned by the store on first
// insert. MovieInfoID is required but deliberately not validated against the
// movie info service: there is no referential integrity between the stores.
type Review struct {
	ReviewID    string  `json:"reviewId" db:"review_id"`
	MovieInfoID *int64  `json:"movieInfoId" db:"movie_info_id" validate:"required"`
	Comment     string  `json:"comment" db:"comment"`
	Rating      float64 `json:"rating" db:"rating" validate:"gte=0"`
}

// Validate checks the boundary constraints and returns the violation messages
// sorted and joined with ", ". An empty string means the value is valid.
func (rv *Review) Validate(v *validator.Validate) string {
	err := v.Struct(rv)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	var messages []string
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "MovieInfoID":
			messages = append(messages, "rating.movieInfoId: must not be null")
		case "Rating":
			messages = append(messages, "rating.negative : please pass a non-negative value")
		default:
			messages = append(messages, fe.Error())
		}
	}
	sort.Strings(messages)
	return strings.Join(messages, ", ")
}
