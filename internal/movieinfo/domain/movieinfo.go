// Package domain holds the movie info model and its boundary validation.
package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

const dateLayout = "2006-01-02"

// Date is a calendar date: yyyy-mm-dd in JSON, DATE in the database.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s", s, dateLayout)
	}
	*d = Date{t}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{v.UTC()}
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		*d = Date{t}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

// MovieInfo is the catalog entity. MovieInfoID is assigned by the store on
// first insert and never changes afterwards; every other field is mutable.
type MovieInfo struct {
	MovieInfoID string         `json:"movieInfoId" db:"movie_info_id"`
	Name        string         `json:"name" db:"name" validate:"required"`
	Year        int            `json:"year" db:"year" validate:"required,gt=0"`
	Cast        pq.StringArray `json:"cast" db:"cast_members" validate:"omitempty,dive,required"`
	ReleaseDate Date           `json:"release_date" db:"release_date"`
}

// Validate checks the boundary constraints and returns the violation messages
// sorted and joined with ", ". An empty string means the value is valid.
func (m *MovieInfo) Validate(v *validator.Validate) string {
	err := v.Struct(m)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	seen := make(map[string]bool)
	var messages []string
	for _, fe := range fieldErrs {
		var msg string
		switch {
		case fe.StructField() == "Name":
			msg = "movieInfo.name must be present"
		case fe.StructField() == "Year":
			msg = "movieInfo.year must be a Positive Value"
		case strings.HasPrefix(fe.StructField(), "Cast"):
			msg = "movieInfo.cast must be present"
		default:
			msg = fe.Error()
		}
		if !seen[msg] {
			seen[msg] = true
			messages = append(messages, msg)
		}
	}
	sort.Strings(messages)
	return strings.Join(messages, ", ")
}
