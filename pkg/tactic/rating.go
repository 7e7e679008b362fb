package tactic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRatingRange = errors.New("could not parse rating, make sure it's in the form '500-1200'")

// RatingRange holds inclusive rating bounds, nil meaning unbounded.
type RatingRange struct {
	Low  *int
	High *int
}

// ParseRatingRange parses "LOW-HIGH". An empty string is the unbounded range.
func ParseRatingRange(s string) (RatingRange, error) {
	if s == "" {
		return RatingRange{}, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return RatingRange{}, fmt.Errorf("%w: got %q", ErrInvalidRatingRange, s)
	}
	low, err := parseRating(parts[0])
	if err != nil {
		return RatingRange{}, err
	}
	high, err := parseRating(parts[1])
	if err != nil {
		return RatingRange{}, err
	}
	if low > high {
		return RatingRange{}, fmt.Errorf("%w: lower bound %d is above upper bound %d", ErrInvalidRatingRange, low, high)
	}
	return RatingRange{Low: &low, High: &high}, nil
}

func parseRating(s string) (int, error) {
	r, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %q as a rating", ErrInvalidRatingRange, s)
	}
	return r, nil
}

func (r RatingRange) Contains(rating int) bool {
	if r.Low != nil && rating < *r.Low {
		return false
	}
	if r.High != nil && rating > *r.High {
		return false
	}
	return true
}

func (r RatingRange) String() string {
	if r.Low == nil && r.High == nil {
		return "any"
	}
	bound := func(b *int) string {
		if b == nil {
			return "*"
		}
		return strconv.Itoa(*b)
	}
	return bound(r.Low) + "-" + bound(r.High)
}
