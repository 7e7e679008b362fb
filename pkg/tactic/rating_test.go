package tactic

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRatingRange(t *testing.T) {
	tests := []struct {
		in        string
		low, high int
	}{
		{"500-1200", 500, 1200},
		{"0-1200", 0, 1200},
		{"1800-1800", 1800, 1800},
		{" 1200 - 1800", 1200, 1800},
	}
	for _, tt := range tests {
		r, err := ParseRatingRange(tt.in)
		if err != nil {
			t.Fatalf("ParseRatingRange(%q) failed: %v", tt.in, err)
		}
		if r.Low == nil || r.High == nil {
			t.Fatalf("ParseRatingRange(%q) dropped bounds: %+v", tt.in, r)
		}
		if *r.Low != tt.low || *r.High != tt.high {
			t.Fatalf("ParseRatingRange(%q) = %d-%d, want %d-%d", tt.in, *r.Low, *r.High, tt.low, tt.high)
		}
	}
}

func TestParseRatingRangeEmpty(t *testing.T) {
	r, err := ParseRatingRange("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Low != nil || r.High != nil {
		t.Fatalf("empty range should be unbounded, got %s", r)
	}
}

func TestParseRatingRangeInvalid(t *testing.T) {
	for _, in := range []string{"1200", "a-b", "1200-", "-1200", "1-2-3", "1800-1200"} {
		if _, err := ParseRatingRange(in); !errors.Is(err, ErrInvalidRatingRange) {
			t.Fatalf("ParseRatingRange(%q) error = %v, want ErrInvalidRatingRange", in, err)
		}
	}
}

func TestRatingRangeContains(t *testing.T) {
	r, _ := ParseRatingRange("1000-1500")
	if !r.Contains(1000) || !r.Contains(1500) {
		t.Fatal("bounds should be inclusive")
	}
	if r.Contains(999) || r.Contains(1501) {
		t.Fatal("out of range rating accepted")
	}
	if !(RatingRange{}).Contains(3000) {
		t.Fatal("unbounded range should contain everything")
	}
}

func TestNewRequestForwardsBounds(t *testing.T) {
	r, _ := ParseRatingRange("500-1200")
	b, err := json.Marshal(NewRequest(r, nil))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"rating_gte":500,"rating_lte":1200,"tags":[]}`
	if string(b) != want {
		t.Fatalf("request = %s, want %s", b, want)
	}

	b, _ = json.Marshal(NewRequest(RatingRange{}, []string{"fork"}))
	want = `{"rating_gte":null,"rating_lte":null,"tags":["fork"]}`
	if string(b) != want {
		t.Fatalf("request = %s, want %s", b, want)
	}
}

func TestPuzzleValidate(t *testing.T) {
	ok := Puzzle{ID: "x", FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Moves: []string{"e2e4", "e7e5"}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid puzzle rejected: %v", err)
	}
	short := ok
	short.Moves = []string{"e2e4"}
	if err := short.Validate(); !errors.Is(err, ErrMalformedPuzzle) {
		t.Fatalf("one-move puzzle accepted: %v", err)
	}
	noFEN := ok
	noFEN.FEN = ""
	if err := noFEN.Validate(); !errors.Is(err, ErrMalformedPuzzle) {
		t.Fatalf("puzzle without fen accepted: %v", err)
	}
}
