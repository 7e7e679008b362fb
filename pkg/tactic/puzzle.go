package tactic

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedPuzzle = errors.New("malformed puzzle")

// Puzzle is a tactic as served by the tactics server. Moves are in UCI
// notation; the first one is the opponent's setup move.
type Puzzle struct {
	ID              string   `json:"id" bson:"_id"`
	Moves           []string `json:"moves" bson:"moves"`
	FEN             string   `json:"fen" bson:"fen"`
	Popularity      int      `json:"popularity" bson:"popularity"`
	Tags            []string `json:"tags" bson:"tags"`
	GameLink        string   `json:"game_link" bson:"game_link"`
	Rating          int      `json:"rating" bson:"rating"`
	RatingDeviation int      `json:"rating_deviation" bson:"rating_deviation"`
	NumberPlays     int      `json:"number_plays" bson:"number_plays"`
}

func (p Puzzle) Validate() error {
	if p.FEN == "" {
		return fmt.Errorf("%w: puzzle %q has no starting position", ErrMalformedPuzzle, p.ID)
	}
	if len(p.Moves) < 2 {
		return fmt.Errorf("%w: puzzle %q has %d moves, need at least 2", ErrMalformedPuzzle, p.ID, len(p.Moves))
	}
	return nil
}

func (p Puzzle) String() string {
	j, _ := json.MarshalIndent(p, "", "\t")
	return string(j)
}

// Request filters the puzzle the server picks. Nil bounds are unbounded.
type Request struct {
	RatingGte *int     `json:"rating_gte"`
	RatingLte *int     `json:"rating_lte"`
	Tags      []string `json:"tags"`
}

func NewRequest(r RatingRange, tags []string) Request {
	if tags == nil {
		tags = []string{}
	}
	return Request{
		RatingGte: r.Low,
		RatingLte: r.High,
		Tags:      tags,
	}
}
