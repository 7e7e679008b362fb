// Package puzgen finds forced mates in played games with a UCI engine and
// turns them into tactics.
package puzgen

import (
	"github.com/freeeve/uci"
	"github.com/notnil/chess"
)

const (
	analysisDepth = 14
	multiPV       = 3
)

// Analyzer is the part of a UCI engine the generator talks to.
type Analyzer interface {
	SetFEN(fen string) error
	GoDepth(depth int, resultOpts ...uint) (*uci.Results, error)
}

func SetupEngine(path string, arg ...string) (*uci.Engine, error) {
	e, err := uci.NewEngine(path, arg...)
	if err != nil {
		return nil, err
	}

	err = e.SetOptions(uci.Options{
		MultiPV: multiPV,
		Hash:    128,
		Ponder:  false,
		OwnBook: false,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// AnalyzeAllGames generates the tactics of every game. progress, when not
// nil, is called after each game.
func (g *Generator) AnalyzeAllGames(games []*chess.Game, progress func(done int)) ([]Puzzle, error) {
	res := make([]Puzzle, 0)
	for ind, game := range games {
		puzzles, err := g.AnalyzeGame(game)
		if err != nil {
			return nil, err
		}
		res = append(res, puzzles...)
		if progress != nil {
			progress(ind + 1)
		}
	}
	return res, nil
}

// AnalyzeGame checks the position after every move of the game for a
// forced mate of the side to move.
func (g *Generator) AnalyzeGame(game *chess.Game) ([]Puzzle, error) {
	info := readGameInfo(game)
	positions := game.Positions()
	res := make([]Puzzle, 0)
	for ind, move := range game.Moves() {
		puzzle, ok, err := g.GenerateFromPosition(positions[ind], move)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		puzzle.Rating = estimateRating(puzzle.MateIn, info.elo(positions[ind+1].Turn()))
		puzzle.GameLink = info.link(ind + 1)
		res = append(res, puzzle)
	}
	return res, nil
}
