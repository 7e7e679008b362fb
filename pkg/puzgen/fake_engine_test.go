package puzgen

import (
	"strings"

	"github.com/freeeve/uci"
)

// fakeEngine answers from a table keyed by the board field of the FEN.
type fakeEngine struct {
	fen      string
	analyses map[string][]uci.ScoreResult
	calls    int
}

func (f *fakeEngine) SetFEN(fen string) error {
	f.fen = fen
	return nil
}

func (f *fakeEngine) GoDepth(depth int, resultOpts ...uint) (*uci.Results, error) {
	f.calls++
	board := strings.Fields(f.fen)[0]
	if res, ok := f.analyses[board]; ok {
		return &uci.Results{Results: res}, nil
	}
	return &uci.Results{Results: []uci.ScoreResult{{Depth: depth, MultiPV: 1, Score: 20, BestMoves: []string{"a2a3"}}}}, nil
}
