package puzgen

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/freeeve/uci"
	"github.com/gmkornilov/tactics-trainer/internal/position"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/notnil/chess"
)

// MaxMateDepth is the longest mate turned into a tactic.
const MaxMateDepth = 4

// newPuzzleDeviation is the rating deviation of a puzzle nobody played yet.
const newPuzzleDeviation = 350

type Puzzle struct {
	tactic.Puzzle
	MateIn int
}

type Generator struct {
	engine           Analyzer
	watchedPositions map[string]bool
}

func NewGenerator(engine Analyzer) *Generator {
	return &Generator{
		engine:           engine,
		watchedPositions: make(map[string]bool),
	}
}

func compareResults(baseRes uci.ScoreResult, cmpRes uci.ScoreResult) bool {
	if baseRes.Mate {
		return cmpRes.Mate && baseRes.Score == cmpRes.Score
	}
	return baseRes.Score-cmpRes.Score <= 50
}

// filterResults keeps the lines as good as the first one.
func filterResults(results []uci.ScoreResult) []uci.ScoreResult {
	if len(results) == 0 {
		return nil
	}
	baseRes := results[0]
	filteredResults := make([]uci.ScoreResult, 0)
	for _, item := range results {
		if compareResults(baseRes, item) {
			filteredResults = append(filteredResults, item)
		}
	}
	return filteredResults
}

// bestLines keeps the deepest result of each principal variation, ordered
// by variation number.
func bestLines(results []uci.ScoreResult) []uci.ScoreResult {
	byPV := make(map[int]uci.ScoreResult)
	for _, r := range results {
		if r.Lowerbound || r.Upperbound {
			continue
		}
		if cur, ok := byPV[r.MultiPV]; !ok || r.Depth >= cur.Depth {
			byPV[r.MultiPV] = r
		}
	}
	lines := make([]uci.ScoreResult, 0, len(byPV))
	for _, r := range byPV {
		lines = append(lines, r)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MultiPV < lines[j].MultiPV })
	return lines
}

// GenerateFromPosition plays setup on before and asks the engine whether the
// side to move then mates by force with a single best first move. ok is
// false when the position does not make a tactic.
func (g *Generator) GenerateFromPosition(before *chess.Position, setup *chess.Move) (Puzzle, bool, error) {
	after := before.Update(setup)
	fen := position.FEN(after)
	if g.watchedPositions[fen] || after.Status() != chess.NoMethod {
		return Puzzle{}, false, nil
	}
	g.watchedPositions[fen] = true

	if err := g.engine.SetFEN(fen); err != nil {
		return Puzzle{}, false, err
	}
	result, err := g.engine.GoDepth(analysisDepth, uci.HighestDepthOnly)
	if err != nil {
		return Puzzle{}, false, err
	}

	lines := bestLines(result.Results)
	if len(lines) == 0 {
		return Puzzle{}, false, nil
	}
	best := lines[0]
	if !best.Mate || best.Score < 1 || best.Score > MaxMateDepth {
		return Puzzle{}, false, nil
	}
	if len(filterResults(lines)) > 1 {
		return Puzzle{}, false, nil
	}

	plies := 2*best.Score - 1
	if len(best.BestMoves) < plies {
		return Puzzle{}, false, nil
	}
	moves := []string{position.UCI(before, setup)}
	pos := after
	for _, uciMove := range best.BestMoves[:plies] {
		next, _, err := position.Apply(pos, uciMove)
		if err != nil {
			return Puzzle{}, false, fmt.Errorf("engine line in %s: %w", fen, err)
		}
		pos = next
		moves = append(moves, uciMove)
	}
	if pos.Status() != chess.Checkmate {
		return Puzzle{}, false, nil
	}

	return Puzzle{
		Puzzle: tactic.Puzzle{
			ID:              puzzleID(position.FEN(before), moves),
			FEN:             position.FEN(before),
			Moves:           moves,
			Tags:            mateTags(best.Score),
			RatingDeviation: newPuzzleDeviation,
		},
		MateIn: best.Score,
	}, true, nil
}

func mateTags(mateIn int) []string {
	tags := []string{"mate", "mateIn" + strconv.Itoa(mateIn)}
	switch {
	case mateIn == 1:
		tags = append(tags, "oneMove")
	case mateIn == 2:
		tags = append(tags, "short")
	default:
		tags = append(tags, "long")
	}
	return tags
}

func puzzleID(fen string, moves []string) string {
	sum := md5.Sum([]byte(fen + " " + strings.Join(moves, " ")))
	return fmt.Sprintf("%x", sum)[:10]
}
