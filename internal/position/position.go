// Package position adapts github.com/notnil/chess to the operations the
// trainer and the puzzle generator need: FEN parsing, validated UCI decoding,
// position transitions and SAN rendering.
package position

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

func FromFEN(fen string) (*chess.Position, error) {
	fenFunc, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return chess.NewGame(fenFunc).Position(), nil
}

// DecodeUCI returns the legal move of pos described by uci. The returned
// move carries the tags (check, capture, ...) computed by the move generator.
func DecodeUCI(pos *chess.Position, uci string) (*chess.Move, error) {
	decoded, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return nil, fmt.Errorf("decode move %q: %w", uci, err)
	}
	for _, m := range pos.ValidMoves() {
		if m.S1() == decoded.S1() && m.S2() == decoded.S2() && m.Promo() == decoded.Promo() {
			return m, nil
		}
	}
	return nil, fmt.Errorf("move %q is not legal in %s", uci, pos.String())
}

// Apply decodes uci against pos and returns the position after it. pos is
// left untouched.
func Apply(pos *chess.Position, uci string) (*chess.Position, *chess.Move, error) {
	m, err := DecodeUCI(pos, uci)
	if err != nil {
		return nil, nil, err
	}
	return pos.Update(m), m, nil
}

func SAN(pos *chess.Position, m *chess.Move) string {
	return chess.AlgebraicNotation{}.Encode(pos, m)
}

func UCI(pos *chess.Position, m *chess.Move) string {
	return chess.UCINotation{}.Encode(pos, m)
}

// FEN renders pos in Forsyth-Edwards notation.
func FEN(pos *chess.Position) string {
	return pos.String()
}

func SideName(c chess.Color) string {
	if c == chess.White {
		return "White"
	}
	return "Black"
}

var pieceNames = map[chess.PieceType]string{
	chess.King:   "king",
	chess.Queen:  "queen",
	chess.Rook:   "rook",
	chess.Bishop: "bishop",
	chess.Knight: "knight",
	chess.Pawn:   "pawn",
}

func PieceName(t chess.PieceType) string {
	return pieceNames[t]
}

// StripAnnotation removes a trailing check or mate marker from a SAN move.
func StripAnnotation(san string) string {
	return strings.TrimRight(san, "+#")
}
