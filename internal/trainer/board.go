package trainer

import (
	"strings"

	"github.com/fatih/color"
	"github.com/notnil/chess"
)

const fileLabels = "     a b c d e f g h"

var pieceGlyphs = map[chess.PieceType]string{
	chess.King:   "K",
	chess.Queen:  "Q",
	chess.Rook:   "R",
	chess.Bishop: "B",
	chess.Knight: "N",
	chess.Pawn:   "▲",
}

// BoardRenderer draws a position as a text grid, white at the bottom.
type BoardRenderer struct {
	white       *color.Color
	black       *color.Color
	lightSquare *color.Color
	darkSquare  *color.Color
}

func NewBoardRenderer(colorize bool) BoardRenderer {
	r := BoardRenderer{
		white:       color.New(color.FgBlue),
		black:       color.New(color.FgRed),
		lightSquare: color.New(color.FgWhite),
		darkSquare:  color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{r.white, r.black, r.lightSquare, r.darkSquare} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r BoardRenderer) Render(pos *chess.Position) string {
	board := pos.Board()
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		rank := 7 - row
		sb.WriteString("  ")
		sb.WriteByte(byte('1' + rank))
		sb.WriteString(" ")
		for file := 0; file < 8; file++ {
			sq := chess.Square(file + 8*rank)
			sb.WriteString(" ")
			sb.WriteString(r.square(board.Piece(sq), (row+file)%2 == 0))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fileLabels)
	sb.WriteString("\n")
	return sb.String()
}

func (r BoardRenderer) square(p chess.Piece, light bool) string {
	if p == chess.NoPiece {
		if light {
			return r.lightSquare.Sprint("·")
		}
		return r.darkSquare.Sprint("·")
	}
	glyph := pieceGlyphs[p.Type()]
	if p.Color() == chess.White {
		return r.white.Sprint(glyph)
	}
	return r.black.Sprint(glyph)
}
