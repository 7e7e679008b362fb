package trainer

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

var helpRows = [][]string{
	{"Any move, ex. Qxd7", "Attempt to solve the tactic with the given move"},
	{"No input", "Reveal the answer, and continue the tactic if there are more moves."},
	{"'h' or 'hint'", "Show which piece to move"},
	{"'f' or 'fen'", "Print out the current board, in FEN notation"},
	{"'s' or 'show'", "Show the current board."},
	{"'?' or 'help'", "Display this help"},
}

func PrintHelp(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.AppendBulk(helpRows)
	table.Render()
}
