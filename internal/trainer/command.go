package trainer

// CommandKind is the closed set of things a prompt line can mean.
type CommandKind int

const (
	ShowBoard CommandKind = iota
	PrintFEN
	Help
	Hint
	Reveal
	Move
)

func (k CommandKind) String() string {
	switch k {
	case ShowBoard:
		return "show-board"
	case PrintFEN:
		return "print-fen"
	case Help:
		return "help"
	case Hint:
		return "hint"
	case Reveal:
		return "reveal"
	case Move:
		return "move"
	}
	return "unknown"
}

// Command is one classified line of user input. Text is only set for Move.
type Command struct {
	Kind CommandKind
	Text string
}

// ParseCommand classifies a line with its terminator already removed.
// Keywords are case-sensitive and the move text is kept verbatim.
func ParseCommand(line string) Command {
	switch line {
	case "s", "show":
		return Command{Kind: ShowBoard}
	case "f", "fen":
		return Command{Kind: PrintFEN}
	case "?", "help":
		return Command{Kind: Help}
	case "h", "hint":
		return Command{Kind: Hint}
	case "":
		return Command{Kind: Reveal}
	}
	return Command{Kind: Move, Text: line}
}
