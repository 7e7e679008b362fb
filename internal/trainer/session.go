// Package trainer runs the interactive quiz over a single tactic: it keeps
// the position in step with the puzzle's move list, checks each answer
// against the scripted move and plays the opponent's replies.
package trainer

import (
	"errors"
	"fmt"
	"io"

	"github.com/gmkornilov/tactics-trainer/internal/position"
	"github.com/gmkornilov/tactics-trainer/pkg/tactic"
	"github.com/notnil/chess"
)

var (
	// ErrCorruptPuzzle means a move from the puzzle data could not be
	// decoded or applied. The session cannot continue.
	ErrCorruptPuzzle    = errors.New("corrupt puzzle data")
	ErrSessionCompleted = errors.New("session already completed")
)

type State int

const (
	SettingUp State = iota
	AwaitingUserMove
	Completed
)

func (s State) String() string {
	switch s {
	case SettingUp:
		return "setting-up"
	case AwaitingUserMove:
		return "awaiting-user-move"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Score counts the solver's plies. Only the first attempt at a ply counts.
type Score struct {
	FirstTry int
	Plies    int
}

type Session struct {
	puzzle tactic.Puzzle
	out    io.Writer
	board  BoardRenderer

	state     State
	pos       *chess.Position
	remaining []string
	applied   int
	solver    chess.Color

	expected    *chess.Move
	expectedSAN string

	// missed is set once the pending ply was answered wrong or hinted.
	missed     bool
	wrongTries int
	score      Score
}

// NewSession plays the puzzle's setup move and leaves the session waiting
// for the solver's first answer.
func NewSession(p tactic.Puzzle, out io.Writer, board BoardRenderer) (*Session, error) {
	s := &Session{
		puzzle: p,
		out:    out,
		board:  board,
		state:  SettingUp,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPuzzle, err)
	}
	start, err := position.FromFEN(p.FEN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPuzzle, err)
	}
	s.pos = start
	s.remaining = append([]string(nil), p.Moves...)

	if _, err := s.playScripted(); err != nil {
		return nil, err
	}
	s.solver = s.pos.Turn()
	if err := s.awaitNext(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) State() State { return s.state }
func (s *Session) Position() *chess.Position { return s.pos }
func (s *Session) SolverSide() chess.Color { return s.solver }
func (s *Session) Puzzle() tactic.Puzzle { return s.puzzle }
func (s *Session) Score() Score { return s.score }
func (s *Session) AppliedMoves() int { return s.applied }
func (s *Session) PlyMissed() bool { return s.missed }

// Remaining returns the puzzle moves not applied yet.
func (s *Session) Remaining() []string {
	return append([]string(nil), s.remaining...)
}

// Expected returns the SAN of the move the solver has to find, or "" once
// the session is completed.
func (s *Session) Expected() string {
	if s.state != AwaitingUserMove {
		return ""
	}
	return s.expectedSAN
}

func (s *Session) Prompt() string {
	return fmt.Sprintf("%s to move, enter the best move, or '?' for help: ", position.SideName(s.pos.Turn()))
}

func (s *Session) Handle(cmd Command) error {
	if s.state != AwaitingUserMove {
		return ErrSessionCompleted
	}
	switch cmd.Kind {
	case ShowBoard:
		fmt.Fprint(s.out, s.board.Render(s.pos))
	case PrintFEN:
		fmt.Fprintln(s.out, position.FEN(s.pos))
	case Help:
		PrintHelp(s.out)
	case Hint:
		s.missed = true
		piece := s.pos.Board().Piece(s.expected.S1())
		fmt.Fprintf(s.out, "Hint: move the %s on %s.\n", position.PieceName(piece.Type()), s.expected.S1().String())
	case Reveal:
		return s.resolve(false)
	case Move:
		if MoveMatches(cmd.Text, s.expectedSAN) {
			return s.resolve(true)
		}
		s.missed = true
		s.wrongTries++
		if s.wrongTries > 1 {
			fmt.Fprintf(s.out, "%s is not the correct move (press enter to reveal the answer)\n", cmd.Text)
		} else {
			fmt.Fprintf(s.out, "%s is not the correct move\n", cmd.Text)
		}
	default:
		return fmt.Errorf("unknown command %v", cmd.Kind)
	}
	return nil
}

func (s *Session) resolve(correct bool) error {
	s.score.Plies++
	if correct && !s.missed {
		s.score.FirstTry++
	}
	prefix := "Correct! "
	if !correct {
		prefix = fmt.Sprintf("The correct move was %s. ", s.expectedSAN)
	}

	s.pos = s.pos.Update(s.expected)
	s.remaining = s.remaining[1:]
	s.applied++

	if len(s.remaining) == 0 {
		s.complete(prefix)
		return nil
	}
	mover := s.pos.Turn()
	reply, err := s.playScripted()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s%s responds with %s\n", prefix, position.SideName(mover), reply)
	if len(s.remaining) == 0 {
		s.complete(prefix)
		return nil
	}
	return s.awaitNext()
}

func (s *Session) complete(prefix string) {
	s.state = Completed
	s.expected = nil
	fmt.Fprintf(s.out, "%sCompleted this tactic.\n", prefix)
}

// playScripted applies the next puzzle move unconditionally and returns
// its SAN.
func (s *Session) playScripted() (string, error) {
	uci := s.remaining[0]
	next, m, err := position.Apply(s.pos, uci)
	if err != nil {
		return "", fmt.Errorf("%w: move %d of puzzle %q: %v", ErrCorruptPuzzle, s.applied, s.puzzle.ID, err)
	}
	san := position.SAN(s.pos, m)
	s.pos = next
	s.remaining = s.remaining[1:]
	s.applied++
	return san, nil
}

func (s *Session) awaitNext() error {
	m, err := position.DecodeUCI(s.pos, s.remaining[0])
	if err != nil {
		return fmt.Errorf("%w: move %d of puzzle %q: %v", ErrCorruptPuzzle, s.applied, s.puzzle.ID, err)
	}
	s.state = AwaitingUserMove
	s.expected = m
	s.expectedSAN = position.SAN(s.pos, m)
	s.missed = false
	s.wrongTries = 0
	return nil
}
