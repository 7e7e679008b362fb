package trainer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrInputClosed = errors.New("input closed before the tactic was completed")

// Run shows the board and reads commands from in, one per line, until the
// tactic is completed.
func (s *Session) Run(in io.Reader) error {
	r := bufio.NewReader(in)
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, s.board.Render(s.pos))
	for s.state == AwaitingUserMove {
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, s.Prompt())
		line, err := readLine(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		if err := s.Handle(ParseCommand(line)); err != nil {
			return err
		}
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
