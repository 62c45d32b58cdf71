package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/automoto/stompgrid/physics"
)

// ErrInvalidScript is wrapped by every script parse error.
var ErrInvalidScript = errors.New("invalid input script")

// InputSource supplies the control state for each tick. ok is false once the
// source is exhausted.
type InputSource interface {
	Next() (in physics.Input, ok bool)
}

// IdleInput never presses anything and never runs out.
type IdleInput struct{}

func (IdleInput) Next() (physics.Input, bool) { return physics.Input{}, true }

type scriptStep struct {
	ticks int
	in    physics.Input
}

// ScriptInput replays a fixed sequence of held inputs.
//
// Each line is "<ticks> <keys>", where keys is any combination of L, R and J
// (left, right, jump) or "-" for nothing held. Blank lines and text after '#'
// are ignored.
//
//	30 R    # walk right for half a second
//	1  RJ
//	60 -
type ScriptInput struct {
	steps []scriptStep
	step  int
	used  int
}

// ParseScript reads a script from r.
func ParseScript(r io.Reader) (*ScriptInput, error) {
	s := &ScriptInput{}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"<ticks> <keys>\"", ErrInvalidScript, n)
		}

		ticks, err := strconv.Atoi(fields[0])
		if err != nil || ticks <= 0 {
			return nil, fmt.Errorf("%w: line %d: bad tick count %q", ErrInvalidScript, n, fields[0])
		}
		in, err := parseKeys(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidScript, n, err)
		}
		s.steps = append(s.steps, scriptStep{ticks: ticks, in: in})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	return s, nil
}

func parseKeys(keys string) (physics.Input, error) {
	var in physics.Input
	if keys == "-" {
		return in, nil
	}
	for _, k := range keys {
		switch k {
		case 'L', 'l':
			in.Left = true
		case 'R', 'r':
			in.Right = true
		case 'J', 'j':
			in.Jump = true
		default:
			return in, fmt.Errorf("unknown key %q", k)
		}
	}
	return in, nil
}

// Next returns the input held on the current tick.
func (s *ScriptInput) Next() (physics.Input, bool) {
	for s.step < len(s.steps) && s.used >= s.steps[s.step].ticks {
		s.step++
		s.used = 0
	}
	if s.step >= len(s.steps) {
		return physics.Input{}, false
	}
	s.used++
	return s.steps[s.step].in, true
}

// Len is the total number of ticks the script covers.
func (s *ScriptInput) Len() int {
	total := 0
	for _, st := range s.steps {
		total += st.ticks
	}
	return total
}
