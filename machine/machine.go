// SPDX-License-Identifier: MIT

// Package machine parses factory machine descriptions and turns them into
// the problems solved by this module.
//
// One machine per line:
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
// The bracketed diagram lists indicator lights ('#' on, '.' off), each
// parenthesized group lists the counters (and lights) one button is wired
// to, and the braced list holds the counter targets. The diagram and the
// target list must have the same length.
//
// Two questions are asked of every machine:
//   - MinToggles: fewest button presses whose light toggles produce the
//     diagram (each button pressed at most once, presses XOR together).
//   - Equations: the linear system whose minimal non-negative integer
//     solution is the fewest presses that bring every counter to its target.
package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/katalvlaran/presslin/gaussjordan"
)

// Limits of the toggle enumeration.
const (
	MaxLights  = 63
	MaxButtons = 24
)

var (
	// ErrMalformedInput wraps every parse failure; the message carries the line number.
	ErrMalformedInput = errors.New("machine: malformed input")

	// ErrNoToggleSolution is returned when no button subset produces the diagram.
	ErrNoToggleSolution = errors.New("machine: diagram unreachable by toggles")

	// ErrToggleLimit is returned when lights or buttons exceed MaxLights/MaxButtons.
	ErrToggleLimit = errors.New("machine: too many lights or buttons for toggle search")
)

// Machine is one parsed input line.
type Machine struct {
	// Line is the 1-based source line (0 when built by hand).
	Line int

	// Lights holds the desired indicator states, index i ↔ diagram position i.
	Lights []bool

	// Buttons lists, per button, the counter indices it is wired to.
	Buttons [][]int

	// Targets are the desired counter values.
	Targets []int
}

// Entry is one non-blank input line: either a parsed Machine or the reason
// it could not be parsed.
type Entry struct {
	Line    int
	Machine Machine
	Err     error
}

// ParseEach parses every non-blank line independently. A malformed line
// yields an Entry with Err set (wrapping ErrMalformedInput) and does not stop
// the scan; the returned error reports only reader failures.
func ParseEach(r io.Reader) ([]Entry, error) {
	var (
		out  []Entry
		line int
		sc   = bufio.NewScanner(r)
	)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		m, err := ParseLine(text)
		if err != nil {
			out = append(out, Entry{Line: line, Err: fmt.Errorf("line %d: %w", line, err)})
			continue
		}
		m.Line = line
		out = append(out, Entry{Line: line, Machine: m})
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("line %d: %w: %w", line+1, ErrMalformedInput, err)
	}

	return out, nil
}

// Parse reads one machine per non-blank line and stops at the first
// malformed one.
func Parse(r io.Reader) ([]Machine, error) {
	entries, err := ParseEach(r)
	if err != nil {
		return nil, err
	}
	out := make([]Machine, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			return nil, e.Err
		}
		out = append(out, e.Machine)
	}

	return out, nil
}

// ParseLine parses a single machine description.
func ParseLine(s string) (Machine, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Machine{}, fmt.Errorf("%w: want diagram, buttons and targets, got %d fields", ErrMalformedInput, len(fields))
	}

	var m Machine
	var err error
	if m.Lights, err = parseDiagram(fields[0]); err != nil {
		return Machine{}, err
	}
	if m.Targets, err = parseInts(fields[len(fields)-1], '{', '}'); err != nil {
		return Machine{}, err
	}
	if len(m.Targets) != len(m.Lights) {
		return Machine{}, fmt.Errorf("%w: %d lights but %d targets", ErrMalformedInput, len(m.Lights), len(m.Targets))
	}
	for i, t := range m.Targets {
		if t < 0 {
			return Machine{}, fmt.Errorf("%w: target %d is negative (%d)", ErrMalformedInput, i, t)
		}
	}

	m.Buttons = make([][]int, 0, len(fields)-2)
	for _, f := range fields[1 : len(fields)-1] {
		b, err := parseInts(f, '(', ')')
		if err != nil {
			return Machine{}, err
		}
		for _, c := range b {
			if c < 0 || c >= len(m.Targets) {
				return Machine{}, fmt.Errorf("%w: button %s wires counter %d of %d", ErrMalformedInput, f, c, len(m.Targets))
			}
		}
		m.Buttons = append(m.Buttons, b)
	}

	return m, nil
}

func parseDiagram(f string) ([]bool, error) {
	if len(f) < 3 || f[0] != '[' || f[len(f)-1] != ']' {
		return nil, fmt.Errorf("%w: bad diagram %q", ErrMalformedInput, f)
	}
	body := f[1 : len(f)-1]
	out := make([]bool, len(body))
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '#':
			out[i] = true
		case '.':
		default:
			return nil, fmt.Errorf("%w: bad diagram %q", ErrMalformedInput, f)
		}
	}

	return out, nil
}

// parseInts parses "<open>a,b,c<close>" into a non-empty int list.
func parseInts(f string, open, close byte) ([]int, error) {
	if len(f) < 3 || f[0] != open || f[len(f)-1] != close {
		return nil, fmt.Errorf("%w: bad list %q", ErrMalformedInput, f)
	}
	parts := strings.Split(f[1:len(f)-1], ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad list %q: %w", ErrMalformedInput, f, err)
		}
		out[i] = v
	}

	return out, nil
}

// Equations returns the counter system: one row per counter, one column per
// button, A[i][j] = 1 when button j increments counter i, b = Targets.
func (m Machine) Equations() (*gaussjordan.System, error) {
	rows := make([][]float64, len(m.Targets))
	for i := range rows {
		rows[i] = make([]float64, len(m.Buttons))
	}
	for j, b := range m.Buttons {
		for _, c := range b {
			rows[c][j] = 1
		}
	}
	target := make([]float64, len(m.Targets))
	for i, t := range m.Targets {
		target[i] = float64(t)
	}

	return gaussjordan.NewSystem(rows, target)
}

// MinToggles returns the fewest buttons whose combined toggles turn on exactly
// the lit diagram positions. An all-dark diagram needs 0 presses.
func (m Machine) MinToggles() (int, error) {
	if len(m.Lights) > MaxLights || len(m.Buttons) > MaxButtons {
		return 0, fmt.Errorf("%d lights, %d buttons: %w", len(m.Lights), len(m.Buttons), ErrToggleLimit)
	}
	var want uint64
	for i, on := range m.Lights {
		if on {
			want |= 1 << uint(i)
		}
	}
	masks := make([]uint64, len(m.Buttons))
	for j, b := range m.Buttons {
		for _, c := range b {
			masks[j] ^= 1 << uint(c)
		}
	}

	best := len(m.Buttons) + 1
	var (
		subset uint32
		state  uint64
		size   int
		j      int
	)
	for subset = 0; subset < 1<<uint(len(masks)); subset++ {
		size = bits.OnesCount32(subset)
		if size >= best {
			continue
		}
		state = 0
		for j = range masks {
			if subset&(1<<uint(j)) != 0 {
				state ^= masks[j]
			}
		}
		if state == want {
			best = size
		}
	}
	if best > len(m.Buttons) {
		return 0, ErrNoToggleSolution
	}

	return best, nil
}
