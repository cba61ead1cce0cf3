package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"droidlife/pkg/core"
	"droidlife/pkg/sims/life"
)

// ErrInvalidPattern is returned for malformed RLE input.
var ErrInvalidPattern = errors.New("pattern: invalid RLE")

// maxExtent bounds run counts, header dimensions and cell coordinates.
const maxExtent = 1 << 16

// maxCells bounds the number of live cells a single pattern may declare.
var maxCells = 1 << 20

// ParseRLE decodes a pattern in RLE format. "#N" lines set the name, the
// optional "x = .., y = .., rule = .." header sets bounds and rule, and the
// body uses b (dead), o (alive), $ (end of row) and ! (end of pattern), each
// optionally prefixed with a run count.
func ParseRLE(r io.Reader) (Pattern, error) {
	var (
		p       Pattern
		cells   []core.Point
		x, y    int
		run     int
		done    bool
		lineNo  int
		hdrW    int
		hdrH    int
		scanner = bufio.NewScanner(r)
	)

	for !done && scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if len(line) > 2 && line[1] == 'N' {
				p.Name = strings.TrimSpace(line[2:])
			}
			continue
		}
		if line[0] == 'x' && strings.Contains(line, "=") && len(cells) == 0 && x == 0 && y == 0 {
			w, h, rules, hasRules, err := parseHeader(line)
			if err != nil {
				return Pattern{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			hdrW, hdrH = w, h
			p.rules, p.hasRules = rules, hasRules
			continue
		}

		for _, c := range line {
			switch {
			case c >= '0' && c <= '9':
				run = run*10 + int(c-'0')
				if run > maxExtent {
					return Pattern{}, fmt.Errorf("%w: line %d: run count exceeds %d", ErrInvalidPattern, lineNo, maxExtent)
				}
				continue
			case c == ' ' || c == '\t':
				continue
			}
			n := run
			if n == 0 {
				n = 1
			}
			run = 0
			switch c {
			case 'b', '.', 'o', 'A':
				if x+n > maxExtent {
					return Pattern{}, fmt.Errorf("%w: line %d: row wider than %d", ErrInvalidPattern, lineNo, maxExtent)
				}
			case '$':
				if y+n > maxExtent {
					return Pattern{}, fmt.Errorf("%w: line %d: more than %d rows", ErrInvalidPattern, lineNo, maxExtent)
				}
			}
			switch c {
			case 'b', '.':
				x += n
			case 'o', 'A':
				if len(cells)+n > maxCells {
					return Pattern{}, fmt.Errorf("%w: line %d: more than %d live cells", ErrInvalidPattern, lineNo, maxCells)
				}
				for i := 0; i < n; i++ {
					cells = append(cells, core.Point{X: x + i, Y: y})
				}
				x += n
			case '$':
				y += n
				x = 0
			case '!':
				done = true
			default:
				return Pattern{}, fmt.Errorf("%w: line %d: unexpected %q", ErrInvalidPattern, lineNo, c)
			}
			if done {
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Pattern{}, err
	}
	if run != 0 {
		return Pattern{}, fmt.Errorf("%w: dangling run count %d", ErrInvalidPattern, run)
	}
	if !done && len(cells) == 0 {
		return Pattern{}, fmt.Errorf("%w: no cells and no terminating '!'", ErrInvalidPattern)
	}

	out := New(p.Name, cells)
	out.rules, out.hasRules = p.rules, p.hasRules
	if hdrW > out.Width {
		out.Width = hdrW
	}
	if hdrH > out.Height {
		out.Height = hdrH
	}
	return out, nil
}

// MustParseRLE is like ParseRLE but panics on error. It is intended for
// pattern literals.
func MustParseRLE(name, body string) Pattern {
	p, err := ParseRLE(strings.NewReader(body))
	if err != nil {
		panic(fmt.Sprintf("pattern %s: %v", name, err))
	}
	p.Name = name
	return p
}

func parseHeader(line string) (w, h int, rules life.RuleSet, hasRules bool, err error) {
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return 0, 0, rules, false, fmt.Errorf("%w: header field %q", ErrInvalidPattern, field)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "x", "y":
			n, convErr := strconv.Atoi(value)
			if convErr != nil || n < 0 || n > maxExtent {
				return 0, 0, rules, false, fmt.Errorf("%w: header %s = %q", ErrInvalidPattern, key, value)
			}
			if key == "x" {
				w = n
			} else {
				h = n
			}
		case "rule":
			rules, err = life.ParseRuleSet(value)
			if err != nil {
				return 0, 0, rules, false, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
			}
			hasRules = true
		}
	}
	return w, h, rules, hasRules, nil
}
