package scenario

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/gridastar"
)

// Layout glyphs. Line index is the row, character index the column.
const (
	glyphEmpty   = '.'
	glyphBarrier = '#'
	glyphStart   = 'S'
	glyphEnd     = 'E'
)

func parseLayout(text string) (*Scenario, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalid)
	}

	s := &Scenario{Rows: len(lines)}
	for r, line := range lines {
		if len(line) != len(lines) {
			return nil, fmt.Errorf("%w: layout line %d has %d cells, want %d", ErrInvalid, r+1, len(line), len(lines))
		}
		for c := 0; c < len(line); c++ {
			pos := gridastar.Position{Row: r, Col: c}
			switch line[c] {
			case glyphEmpty:
			case glyphBarrier:
				s.Barriers = append(s.Barriers, pos)
			case glyphStart:
				if s.Start != nil {
					return nil, fmt.Errorf("%w: second start at %s", ErrInvalid, pos)
				}
				s.Start = &pos
			case glyphEnd:
				if s.End != nil {
					return nil, fmt.Errorf("%w: second end at %s", ErrInvalid, pos)
				}
				s.End = &pos
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %s", ErrInvalid, line[c], pos)
			}
		}
	}
	return s, nil
}
