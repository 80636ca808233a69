// Package render draws grids as text frames, one glyph per cell.
package render

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"

	"github.com/pdrpinto/gridastar"
)

// clearScreen homes the cursor and erases the terminal.
const clearScreen = "\x1b[H\x1b[2J"

var glyphs = map[gridastar.CellState]byte{
	gridastar.Empty:    '.',
	gridastar.Start:    'S',
	gridastar.End:      'E',
	gridastar.Barrier:  '#',
	gridastar.Frontier: 'o',
	gridastar.Visited:  'x',
	gridastar.Path:     '*',
}

// styles used when Options.Color is set.
var styles = map[gridastar.CellState]color.Style{
	gridastar.Start:    color.New(color.FgYellow, color.OpBold),
	gridastar.End:      color.New(color.FgCyan, color.OpBold),
	gridastar.Barrier:  color.New(color.FgGray),
	gridastar.Frontier: color.New(color.FgGreen),
	gridastar.Visited:  color.New(color.FgRed),
	gridastar.Path:     color.New(color.FgMagenta, color.OpBold),
}

// Glyph returns the character drawn for state.
func Glyph(state gridastar.CellState) byte {
	if g, ok := glyphs[state]; ok {
		return g
	}
	return '?'
}

// Options configures a Renderer.
type Options struct {
	// Delay pauses after every frame so a search can be watched.
	Delay time.Duration
	// Clear erases the terminal before every frame.
	Clear bool
	// Color styles glyphs with ANSI colours.
	Color bool
}

// Renderer writes frames to an io.Writer. It is safe for concurrent use.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	opts   Options
	frames int
	err    error
}

// New returns a renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	return &Renderer{out: out, opts: opts}
}

// Frame returns grid as text: one line per row, terminated by a newline.
func (r *Renderer) Frame(grid *gridastar.Grid) string {
	var b strings.Builder
	b.Grow(grid.Rows() * (grid.Rows() + 1))
	grid.Each(func(c *gridastar.Cell) {
		glyph := string(Glyph(c.State()))
		if style, ok := styles[c.State()]; ok && r.opts.Color {
			glyph = style.Sprint(glyph)
		}
		b.WriteString(glyph)
		if c.Col() == grid.Rows()-1 {
			b.WriteByte('\n')
		}
	})
	return b.String()
}

// Draw writes one frame of grid, then waits out the configured delay.
func (r *Renderer) Draw(grid *gridastar.Grid) error {
	frame := r.Frame(grid)

	r.mu.Lock()
	if r.opts.Clear {
		frame = clearScreen + frame
	} else if r.frames > 0 {
		frame = "\n" + frame
	}
	r.frames++
	_, err := io.WriteString(r.out, frame)
	if err != nil && r.err == nil {
		r.err = err
	}
	r.mu.Unlock()

	if r.opts.Delay > 0 {
		time.Sleep(r.opts.Delay)
	}
	return err
}

// Observer returns a step observer drawing grid on every call. Write errors
// are kept for Err since observers cannot report them.
func (r *Renderer) Observer(grid *gridastar.Grid) gridastar.StepObserver {
	return func() { _ = r.Draw(grid) }
}

// Frames returns how many frames were drawn.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
