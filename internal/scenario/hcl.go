package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/pdrpinto/gridastar"
)

// hclScenario is the decoded shape of an HCL scenario file.
type hclScenario struct {
	Name     string     `hcl:"name,optional"`
	Rows     int        `hcl:"rows"`
	CellSize int        `hcl:"cell_size,optional"`
	Start    []int      `hcl:"start"`
	End      []int      `hcl:"end"`
	Barriers [][]int    `hcl:"barriers,optional"`
	Walls    []*hclWall `hcl:"wall,block"`
}

// hclWall is a straight run of barriers along one row or one column,
// from and to inclusive, with optional gaps.
type hclWall struct {
	Row  *int  `hcl:"row,optional"`
	Col  *int  `hcl:"col,optional"`
	From int   `hcl:"from"`
	To   int   `hcl:"to"`
	Gaps []int `hcl:"gaps,optional"`
}

var rowsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "rows", Required: true}},
}

func parseHCL(data []byte, filename string) (*Scenario, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	// rows is evaluated alone first since every other expression may refer to it
	content, _, diags := file.Body.PartialContent(rowsSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	var rows int
	if diags := gohcl.DecodeExpression(content.Attributes["rows"].Expr, nil, &rows); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode rows in %s: %w", filename, diags)
	}

	var raw hclScenario
	if diags := gohcl.DecodeBody(file.Body, evalContext(rows), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return raw.scenario(filename)
}

func evalContext(rows int) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"rows": cty.NumberIntVal(int64(rows)),
			"last": cty.NumberIntVal(int64(rows - 1)),
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"floor": stdlib.FloorFunc,
		},
	}
}

func (h *hclScenario) scenario(filename string) (*Scenario, error) {
	start, err := pair("start", h.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	end, err := pair("end", h.End)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	s := &Scenario{
		Name:     h.Name,
		Rows:     h.Rows,
		CellSize: h.CellSize,
		Start:    &start,
		End:      &end,
	}
	for _, b := range h.Barriers {
		pos, err := pair("barrier", b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		s.Barriers = append(s.Barriers, pos)
	}
	for i, w := range h.Walls {
		cells, err := w.cells()
		if err != nil {
			return nil, fmt.Errorf("%s: wall %d: %w", filename, i+1, err)
		}
		s.Barriers = append(s.Barriers, cells...)
	}
	return s, nil
}

func (w *hclWall) cells() ([]gridastar.Position, error) {
	if (w.Row == nil) == (w.Col == nil) {
		return nil, fmt.Errorf("%w: exactly one of row or col must be set", ErrInvalid)
	}
	if w.From > w.To {
		return nil, fmt.Errorf("%w: from %d is after to %d", ErrInvalid, w.From, w.To)
	}
	gaps := make(map[int]bool, len(w.Gaps))
	for _, g := range w.Gaps {
		gaps[g] = true
	}

	var cells []gridastar.Position
	for i := w.From; i <= w.To; i++ {
		if gaps[i] {
			continue
		}
		if w.Row != nil {
			cells = append(cells, gridastar.Position{Row: *w.Row, Col: i})
		} else {
			cells = append(cells, gridastar.Position{Row: i, Col: *w.Col})
		}
	}
	return cells, nil
}

func pair(what string, v []int) (gridastar.Position, error) {
	if len(v) != 2 {
		return gridastar.Position{}, fmt.Errorf("%w: %s must be [row, col], got %d values", ErrInvalid, what, len(v))
	}
	return gridastar.Position{Row: v[0], Col: v[1]}, nil
}
