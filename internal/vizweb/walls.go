package vizweb

import (
	"math/rand"

	"github.com/pdrpinto/gridastar"
)

var walkDirs = []gridastar.Position{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}

// genWalls scatters clustered walls by random walks. start and end never become walls.
func genWalls(r *rand.Rand, rows, clusters, steps int, density float64, start, end gridastar.Position) []gridastar.Position {
	seen := map[gridastar.Position]bool{}
	var walls []gridastar.Position
	for c := 0; c < clusters; c++ {
		p := gridastar.Position{Row: r.Intn(rows), Col: r.Intn(rows)}
		for s := 0; s < steps; s++ {
			if r.Float64() < density && p != start && p != end && !seen[p] {
				seen[p] = true
				walls = append(walls, p)
			}
			d := walkDirs[r.Intn(len(walkDirs))]
			np := gridastar.Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if np.Row >= 0 && np.Row < rows && np.Col >= 0 && np.Col < rows {
				p = np
			}
		}
	}
	return walls
}

// randomEndpoints picks two distinct cells.
func randomEndpoints(r *rand.Rand, rows int) (start, end gridastar.Position) {
	for {
		start = gridastar.Position{Row: r.Intn(rows), Col: r.Intn(rows)}
		end = gridastar.Position{Row: r.Intn(rows), Col: r.Intn(rows)}
		if start != end {
			return start, end
		}
	}
}
