// Package vizweb serves a grid search over HTTP one step at a time.
package vizweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/render"
	"github.com/pdrpinto/gridastar/internal/scenario"
	"github.com/pdrpinto/gridastar/internal/session"
	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// Config holds the defaults for /init.
type Config struct {
	Rows     int
	CellSize int
	Density  float64
	Clusters int
	Steps    int
}

// DefaultConfig is an 800px board: 50 rows of 16px cells.
func DefaultConfig() Config {
	return Config{Rows: 50, CellSize: 16, Density: 0.25, Clusters: 8, Steps: 200}
}

// Upper bounds for the /init wall walk.
const (
	maxClusters = 256
	maxSteps    = 10000
)

// Server holds one session and the stepper driving its current search.
type Server struct {
	mu       sync.Mutex
	cfg      Config
	tel      *telemetry.Telemetry
	logger   *telemetry.Logger
	renderer *render.Renderer

	session *session.Session
	stepper *gridastar.Stepper
	last    gridastar.StepSnapshot
}

// New returns a server with an empty grid of cfg.Rows rows.
func New(cfg Config, tel *telemetry.Telemetry) (*Server, error) {
	if tel == nil {
		tel = telemetry.Nop()
	}
	sess, err := session.New(cfg.Rows, cfg.CellSize, tel)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		tel:      tel,
		logger:   tel.Logger.NewComponentLogger("vizweb"),
		renderer: render.New(nil, render.Options{}),
		session:  sess,
	}, nil
}

// Load replaces the grid with sc and starts stepping it.
func (s *Server) Load(sc *scenario.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Load(sc); err != nil {
		return err
	}
	return s.startLocked()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleFrame)
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/next", s.handleNext)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/edit", s.handleEdit)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/state", s.handleState)
	metricsPath := s.tel.Config.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	mux.Handle(metricsPath, s.tel.Metrics.Handler())
	return mux
}

// Serve listens on addr, falling back to a free loopback port when addr is
// taken, and shuts down when ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.logger.Warn().Err(err).Str("addr", addr).Msg("Address unavailable, using a free port")
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return err
		}
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Serving grid stepper")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// snapshot is the JSON view of the grid after a step.
type snapshot struct {
	Session  string               `json:"session"`
	Step     int                  `json:"step"`
	Rows     int                  `json:"rows"`
	CellSize int                  `json:"cell_size"`
	Walls    []gridastar.Position `json:"walls"`
	Frontier []gridastar.Position `json:"frontier,omitempty"`
	Visited  []gridastar.Position `json:"visited,omitempty"`
	Current  gridastar.Position   `json:"current"`
	Start    *gridastar.Position  `json:"start,omitempty"`
	End      *gridastar.Position  `json:"end,omitempty"`
	Running  bool                 `json:"running"`
	Done     bool                 `json:"done"`
	Outcome  gridastar.Outcome    `json:"outcome"`
	Path     []gridastar.Position `json:"path,omitempty"`
	Expanded int                  `json:"expanded"`
}

func (s *Server) snapshotLocked() snapshot {
	grid := s.session.Grid()
	snap := snapshot{
		Session:  s.session.ID,
		Step:     s.last.StepIndex,
		Rows:     grid.Rows(),
		CellSize: grid.CellSize(),
		Walls:    []gridastar.Position{},
		Current:  s.last.Current,
		Running:  s.stepper != nil && !s.stepper.Done(),
		Done:     s.last.Done,
		Outcome:  s.last.Outcome,
		Path:     s.last.Path,
		Expanded: s.last.Expanded,
	}
	snap.Start, snap.End = s.session.Endpoints()
	grid.Each(func(c *gridastar.Cell) {
		pos := c.Position()
		switch c.State() {
		case gridastar.Barrier:
			snap.Walls = append(snap.Walls, pos)
		case gridastar.Frontier:
			snap.Frontier = append(snap.Frontier, pos)
		case gridastar.Visited:
			snap.Visited = append(snap.Visited, pos)
		}
	})
	return snap
}

// startLocked drops any running search and prepares a new one.
func (s *Server) startLocked() error {
	s.stopLocked()
	stepper, err := s.session.NewStepper()
	if err != nil {
		return err
	}
	s.stepper = stepper
	s.last = gridastar.StepSnapshot{}
	return nil
}

// stopLocked cancels an unfinished search so its metrics are closed out.
func (s *Server) stopLocked() {
	if s.stepper != nil && !s.stepper.Done() {
		s.stepper.Cancel()
		s.session.Complete(s.stepper.Result())
	}
	s.stepper = nil
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, clusters, steps, density := s.cfg.Rows, s.cfg.Clusters, s.cfg.Steps, s.cfg.Density
	if v, err := strconv.Atoi(q.Get("rows")); err == nil && v > 4 {
		rows = v
	}
	if v, err := strconv.Atoi(q.Get("clusters")); err == nil && v > 0 {
		clusters = min(v, maxClusters)
	}
	if v, err := strconv.Atoi(q.Get("steps")); err == nil && v > 0 {
		steps = min(v, maxSteps)
	}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		density = v
	}
	seed := time.Now().UnixNano()
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		seed = v
	}

	rng := rand.New(rand.NewSource(seed))
	start, end := randomEndpoints(rng, rows)
	sc := &scenario.Scenario{
		Name:     fmt.Sprintf("random-%d", seed),
		Rows:     rows,
		CellSize: s.cfg.CellSize,
		Start:    &start,
		End:      &end,
		Barriers: genWalls(rng, rows, clusters, steps, density, start, end),
	}
	if err := s.Load(sc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	id := s.session.ID
	s.mu.Unlock()
	writeJSON(w, map[string]any{
		"ok":       true,
		"session":  id,
		"rows":     rows,
		"seed":     seed,
		"clusters": clusters,
		"steps":    steps,
		"walls":    len(sc.Barriers),
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepper == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	wasDone := s.stepper.Done()
	s.last = s.stepper.Step()
	if s.last.Done && !wasDone {
		s.session.Complete(s.stepper.Result())
	}
	writeJSON(w, s.snapshotLocked())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startLocked(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrNotReady) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, s.snapshotLocked())
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be integers", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.session.Grid().PositionAt(x, y)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// edits invalidate the running search
	s.stopLocked()

	var state gridastar.CellState
	switch button := q.Get("button"); button {
	case "", "primary", "left":
		state, err = s.session.Primary(pos)
	case "secondary", "right":
		err = s.session.Secondary(pos)
		state = gridastar.Empty
	default:
		http.Error(w, fmt.Sprintf("unknown button %q", button), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Debug().Stringer("cell", pos).Stringer("state", state).Msg("Cell edited")
	writeJSON(w, map[string]any{"cell": pos, "state": state.String(), "ready": s.session.Ready()})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if err := s.session.Clear(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.last = gridastar.StepSnapshot{}
	writeJSON(w, s.snapshotLocked())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.snapshotLocked())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	frame := s.renderer.Frame(s.session.Grid())
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(frame))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
