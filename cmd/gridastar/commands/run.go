package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/render"
	"github.com/pdrpinto/gridastar/internal/scenario"
	"github.com/pdrpinto/gridastar/internal/session"
)

func newRunCommand() *cobra.Command {
	var (
		watch    bool
		noRender bool
		color    bool
		delay    time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Search a scenario file and print the path",
		Long: `Load a scenario, run A* from its start to its end and print the outcome.

Unless --no-render is given every expansion and every revealed path cell is
drawn to the terminal. With --watch the search is repeated whenever the
scenario file changes.`,
		Example: `  # Watch the search on an ASCII layout
  gridastar run maze.txt --delay 20ms

  # Only print the result
  gridastar run maze.hcl --no-render --json

  # Re-run on every save
  gridastar run maze.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			logger := a.tel.Logger.NewComponentLogger("run")

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			sess, err := session.FromScenario(sc, a.tel)
			if err != nil {
				return err
			}

			opts := render.Options{Delay: a.cfg.Render.Delay, Clear: a.cfg.Render.Clear, Color: color}
			if cmd.Flags().Changed("delay") {
				opts.Delay = delay
			}
			out := cmd.OutOrStdout()
			renderer := render.New(out, opts)
			drawing := a.cfg.Render.Enabled && !noRender

			runOnce := func(ctx context.Context) error {
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}
				var observer gridastar.StepObserver
				if drawing {
					observer = renderer.Observer(sess.Grid())
				}
				result, err := sess.Run(ctx, observer)
				if err != nil {
					return err
				}
				if drawing {
					if err := renderer.Draw(sess.Grid()); err != nil {
						return err
					}
				}
				return printResult(out, sc.Name, sess.ID, result)
			}

			if err := runOnce(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			w := scenario.NewWatcher(args[0], logger.Zerolog())
			return w.Run(cmd.Context(), func(reloaded *scenario.Scenario) {
				if err := sess.Load(reloaded); err != nil {
					logger.Error().Err(err).Msg("Failed to load scenario")
					return
				}
				sc = reloaded
				if err := runOnce(cmd.Context()); err != nil {
					logger.Error().Err(err).Msg("Search failed")
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run when the scenario file changes")
	cmd.Flags().BoolVar(&noRender, "no-render", false, "do not draw the grid while searching")
	cmd.Flags().BoolVar(&color, "color", false, "colour the drawn grid")
	cmd.Flags().DurationVarP(&delay, "delay", "d", 0, "pause after every drawn frame")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "cancel the search after this long")

	return cmd
}

type resultOutput struct {
	Scenario string               `json:"scenario"`
	Session  string               `json:"session"`
	Outcome  gridastar.Outcome    `json:"outcome"`
	Cost     int                  `json:"cost"`
	Expanded int                  `json:"expanded"`
	Path     []gridastar.Position `json:"path"`
}

func printResult(out io.Writer, name, sessionID string, result gridastar.Result) error {
	if jsonOutput {
		return json.NewEncoder(out).Encode(resultOutput{
			Scenario: name,
			Session:  sessionID,
			Outcome:  result.Outcome,
			Cost:     result.TotalCost,
			Expanded: result.ExpandedNodes,
			Path:     result.Path,
		})
	}

	switch result.Outcome {
	case gridastar.OutcomeFound:
		_, err := fmt.Fprintf(out, "%s: path of cost %d after %d expansions\n%v\n",
			name, result.TotalCost, result.ExpandedNodes, result.Path)
		return err
	default:
		_, err := fmt.Fprintf(out, "%s: %s after %d expansions\n", name, result.Outcome, result.ExpandedNodes)
		return err
	}
}
