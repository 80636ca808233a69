package commands

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar/internal/scenario"
	"github.com/pdrpinto/gridastar/internal/vizweb"
)

func newServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "Serve the step-by-step HTTP stepper",
		Long: `Start an HTTP server holding one grid.

  GET  /init    random clustered walls (rows, clusters, steps, density, seed)
  POST /edit    primary or secondary click at pixel x,y
  POST /start   search the edited grid
  GET  /next    advance the search by one expansion
  POST /clear   start over with an empty grid
  GET  /state   current grid without stepping
  GET  /        current grid as text
  GET  /metrics Prometheus metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			cfg := vizweb.DefaultConfig()
			cfg.Rows = a.cfg.Grid.Rows
			cfg.CellSize = a.cfg.Grid.CellSize
			cfg.Density = a.cfg.Serve.Density

			srv, err := vizweb.New(cfg, a.tel)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				sc, err := scenario.Load(args[0])
				if err != nil {
					return err
				}
				if err := srv.Load(sc); err != nil {
					return err
				}
			}

			addr := a.cfg.Serve.ListenAddress
			if cmd.Flags().Changed("listen") {
				addr = listen
			}
			return srv.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", ":8080", "listen address")

	return cmd
}
