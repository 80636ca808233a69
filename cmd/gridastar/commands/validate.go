package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar/internal/scenario"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Check scenario files without searching them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed int
			for _, path := range args {
				sc, err := scenario.Load(path)
				if jsonOutput {
					entry := map[string]any{"path": path, "valid": err == nil}
					if err != nil {
						entry["error"] = err.Error()
					} else {
						entry["rows"] = sc.Rows
						entry["barriers"] = len(sc.Barriers)
					}
					if encErr := json.NewEncoder(out).Encode(entry); encErr != nil {
						return encErr
					}
				} else if err != nil {
					fmt.Fprintf(out, "%s: %v\n", path, err)
				} else {
					fmt.Fprintf(out, "%s: ok (%dx%d, %d barriers, %s -> %s)\n",
						path, sc.Rows, sc.Rows, len(sc.Barriers), sc.Start, sc.End)
				}
				if err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios are invalid", failed, len(args))
			}
			return nil
		},
	}
}
