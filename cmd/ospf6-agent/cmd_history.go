package main

import (
	"encoding/json"
	"time"

	"ospf6-agent/internal/domain/errors"

	"github.com/spf13/cobra"
)

// runView is the JSON shape of one history row
type runView struct {
	StartedAt time.Time `json:"started_at"`
	Scope     string    `json:"scope"`
	Target    string    `json:"target"`
	Changed   bool      `json:"changed"`
	Failed    bool      `json:"failed"`
	Message   string    `json:"msg"`
	Commands  int       `json:"commands"`
	Duration  string    `json:"duration"`
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest reconciliation runs of this node",
		Long: `Print the latest runs recorded in the run history database, newest
first. Requires DB_HOST.

  ospf6-agent history --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.NewValidationError("limit must be positive", nil)
			}

			appContainer, logger, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			cfg := appContainer.GetConfig()
			if !cfg.Database.Enabled() {
				return errors.NewPreconditionError("run history is disabled: set DB_HOST", nil)
			}

			runs, err := appContainer.GetRunHistory().GetRecentRuns(cmd.Context(), cfg.Agent.NodeName, limit)
			if err != nil {
				return err
			}

			views := make([]runView, 0, len(runs))
			for _, run := range runs {
				views = append(views, runView{
					StartedAt: run.StartedAt,
					Scope:     run.Scope,
					Target:    run.Target,
					Changed:   run.Changed,
					Failed:    run.Failed,
					Message:   run.Message,
					Commands:  run.Commands,
					Duration:  run.Duration.String(),
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}
