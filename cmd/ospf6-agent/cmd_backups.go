package main

import (
	"fmt"
	"strings"

	"ospf6-agent/internal/domain/errors"

	"github.com/spf13/cobra"
)

func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups <scope>",
		Short: "List running-config snapshots taken before changes",
		Long: `List the snapshots of a scope, oldest first. The scope is "global" for
router-level runs or the interface name.

  ospf6-agent backups global
  ospf6-agent backups swp1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, logger, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			backupService := appContainer.GetBackupService()
			if backupService == nil {
				return errors.NewPreconditionError("snapshots are disabled: set BACKUP_DIR", nil)
			}

			files, err := backupService.ListBackups(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
}
