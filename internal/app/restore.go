package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattabott/beyblade-x-collection/internal/output"
)

func (a *App) newRestoreCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the collection with its .backup copy",
		Long: `The restore command shows what the backup file holds and, once
confirmed, replaces the current parts and decks with it.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sum, err := a.mgr.ReadBackup()
			if err != nil {
				return err
			}
			output.PrintBackupSummary(a.out, sum)
			if !yes && !a.confirm("Replace the current collection with this backup?") {
				return a.declined()
			}
			if err := a.mgr.RestoreFromBackup(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Restored %d parts from %s.\n", a.mgr.TotalParts(), sum.Path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't prompt for confirmation")
	return cmd
}
