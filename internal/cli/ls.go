package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsFlags packagingFlags

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Lists all the files that will be published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		files, err := newPackager(cmd).ListFiles(cmd.Context(), lsFlags.options(cwd))
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	lsFlags.register(lsCmd, false)
	rootCmd.AddCommand(lsCmd)
}
