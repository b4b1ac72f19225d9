package cli

import (
	"github.com/spf13/cobra"
	"github.com/vsxtools/vsce/internal/publish"
)

var (
	unpublishPAT   string
	unpublishForce bool
)

var unpublishCmd = &cobra.Command{
	Use:   "unpublish [extensionid]",
	Short: "Unpublish an extension",
	Long: `Remove an extension and all of its versions from the Marketplace.

The extension id is <publisher>.<name>; without it the package.json in the
current directory names the extension. You are asked to confirm unless
--force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		opts := publish.UnpublishOptions{Force: unpublishForce}
		opts.Cwd = cwd
		opts.PAT = explicitPAT(unpublishPAT)
		if len(args) == 1 {
			opts.ID = args[0]
		}
		return newService(cmd).Unpublish(cmd.Context(), opts)
	},
}

func init() {
	unpublishCmd.Flags().StringVarP(&unpublishPAT, "pat", "p", "", "Personal Access Token")
	unpublishCmd.Flags().BoolVarP(&unpublishForce, "force", "f", false, "Skip confirmation prompt when unpublishing an extension")
	rootCmd.AddCommand(unpublishCmd)
}
