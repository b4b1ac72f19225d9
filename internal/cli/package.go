package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vsxtools/vsce/internal/versionbump"
)

var (
	packageOut     string
	packageMessage string
	packageNoTag   bool
	packageNoBump  bool
	packageWeb     bool
	packageFlags   packagingFlags
)

var packageCmd = &cobra.Command{
	Use:   "package [version]",
	Short: "Package an extension",
	Long: `Package the extension in the current directory into a .vsix file.

With a version argument (major, minor, patch or x.y.z) the version in
package.json is bumped with npm first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPackage,
}

func init() {
	packageCmd.Flags().StringVarP(&packageOut, "out", "o", "", "Output .vsix extension file to <path> location (defaults to <name>-<version>.vsix)")
	packageCmd.Flags().StringVarP(&packageMessage, "message", "m", "", "Commit message used when calling `npm version`")
	packageCmd.Flags().BoolVar(&packageNoTag, "no-git-tag-version", false, "Do not create a version commit and tag when calling `npm version`")
	packageCmd.Flags().BoolVar(&packageNoBump, "no-update-package-json", false, "Do not update `package.json`. Valid only when [version] is provided")
	packageCmd.Flags().BoolVar(&packageWeb, "web", false, "Package as a web extension")
	packageFlags.register(packageCmd, true)
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	bump := versionbump.Options{
		Cwd:                 cwd,
		CommitMessage:       packageMessage,
		NoGitTagVersion:     packageNoTag,
		NoUpdatePackageJSON: packageNoBump,
	}
	if len(args) == 1 {
		bump.Version = args[0]
	}
	if err := newBumper(cmd).Bump(cmd.Context(), bump); err != nil {
		return err
	}

	opts := packageFlags.options(cwd)
	opts.PackagePath = packageOut
	opts.Web = packageWeb

	res, err := newPackager(cmd).Pack(cmd.Context(), opts)
	if err != nil {
		return err
	}

	newLogger(cmd).Done("Packaged: %s (%d files, %s)", res.PackagePath, len(res.Entries), formatSize(res.Size))
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGT"[exp])
}
