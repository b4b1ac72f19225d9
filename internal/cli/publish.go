package cli

import (
	"github.com/spf13/cobra"
	"github.com/vsxtools/vsce/internal/publish"
)

var (
	publishPAT         string
	publishPackagePath string
	publishMessage     string
	publishNoTag       bool
	publishNoBump      bool
	publishWeb         bool
	publishNoVerify    bool
	publishFlags       packagingFlags
)

var publishCmd = &cobra.Command{
	Use:   "publish [version]",
	Short: "Publish an extension",
	Long: `Publish the extension in the current directory to the Marketplace.

The project is packaged first unless --packagePath points at an existing
.vsix. A version argument (major, minor, patch or x.y.z) bumps package.json
with npm before packaging and cannot be combined with --packagePath.

The Personal Access Token comes from --pat, then VSCE_PAT or the config
file, then the token stored with 'vsce login'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&publishPAT, "pat", "p", "", "Personal Access Token")
	publishCmd.Flags().StringVarP(&publishPackagePath, "packagePath", "i", "", "Publish the provided VSIX package instead of packaging the project")
	publishCmd.Flags().StringVarP(&publishMessage, "message", "m", "", "Commit message used when calling `npm version`")
	publishCmd.Flags().BoolVar(&publishNoTag, "no-git-tag-version", false, "Do not create a version commit and tag when calling `npm version`")
	publishCmd.Flags().BoolVar(&publishNoBump, "no-update-package-json", false, "Do not update `package.json`. Valid only when [version] is provided")
	publishCmd.Flags().BoolVar(&publishWeb, "web", false, "Publish as a web extension")
	publishCmd.Flags().BoolVar(&publishNoVerify, "noVerify", false, "Allow publishing extensions that use proposed API")
	publishFlags.register(publishCmd, true)
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	return newService(cmd).Publish(cmd.Context(), publishOptions(cwd, args))
}

func publishOptions(cwd string, args []string) publish.PublishOptions {
	pack := publishFlags.options(cwd)
	opts := publish.PublishOptions{
		Cwd:                 cwd,
		PackagePath:         publishPackagePath,
		PAT:                 explicitPAT(publishPAT),
		CommitMessage:       publishMessage,
		NoGitTagVersion:     publishNoTag,
		NoUpdatePackageJSON: publishNoBump,
		GitHubBranch:        pack.GitHubBranch,
		BaseContentURL:      pack.BaseContentURL,
		BaseImagesURL:       pack.BaseImagesURL,
		PackageManager:      pack.PackageManager,
		IgnoreFile:          pack.IgnoreFile,
		Web:                 publishWeb,
		NoVerify:            publishNoVerify,
	}
	if len(args) == 1 {
		opts.Version = args[0]
	}
	return opts
}
