package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vsxtools/vsce/internal/branding"
	"github.com/vsxtools/vsce/internal/config"
	"github.com/vsxtools/vsce/internal/gallery"
	"github.com/vsxtools/vsce/internal/output"
	"github.com/vsxtools/vsce/internal/packager"
	"github.com/vsxtools/vsce/internal/publish"
	"github.com/vsxtools/vsce/internal/runtime"
	"github.com/vsxtools/vsce/internal/store"
	"github.com/vsxtools/vsce/internal/versionbump"
)

// packagingFlags are shared by package, ls and publish.
type packagingFlags struct {
	githubBranch   string
	baseContentURL string
	baseImagesURL  string
	yarn           bool
	noDependencies bool
	ignoreFile     string
}

func (f *packagingFlags) register(cmd *cobra.Command, withLinks bool) {
	if withLinks {
		cmd.Flags().StringVar(&f.githubBranch, "githubBranch", "", "The GitHub branch used to infer relative links in README.md (default HEAD)")
		cmd.Flags().StringVar(&f.baseContentURL, "baseContentUrl", "", "Prepend all relative links in README.md with this URL")
		cmd.Flags().StringVar(&f.baseImagesURL, "baseImagesUrl", "", "Prepend all relative image links in README.md with this URL")
	}
	cmd.Flags().BoolVar(&f.yarn, "yarn", false, "Use yarn instead of npm to list production dependencies")
	cmd.Flags().BoolVar(&f.noDependencies, "no-dependencies", false, "Leave node_modules out of the package")
	cmd.Flags().StringVar(&f.ignoreFile, "ignoreFile", "", "Indicate alternative .vscodeignore")
}

// packageManager maps the dependency flags onto a packager mode, falling
// back to the configured default.
func (f *packagingFlags) packageManager() string {
	switch {
	case f.noDependencies:
		return packager.PackageManagerNone
	case f.yarn:
		return packager.PackageManagerYarn
	default:
		return config.PackageManager()
	}
}

func (f *packagingFlags) options(cwd string) packager.Options {
	return packager.Options{
		Cwd:            cwd,
		GitHubBranch:   f.githubBranch,
		BaseContentURL: f.baseContentURL,
		BaseImagesURL:  f.baseImagesURL,
		PackageManager: f.packageManager(),
		IgnoreFile:     f.ignoreFile,
	}
}

func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return cwd, nil
}

// explicitPAT returns the --pat flag, else a PAT from the environment or
// config file. Empty means "ask the credential store".
func explicitPAT(flag string) string {
	if flag != "" {
		return flag
	}
	return config.PAT()
}

func newStore() *store.Store {
	return store.New(branding.KeychainService(), config.Dir())
}

func newLogger(cmd *cobra.Command) *output.Logger {
	return output.New(cmd.OutOrStdout())
}

// newPackager lists dependencies silently; npm/yarn output is only wanted
// when the command fails, and ExitError carries its stderr.
func newPackager(cmd *cobra.Command) *packager.Packager {
	return packager.New(&runtime.ExecRunner{}, newLogger(cmd))
}

func newBumper(cmd *cobra.Command) *versionbump.Bumper {
	return versionbump.New(&runtime.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()})
}

func galleryFactory(pat string) publish.Gallery {
	return gallery.New(config.GalleryURL(), pat)
}

func newService(cmd *cobra.Command) *publish.Service {
	return publish.New(publish.Deps{
		Gallery:        galleryFactory,
		Reports:        gallery.NewReportClient(config.ReportURL(), nil),
		Store:          newStore(),
		Packager:       newPackager(cmd),
		Bumper:         newBumper(cmd),
		Prompter:       publish.NewLinePrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Log:            newLogger(cmd),
		MarketplaceURL: config.MarketplaceURL(),
	})
}
