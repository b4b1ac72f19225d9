package packager

// Dependency modes for Options.PackageManager.
const (
	PackageManagerNPM  = "npm"
	PackageManagerYarn = "yarn"
	PackageManagerNone = "none"
)

// Options controls a packaging run.
type Options struct {
	// Cwd is the extension project directory.
	Cwd string
	// PackagePath is the output file. Defaults to <Cwd>/<name>-<version>.vsix.
	PackagePath string
	// GitHubBranch is used to infer base URLs from a GitHub repository. Defaults to HEAD.
	GitHubBranch string
	// BaseContentURL prefixes relative links in README.md and CHANGELOG.md.
	BaseContentURL string
	// BaseImagesURL prefixes relative image links. Defaults to BaseContentURL.
	BaseImagesURL string
	// PackageManager selects how production dependencies are found:
	// "npm" (default), "yarn", or "none" to leave node_modules out.
	PackageManager string
	// IgnoreFile replaces <Cwd>/.vscodeignore when set.
	IgnoreFile string
	// Web marks the package as a web extension.
	Web bool
}

func (o Options) packageManager() string {
	if o.PackageManager == "" {
		return PackageManagerNPM
	}
	return o.PackageManager
}
