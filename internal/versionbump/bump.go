package versionbump

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/runtime"
)

// Release keywords accepted by Bump.
const (
	Major = "major"
	Minor = "minor"
	Patch = "patch"
)

// unsupported lists npm version keywords the Marketplace cannot take.
var unsupported = map[string]bool{
	"premajor":   true,
	"preminor":   true,
	"prepatch":   true,
	"prerelease": true,
	"from-git":   true,
}

// Options selects the version to move to and how npm should record it.
type Options struct {
	// Cwd is the extension project directory.
	Cwd string
	// Version is "major", "minor", "patch" or a semantic version. Empty is a no-op.
	Version string
	// CommitMessage is passed to npm as -m. "%s" is replaced by npm with the new version.
	CommitMessage string
	// NoGitTagVersion skips the git commit and tag.
	NoGitTagVersion bool
	// NoUpdatePackageJSON disables the bump entirely.
	NoUpdatePackageJSON bool
}

// Bumper runs the version command through a runtime.Runner. The runner's
// writers receive npm's stdout and stderr.
type Bumper struct {
	Runner runtime.Runner
}

// New returns a Bumper that uses r.
func New(r runtime.Runner) *Bumper {
	return &Bumper{Runner: r}
}

// Bump moves the manifest in opts.Cwd to opts.Version. It does nothing when
// no version is requested or the manifest is already at that version.
func (b *Bumper) Bump(ctx context.Context, opts Options) error {
	if opts.Version == "" || opts.NoUpdatePackageJSON {
		return nil
	}

	m, err := manifest.Read(opts.Cwd)
	if err != nil {
		return err
	}
	if m.Version == opts.Version {
		return nil
	}

	if err := Check(opts.Version); err != nil {
		return err
	}

	args := Args(opts)
	if _, err := b.Runner.Run(ctx, opts.Cwd, "npm", args...); err != nil {
		return &ExternalCommandError{Command: runtime.CommandLine("npm", args...), Err: err}
	}
	return nil
}

// Check validates a version specifier without running anything.
func Check(version string) error {
	switch {
	case version == Major, version == Minor, version == Patch:
		return nil
	case unsupported[version]:
		return &UnsupportedVersionError{Version: version}
	}

	if _, err := semver.StrictNewVersion(strings.TrimPrefix(version, "v")); err != nil {
		return &InvalidVersionError{Version: version}
	}
	return nil
}

// Args builds the npm arguments for opts.
func Args(opts Options) []string {
	args := []string{"version", opts.Version}
	if opts.CommitMessage != "" {
		args = append(args, "-m", opts.CommitMessage)
	}
	if opts.NoGitTagVersion {
		args = append(args, "--no-git-tag-version")
	}
	return args
}
