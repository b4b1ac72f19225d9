package publish

import (
	"strings"

	"github.com/vsxtools/vsce/internal/packager"
	"github.com/vsxtools/vsce/internal/versionbump"
)

// PublishOptions configures Publish. PackagePath selects the "publish an
// existing package" path; otherwise the project in Cwd is packed first.
type PublishOptions struct {
	Cwd         string
	PackagePath string
	PAT         string

	// Version bump, only valid when packing.
	Version             string
	CommitMessage       string
	NoGitTagVersion     bool
	NoUpdatePackageJSON bool

	// Packaging, only used when packing.
	GitHubBranch   string
	BaseContentURL string
	BaseImagesURL  string
	PackageManager string
	IgnoreFile     string

	Web      bool
	NoVerify bool
}

// Validate rejects mutually exclusive options.
func (o PublishOptions) Validate() error {
	if o.PackagePath == "" {
		return nil
	}
	if o.Version != "" {
		return &InvalidOptionsError{Message: "both options not supported simultaneously: 'packagePath' and 'version'"}
	}
	if o.Web {
		return &InvalidOptionsError{Message: "both options not supported simultaneously: 'packagePath' and 'web'"}
	}
	return nil
}

func (o PublishOptions) bumpOptions() versionbump.Options {
	return versionbump.Options{
		Cwd:                 o.Cwd,
		Version:             o.Version,
		CommitMessage:       o.CommitMessage,
		NoGitTagVersion:     o.NoGitTagVersion,
		NoUpdatePackageJSON: o.NoUpdatePackageJSON,
	}
}

func (o PublishOptions) packOptions(packagePath string) packager.Options {
	return packager.Options{
		Cwd:            o.Cwd,
		PackagePath:    packagePath,
		GitHubBranch:   o.GitHubBranch,
		BaseContentURL: o.BaseContentURL,
		BaseImagesURL:  o.BaseImagesURL,
		PackageManager: o.PackageManager,
		IgnoreFile:     o.IgnoreFile,
		Web:            o.Web,
	}
}

// UnpublishOptions configures Unpublish.
type UnpublishOptions struct {
	PublishOptions
	// ID is "publisher.name". When empty the manifest in Cwd is used.
	ID string
	// Force skips the confirmation prompt.
	Force bool
}

// splitID parses "publisher.name" on the literal dot. Any parts after the
// second are ignored.
func splitID(id string) (publisher, name string, err error) {
	parts := strings.Split(id, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &InvalidOptionsError{Message: "invalid extension id '" + id + "': expected <publisher>.<name>"}
	}
	return parts[0], parts[1], nil
}
