package publish

import (
	"context"
	"io"

	"github.com/vsxtools/vsce/internal/gallery"
	"github.com/vsxtools/vsce/internal/output"
	"github.com/vsxtools/vsce/internal/packager"
	"github.com/vsxtools/vsce/internal/versionbump"
)

// Gallery is the subset of the Marketplace API used here.
type Gallery interface {
	GetExtension(ctx context.Context, publisher, name string, includeVersions bool) (*gallery.PublishedExtension, error)
	CreateExtension(ctx context.Context, pkg io.Reader) (*gallery.PublishedExtension, error)
	UpdateExtension(ctx context.Context, pkg io.Reader, publisher, name string) (*gallery.PublishedExtension, error)
	DeleteExtension(ctx context.Context, publisher, name string) error
	GetPublisher(ctx context.Context, name string) (*gallery.Publisher, error)
}

// GalleryFactory returns a Gallery authenticated with pat.
type GalleryFactory func(pat string) Gallery

// ReportSource fetches the public extensions report.
type ReportSource interface {
	GetExtensionsReport(ctx context.Context) (*gallery.Report, error)
}

// CredentialStore looks up a publisher's PAT.
type CredentialStore interface {
	Get(publisher string) (string, error)
}

// Packager builds a package from a project directory.
type Packager interface {
	Pack(ctx context.Context, opts packager.Options) (*packager.Result, error)
}

// VersionBumper moves a project to a new version.
type VersionBumper interface {
	Bump(ctx context.Context, opts versionbump.Options) error
}

// Prompter asks the user a question and returns the line they typed.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Gallery  GalleryFactory
	Reports  ReportSource
	Store    CredentialStore
	Packager Packager
	Bumper   VersionBumper
	Prompter Prompter
	Log      *output.Logger

	// MarketplaceURL is the public site used in the links logged after a publish.
	MarketplaceURL string
	// TempDir holds packages built for a publish. Defaults to os.TempDir().
	TempDir string
}
