package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/output"
)

// Service runs publish and unpublish flows.
type Service struct {
	deps      Deps
	publisher *Publisher
}

// New returns a Service over d.
func New(d Deps) *Service {
	if d.Log == nil {
		d.Log = output.Discard()
	}
	return &Service{
		deps:      d,
		publisher: NewPublisher(d.Gallery, d.Log, d.MarketplaceURL),
	}
}

// Publish packs (or reads) an extension package and uploads it.
func (s *Service) Publish(ctx context.Context, opts PublishOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	var (
		m           *manifest.Manifest
		packagePath string
	)

	if opts.PackagePath != "" {
		var err error
		if m, err = manifest.ReadFromArchive(opts.PackagePath); err != nil {
			return err
		}
		packagePath = opts.PackagePath
	} else {
		if err := s.deps.Bumper.Bump(ctx, opts.bumpOptions()); err != nil {
			return err
		}

		if opts.Web {
			project, err := manifest.Read(opts.Cwd)
			if err != nil {
				return err
			}
			if err := checkWebKind(project); err != nil {
				return err
			}
		}

		packagePath = s.tempPackagePath()
		defer os.Remove(packagePath)

		res, err := s.deps.Packager.Pack(ctx, opts.packOptions(packagePath))
		if err != nil {
			return err
		}
		m = res.Manifest
	}

	if !opts.NoVerify && m.EnableProposedAPI {
		return &ProposedAPINotAllowedError{ID: m.ID()}
	}

	if opts.Web {
		if err := s.checkWeb(ctx, m); err != nil {
			return err
		}
	}

	pat, err := s.resolvePAT(opts.PAT, m.Publisher)
	if err != nil {
		return err
	}

	return s.publisher.Publish(ctx, packagePath, pat, m)
}

// Unpublish deletes an extension from the Marketplace after confirmation.
func (s *Service) Unpublish(ctx context.Context, opts UnpublishOptions) error {
	var publisher, name string
	if opts.ID != "" {
		var err error
		if publisher, name, err = splitID(opts.ID); err != nil {
			return err
		}
	} else {
		m, err := manifest.Read(opts.Cwd)
		if err != nil {
			return err
		}
		publisher, name = m.Publisher, m.Name
	}

	fullName := publisher + "." + name

	if !opts.Force {
		answer, err := s.deps.Prompter.Prompt(fmt.Sprintf("This will FOREVER delete '%s'! Are you sure? [y/N] ", fullName))
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			return &AbortedError{}
		}
	}

	pat, err := s.resolvePAT(opts.PAT, publisher)
	if err != nil {
		return err
	}

	if err := s.deps.Gallery(pat).DeleteExtension(ctx, publisher, name); err != nil {
		return galleryError("deleting "+fullName, err)
	}

	s.deps.Log.Done("Deleted extension: %s!", fullName)
	return nil
}

// VerifyPAT checks that pat can act for publisher.
func (s *Service) VerifyPAT(ctx context.Context, publisher, pat string) error {
	if _, err := s.deps.Gallery(pat).GetPublisher(ctx, publisher); err != nil {
		return galleryError("verifying PAT for "+publisher, err)
	}
	s.deps.Log.Done("The Personal Access Token verification succeeded for the publisher '%s'.", publisher)
	return nil
}

// checkWebKind is applied to the project manifest before packing as well.
func checkWebKind(m *manifest.Manifest) error {
	if !m.IsWebKind() {
		return &WebExtensionNotSupportedError{ID: m.ID(), Reason: "it is not a web kind extension"}
	}
	return nil
}

func (s *Service) checkWeb(ctx context.Context, m *manifest.Manifest) error {
	if err := checkWebKind(m); err != nil {
		return err
	}

	report, err := s.deps.Reports.GetExtensionsReport(ctx)
	if err != nil {
		return err
	}
	if !report.SupportsWeb(m.Publisher, m.Name) {
		return &WebExtensionNotSupportedError{ID: m.ID(), Reason: "it is not listed as a supported web extension"}
	}
	return nil
}

// resolvePAT prefers an explicit token over the credential store.
func (s *Service) resolvePAT(explicit, publisher string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return s.deps.Store.Get(publisher)
}

func (s *Service) tempPackagePath() string {
	dir := s.deps.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "vsce-"+uuid.NewString()+".vsix")
}
