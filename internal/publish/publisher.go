package publish

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vsxtools/vsce/internal/gallery"
	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/output"
)

// Decision is what the Publisher will do with a package.
type Decision int

const (
	// DecisionCreate uploads a brand-new extension.
	DecisionCreate Decision = iota
	// DecisionUpdate adds a version to an existing extension.
	DecisionUpdate
	// DecisionRejectDuplicate refuses to overwrite a published version.
	DecisionRejectDuplicate
)

func (d Decision) String() string {
	switch d {
	case DecisionCreate:
		return "create"
	case DecisionUpdate:
		return "update"
	case DecisionRejectDuplicate:
		return "reject-duplicate"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Decide picks the action for version given the existing Marketplace
// record, which is nil when the extension has never been published.
func Decide(existing *gallery.PublishedExtension, version string) Decision {
	switch {
	case existing == nil:
		return DecisionCreate
	case existing.HasVersion(version):
		return DecisionRejectDuplicate
	default:
		return DecisionUpdate
	}
}

// Publisher uploads one package.
type Publisher struct {
	gallery        GalleryFactory
	log            *output.Logger
	marketplaceURL string
}

// NewPublisher returns a Publisher. log may be nil.
func NewPublisher(g GalleryFactory, log *output.Logger, marketplaceURL string) *Publisher {
	if log == nil {
		log = output.Discard()
	}
	return &Publisher{gallery: g, log: log, marketplaceURL: strings.TrimRight(marketplaceURL, "/")}
}

// Publish uploads the package at packagePath for m using pat.
func (p *Publisher) Publish(ctx context.Context, packagePath, pat string, m *manifest.Manifest) error {
	api := p.gallery(pat)
	description := m.Describe()

	p.log.Info("Publishing '%s'...", description)

	existing, err := api.GetExtension(ctx, m.Publisher, m.Name, true)
	if err != nil {
		if !gallery.IsNotFound(err) {
			return galleryError("looking up "+m.ID(), err)
		}
		existing = nil
	}

	decision := Decide(existing, m.Version)
	if decision == DecisionRejectDuplicate {
		return &DuplicateVersionError{ID: m.ID(), Version: m.Version}
	}

	pkg, err := os.Open(packagePath)
	if err != nil {
		return fmt.Errorf("opening package %s: %w", packagePath, err)
	}
	defer pkg.Close()

	switch decision {
	case DecisionUpdate:
		if _, err := api.UpdateExtension(ctx, pkg, m.Publisher, m.Name); err != nil {
			if gallery.IsConflict(err) {
				return &DuplicateVersionError{ID: m.ID(), Version: m.Version}
			}
			return galleryError("updating "+m.ID(), err)
		}
	case DecisionCreate:
		if _, err := api.CreateExtension(ctx, pkg); err != nil {
			return galleryError("creating "+m.ID(), err)
		}
	}

	p.log.Info("Extension URL (might take a few minutes): %s", p.itemURL(m))
	p.log.Info("Hub URL: %s", p.hubURL(m))
	p.log.Done("Published %s.", description)
	return nil
}

func (p *Publisher) itemURL(m *manifest.Manifest) string {
	return fmt.Sprintf("%s/items?itemName=%s", p.marketplaceURL, m.ID())
}

func (p *Publisher) hubURL(m *manifest.Manifest) string {
	return fmt.Sprintf("%s/manage/publishers/%s/extensions/%s/hub", p.marketplaceURL, m.Publisher, m.Name)
}
