package packager

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vsxtools/vsce/internal/manifest"
)

const (
	vsixManifestEntry = "extension.vsixmanifest"
	contentTypesEntry = "[Content_Types].xml"
	extensionPrefix   = "extension/"
)

type packageManifest struct {
	XMLName      xml.Name     `xml:"PackageManifest"`
	Version      string       `xml:"Version,attr"`
	Xmlns        string       `xml:"xmlns,attr"`
	XmlnsD       string       `xml:"xmlns:d,attr"`
	Metadata     vsixMetadata `xml:"Metadata"`
	Installation struct {
		Target struct {
			ID string `xml:"Id,attr"`
		} `xml:"InstallationTarget"`
	} `xml:"Installation"`
	Dependencies struct{}    `xml:"Dependencies"`
	Assets       []vsixAsset `xml:"Assets>Asset"`
}

type vsixMetadata struct {
	Identity struct {
		Language  string `xml:"Language,attr"`
		ID        string `xml:"Id,attr"`
		Version   string `xml:"Version,attr"`
		Publisher string `xml:"Publisher,attr"`
	} `xml:"Identity"`
	DisplayName  string         `xml:"DisplayName"`
	Description  string         `xml:"Description"`
	Tags         string         `xml:"Tags"`
	Categories   string         `xml:"Categories"`
	GalleryFlags string         `xml:"GalleryFlags"`
	Properties   []vsixProperty `xml:"Properties>Property"`
	License      string         `xml:"License,omitempty"`
	Icon         string         `xml:"Icon,omitempty"`
}

type vsixProperty struct {
	ID    string `xml:"Id,attr"`
	Value string `xml:"Value,attr"`
}

type vsixAsset struct {
	Type        string `xml:"Type,attr"`
	Path        string `xml:"Path,attr"`
	Addressable bool   `xml:"Addressable,attr"`
}

// assetPaths are the entries of the package that get a typed asset.
type assetPaths struct {
	readme    string
	changelog string
	license   string
	icon      string
}

func buildVSIXManifest(m *manifest.Manifest, assets assetPaths, web bool) ([]byte, error) {
	pm := packageManifest{
		Version: "2.0.0",
		Xmlns:   "http://schemas.microsoft.com/developer/vsx-schema/2011",
		XmlnsD:  "http://schemas.microsoft.com/developer/vsx-schema-design/2011",
	}
	pm.Installation.Target.ID = "Microsoft.VisualStudio.Code"

	md := &pm.Metadata
	md.Identity.Language = "en-US"
	md.Identity.ID = m.Name
	md.Identity.Version = m.Version
	md.Identity.Publisher = m.Publisher
	md.DisplayName = m.DisplayName
	if md.DisplayName == "" {
		md.DisplayName = m.Name
	}
	md.Description = m.Description
	md.Tags = strings.Join(m.Keywords, ",")
	md.Categories = strings.Join(m.Categories, ",")
	md.GalleryFlags = "Public"
	if m.Preview {
		md.GalleryFlags += " Preview"
	}

	md.Properties = []vsixProperty{
		{ID: "Microsoft.VisualStudio.Code.Engine", Value: m.VSCodeEngine()},
		{ID: "Microsoft.VisualStudio.Code.ExtensionDependencies", Value: strings.Join(m.ExtensionDependencies, ",")},
		{ID: "Microsoft.VisualStudio.Code.ExtensionPack", Value: strings.Join(m.ExtensionPack, ",")},
		{ID: "Microsoft.VisualStudio.Code.ExtensionKind", Value: strings.Join(m.ExtensionKinds(), ",")},
	}
	if len(m.EnabledAPIProposals) > 0 {
		md.Properties = append(md.Properties, vsixProperty{ID: "Microsoft.VisualStudio.Code.EnabledApiProposals", Value: strings.Join(m.EnabledAPIProposals, ",")})
	}
	if web {
		md.Properties = append(md.Properties, vsixProperty{ID: "Microsoft.VisualStudio.Code.WebExtension", Value: "true"})
	}
	if m.Repository != nil && m.Repository.URL != "" {
		md.Properties = append(md.Properties, vsixProperty{ID: "Microsoft.VisualStudio.Services.Links.Source", Value: m.Repository.URL})
	}

	pm.Assets = append(pm.Assets, vsixAsset{Type: "Microsoft.VisualStudio.Code.Manifest", Path: extensionPrefix + manifest.FileName, Addressable: true})
	if assets.readme != "" {
		pm.Assets = append(pm.Assets, vsixAsset{Type: "Microsoft.VisualStudio.Services.Content.Details", Path: assets.readme, Addressable: true})
	}
	if assets.changelog != "" {
		pm.Assets = append(pm.Assets, vsixAsset{Type: "Microsoft.VisualStudio.Services.Content.Changelog", Path: assets.changelog, Addressable: true})
	}
	if assets.license != "" {
		md.License = assets.license
		pm.Assets = append(pm.Assets, vsixAsset{Type: "Microsoft.VisualStudio.Services.Content.License", Path: assets.license, Addressable: true})
	}
	if assets.icon != "" {
		md.Icon = assets.icon
		pm.Assets = append(pm.Assets, vsixAsset{Type: "Microsoft.VisualStudio.Services.Icons.Default", Path: assets.icon, Addressable: true})
	}

	out, err := xml.MarshalIndent(pm, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", vsixManifestEntry, err)
	}
	return append([]byte(xml.Header), out...), nil
}

var contentTypes = map[string]string{
	".css":          "text/css",
	".gif":          "image/gif",
	".html":         "text/html",
	".jpeg":         "image/jpeg",
	".jpg":          "image/jpeg",
	".js":           "application/javascript",
	".json":         "application/json",
	".map":          "application/json",
	".md":           "text/markdown",
	".png":          "image/png",
	".svg":          "image/svg+xml",
	".txt":          "text/plain",
	".vsixmanifest": "text/xml",
	".wasm":         "application/wasm",
	".xml":          "text/xml",
}

type typesDoc struct {
	XMLName  xml.Name      `xml:"Types"`
	Xmlns    string        `xml:"xmlns,attr"`
	Defaults []typeDefault `xml:"Default"`
}

type typeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// buildContentTypes lists one content type per file extension in entries.
func buildContentTypes(entries []string) ([]byte, error) {
	seen := map[string]bool{}
	var exts []string
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e))
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	doc := typesDoc{Xmlns: "http://schemas.openxmlformats.org/package/2006/content-types"}
	for _, ext := range exts {
		ct, ok := contentTypes[ext]
		if !ok {
			ct = "application/octet-stream"
		}
		doc.Defaults = append(doc.Defaults, typeDefault{Extension: ext, ContentType: ct})
	}

	out, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", contentTypesEntry, err)
	}
	return append([]byte(xml.Header), out...), nil
}
