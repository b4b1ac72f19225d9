package packager

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/output"
	"github.com/vsxtools/vsce/internal/runtime"
)

// fixedModTime is stamped on every entry so packages are reproducible.
var fixedModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Packager builds .vsix files.
type Packager struct {
	// Runner lists production dependencies with npm or yarn.
	Runner runtime.Runner
	// Log receives warnings about the package contents.
	Log *output.Logger
}

// New returns a Packager.
func New(r runtime.Runner, log *output.Logger) *Packager {
	if log == nil {
		log = output.Discard()
	}
	return &Packager{Runner: r, Log: log}
}

// Result describes a written package.
type Result struct {
	Manifest    *manifest.Manifest
	PackagePath string
	// Entries are the zip entry names in write order.
	Entries []string
	Size    int64
}

// entry is one file of the package, either copied from disk or generated.
type entry struct {
	name string
	src  string
	data []byte
}

// DefaultPackagePath returns <cwd>/<name>-<version>.vsix.
func DefaultPackagePath(cwd string, m *manifest.Manifest) string {
	return filepath.Join(cwd, fmt.Sprintf("%s-%s.vsix", m.Name, m.Version))
}

// Pack validates the project manifest and writes the package.
func (p *Packager) Pack(ctx context.Context, opts Options) (*Result, error) {
	m, err := p.readValidManifest(opts.Cwd)
	if err != nil {
		return nil, err
	}
	if opts.Web && !m.IsWebKind() {
		return nil, fmt.Errorf("%s is not a web extension: add a browser entry point or 'web' to extensionKind", m.ID())
	}

	files, err := p.ListFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	entries, assets, err := p.collectEntries(opts, m, files)
	if err != nil {
		return nil, err
	}

	vsixManifest, err := buildVSIXManifest(m, assets, opts.Web)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries)+1)
	names = append(names, vsixManifestEntry)
	for _, e := range entries {
		names = append(names, e.name)
	}
	types, err := buildContentTypes(names)
	if err != nil {
		return nil, err
	}

	all := append([]entry{
		{name: vsixManifestEntry, data: vsixManifest},
		{name: contentTypesEntry, data: types},
	}, entries...)

	packagePath := opts.PackagePath
	if packagePath == "" {
		packagePath = DefaultPackagePath(opts.Cwd, m)
	}
	size, err := writeZip(packagePath, all)
	if err != nil {
		return nil, err
	}

	result := &Result{Manifest: m, PackagePath: packagePath, Size: size}
	for _, e := range all {
		result.Entries = append(result.Entries, e.name)
	}
	return result, nil
}

func (p *Packager) readValidManifest(cwd string) (*manifest.Manifest, error) {
	path := filepath.Join(cwd, manifest.FileName)
	result, err := manifest.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, result
	}
	return manifest.Read(cwd)
}

// collectEntries maps project files to package entries, rewriting markdown
// and locating the assets referenced by the vsixmanifest.
func (p *Packager) collectEntries(opts Options, m *manifest.Manifest, files []string) ([]entry, assetPaths, error) {
	var assets assetPaths
	contentBase, imagesBase := baseURLs(opts, m)

	entries := make([]entry, 0, len(files))
	for _, rel := range files {
		e := entry{name: extensionPrefix + rel, src: filepath.Join(opts.Cwd, filepath.FromSlash(rel))}

		switch lower := strings.ToLower(rel); {
		case lower == "readme.md" || lower == "changelog.md":
			doc, err := os.ReadFile(e.src)
			if err != nil {
				return nil, assets, fmt.Errorf("reading %s: %w", rel, err)
			}
			if e.data, err = rewriteMarkdown(rel, doc, contentBase, imagesBase); err != nil {
				return nil, assets, err
			}
			if lower == "readme.md" {
				assets.readme = e.name
			} else {
				assets.changelog = e.name
			}
		case lower == "license" || lower == "license.md" || lower == "license.txt":
			if path.Ext(rel) == "" {
				e.name += ".txt"
			}
			assets.license = e.name
		}

		if m.Icon != "" && rel == path.Clean(strings.TrimPrefix(m.Icon, "./")) {
			assets.icon = e.name
		}
		entries = append(entries, e)
	}

	if assets.readme == "" {
		p.Log.Warn("A 'README.md' file was not found in the package; the Marketplace page will be empty.")
	}
	if assets.license == "" {
		p.Log.Warn("LICENSE not found.")
	}
	if m.Icon != "" && assets.icon == "" {
		return nil, assets, fmt.Errorf("the specified icon '%s' wasn't found in the extension", m.Icon)
	}

	return entries, assets, nil
}

// writeZip writes entries to path in order with fixed timestamps and
// returns the resulting file size. A failed write leaves no file behind.
func writeZip(path string, entries []entry) (size int64, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating package %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing package: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		if err := writeEntry(zw, e); err != nil {
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finishing package: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat package: %w", err)
	}
	return info.Size(), nil
}

func writeEntry(zw *zip.Writer, e entry) error {
	hdr := &zip.FileHeader{
		Name:     e.name,
		Method:   zip.Deflate,
		Modified: fixedModTime,
	}
	hdr.SetMode(0644)

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", e.name, err)
	}

	if e.data != nil {
		_, err = w.Write(e.data)
	} else {
		err = copyFile(w, e.src)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", e.name, err)
	}
	return nil
}

func copyFile(w io.Writer, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
