package packager

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vsxtools/vsce/internal/manifest"
	"github.com/vsxtools/vsce/internal/output"
	"github.com/vsxtools/vsce/internal/runtime"
)

// fakeRunner answers every command with stdout and records the command names.
type fakeRunner struct {
	stdout string
	calls  []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) (*runtime.Output, error) {
	f.calls = append(f.calls, runtime.CommandLine(name, args...))
	return &runtime.Output{Stdout: f.stdout}, nil
}

const testPackageJSON = `{
  "name": "widget",
  "publisher": "acme",
  "version": "1.2.3",
  "displayName": "Widget",
  "engines": { "vscode": "^1.80.0" },
  "main": "./out/extension.js",
  "icon": "images/icon.png",
  "repository": "https://github.com/acme/widget"
}`

// writeProject lays out files (slash paths → contents) under a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readZipEntries(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	entries := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestPack(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":      testPackageJSON,
		"README.md":         "# Widget\n![logo](images/icon.png)\nSee [docs](./docs/guide.md) or [site](https://example.com) or [top](#top).\n",
		"LICENSE":           "MIT",
		"images/icon.png":   "png",
		"out/extension.js":  "exports.activate = () => {}",
		"src/extension.ts":  "export function activate() {}",
		".vscodeignore":     "src/**\n",
		"package-lock.json": "{}",
	})

	var logBuf bytes.Buffer
	p := New(&fakeRunner{}, output.New(&logBuf))
	outPath := filepath.Join(t.TempDir(), "widget.vsix")

	res, err := p.Pack(context.Background(), Options{Cwd: dir, PackagePath: outPath})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if res.PackagePath != outPath || res.Size == 0 {
		t.Errorf("result = %+v", res)
	}

	wantEntries := []string{
		"extension.vsixmanifest",
		"[Content_Types].xml",
		"extension/LICENSE.txt",
		"extension/README.md",
		"extension/images/icon.png",
		"extension/out/extension.js",
		"extension/package.json",
	}
	if !reflect.DeepEqual(res.Entries, wantEntries) {
		t.Errorf("Entries = %v, want %v", res.Entries, wantEntries)
	}

	entries := readZipEntries(t, outPath)
	readme := entries["extension/README.md"]
	for _, want := range []string{
		"![logo](https://github.com/acme/widget/raw/HEAD/images/icon.png)",
		"[docs](https://github.com/acme/widget/blob/HEAD/docs/guide.md)",
		"[site](https://example.com)",
		"[top](#top)",
	} {
		if !strings.Contains(readme, want) {
			t.Errorf("README missing %q:\n%s", want, readme)
		}
	}

	vsix := entries["extension.vsixmanifest"]
	for _, want := range []string{
		`<Identity Language="en-US" Id="widget" Version="1.2.3" Publisher="acme"></Identity>`,
		`<Property Id="Microsoft.VisualStudio.Code.Engine" Value="^1.80.0"></Property>`,
		`<Icon>extension/images/icon.png</Icon>`,
		`<License>extension/LICENSE.txt</License>`,
	} {
		if !strings.Contains(vsix, want) {
			t.Errorf("vsixmanifest missing %q:\n%s", want, vsix)
		}
	}
	if strings.Contains(vsix, "WebExtension") {
		t.Error("non-web package must not carry the WebExtension property")
	}

	if !strings.Contains(entries["[Content_Types].xml"], `<Default Extension=".js" ContentType="application/javascript"></Default>`) {
		t.Errorf("content types:\n%s", entries["[Content_Types].xml"])
	}

	m, err := manifest.ReadFromArchive(outPath)
	if err != nil {
		t.Fatalf("ReadFromArchive() error = %v", err)
	}
	if m.Describe() != "acme.widget v1.2.3" {
		t.Errorf("manifest = %s", m.Describe())
	}
	if logBuf.Len() != 0 {
		t.Errorf("unexpected warnings: %s", logBuf.String())
	}
}

func TestPack_Deterministic(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":     testPackageJSON,
		"README.md":        "# Widget\n",
		"LICENSE":          "MIT",
		"images/icon.png":  "png",
		"out/extension.js": "x",
	})
	p := New(&fakeRunner{}, nil)

	a := filepath.Join(t.TempDir(), "a.vsix")
	b := filepath.Join(t.TempDir(), "b.vsix")
	if _, err := p.Pack(context.Background(), Options{Cwd: dir, PackagePath: a}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Pack(context.Background(), Options{Cwd: dir, PackagePath: b}); err != nil {
		t.Fatal(err)
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("packing the same project twice produced different bytes")
	}
}

func TestPack_DefaultPath(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":    testPackageJSON,
		"README.md":       "# Widget\n",
		"LICENSE":         "MIT",
		"images/icon.png": "png",
	})

	res, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "widget-1.2.3.vsix"); res.PackagePath != want {
		t.Errorf("PackagePath = %q, want %q", res.PackagePath, want)
	}
}

func TestPack_InvalidManifest(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json": `{"name":"widget","version":"1.0.0","engines":{"vscode":"*"}}`,
	})

	_, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir, PackagePath: filepath.Join(t.TempDir(), "x.vsix")})
	if _, ok := err.(*manifest.ValidationResult); !ok {
		t.Fatalf("expected *manifest.ValidationResult, got %T (%v)", err, err)
	}
}

func TestPack_WebRequiresWebKind(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":    testPackageJSON,
		"images/icon.png": "png",
	})

	_, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir, Web: true, PackagePath: filepath.Join(t.TempDir(), "x.vsix")})
	if err == nil || !strings.Contains(err.Error(), "not a web extension") {
		t.Fatalf("expected web kind error, got %v", err)
	}
}

func TestPack_WebProperty(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json": `{"name":"widget","publisher":"acme","version":"1.0.0","engines":{"vscode":"*"},"browser":"./dist/web.js"}`,
		"dist/web.js":  "x",
	})
	out := filepath.Join(t.TempDir(), "web.vsix")

	if _, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir, Web: true, PackagePath: out}); err != nil {
		t.Fatal(err)
	}
	vsix := readZipEntries(t, out)["extension.vsixmanifest"]
	if !strings.Contains(vsix, `<Property Id="Microsoft.VisualStudio.Code.WebExtension" Value="true"></Property>`) {
		t.Errorf("vsixmanifest missing web property:\n%s", vsix)
	}
}

func TestPack_MissingIcon(t *testing.T) {
	dir := writeProject(t, map[string]string{"package.json": testPackageJSON})

	_, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir, PackagePath: filepath.Join(t.TempDir(), "x.vsix")})
	if err == nil || !strings.Contains(err.Error(), "images/icon.png") {
		t.Fatalf("expected missing icon error, got %v", err)
	}
}

func TestPack_RelativeLinkWithoutBase(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json": `{"name":"widget","publisher":"acme","version":"1.0.0","engines":{"vscode":"*"}}`,
		"README.md":    "[guide](docs/guide.md)",
	})

	_, err := New(&fakeRunner{}, nil).Pack(context.Background(), Options{Cwd: dir, PackagePath: filepath.Join(t.TempDir(), "x.vsix")})
	if err == nil || !strings.Contains(err.Error(), "docs/guide.md") {
		t.Fatalf("expected broken link error, got %v", err)
	}
}

func TestListFiles_NPMDependencies(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":                    testPackageJSON,
		"out/extension.js":                "x",
		"node_modules/left-pad/index.js":  "x",
		"node_modules/typescript/tsc.js":  "x",
		"node_modules/left-pad/README.md": "x",
	})
	abs, err := filepath.Abs(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := &fakeRunner{stdout: abs + "\n" + filepath.Join(abs, "node_modules", "left-pad") + "\n"}

	files, err := New(r, nil).ListFiles(context.Background(), Options{Cwd: dir})
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	want := []string{
		"node_modules/left-pad/README.md",
		"node_modules/left-pad/index.js",
		"out/extension.js",
		"package.json",
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
	if len(r.calls) != 1 || !strings.HasPrefix(r.calls[0], "npm list --production --parseable") {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestListFiles_YarnDependencies(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":                   testPackageJSON,
		"node_modules/@scope/pkg/a.js":   "x",
		"node_modules/typescript/tsc.js": "x",
	})
	r := &fakeRunner{stdout: `{"type":"info","data":"ignored"}` + "\n" +
		`{"type":"tree","data":{"type":"list","trees":[{"name":"@scope/pkg@1.0.0","children":[]}]}}` + "\n"}

	files, err := New(r, nil).ListFiles(context.Background(), Options{Cwd: dir, PackageManager: PackageManagerYarn})
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	want := []string{"node_modules/@scope/pkg/a.js", "package.json"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestListFiles_NoDependencies(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":                   testPackageJSON,
		"node_modules/left-pad/index.js": "x",
	})
	r := &fakeRunner{}

	files, err := New(r, nil).ListFiles(context.Background(), Options{Cwd: dir, PackageManager: PackageManagerNone})
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	if !reflect.DeepEqual(files, []string{"package.json"}) {
		t.Errorf("files = %v", files)
	}
	if len(r.calls) != 0 {
		t.Errorf("expected no package manager calls, got %v", r.calls)
	}
}

func TestListFiles_UnknownPackageManager(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":        testPackageJSON,
		"node_modules/a/a.js": "x",
	})
	if _, err := New(&fakeRunner{}, nil).ListFiles(context.Background(), Options{Cwd: dir, PackageManager: "pnpm"}); err == nil {
		t.Fatal("expected error for unknown package manager")
	}
}
