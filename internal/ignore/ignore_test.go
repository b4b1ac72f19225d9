package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_SkipsBlankAndComments(t *testing.T) {
	m, err := New([]string{"", "  # comment", "src/", "!src/keep.ts", "/out/*.map"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []Rule{
		{Pattern: "src/**"},
		{Pattern: "src/keep.ts", Negate: true},
		{Pattern: "src/keep.ts/**", Negate: true},
		{Pattern: "out/*.map"},
	}
	if len(m.Rules()) != len(want) {
		t.Fatalf("Rules() = %+v, want %+v", m.Rules(), want)
	}
	for i, r := range m.Rules() {
		if r != want[i] {
			t.Errorf("rule %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New([]string{"src/[a-"}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestIgnored(t *testing.T) {
	m, err := New([]string{
		"src/**",
		"!src/assets/**",
		"src/assets/*.psd",
		"**/*.map",
		"node_modules/**",
		"!node_modules/left-pad/**",
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"src/extension.ts", true},
		{"src/assets/logo.png", false},
		{"src/assets/logo.psd", true},
		{"out/extension.js", false},
		{"out/extension.js.map", true},
		{"node_modules/lodash/index.js", true},
		{"node_modules/left-pad/index.js", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := m.Ignored(tt.path); got != tt.want {
				t.Errorf("Ignored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIgnored_BareNamesCoverDirectories(t *testing.T) {
	m, err := New([]string{"out/test", "src", ".vscode", "!.vscode/extensions.json", "*.map"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"out/test/a.js", true},
		{"out/test/suite/index.js", true},
		{"out/extension.js", false},
		{"src", true},
		{"src/extension.ts", true},
		{"srcx/extension.ts", false},
		{".vscode/settings.json", true},
		{".vscode/extensions.json", false},
		{"a.map", true},
		{"out/a.map", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := m.Ignored(tt.path); got != tt.want {
				t.Errorf("Ignored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIgnored_PackageJSONAlwaysIncluded(t *testing.T) {
	m, err := New([]string{"*.json", "**"})
	if err != nil {
		t.Fatal(err)
	}
	if m.Ignored("package.json") {
		t.Error("package.json must never be ignored")
	}
	if !m.Ignored("tsconfig.json") {
		t.Error("tsconfig.json should be ignored")
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, p := range []string{".git/config", "sub/.git/HEAD", "package-lock.json", "old.vsix", ".github/workflows/ci.yml", ".vscodeignore"} {
		if !m.Ignored(p) {
			t.Errorf("expected default rules to ignore %q", p)
		}
	}
	if m.Ignored("out/extension.js") {
		t.Error("out/extension.js should be included")
	}
}

func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := "# sources\nsrc/**\n*.ts\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !m.Ignored("src/a.ts") || !m.Ignored("b.ts") {
		t.Error("project rules not applied")
	}
	if m.Ignored("out/b.ts") {
		t.Error("*.ts should only match at the root")
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir, filepath.Join(dir, "missing.ignore")); err == nil {
		t.Fatal("expected error for missing explicit ignore file")
	}
}

func TestLoad_ExplicitFileReplacesProjectFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("docs/**\n"), 0644); err != nil {
		t.Fatal(err)
	}
	custom := filepath.Join(dir, "custom.ignore")
	if err := os.WriteFile(custom, []byte("test/**\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir, custom)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Ignored("docs/index.md") {
		t.Error(".vscodeignore should not apply when an explicit file is given")
	}
	if !m.Ignored("test/suite.ts") {
		t.Error("explicit ignore file not applied")
	}
}
