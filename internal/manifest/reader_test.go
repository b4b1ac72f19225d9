package manifest

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeZip creates a zip archive at path with the given entries in order.
func writeZip(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(testPath("valid.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Read(dir)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if m.ID() != "acme.widget" {
		t.Errorf("ID() = %q, want acme.widget", m.ID())
	}
	if m.Describe() != "acme.widget v1.2.3" {
		t.Errorf("Describe() = %q", m.Describe())
	}
	if m.VSCodeEngine() != "^1.80.0" {
		t.Errorf("VSCodeEngine() = %q", m.VSCodeEngine())
	}
	if m.Repository == nil || m.Repository.URL != "https://github.com/acme/widget.git" {
		t.Errorf("Repository = %+v", m.Repository)
	}
}

func TestRead_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(dir)
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
}

func TestReadFromArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.vsix")
	writeZip(t, path, [][2]string{
		{"[Content_Types].xml", "<Types/>"},
		{"extension/README.md", "# widget"},
		{"Extension/Package.JSON", `{"name":"widget","publisher":"acme","version":"2.0.0"}`},
		{"extension/package.json", `{"name":"second","publisher":"acme","version":"9.9.9"}`},
	})

	m, err := ReadFromArchive(path)
	if err != nil {
		t.Fatalf("ReadFromArchive() error = %v", err)
	}
	// The first case-insensitive match wins.
	if m.Name != "widget" || m.Version != "2.0.0" {
		t.Errorf("got %s, want acme.widget v2.0.0", m.Describe())
	}
}

func TestReadFromArchive_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.vsix")
	writeZip(t, path, [][2]string{
		{"package.json", `{}`},
		{"extension/nested/package.json", `{}`},
	})

	_, err := ReadFromArchive(path)
	var notFound *ManifestNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ManifestNotFoundError, got %v", err)
	}
	if notFound.Path != path {
		t.Errorf("Path = %q, want %q", notFound.Path, path)
	}
}

func TestReadFromArchive_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vsix")
	writeZip(t, path, [][2]string{{"extension/package.json", "not json"}})

	_, err := ReadFromArchive(path)
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
}

func TestReadFromArchive_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.vsix")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFromArchive(path)
	var openErr *ArchiveOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected ArchiveOpenError, got %v", err)
	}
}

func TestEntryScanner_Exhausts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.zip")
	writeZip(t, path, [][2]string{{"a", "1"}, {"b", "2"}})

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	s := NewEntryScanner(&zr.Reader)
	var names []string
	for s.Next() {
		names = append(names, s.Entry().Name)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v", names)
	}
	if s.Next() {
		t.Error("Next() after exhaustion returned true")
	}
	if s.Entry() != nil {
		t.Error("Entry() after exhaustion should be nil")
	}
}
