package manifest

import (
	"archive/zip"
	"fmt"
	"strings"
)

// ArchiveEntry is the fixed location of the manifest inside a .vsix package.
const ArchiveEntry = "extension/package.json"

// EntryScanner walks the entries of a zip archive one at a time. It is
// finite and cannot be restarted: once Next returns false the scanner is
// exhausted.
type EntryScanner struct {
	files []*zip.File
	pos   int
	cur   *zip.File
}

// NewEntryScanner returns a scanner positioned before the first entry of r.
func NewEntryScanner(r *zip.Reader) *EntryScanner {
	return &EntryScanner{files: r.File}
}

// Next advances to the next entry. It returns false at the end of the archive.
func (s *EntryScanner) Next() bool {
	if s.pos >= len(s.files) {
		s.cur = nil
		return false
	}
	s.cur = s.files[s.pos]
	s.pos++
	return true
}

// Entry returns the current entry. Only valid after Next returned true.
func (s *EntryScanner) Entry() *zip.File {
	return s.cur
}

// isManifestEntry matches extension/package.json case-insensitively.
func isManifestEntry(name string) bool {
	return strings.EqualFold(name, ArchiveEntry)
}

// ReadFromArchive extracts the manifest of a packaged extension. Only the
// first matching entry is read; scanning stops as soon as it is found.
func ReadFromArchive(path string) (*Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveOpenError{Path: path, Err: err}
	}
	defer zr.Close()

	s := NewEntryScanner(&zr.Reader)
	for s.Next() {
		entry := s.Entry()
		if !isManifestEntry(entry.Name) {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", entry.Name, path, err)
		}
		defer rc.Close()

		return decode(rc, path+"!"+entry.Name)
	}

	return nil, &ManifestNotFoundError{Path: path}
}
