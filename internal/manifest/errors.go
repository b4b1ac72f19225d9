package manifest

import "fmt"

// ArchiveOpenError is returned when a package archive cannot be opened as a zip.
type ArchiveOpenError struct {
	Path string
	Err  error
}

func (e *ArchiveOpenError) Error() string {
	return fmt.Sprintf("opening package %s: %v", e.Path, e.Err)
}

func (e *ArchiveOpenError) Unwrap() error { return e.Err }

// ManifestNotFoundError is returned when no extension/package.json entry
// exists in a package archive.
type ManifestNotFoundError struct {
	Path string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("manifest not found in %s", e.Path)
}

// MalformedManifestError is returned when package.json is not valid JSON
// or does not match the expected shape.
type MalformedManifestError struct {
	Path string
	Err  error
}

func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

func (e *MalformedManifestError) Unwrap() error { return e.Err }
