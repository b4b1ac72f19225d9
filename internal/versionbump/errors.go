package versionbump

import "fmt"

// UnsupportedVersionError is returned for npm version keywords that
// produce pre-release or git-derived versions.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("not supported: %s", e.Version)
}

// InvalidVersionError is returned when the requested version is neither a
// release keyword nor a valid semantic version.
type InvalidVersionError struct {
	Version string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %s", e.Version)
}

// ExternalCommandError wraps a failure of the version command itself.
type ExternalCommandError struct {
	Command string
	Err     error
}

func (e *ExternalCommandError) Error() string {
	return fmt.Sprintf("running %s: %v", e.Command, e.Err)
}

func (e *ExternalCommandError) Unwrap() error { return e.Err }
