package publish

import (
	"fmt"
	"regexp"

	"github.com/vsxtools/vsce/internal/branding"
)

// InvalidOptionsError reports a combination of options that cannot be used together.
type InvalidOptionsError struct {
	Message string
}

func (e *InvalidOptionsError) Error() string {
	return e.Message
}

// ProposedAPINotAllowedError is returned for manifests with enableProposedApi.
type ProposedAPINotAllowedError struct {
	ID string
}

func (e *ProposedAPINotAllowedError) Error() string {
	return fmt.Sprintf("%s uses proposed API (enableProposedApi: true) and can't be published to the Marketplace", e.ID)
}

// WebExtensionNotSupportedError is returned when a web publish is requested
// for an extension that is not web kind or not allowed as a web extension.
type WebExtensionNotSupportedError struct {
	ID     string
	Reason string
}

func (e *WebExtensionNotSupportedError) Error() string {
	return fmt.Sprintf("%s can't be published to the Marketplace as a web extension: %s", e.ID, e.Reason)
}

// DuplicateVersionError is returned when the version being published
// already exists. Published versions are immutable.
type DuplicateVersionError struct {
	ID      string
	Version string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("%s v%s already exists", e.ID, e.Version)
}

// PublishError wraps a failed gallery operation.
type PublishError struct {
	Op   string
	Err  error
	Hint string
}

func (e *PublishError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	if e.Hint != "" {
		msg += "\n\n" + e.Hint
	}
	return msg
}

func (e *PublishError) Unwrap() error { return e.Err }

// AbortedError is returned when the user declines an unpublish.
type AbortedError struct{}

func (e *AbortedError) Error() string {
	return "aborted"
}

var invalidResource = regexp.MustCompile(`Invalid Resource`)

// galleryError wraps err as a *PublishError. Failures that look like an
// expired token get a hint on how to get a new one.
func galleryError(op string, err error) *PublishError {
	pe := &PublishError{Op: op, Err: err}
	if invalidResource.MatchString(err.Error()) {
		pe.Hint = "You're likely using an expired Personal Access Token, please get a new PAT.\nMore info: " + branding.PATHelpURL()
	}
	return pe
}
