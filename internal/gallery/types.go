package gallery

import "time"

// PublishedExtension is the Marketplace record of an extension.
type PublishedExtension struct {
	ExtensionID   string             `json:"extensionId"`
	ExtensionName string             `json:"extensionName"`
	DisplayName   string             `json:"displayName"`
	Publisher     PublisherRef       `json:"publisher"`
	Versions      []ExtensionVersion `json:"versions"`
}

// HasVersion reports whether version has already been published.
func (e *PublishedExtension) HasVersion(version string) bool {
	if e == nil {
		return false
	}
	for _, v := range e.Versions {
		if v.Version == version {
			return true
		}
	}
	return false
}

// PublisherRef identifies the owner of an extension.
type PublisherRef struct {
	PublisherID   string `json:"publisherId,omitempty"`
	PublisherName string `json:"publisherName"`
	DisplayName   string `json:"displayName,omitempty"`
}

// ExtensionVersion is one entry of an extension's version history.
type ExtensionVersion struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Publisher is the Marketplace record of a publisher.
type Publisher struct {
	PublisherID   string `json:"publisherId"`
	PublisherName string `json:"publisherName"`
	DisplayName   string `json:"displayName"`
}
