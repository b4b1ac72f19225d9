// Package config manages user-level settings stored at ~/.vsce/config.yaml.
// Every key can be overridden with a VSCE_-prefixed environment variable,
// e.g. VSCE_PAT or VSCE_GALLERY_URL.
package config
