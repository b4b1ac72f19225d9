// Package store keeps publisher personal access tokens in the OS keychain.
// The keychain cannot enumerate entries, so the known publisher names are
// mirrored in a small YAML index next to the config file.
package store
