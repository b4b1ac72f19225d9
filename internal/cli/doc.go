// Package cli defines the Cobra command tree for the vsce CLI. Each file in
// this package registers one top-level command (package, publish, login,
// etc.) with the root command. Commands only parse flags and wire
// collaborators; packaging and publishing live in internal/packager and
// internal/publish.
package cli
