// Package manifest reads and validates VS Code extension manifests
// (package.json). A manifest can be read from a project directory or from
// the extension/package.json entry of a packaged .vsix archive.
package manifest
