// Package packager builds .vsix packages from an extension project.
//
// Packing selects files with the ignore rules, decides which node_modules
// folders ship by asking the package manager for production dependencies,
// rewrites relative links in README.md and CHANGELOG.md so they resolve on
// the Marketplace, and writes a deterministic zip: entries in sorted order
// with fixed timestamps, so the same input always yields the same bytes.
package packager
