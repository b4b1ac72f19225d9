// Package versionbump increments an extension's version before packaging
// by delegating to `npm version`, which updates package.json and, unless
// told otherwise, creates a git commit and tag.
package versionbump
