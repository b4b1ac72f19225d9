// Package publish uploads extension packages to the Marketplace and removes
// them again.
//
// Publish takes one of two paths: an existing .vsix (PackagePath) whose
// manifest is read from the archive, or a fresh package built from the
// project after an optional version bump. Both paths end in the same
// checks (proposed API, web support) and the same Publisher, which decides
// between create, update and rejecting a duplicate version before making
// any mutating call.
//
// Every collaborator is passed in through Deps so the whole flow can run
// against fakes.
package publish
