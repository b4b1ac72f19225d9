// Package ignore decides which project files end up in an extension
// package. Rules come from a built-in default list followed by the
// project's .vscodeignore (or an explicit ignore file); they are doublestar
// globs over slash-separated paths relative to the project root, and the
// last matching rule wins.
package ignore
