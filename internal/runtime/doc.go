// Package runtime runs external tools (npm, yarn) on behalf of the CLI.
// Output is streamed to the configured writers while also being captured,
// so callers can both forward it to the user and parse it.
package runtime
