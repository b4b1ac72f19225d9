package ignore

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFileName is the ignore file looked up in the project root.
const DefaultFileName = ".vscodeignore"

// DefaultPatterns are always applied before the project's own rules.
var DefaultPatterns = []string{
	".vscodeignore",
	"package-lock.json",
	"npm-debug.log",
	"yarn.lock",
	"yarn-error.log",
	"npm-shrinkwrap.json",
	".editorconfig",
	".npmrc",
	".yarnrc",
	".gitattributes",
	"*.todo",
	"tslint.yaml",
	".eslintrc*",
	".babelrc*",
	".prettierrc*",
	".cz-config.js",
	".commitlintrc*",
	"webpack.config.js",
	"ISSUE_TEMPLATE.md",
	"CONTRIBUTING.md",
	"PULL_REQUEST_TEMPLATE.md",
	"CODE_OF_CONDUCT.md",
	".github/**",
	".travis.yml",
	"appveyor.yml",
	"**/.git/**",
	"**/*.vsix",
	"**/.DS_Store",
	"**/*.vsixmanifest",
	"**/.vscode-test/**",
	"**/.vscode-test-web/**",
}

// alwaysIncluded files can never be excluded by a rule.
var alwaysIncluded = map[string]bool{
	"package.json": true,
}

// Rule is a single parsed ignore line.
type Rule struct {
	Pattern string
	Negate  bool
}

// Matcher evaluates ignore rules in order.
type Matcher struct {
	rules []Rule
}

// New builds a Matcher from pattern lines. Blank lines and lines starting
// with '#' are skipped. A trailing '/' matches everything under the
// directory; a leading '!' re-includes matching paths. A pattern whose last
// segment has no '*' also matches everything below it, so "src" covers
// "src/extension.ts".
func New(lines []string) (*Matcher, error) {
	m := &Matcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := Rule{}
		if strings.HasPrefix(line, "!") {
			r.Negate = true
			line = strings.TrimSpace(line[1:])
		}
		line = strings.TrimPrefix(line, "./")
		line = strings.TrimPrefix(line, "/")
		if strings.HasSuffix(line, "/") {
			line += "**"
		}
		if !doublestar.ValidatePattern(line) {
			return nil, fmt.Errorf("invalid ignore pattern %q", line)
		}
		r.Pattern = line
		m.rules = append(m.rules, r)

		if !strings.Contains(path.Base(line), "*") {
			m.rules = append(m.rules, Rule{Pattern: line + "/**", Negate: r.Negate})
		}
	}
	return m, nil
}

// Load builds a Matcher for a project: the default rules, then either the
// explicit ignoreFile (which must exist) or <root>/.vscodeignore when present.
func Load(root, ignoreFile string) (*Matcher, error) {
	lines := append([]string(nil), DefaultPatterns...)

	file := ignoreFile
	if file == "" {
		file = filepath.Join(root, DefaultFileName)
	}

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		fileLines, err := readLines(data)
		if err != nil {
			return nil, fmt.Errorf("reading ignore file %s: %w", file, err)
		}
		lines = append(lines, fileLines...)
	case os.IsNotExist(err) && ignoreFile == "":
		// No .vscodeignore is fine.
	default:
		return nil, fmt.Errorf("reading ignore file %s: %w", file, err)
	}

	return New(lines)
}

// Rules returns the parsed rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Ignored reports whether the slash-separated relative path is excluded.
func (m *Matcher) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	if alwaysIncluded[rel] {
		return false
	}

	ignored := false
	for _, r := range m.rules {
		if r.Negate == !ignored {
			// A rule that cannot change the current verdict is skipped.
			continue
		}
		if doublestar.MatchUnvalidated(r.Pattern, rel) {
			ignored = !r.Negate
		}
	}
	return ignored
}

func readLines(data []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
