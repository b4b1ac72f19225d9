package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Manifest is the subset of an extension's package.json the CLI acts on.
type Manifest struct {
	Name                  string            `json:"name"`
	Publisher             string            `json:"publisher"`
	Version               string            `json:"version"`
	DisplayName           string            `json:"displayName,omitempty"`
	Description           string            `json:"description,omitempty"`
	Engines               map[string]string `json:"engines,omitempty"`
	Main                  string            `json:"main,omitempty"`
	Browser               string            `json:"browser,omitempty"`
	ExtensionKind         StringList        `json:"extensionKind,omitempty"`
	EnableProposedAPI     bool              `json:"enableProposedApi,omitempty"`
	EnabledAPIProposals   []string          `json:"enabledApiProposals,omitempty"`
	Repository            *Repository       `json:"repository,omitempty"`
	Keywords              []string          `json:"keywords,omitempty"`
	Categories            []string          `json:"categories,omitempty"`
	Icon                  string            `json:"icon,omitempty"`
	License               string            `json:"license,omitempty"`
	Preview               bool              `json:"preview,omitempty"`
	ExtensionDependencies []string          `json:"extensionDependencies,omitempty"`
	ExtensionPack         []string          `json:"extensionPack,omitempty"`
}

// ID returns the extension identity, "publisher.name".
func (m *Manifest) ID() string {
	return m.Publisher + "." + m.Name
}

// Describe returns "publisher.name vX.Y.Z", used in log lines and errors.
func (m *Manifest) Describe() string {
	return fmt.Sprintf("%s v%s", m.ID(), m.Version)
}

// VSCodeEngine returns the engines.vscode constraint, or "" when absent.
func (m *Manifest) VSCodeEngine() string {
	return m.Engines["vscode"]
}

// StringList accepts either a single JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*l = many
	return nil
}

// Repository is the package.json repository field, which may be written as
// a bare URL string or as {"type": "git", "url": "..."}.
type Repository struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Repository) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		r.URL = url
		return nil
	}
	type plain Repository
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("expected repository string or object: %w", err)
	}
	*r = Repository(p)
	return nil
}

// GitHubSlug returns "owner/repo" when the repository points at GitHub.
// Supports https, git+https, ssh and "github:owner/repo" shorthand forms.
func (r *Repository) GitHubSlug() (string, bool) {
	if r == nil || r.URL == "" {
		return "", false
	}
	u := strings.TrimSuffix(strings.TrimSpace(r.URL), ".git")
	u = strings.TrimSuffix(u, "/")

	switch {
	case strings.HasPrefix(u, "github:"):
		u = strings.TrimPrefix(u, "github:")
	case strings.Contains(u, "github.com/"):
		u = u[strings.Index(u, "github.com/")+len("github.com/"):]
	case strings.Contains(u, "github.com:"):
		u = u[strings.Index(u, "github.com:")+len("github.com:"):]
	case !strings.Contains(u, ":") && strings.Count(u, "/") == 1:
		// npm shorthand "owner/repo".
	default:
		return "", false
	}

	parts := strings.Split(u, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}

// Extension kinds recognized by VS Code.
const (
	KindUI        = "ui"
	KindWorkspace = "workspace"
	KindWeb       = "web"
)

// ExtensionKinds returns where the extension can run. An explicit
// extensionKind wins; otherwise main implies workspace and browser implies
// web. A manifest with neither entry point is declarative and runs anywhere.
func (m *Manifest) ExtensionKinds() []string {
	if len(m.ExtensionKind) > 0 {
		return []string(m.ExtensionKind)
	}

	var kinds []string
	if m.Main != "" {
		kinds = append(kinds, KindWorkspace)
	}
	if m.Browser != "" {
		kinds = append(kinds, KindWeb)
	}
	if len(kinds) == 0 {
		kinds = []string{KindWorkspace, KindWeb}
	}
	return kinds
}

// IsWebKind reports whether the extension declares it can run in a browser.
func (m *Manifest) IsWebKind() bool {
	for _, k := range m.ExtensionKinds() {
		if k == KindWeb {
			return true
		}
	}
	return false
}
