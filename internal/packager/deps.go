package packager

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const nodeModules = "node_modules"

// dependencyDirs returns the slash-separated node_modules folders, relative
// to cwd, that hold production dependencies. A nil result with a nil error
// means node_modules is excluded entirely.
func (p *Packager) dependencyDirs(ctx context.Context, cwd, pm string) ([]string, error) {
	if pm == PackageManagerNone {
		return nil, nil
	}
	if _, err := os.Stat(filepath.Join(cwd, nodeModules)); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking %s: %w", nodeModules, err)
	}

	switch pm {
	case PackageManagerNPM:
		return p.npmDependencies(ctx, cwd)
	case PackageManagerYarn:
		return p.yarnDependencies(ctx, cwd)
	default:
		return nil, fmt.Errorf("unknown package manager %q: supported values are %q, %q and %q",
			pm, PackageManagerNPM, PackageManagerYarn, PackageManagerNone)
	}
}

// npmDependencies parses `npm list --parseable`, which prints one absolute
// directory per line, the project itself first.
func (p *Packager) npmDependencies(ctx context.Context, cwd string) ([]string, error) {
	out, err := p.Runner.Run(ctx, cwd, "npm", "list", "--production", "--parseable", "--depth=99999", "--loglevel=error")
	if err != nil {
		return nil, fmt.Errorf("listing npm dependencies: %w", err)
	}

	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cwd, err)
	}

	var dirs []string
	sc := bufio.NewScanner(strings.NewReader(out.Stdout))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rel, err := filepath.Rel(root, line)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	return dirs, sc.Err()
}

type yarnTree struct {
	Name     string     `json:"name"`
	Children []yarnTree `json:"children"`
	Shadow   bool       `json:"shadow"`
}

type yarnList struct {
	Type string `json:"type"`
	Data struct {
		Trees []yarnTree `json:"trees"`
	} `json:"data"`
}

// yarnDependencies parses `yarn list --json`. Yarn hoists packages, so the
// top-level trees map directly onto node_modules/<name>.
func (p *Packager) yarnDependencies(ctx context.Context, cwd string) ([]string, error) {
	out, err := p.Runner.Run(ctx, cwd, "yarn", "list", "--prod", "--json", "--silent")
	if err != nil {
		return nil, fmt.Errorf("listing yarn dependencies: %w", err)
	}

	var dirs []string
	sc := bufio.NewScanner(strings.NewReader(out.Stdout))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		var l yarnList
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil || l.Type != "tree" {
			continue
		}
		for _, t := range l.Data.Trees {
			if t.Shadow {
				continue
			}
			if name := yarnPackageName(t.Name); name != "" {
				dirs = append(dirs, nodeModules+"/"+name)
			}
		}
	}
	return dirs, sc.Err()
}

// yarnPackageName strips the version from "name@1.0.0" or "@scope/name@1.0.0".
func yarnPackageName(s string) string {
	i := strings.LastIndex(s, "@")
	if i <= 0 {
		return s
	}
	return s[:i]
}

// inDependencies reports whether rel lies under one of dirs.
func inDependencies(rel string, dirs []string) bool {
	for _, d := range dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}
