package packager

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vsxtools/vsce/internal/ignore"
)

// ListFiles returns the slash-separated paths, relative to opts.Cwd, that a
// package built with opts would contain. The result is sorted.
func (p *Packager) ListFiles(ctx context.Context, opts Options) ([]string, error) {
	matcher, err := ignore.Load(opts.Cwd, opts.IgnoreFile)
	if err != nil {
		return nil, err
	}

	pm := opts.packageManager()
	deps, err := p.dependencyDirs(ctx, opts.Cwd, pm)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(opts.Cwd, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(opts.Cwd, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel == nodeModules && deps == nil {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if strings.HasPrefix(rel, nodeModules+"/") && !inDependencies(rel, deps) {
			return nil
		}
		if matcher.Ignored(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", opts.Cwd, err)
	}

	sort.Strings(files)
	return files, nil
}
