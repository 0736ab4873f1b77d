package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/gobwas/glob"
)

// Targets returns the files this patch applies to, resolved against
// baseDir, deduplicated and sorted. A literal file is returned even when
// it does not exist so the loader reports it; glob patterns only yield
// existing regular files.
func (p *Patch) Targets(baseDir string) ([]string, error) {
	excludes, err := compileExcludes(p.Exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || isExcluded(excludes, baseDir, path) {
			return
		}
		seen[path] = true
		out = append(out, path)
	}

	if p.File != "" {
		add(resolvePath(baseDir, p.File))
	}
	for _, pattern := range p.Files {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid files pattern %q", pattern)
		}
		matches, err := doublestar.Glob(os.DirFS(baseDir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(filepath.Join(baseDir, filepath.FromSlash(m)))
		}
	}

	sort.Strings(out)
	return out, nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// isExcluded matches path, relative to baseDir with forward slashes, and
// its base name against the exclude globs.
func isExcluded(globs []glob.Glob, baseDir, path string) bool {
	if len(globs) == 0 {
		return false
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Env is the data a when condition is evaluated against.
type Env struct {
	Path string `expr:"path"`
	Base string `expr:"base"`
	Ext  string `expr:"ext"`
	Size int64  `expr:"size"`
}

func (p *Patch) compileWhen() error {
	if p.When == "" || p.when != nil {
		return nil
	}
	prg, err := expr.Compile(p.When, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("invalid when condition: %w", err)
	}
	p.when = prg
	return nil
}

// Matches reports whether the patch's when condition holds for the file
// at path with the given size. An empty condition always holds.
func (p *Patch) Matches(path string, size int64) (bool, error) {
	if p.When == "" {
		return true, nil
	}
	if err := p.compileWhen(); err != nil {
		return false, err
	}
	env := Env{
		Path: filepath.ToSlash(path),
		Base: filepath.Base(path),
		Ext:  filepath.Ext(path),
		Size: size,
	}
	out, err := expr.Run(p.when, env)
	if err != nil {
		return false, fmt.Errorf("evaluating when condition: %w", err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
