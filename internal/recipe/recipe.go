// Package recipe reads batches of block patches from a YAML file and
// resolves their targets and payloads.
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"blockpatch/pkg/block"
)

// FileNames are the recipe names Discover looks for, in order.
var FileNames = []string{".blockpatch.yml", ".blockpatch.yaml"}

// Recipe is the top-level recipe document.
type Recipe struct {
	Patches []Patch `yaml:"patches"`

	// Dir is the directory relative paths in the recipe resolve against.
	Dir string `yaml:"-"`
}

// Patch is one entry of a recipe: which files to patch, between which
// markers, with what payload.
type Patch struct {
	Name    string   `yaml:"name"`
	File    string   `yaml:"file"`
	Files   []string `yaml:"files"`
	Exclude []string `yaml:"exclude"`
	When    string   `yaml:"when"`

	Start string `yaml:"start"`
	End   string `yaml:"end"`

	// Payload is a pointer so an explicitly empty payload can be told
	// apart from a missing one.
	Payload     *string `yaml:"payload"`
	PayloadFile string  `yaml:"payload_file"`
	Block       string  `yaml:"block"`

	when *vm.Program
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving recipe directory: %w", err)
	}
	r.Dir = abs
	return r, nil
}

// Parse decodes and validates a recipe document. Dir is left empty.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks every patch and returns all problems at once.
func (r *Recipe) Validate() error {
	if len(r.Patches) == 0 {
		return errors.New("recipe has no patches")
	}
	var errs []error
	seen := make(map[string]bool, len(r.Patches))
	for i := range r.Patches {
		p := &r.Patches[i]
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		} else if seen[p.Name] {
			errs = append(errs, fmt.Errorf("patch %s: duplicate name", label))
		}
		seen[p.Name] = true
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("patch %s: %w", label, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Patch) validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if p.Start == "" {
		errs = append(errs, errors.New("start marker is required"))
	}
	if p.End == "" {
		errs = append(errs, errors.New("end marker is required"))
	}
	if p.File == "" && len(p.Files) == 0 {
		errs = append(errs, errors.New("one of file or files is required"))
	}
	switch {
	case p.Payload != nil && p.PayloadFile != "":
		errs = append(errs, errors.New("payload and payload_file are mutually exclusive"))
	case p.Payload == nil && p.PayloadFile == "":
		errs = append(errs, errors.New("one of payload or payload_file is required"))
	}
	if p.Block != "" && p.PayloadFile == "" {
		errs = append(errs, errors.New("block requires payload_file"))
	}
	if err := p.compileWhen(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Job builds the block job for this patch with the given payload.
func (p *Patch) Job(payload block.Payload) block.Job {
	return block.Job{
		Start:   block.Marker(p.Start),
		End:     block.Marker(p.End),
		Payload: payload,
	}
}

// Discover walks up the directory tree from startDir looking for a recipe
// file. It stops at the repository root (a directory holding .git) or the
// filesystem root. Returns "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
