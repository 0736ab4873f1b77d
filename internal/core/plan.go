package core

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"blockpatch/internal/recipe"
)

// Plan expands a recipe into targets. Payloads are read once per patch
// and every problem is reported before any file is touched. Standard input
// is read at most once and shared by every patch that names it.
func Plan(rcp *recipe.Recipe, stdin io.Reader) ([]Target, error) {
	var (
		targets []Target
		input   []byte
		read    bool
	)
	for i := range rcp.Patches {
		p := &rcp.Patches[i]

		if p.PayloadFile == recipe.StdinName && !read {
			data, err := readAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("patch %s: reading payload: %w", p.Name, err)
			}
			input, read = data, true
		}
		payload, err := p.LoadPayload(rcp.Dir, bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", p.Name, err)
		}
		paths, err := p.Targets(rcp.Dir)
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", p.Name, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("patch %s: no files match", p.Name)
		}

		for _, path := range paths {
			// A file that cannot be stat'ed is left for the loader to report.
			ok := true
			if info, err := os.Stat(path); err == nil {
				ok, err = p.Matches(path, info.Size())
				if err != nil {
					return nil, fmt.Errorf("patch %s: %s: %w", p.Name, path, err)
				}
			}
			targets = append(targets, Target{
				Name: p.Name,
				Path: path,
				Job:  p.Job(payload),
				Skip: !ok,
			})
		}
	}
	return targets, nil
}

func readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(r)
}
