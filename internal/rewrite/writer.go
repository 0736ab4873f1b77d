package rewrite

import (
	"os"
	"path/filepath"

	"blockpatch/pkg/block"
)

const defaultPerm os.FileMode = 0o644

// WriteFile replaces the content of path with doc. The new content is
// written to a temporary file in the same directory, synced, and renamed
// over the target, so readers see either the old or the new file. On
// failure the temporary file is removed and the target is untouched.
func WriteFile(path string, doc block.Document) error {
	dest, err := resolve(path)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := writeAtomic(dest, doc); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// resolve follows symlinks so the link target is replaced, not the link.
// A path that does not exist yet is returned unchanged.
func resolve(path string) (string, error) {
	dest, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	return dest, nil
}

func writeAtomic(dest string, doc block.Document) error {
	perm := defaultPerm
	if info, err := os.Stat(dest); err == nil {
		perm = info.Mode().Perm()
		// The rename only needs a writable directory; a read-only target
		// must still be refused.
		f, err := os.OpenFile(dest, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		_ = f.Close()
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".blockpatch-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Best effort: persist the rename itself.
	_ = syncDir(dir)
	return nil
}
