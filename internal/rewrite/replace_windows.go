//go:build windows

package rewrite

import "golang.org/x/sys/windows"

// osReplace uses MoveFileEx with REPLACE_EXISTING|WRITE_THROUGH.
func osReplace(tmpPath, dest string) error {
	from, err := windows.UTF16PtrFromString(tmpPath)
	if err != nil {
		return err
	}
	to, err := windows.UTF16PtrFromString(dest)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}

// syncDir is a no-op; directories cannot be fsynced on Windows.
func syncDir(dir string) error { return nil }
