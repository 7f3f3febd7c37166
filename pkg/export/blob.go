package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const maxNameAttempts = 1000

// writeBlob stages text in a temporary file inside dir and moves it to
// target. The temporary handle is always closed, and the temporary file is
// removed unless the move succeeded.
func writeBlob(dir, target, text string, overwrite bool) (err error) {
	blob, err := os.CreateTemp(dir, ".hotelconfig-*.part")
	if err != nil {
		return fmt.Errorf("export: create blob: %w", err)
	}

	committed := false
	defer func() {
		if closeErr := blob.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) && err == nil {
			err = fmt.Errorf("export: close blob: %w", closeErr)
		}
		if !committed {
			_ = os.Remove(blob.Name())
		}
	}()

	if _, err := blob.WriteString(text); err != nil {
		return fmt.Errorf("export: write blob: %w", err)
	}
	if err := blob.Sync(); err != nil {
		return fmt.Errorf("export: sync blob: %w", err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("export: close blob: %w", err)
	}

	if !overwrite {
		if _, statErr := os.Stat(target); statErr == nil {
			return fmt.Errorf("export: %s already exists", target)
		}
	}
	if err := os.Rename(blob.Name(), target); err != nil {
		return fmt.Errorf("export: move blob to %s: %w", target, err)
	}
	committed = true
	return nil
}

// availablePath returns dir/name, or the first free "name (n).ext" variant.
func availablePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
		return candidate, nil
	} else if err != nil {
		return "", fmt.Errorf("export: stat %s: %w", candidate, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; n < maxNameAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("export: stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("export: no free file name for %s in %s", name, dir)
}
