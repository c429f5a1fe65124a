package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeEntry marks an archive entry whose resolved path would land
// outside the destination root (absolute path or ".." traversal).
var ErrUnsafeEntry = errors.New("archive entry resolves outside destination")

// Extract unpacks the zip archive at src into dest, preserving each entry's
// relative path and creating intermediate directories as needed. Entries are
// processed sequentially with streaming I/O. Any unsafe or failing entry
// aborts the whole extraction; the caller is responsible for discarding the
// partially populated destination tree.
func Extract(ctx context.Context, src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	destRoot := filepath.Clean(dest)
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractEntry(f, destRoot); err != nil {
			return fmt.Errorf("entry %q: %w", f.Name, err)
		}
	}

	return nil
}

func extractEntry(f *zip.File, destRoot string) error {
	target, err := resolveEntryPath(destRoot, f.Name)
	if err != nil {
		return err
	}

	if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	// Archives may carry files without explicit directory entries.
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	w, err := os.Create(target)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// resolveEntryPath joins name onto destRoot and verifies the cleaned result
// is still lexically inside destRoot (zip-slip protection).
func resolveEntryPath(destRoot, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", ErrUnsafeEntry
	}

	target := filepath.Join(destRoot, filepath.FromSlash(name))
	if target != destRoot && !strings.HasPrefix(target, destRoot+string(os.PathSeparator)) {
		return "", ErrUnsafeEntry
	}

	return target, nil
}
