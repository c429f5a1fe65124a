package staticsite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrOutsideRoot marks a request sub-path that escapes the version directory.
var ErrOutsideRoot = errors.New("path resolves outside version directory")

// VersionDir returns the on-disk directory for one version:
// <root>/projects/<projectID>/<label>.
func VersionDir(root string, projectID int64, label string) string {
	return filepath.Join(root, "projects", strconv.FormatInt(projectID, 10), label)
}

// VersionPath is the same layout relative to the static root, as stored in
// the version's file_path column.
func VersionPath(projectID int64, label string) string {
	return filepath.ToSlash(filepath.Join("projects", strconv.FormatInt(projectID, 10), label))
}

// StaticURL is the public canonical path of a version directory.
func StaticURL(projectID int64, label string) string {
	return fmt.Sprintf("/static/projects/%d/%s/", projectID, label)
}

// ResolveWithin joins sub onto root and verifies the cleaned result is still
// lexically contained in root. Same containment rule as archive extraction.
func ResolveWithin(root, sub string) (string, error) {
	root = filepath.Clean(root)
	target := filepath.Join(root, filepath.FromSlash(sub))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return target, nil
}

// SafeLabel reports whether a version label can be used as a single path
// segment under the project directory.
func SafeLabel(label string) bool {
	if label == "" || len(label) > 50 {
		return false
	}
	if label == "." || label == ".." {
		return false
	}
	return !strings.ContainsAny(label, "/\\")
}
