// Package storage saves exported worksheets to disk or to an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Object is one exported file.
type Object struct {
	Name        string
	ContentType string
	Data        []byte
	// Metadata is attached to the stored object where the backend supports it.
	Metadata map[string]string
}

// Saver stores an object and returns where it ended up.
type Saver interface {
	Save(ctx context.Context, obj Object) (string, error)
}

// Local writes objects under a directory.
type Local struct {
	Dir string
}

// NewLocal creates a saver for dir.
func NewLocal(dir string) *Local {
	return &Local{Dir: dir}
}

// Save writes obj to Dir/obj.Name, creating directories as needed.
func (l *Local) Save(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := cleanName(obj.Name)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(l.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return dst, nil
}

// cleanName rejects names that would escape the target directory.
func cleanName(name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." || path.IsAbs(clean) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return clean, nil
}

// ObjectKey joins a key prefix and an object name with a single slash.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
