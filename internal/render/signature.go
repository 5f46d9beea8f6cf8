package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ResolveSignaturePath makes a signature path usable. A leading "/" marks an
// absolute path, anything else is relative to baseDir.
func ResolveSignaturePath(p, baseDir string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "/") {
		return p
	}
	return filepath.Join(baseDir, p)
}

// ExecutableDir returns the directory the running binary lives in
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// SignatureDataURI loads an image and inlines it as a data URI, so the
// document does not depend on the converter's file access rules.
func SignatureDataURI(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("signature %s is not an image (detected %s)", path, mtype.String())
	}

	return dataURI(mtype.String(), data), nil
}
