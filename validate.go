package projectr

import (
	"fmt"
	"path"
	"strings"
)

func validateManifest(m *Manifest) error {
	if m == nil {
		return fmt.Errorf("%w: manifest is nil", ErrValidation)
	}
	seen := make(map[string]struct{}, len(m.Entries))
	for i, e := range m.Entries {
		if err := validateContainerPath(e.RelPath); err != nil {
			return fmt.Errorf("%w: entry %d path: %v", ErrValidation, i, err)
		}
		if _, ok := seen[e.RelPath]; ok {
			return fmt.Errorf("%w: duplicate path %q", ErrValidation, e.RelPath)
		}
		seen[e.RelPath] = struct{}{}
		if e.SizeBytes < 0 {
			return fmt.Errorf("%w: entry %q has negative size", ErrValidation, e.RelPath)
		}
	}
	return nil
}

// validateContainerPath accepts only normalized, slash-separated relative
// paths that stay inside the root they are joined to.
func validateContainerPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must not be absolute")
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("path must use forward slashes")
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("path must be normalized: %q", clean)
	}
	if clean == "." {
		return fmt.Errorf("path must not be current directory")
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path must not escape")
	}
	return nil
}
