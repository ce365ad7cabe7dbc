package projectr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Collect walks root and returns the manifest of files admitted by the
// include/exclude rules and the size cap.
//
// Include patterns run against the file basename, exclude patterns against
// the slash-separated relative path; both are regular expressions. A file is
// collected iff at least one include pattern matches (when any are set), no
// exclude pattern matches, and its size does not exceed the cap. Defaults
// are defaultIncludePatterns, defaultExcludePatterns, and
// [DefaultMaxFileSize].
//
// Entries are sorted bytewise by relative path, so collecting the same tree
// with the same rules is deterministic.
//
// Collect returns ErrNotFound if root does not exist or is not a directory.
func Collect(root string, opts ...CollectOption) (*Manifest, error) {
	cfg := collectConfig{
		includes:    defaultIncludePatterns(),
		excludes:    defaultExcludePatterns(),
		maxFileSize: DefaultMaxFileSize,
		logger:      nopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: source directory %q", ErrNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrNotFound, root)
	}

	rules, err := compileRules(cfg)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var entries []FileEntry
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if !rules.admit(d.Name(), rel, fi.Size()) {
			return nil
		}
		cfg.logger.Debug("collected", "path", rel, "bytes", fi.Size())
		entries = append(entries, FileEntry{RelPath: rel, AbsPath: p, SizeBytes: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })

	m := &Manifest{
		Name:    filepath.Base(absRoot),
		Root:    absRoot,
		Entries: entries,
	}
	cfg.logger.Info("collection complete", "root", absRoot, "files", len(entries), "bytes", m.TotalBytes())
	return m, nil
}
