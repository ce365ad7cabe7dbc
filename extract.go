package projectr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Extract recreates each decoded file block as a real file under outRoot,
// creating intermediate directories as needed.
//
// Conflicts with existing files are resolved per file by the configured
// [ConflictPolicy], evaluated atomically with an exclusive create: under
// ConflictSkip (the default) the existing file is left untouched and
// recorded in the report, under ConflictOverwrite it is replaced, and under
// ConflictFail the extraction stops with ErrExists. A skipped file never
// aborts the batch.
//
// Every block path is validated before any write: absolute, backslashed,
// unnormalized, or escaping paths abort the whole extraction with
// ErrValidation, so a hostile container cannot write outside outRoot.
func (a *Archive) Extract(outRoot string, opts ...ExtractOption) (*ExtractReport, error) {
	cfg := extractConfig{
		onConflict: ConflictSkip,
		logger:     nopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for i, f := range a.Files {
		if err := validateContainerPath(f.Path); err != nil {
			return nil, fmt.Errorf("%w: block %d path: %v", ErrValidation, i+1, err)
		}
	}

	report := &ExtractReport{}
	total := len(a.Files)
	for i, f := range a.Files {
		target := filepath.Join(outRoot, filepath.FromSlash(f.Path))
		if dir := filepath.Dir(target); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		written, err := writeExtracted(target, f.Content(), cfg.onConflict)
		if err != nil {
			return nil, err
		}
		if !written {
			cfg.logger.Warn("exists, skipping", "index", i+1, "total", total, "path", f.Path)
			report.Skipped = append(report.Skipped, f.Path)
			continue
		}
		cfg.logger.Info("extracting", "index", i+1, "total", total, "path", f.Path)
		report.FilesWritten++
	}
	cfg.logger.Info("extraction complete", "root", outRoot, "files", report.FilesWritten, "skipped", len(report.Skipped))
	return report, nil
}

// writeExtracted writes content to target honoring the conflict policy.
// The create is exclusive so the existence check and the write are a single
// step. The handle is closed on every return path.
func writeExtracted(target, content string, policy ConflictPolicy) (bool, error) {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return false, err
		}
		switch policy {
		case ConflictSkip:
			return false, nil
		case ConflictFail:
			return false, fmt.Errorf("%w: %s", ErrExists, target)
		case ConflictOverwrite:
			f, err = os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return false, err
			}
		default:
			return false, fmt.Errorf("%w: unknown conflict policy %d", ErrValidation, policy)
		}
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return false, werr
	}
	if cerr != nil {
		return false, cerr
	}
	return true, nil
}
