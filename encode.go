package projectr

import (
	"bufio"
	"io"
	"os"
	"time"
)

// Encode writes m to w as a text container.
//
// The container is written in one streaming pass: global header, table of
// contents, one block per manifest entry in manifest order, then the summary
// trailer. Each block header carries the exact content line count, which the
// decoder uses to delimit the block.
//
// A file that cannot be read does not abort the encoding: its block content
// is replaced by an inline "# ERROR READING FILE" marker, the failure is
// recorded in the report, and encoding continues with the next entry.
//
// The manifest is validated first; duplicate or unsafe relative paths return
// ErrValidation. Write failures on w abort the encoding and may leave a
// partial container behind.
func Encode(w io.Writer, m *Manifest, opts ...EncodeOption) (*EncodeReport, error) {
	cfg := encodeConfig{
		generatedAt: time.Now(),
		logger:      nopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateManifest(m); err != nil {
		return nil, err
	}

	name := m.Name
	if name == "" {
		name = "project"
	}
	output := cfg.outputLabel
	if output == "" {
		output = "-"
	}

	bw := bufio.NewWriter(w)
	total := len(m.Entries)

	if err := writeGlobalHeader(bw, name, cfg.generatedAt.UTC().Format(timestampLayout), total, m.Root); err != nil {
		return nil, err
	}
	if err := writeTableOfContents(bw, m.Entries); err != nil {
		return nil, err
	}

	report := &EncodeReport{}
	for i, e := range m.Entries {
		lines, readErr := readContentLines(e.AbsPath)
		if readErr != nil {
			cfg.logger.Warn("unreadable file", "index", i+1, "total", total, "path", e.RelPath, "err", readErr)
			report.ReadFailures = append(report.ReadFailures, ReadFailure{RelPath: e.RelPath, Err: readErr})
			lines = []string{readErrPrefix + readErr.Error()}
		} else {
			cfg.logger.Info("serializing", "index", i+1, "total", total, "path", e.RelPath, "bytes", e.SizeBytes)
		}

		if err := writeBlockHeader(bw, e, len(lines), i+1); err != nil {
			return nil, err
		}
		for _, line := range lines {
			if _, err := bw.WriteString(line); err != nil {
				return nil, err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return nil, err
			}
		}
		if err := writeBlockFooter(bw, e.RelPath); err != nil {
			return nil, err
		}
		report.FilesWritten++
		report.TotalBytes += e.SizeBytes
	}

	if err := writeTrailer(bw, total, output); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	cfg.logger.Info("serialization complete", "files", total, "output", output)
	return report, nil
}

// EncodeFile encodes m to the file at path, creating or truncating it.
// The destination handle is closed on every return path.
func EncodeFile(path string, m *Manifest, opts ...EncodeOption) (*EncodeReport, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	report, err := Encode(f, m, append(opts, WithOutputLabel(path))...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// readContentLines reads a file as text lines: CRLF is tolerated and the
// final newline, if any, is not significant.
func readContentLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(data), nil
}
