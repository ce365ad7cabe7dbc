package projectr

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Decode parses a container from r.
//
// Blocks are located by a single forward scan. When a block header carries a
// "# LINES:" field (every container this package writes does), exactly that
// many content lines are taken, so content containing marker-shaped lines
// cannot desynchronize the scan. Headers without a line count fall back to
// marker scanning: content runs from the first line after the header's
// contiguous leading-comment run (plus one blank separator, if present) to
// the block's own "# END OF FILE:" marker, or to the next block header when
// the marker is missing, with trailing blank lines trimmed.
//
// Decode returns ErrEmptyArchive if the input contains no "# FILE:" lines.
func Decode(r io.Reader) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := splitLines(data)

	a := &Archive{}
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], filePrefix) {
			i++
			continue
		}
		if len(a.Files) == 0 {
			a.Header = parseGlobalHeader(lines[:i])
		}
		f, next := parseBlock(lines, i)
		a.Files = append(a.Files, f)
		i = next
	}
	if len(a.Files) == 0 {
		return nil, ErrEmptyArchive
	}
	return a, nil
}

// DecodeFile parses the container at path.
// It returns ErrNotFound if the container file does not exist.
func DecodeFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: container %q", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// parseBlock parses one file block starting at the header line hi and
// returns the decoded file plus the line index to resume scanning at.
func parseBlock(lines []string, hi int) (ArchiveFile, int) {
	f := ArchiveFile{
		Path:  strings.TrimSpace(strings.TrimPrefix(lines[hi], filePrefix)),
		Index: -1,
	}

	// Consume the rest of the block header: every contiguous line starting
	// with the comment marker, including the closing rule.
	lineCount := -1
	j := hi + 1
	for j < len(lines) && strings.HasPrefix(lines[j], commentMarker) {
		switch {
		case strings.HasPrefix(lines[j], sizePrefix):
			v := strings.TrimSuffix(strings.TrimPrefix(lines[j], sizePrefix), " bytes")
			if n, ok := parseDisplayInt(v); ok {
				f.SizeBytes = n
			}
		case strings.HasPrefix(lines[j], linesPrefix):
			if n, ok := parseDisplayInt(strings.TrimPrefix(lines[j], linesPrefix)); ok && n >= 0 {
				lineCount = int(n)
			}
		case strings.HasPrefix(lines[j], indexPrefix):
			if n, ok := parseDisplayInt(strings.TrimPrefix(lines[j], indexPrefix)); ok {
				f.Index = int(n)
			}
		}
		j++
	}
	// One blank separator between header and content.
	if j < len(lines) && lines[j] == "" {
		j++
	}

	if lineCount >= 0 {
		end := j + lineCount
		if end > len(lines) {
			end = len(lines)
		}
		f.Lines = lines[j:end]
		// Step over the decorative blank, footer marker, and closing rule.
		k := end
		if k < len(lines) && lines[k] == "" {
			k++
		}
		if k < len(lines) && strings.HasPrefix(lines[k], footerPrefix) {
			k++
		}
		if k < len(lines) && lines[k] == blockRule {
			k++
		}
		return f, k
	}

	// Marker-scan fallback for headers without a line count.
	bound := len(lines)
	for k := j; k < len(lines); k++ {
		if strings.HasPrefix(lines[k], filePrefix) {
			bound = k
			break
		}
	}
	end := bound
	for k := j; k < bound; k++ {
		if lines[k] == footerPrefix+f.Path {
			end = k
			break
		}
	}
	f.Lines = trimTrailingBlank(lines[j:end])
	return f, bound
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
