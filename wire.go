package projectr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line-level vocabulary of the container format. Rule lines are 80 characters
// wide. Block header and footer lines all start with the comment marker "#";
// the decoder relies on that to skip past a block header in one pass.
const (
	ruleWidth = 80

	titleLabel     = "PROJECT SERIALIZATION: "
	generatedLabel = "Generated: "
	totalLabel     = "Total files: "
	sourceLabel    = "Source directory: "
	tocHeading     = "TABLE OF CONTENTS"

	commentMarker = "#"
	filePrefix    = "# FILE: "
	sizePrefix    = "# SIZE: "
	linesPrefix   = "# LINES: "
	indexPrefix   = "# INDEX: "
	footerPrefix  = "# END OF FILE: "
	readErrPrefix = "# ERROR READING FILE: "

	trailerHeading = "END OF SERIALIZATION"
	processedLabel = "Total files processed: "
	outputLabel    = "Output file: "

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	headerRule = strings.Repeat("=", ruleWidth)
	tocRule    = strings.Repeat("-", ruleWidth)
	blockRule  = strings.Repeat("#", ruleWidth)
)

// groupDigits renders n with thousands separators. The grouped form appears
// only in display fields; structural fields are written as plain integers.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		s = "-" + s
	}
	return s
}

// parseDisplayInt reads an integer that may carry thousands separators.
func parseDisplayInt(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeGlobalHeader(w io.Writer, name, generated string, total int, root string) error {
	_, err := fmt.Fprintf(w, "%s\n%s%s\n%s%s\n%s%s\n%s%s\n%s\n\n",
		headerRule,
		titleLabel, name,
		generatedLabel, generated,
		totalLabel, groupDigits(int64(total)),
		sourceLabel, root,
		headerRule)
	return err
}

func writeTableOfContents(w io.Writer, entries []FileEntry) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", tocHeading, tocRule); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%3d. %s (%s bytes)\n", i+1, e.RelPath, groupDigits(e.SizeBytes)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n\n", headerRule)
	return err
}

func writeBlockHeader(w io.Writer, e FileEntry, lineCount, index int) error {
	_, err := fmt.Fprintf(w, "%s\n%s%s\n%s%s bytes\n%s%d\n%s%d\n%s\n\n",
		blockRule,
		filePrefix, e.RelPath,
		sizePrefix, groupDigits(e.SizeBytes),
		linesPrefix, lineCount,
		indexPrefix, index,
		blockRule)
	return err
}

func writeBlockFooter(w io.Writer, relPath string) error {
	_, err := fmt.Fprintf(w, "\n%s%s\n%s\n\n", footerPrefix, relPath, blockRule)
	return err
}

func writeTrailer(w io.Writer, total int, output string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%s%s\n%s%s\n%s\n",
		headerRule,
		trailerHeading,
		processedLabel, groupDigits(int64(total)),
		outputLabel, output,
		headerRule)
	return err
}

// parseGlobalHeader extracts display metadata from the lines preceding the
// first file block. Missing or malformed fields are simply left zero.
func parseGlobalHeader(lines []string) Header {
	var h Header
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, titleLabel):
			h.Title = strings.TrimSpace(strings.TrimPrefix(line, titleLabel))
		case strings.HasPrefix(line, generatedLabel):
			h.Generated = strings.TrimSpace(strings.TrimPrefix(line, generatedLabel))
		case strings.HasPrefix(line, totalLabel):
			if n, ok := parseDisplayInt(strings.TrimPrefix(line, totalLabel)); ok {
				h.TotalFiles = int(n)
			}
		case strings.HasPrefix(line, sourceLabel):
			h.SourceRoot = strings.TrimSpace(strings.TrimPrefix(line, sourceLabel))
		case line == tocHeading:
			return h
		}
	}
	return h
}

// splitLines turns raw container or file bytes into lines, tolerating CRLF
// and a missing final newline.
func splitLines(data []byte) []string {
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
