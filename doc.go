// Package projectr packs a directory tree of source files into a single
// human-readable text container, and unpacks such a container back into an
// equivalent directory tree.
//
// The container is plain line-oriented text: a global header, a table of
// contents, one delimited block per file, and a summary trailer. It is meant
// for portable sharing of a code tree as one text blob (review, transfer,
// pasting into a ticket) without a binary archive format.
//
// # Container Overview
//
// A container consists of:
//   - A global header with the project name, generation timestamp, file
//     count, and source directory
//   - A table of contents listing every file with its 1-based index and size
//   - One block per file: a comment-marker header (path, size, line count,
//     index), the raw file content, and a footer marker
//   - A summary trailer with the processed count and output path
//
// Block headers carry an exact content line count, so decoding locates block
// boundaries without guessing even when file content itself contains
// marker-shaped lines. Containers whose headers lack a line count (for
// example hand-edited ones) are decoded by scanning for the footer marker
// instead.
//
// # Basic Usage
//
// To pack a directory:
//
//	m, err := projectr.Collect("path/to/project")
//	if err != nil {
//		return err
//	}
//	report, err := projectr.EncodeFile("project.txt", m)
//
// To unpack a container:
//
//	a, err := projectr.DecodeFile("project.txt")
//	if err != nil {
//		return err
//	}
//	report, err := a.Extract("out", projectr.WithOnConflict(projectr.ConflictSkip))
//
// # Failure Isolation
//
// Structural problems (missing root, missing container, a container with no
// file blocks) abort the operation and are reported through the sentinel
// errors [ErrNotFound] and [ErrEmptyArchive]. Per-file problems never abort
// a batch: a file that becomes unreadable during encoding degrades to an
// inline error marker in its block, and a file that already exists during
// extraction under [ConflictSkip] is skipped and recorded in the report.
package projectr
