package projectr

// FileEntry is one collected file, identified by its forward-slash relative
// path under the collection root.
type FileEntry struct {
	RelPath   string // slash-separated, relative to the collection root
	AbsPath   string
	SizeBytes int64
}

// Manifest is the ordered set of files selected for serialization.
// Entries are sorted bytewise by RelPath; the table of contents and the
// file blocks of an encoded container follow this order exactly.
type Manifest struct {
	Name    string // project name shown in the container header
	Root    string // source directory the entries were collected from
	Entries []FileEntry
}

// TotalBytes sums the sizes of all entries.
func (m *Manifest) TotalBytes() int64 {
	var n int64
	for _, e := range m.Entries {
		n += e.SizeBytes
	}
	return n
}

// ConflictPolicy selects what Extract does when a target file already exists.
type ConflictPolicy uint8

const (
	// ConflictSkip leaves the existing file untouched and records the path
	// in the extract report. This is the default.
	ConflictSkip ConflictPolicy = iota
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite
	// ConflictFail aborts the extraction with ErrExists.
	ConflictFail
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictSkip:
		return "skip"
	case ConflictOverwrite:
		return "overwrite"
	case ConflictFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ReadFailure records a file that could not be read during encoding.
// Its block in the container holds an inline error marker instead of content.
type ReadFailure struct {
	RelPath string
	Err     error
}

// EncodeReport summarizes one Encode call.
type EncodeReport struct {
	FilesWritten int
	TotalBytes   int64
	ReadFailures []ReadFailure
}

// ExtractReport summarizes one Extract call.
type ExtractReport struct {
	FilesWritten int
	Skipped      []string // relative paths left untouched under ConflictSkip
}

// Archive is the parsed form of a container, produced by Decode.
type Archive struct {
	Header Header
	Files  []ArchiveFile
}

// Header holds the display metadata from a container's global header.
// Numeric fields are parsed best-effort; they carry no structural meaning.
type Header struct {
	Title      string
	Generated  string
	TotalFiles int
	SourceRoot string
}

// ArchiveFile is one decoded file block.
type ArchiveFile struct {
	Path      string
	Lines     []string // content, without line terminators
	SizeBytes int64    // size as declared in the block header
	Index     int      // 1-based position as declared in the block header
}

// Content returns the block content as a single newline-terminated string.
// An empty block yields an empty string.
func (f ArchiveFile) Content() string {
	if len(f.Lines) == 0 {
		return ""
	}
	n := 0
	for _, l := range f.Lines {
		n += len(l) + 1
	}
	b := make([]byte, 0, n)
	for _, l := range f.Lines {
		b = append(b, l...)
		b = append(b, '\n')
	}
	return string(b)
}
