package projectr

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func sampleTree(t *testing.T) string {
	t.Helper()
	return writeTree(t, map[string]string{
		"R/utils.R":        "square <- function(x) x^2\n",
		"analysis/model.R": "fit <- lm(y ~ x, data = d)\nsummary(fit)\n",
		"README.md":        "# Sample\n\nA sample tree.\n",
	})
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := sampleTree(t)
	m, err := Collect(root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(m.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m.Entries))
	}

	var buf bytes.Buffer
	report, err := Encode(&buf, m, WithGeneratedAt(time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if report.FilesWritten != 3 || len(report.ReadFailures) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(a.Files) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(a.Files))
	}
	for _, f := range a.Files {
		orig, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatalf("read original %s: %v", f.Path, err)
		}
		if got := f.Content(); got != string(orig) {
			t.Fatalf("content mismatch for %s\nwant: %q\ngot:  %q", f.Path, orig, got)
		}
	}

	out := t.TempDir()
	extracted, err := a.Extract(out)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extracted.FilesWritten != 3 || len(extracted.Skipped) != 0 {
		t.Fatalf("unexpected extract report: %+v", extracted)
	}
	for _, f := range a.Files {
		got, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatalf("read extracted %s: %v", f.Path, err)
		}
		orig, _ := os.ReadFile(filepath.Join(root, filepath.FromSlash(f.Path)))
		if !bytes.Equal(got, orig) {
			t.Fatalf("extracted bytes differ for %s", f.Path)
		}
	}
}

func TestRoundTrip_FooterMarkerInContent(t *testing.T) {
	content := "x <- 1\n# END OF FILE: a.R\ny <- 2\n"
	root := writeTree(t, map[string]string{"a.R": content})
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	a, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Files) != 1 {
		t.Fatalf("expected 1 block, got %d", len(a.Files))
	}
	if got := a.Files[0].Content(); got != content {
		t.Fatalf("content mismatch\nwant: %q\ngot:  %q", content, got)
	}
}

func TestEncodeDeterminism(t *testing.T) {
	root := sampleTree(t)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		m, err := Collect(root)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Encode(buf, m, WithGeneratedAt(at)); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("two encodings of the same tree differ")
	}
}

func TestEncode_NilManifest(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEncode_DuplicatePath(t *testing.T) {
	m := &Manifest{
		Name: "dup",
		Entries: []FileEntry{
			{RelPath: "a.R", AbsPath: "/tmp/a.R", SizeBytes: 1},
			{RelPath: "a.R", AbsPath: "/tmp/a.R", SizeBytes: 1},
		},
	}
	var buf bytes.Buffer
	_, err := Encode(&buf, m)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEncode_WriterError(t *testing.T) {
	root := sampleTree(t)
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Encode(&failingWriter{n: 64}, m); err == nil {
		t.Fatal("expected error")
	}
}

func TestEncode_PartialReadFailure(t *testing.T) {
	root := sampleTree(t)
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	// One file disappears between listing and reading.
	if err := os.Remove(filepath.Join(root, "README.md")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	report, err := Encode(&buf, m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(report.ReadFailures) != 1 || report.ReadFailures[0].RelPath != "README.md" {
		t.Fatalf("unexpected failures: %+v", report.ReadFailures)
	}
	if report.FilesWritten != 3 {
		t.Fatalf("expected all 3 blocks written, got %d", report.FilesWritten)
	}
	if !strings.Contains(buf.String(), readErrPrefix) {
		t.Fatal("expected inline read-error marker in container")
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Files) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(a.Files))
	}
	for _, f := range a.Files {
		if f.Path != "README.md" {
			continue
		}
		if len(f.Lines) != 1 || !strings.HasPrefix(f.Lines[0], readErrPrefix) {
			t.Fatalf("degraded block content: %q", f.Lines)
		}
	}
}

func TestDecode_EmptyArchive(t *testing.T) {
	_, err := Decode(strings.NewReader("just some text\nno blocks here\n"))
	if !errors.Is(err, ErrEmptyArchive) {
		t.Fatalf("expected ErrEmptyArchive, got %v", err)
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "no-such-container.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecode_HeaderMetadata(t *testing.T) {
	root := sampleTree(t)
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	var buf bytes.Buffer
	if _, err := Encode(&buf, m, WithGeneratedAt(at), WithOutputLabel("bundle.txt")); err != nil {
		t.Fatal(err)
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if a.Header.Title != m.Name {
		t.Fatalf("title: want %q, got %q", m.Name, a.Header.Title)
	}
	if a.Header.Generated != "2026-03-14 09:26:53" {
		t.Fatalf("generated: got %q", a.Header.Generated)
	}
	if a.Header.TotalFiles != 3 {
		t.Fatalf("total files: got %d", a.Header.TotalFiles)
	}
	if a.Header.SourceRoot != m.Root {
		t.Fatalf("source root: want %q, got %q", m.Root, a.Header.SourceRoot)
	}
}

func TestDefaultFilters_Scenario(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.R":       "x <- 1234\n",
		"b.Rmd":     "# Title\nSome text..\n",
		"notes.txt": "not collected\n",
	})
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 2 || m.Entries[0].RelPath != "a.R" || m.Entries[1].RelPath != "b.Rmd" {
		t.Fatalf("unexpected manifest: %+v", m.Entries)
	}

	var buf bytes.Buffer
	if _, err := Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), totalLabel+"2\n") {
		t.Fatal("expected Total files: 2 in header")
	}
	if strings.Contains(buf.String(), "notes.txt") {
		t.Fatal("notes.txt leaked into container")
	}

	a, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()
	if _, err := a.Extract(out); err != nil {
		t.Fatal(err)
	}
	for _, rel := range []string{"a.R", "b.Rmd"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Fatalf("missing extracted %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("notes.txt should not be extracted")
	}
}

func TestEncodeFile_WritesDestination(t *testing.T) {
	root := sampleTree(t)
	m, err := Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "bundle.txt")
	if _, err := EncodeFile(dest, m); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), outputLabel+dest+"\n") {
		t.Fatal("trailer should name the destination file")
	}

	// EncodeFile overwrites an existing destination wholesale.
	if _, err := EncodeFile(dest, m); err != nil {
		t.Fatal(err)
	}
}
