package projectr

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relPaths(m *Manifest) []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.RelPath
	}
	return out
}

func TestCollect_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Collect(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollect_RootIsFile(t *testing.T) {
	root := writeTree(t, map[string]string{"a.R": "x\n"})

	_, err := Collect(filepath.Join(root, "a.R"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollect_SortedDeterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"z.R":       "z\n",
		"a/b.R":     "b\n",
		"a/a.R":     "a\n",
		"README.md": "r\n",
	})

	m, err := Collect(root)
	require.NoError(t, err)

	got := relPaths(m)
	assert.True(t, sort.StringsAreSorted(got), "entries not sorted: %v", got)
	assert.Equal(t, []string{"README.md", "a/a.R", "a/b.R", "z.R"}, got)
	assert.Equal(t, filepath.Base(m.Root), m.Name)

	again, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, got, relPaths(again))
}

func TestCollect_IncludeMatchesBasename(t *testing.T) {
	root := writeTree(t, map[string]string{
		"model.R":   "m\n",
		"helper.py": "h\n",
	})

	m, err := Collect(root, WithIncludePatterns([]string{`\.R$`}))
	require.NoError(t, err)
	assert.Equal(t, []string{"model.R"}, relPaths(m))
}

func TestCollect_EmptyIncludesAdmitAll(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.R":       "a\n",
		"notes.txt": "n\n",
	})

	m, err := Collect(root, WithIncludePatterns(nil), WithExcludePatterns(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.R", "notes.txt"}, relPaths(m))
}

func TestCollect_ExcludeWinsOverInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep/a.R": "a\n",
		"drop/b.R": "b\n",
	})

	m, err := Collect(root, WithExcludePatterns([]string{`^drop/`}))
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.R"}, relPaths(m))
}

func TestCollect_ExcludeMatchesPathNotBasename(t *testing.T) {
	// The exclude rule sees the relative path, so a directory component
	// can drop files whose basenames an include rule admits.
	root := writeTree(t, map[string]string{
		"src/a.R":      "a\n",
		"_snaps/b.R":   "b\n",
		"t/_snaps/c.R": "c\n",
	})

	m, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.R"}, relPaths(m))
}

func TestCollect_SizeCap(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.R": "x\n",
		"big.R":   "0123456789\n",
	})

	m, err := Collect(root, WithMaxFileSize(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"small.R"}, relPaths(m))
}

func TestCollect_BadPattern(t *testing.T) {
	root := writeTree(t, map[string]string{"a.R": "x\n"})

	_, err := Collect(root, WithIncludePatterns([]string{`(`}))
	require.ErrorIs(t, err, ErrValidation)
}

func TestCollect_EntrySizes(t *testing.T) {
	root := writeTree(t, map[string]string{"a.R": "x <- 1234\n"})

	m, err := Collect(root)
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, int64(10), m.Entries[0].SizeBytes)
	assert.Equal(t, filepath.Join(m.Root, "a.R"), m.Entries[0].AbsPath)
	assert.Equal(t, int64(10), m.TotalBytes())
}
