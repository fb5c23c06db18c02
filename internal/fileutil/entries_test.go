package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (and their parent directories) below root.
func makeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func collectNames(t *testing.T, root string, opts WalkOptions) []string {
	t.Helper()
	var names []string
	for entry, err := range Entries(root, opts) {
		require.NoError(t, err)
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}

func TestEntries_YieldsFilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, []string{
		"alpha.txt",
		"sub/beta.log",
		"sub/deeper/gamma.md",
	})

	names := collectNames(t, root, WalkOptions{})
	assert.Equal(t, []string{"alpha.txt", "beta.log", "deeper", "gamma.md", "sub"}, names)
}

func TestEntries_ExcludesRoot(t *testing.T) {
	root := t.TempDir()
	for entry, err := range Entries(root, WalkOptions{}) {
		t.Fatalf("empty directory yielded %+v (err=%v)", entry, err)
	}
}

func TestEntries_PathAndIsDir(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, []string{"sub/file.txt"})

	got := map[string]Entry{}
	for entry, err := range Entries(root, WalkOptions{}) {
		require.NoError(t, err)
		got[entry.Name] = entry
	}

	require.Contains(t, got, "sub")
	require.Contains(t, got, "file.txt")
	assert.True(t, got["sub"].IsDir)
	assert.False(t, got["file.txt"].IsDir)
	assert.Equal(t, filepath.Join(root, "sub", "file.txt"), got["file.txt"].Path)
}

func TestEntries_ExcludeDirs(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, []string{
		"keep/a.txt",
		"node_modules/pkg.json",
		".git/HEAD",
	})

	names := collectNames(t, root, WalkOptions{ExcludeDirs: []string{"node_modules", ".git"}})
	// Excluded directories are reported, their contents are not.
	assert.Equal(t, []string{".git", "a.txt", "keep", "node_modules"}, names)
}

func TestEntries_MaxDepth(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, []string{
		"top.txt",
		"one/mid.txt",
		"one/two/low.txt",
	})

	assert.Equal(t, []string{"one", "top.txt"}, collectNames(t, root, WalkOptions{MaxDepth: 1}))
	assert.Equal(t, []string{"mid.txt", "one", "top.txt", "two"}, collectNames(t, root, WalkOptions{MaxDepth: 2}))
}

func TestEntries_BreakStopsWalk(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, []string{"a", "b", "c", "d"})

	count := 0
	for range Entries(root, WalkOptions{}) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestEntries_UnreadableDirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	makeTree(t, root, []string{
		"locked/hidden.txt",
		"open/visible.txt",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var names []string
	var errPaths []string
	for entry, err := range Entries(root, WalkOptions{}) {
		if err != nil {
			errPaths = append(errPaths, entry.Path)
			continue
		}
		names = append(names, entry.Name)
	}

	assert.Equal(t, []string{locked}, errPaths)
	assert.Contains(t, names, "visible.txt")
	assert.Contains(t, names, "locked")
	assert.NotContains(t, names, "hidden.txt")
}

func TestEntries_MissingRootYieldsError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	var errs []error
	for _, err := range Entries(root, WalkOptions{}) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}
