package scan

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProc builds a minimal proc tree under a temp dir.
type fakeProc struct {
	t    *testing.T
	root string
}

func newFakeProc(t *testing.T) *fakeProc {
	t.Helper()
	return &fakeProc{t: t, root: t.TempDir()}
}

func (f *fakeProc) fs() *FS {
	f.t.Helper()
	fs, err := NewFS(f.root)
	require.NoError(f.t, err)
	return fs
}

func (f *fakeProc) dir(pid string, elem ...string) string {
	f.t.Helper()
	p := filepath.Join(append([]string{f.root, pid}, elem...)...)
	require.NoError(f.t, os.MkdirAll(p, 0o755))
	return p
}

// fds creates /<pid>/fd/<n> symlinks pointing at the given targets.
func (f *fakeProc) fds(pid string, targets ...string) {
	f.t.Helper()
	dir := f.dir(pid, "fd")
	for i, target := range targets {
		require.NoError(f.t, os.Symlink(target, filepath.Join(dir, strconv.Itoa(i))))
	}
}

func (f *fakeProc) file(pid, name, content string) {
	f.t.Helper()
	dir := f.dir(pid)
	require.NoError(f.t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
