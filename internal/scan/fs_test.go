package scan

import (
	"os"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSPIDs(t *testing.T) {
	proc := newFakeProc(t)
	proc.dir("1")
	proc.dir("20")
	proc.dir("3")
	proc.dir("net")
	proc.file("", "uptime", "1.00 2.00\n")

	pids, err := proc.fs().PIDs()
	require.NoError(t, err)

	sort.Strings(pids)
	assert.Equal(t, []string{"1", "20", "3"}, pids)
}

func TestFSCmdline(t *testing.T) {
	proc := newFakeProc(t)
	proc.file("1", "cmdline", "/usr/bin/python4\x00spam.py\x00--eggs\x00")
	proc.file("2", "cmdline", "argv1\x00argv2 \x00")
	proc.file("3", "cmdline", "")
	proc.file("4", "cmdline", "\x00\x00")

	fs := proc.fs()

	testCases := []struct {
		pid    string
		want   string
		wantOK bool
	}{
		{"1", "/usr/bin/python4 spam.py --eggs", true},
		{"2", "argv1 argv2", true},
		{"3", "", false},
		{"4", "", false},
		{"5", "", false},
		{"this is not a pid", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.pid, func(t *testing.T) {
			got, ok := fs.Cmdline(tc.pid)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFSSelfIDsAlwaysHoldsOwnPID(t *testing.T) {
	proc := newFakeProc(t)
	ids := proc.fs().SelfIDs()

	_, ok := ids[strconv.Itoa(os.Getpid())]
	assert.True(t, ok)
}

func TestFSSelfIDsIncludesThreads(t *testing.T) {
	proc := newFakeProc(t)
	self := strconv.Itoa(os.Getpid())
	proc.dir(self, "task", self)
	proc.dir(self, "task", "999991")

	ids := proc.fs().SelfIDs()

	assert.Contains(t, ids, self)
	assert.Contains(t, ids, "999991")
}

func TestDefaultRoot(t *testing.T) {
	t.Setenv("HOST_PROC", "/host/proc")
	assert.Equal(t, "/host/proc", DefaultRoot())

	t.Setenv("HOST_PROC", "")
	assert.Equal(t, "/proc", DefaultRoot())
}
