// Package scan finds deleted files still referenced by running processes.
//
// Two strategies implement Scanner: FDScanner walks the descriptor table of a
// process and MapsScanner its memory mappings. Both read from an FS rooted at a
// proc mount, which is /proc unless HOST_PROC or an explicit root says otherwise.
package scan

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"
)

// DefaultRoot returns the proc mount to scan when none is given.
func DefaultRoot() string {
	if root, ok := os.LookupEnv("HOST_PROC"); ok && root != "" {
		return root
	}
	return procfs.DefaultMountPoint
}

// FS is a proc mount. It enumerates processes and resolves their command lines.
type FS struct {
	root string
	fs   procfs.FS
}

// NewFS opens the proc mount at root.
func NewFS(root string) (*FS, error) {
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, err
	}
	return &FS{root: root, fs: fs}, nil
}

// Root returns the mount point the FS was opened on.
func (f *FS) Root() string {
	return f.root
}

// PIDs lists the ids of all processes visible in the mount.
// The snapshot is taken once; processes may be gone by the time they are read.
func (f *FS) PIDs() ([]string, error) {
	procs, err := f.fs.AllProcs()
	if err != nil {
		return nil, err
	}

	pids := make([]string, 0, len(procs))
	for _, p := range procs {
		pids = append(pids, strconv.Itoa(p.PID))
	}
	return pids, nil
}

// SelfIDs returns the ids a scan must skip so that the scanning process never
// reports itself: its own pid and the ids of all of its threads.
func (f *FS) SelfIDs() map[string]struct{} {
	self := os.Getpid()
	ids := map[string]struct{}{strconv.Itoa(self): {}}

	threads, err := f.fs.AllThreads(self)
	if err != nil {
		// not fatal: a foreign proc mount does not know about us anyway
		log.Debugf("listing own threads under %s: %v", f.root, err)
		return ids
	}
	for _, t := range threads {
		ids[strconv.Itoa(t.PID)] = struct{}{}
	}
	return ids
}

// Cmdline returns the command line of pid with arguments joined by single
// spaces and surrounding whitespace removed. The second result is false when
// the process is gone, unreadable or has an empty argument list.
func (f *FS) Cmdline(pid string) (string, bool) {
	p, err := f.proc(pid)
	if err != nil {
		return "", false
	}

	args, err := p.CmdLine()
	if err != nil {
		log.Debugf("reading cmdline of %s: %v", pid, err)
		return "", false
	}

	cmdline := strings.TrimSpace(strings.Join(args, " "))
	if cmdline == "" {
		return "", false
	}
	return cmdline, true
}

func (f *FS) proc(pid string) (procfs.Proc, error) {
	n, err := strconv.Atoi(pid)
	if err != nil {
		return procfs.Proc{}, err
	}
	return f.fs.Proc(n)
}

func (f *FS) path(pid string, elem ...string) string {
	return filepath.Join(append([]string{f.root, pid}, elem...)...)
}
