package scan

import (
	"bufio"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/w31r4/deluse/internal/ignore"
)

// Denylist returns the mappings that are reported as deleted by the kernel but
// are never real files: System V shared memory, POSIX shm, memfd and ORC
// executable scratch files, DRM buffers, /dev/zero and the AIO ring.
func Denylist() ignore.Rules {
	return ignore.MustNew(
		[]string{"/SYSV*", "/dev/shm/*", "/tmp/orcexec.*", "/memfd:*"},
		[]string{"/dev/zero", "/drm", "object", "/[aio]"},
	)
}

// address, perms, offset, dev and inode come before the path
const mapsPathField = 5

// MapsScanner reports deleted libraries and other mapped objects.
type MapsScanner struct {
	fs    *FS
	rules ignore.Rules
}

// NewMapsScanner returns a mapping-table scanner. The built-in Denylist is
// always applied; rules extend it.
func NewMapsScanner(fs *FS, rules ignore.Rules) *MapsScanner {
	return &MapsScanner{fs: fs, rules: Denylist().Merge(rules)}
}

// Scan reads /proc/<pid>/maps.
func (s *MapsScanner) Scan(pid string) ([]string, error) {
	f, err := os.Open(s.fs.path(pid, "maps"))
	if err != nil {
		return nil, unreadable(pid, "maps", err)
	}
	defer f.Close()

	libs, err := deletedFromMaps(f, s.rules)
	if err != nil {
		return nil, unreadable(pid, "maps", err)
	}
	return libs, nil
}

// maxMapsLine bounds a single maps line. Longer lines cannot name a real
// file and are skipped.
const maxMapsLine = 64 * 1024

func deletedFromMaps(r io.Reader, rules ignore.Rules) ([]string, error) {
	found := make(map[string]struct{})

	br := bufio.NewReaderSize(r, maxMapsLine)
	for {
		line, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isPrefix {
			for isPrefix && err == nil {
				_, isPrefix, err = br.ReadLine()
			}
			log.Debugf("skipping maps line longer than %d bytes", maxMapsLine)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			continue
		}

		lib, ok := deletedMapping(string(line))
		if !ok {
			continue
		}
		if rules.Match(lib) {
			log.Debugf("ignoring deleted mapping %s", lib)
			continue
		}
		found[lib] = struct{}{}
	}
	return sortedKeys(found), nil
}

// deletedMapping extracts the path of a deleted mapping from one maps line.
//
//	7f02a85f1000-7f02a85f2000 rw-p 0000c000 09:01 32642 /lib64/libc.so (deleted)
//	7f02a85f1000-7f02a85f2000 r-xp 00000000 00:00 32642 (deleted)/lib64/libc.so
//
// The second form is written by some OpenVZ kernels.
func deletedMapping(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < mapsPathField+1 {
		return "", false
	}

	last := fields[len(fields)-1]
	switch {
	case last == DeletedMarker:
		if len(fields) < mapsPathField+2 {
			return "", false
		}
		return fields[len(fields)-2], true
	case strings.HasPrefix(last, DeletedMarker):
		path := last[len(DeletedMarker):]
		if path == "" {
			return "", false
		}
		return path, true
	}
	return "", false
}
