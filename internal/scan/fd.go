package scan

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/w31r4/deluse/internal/ignore"
)

// FDScanner reports every deleted file a process holds open, not only libraries.
type FDScanner struct {
	fs    *FS
	rules ignore.Rules
}

// NewFDScanner returns a descriptor-table scanner. Targets matched by rules are dropped.
func NewFDScanner(fs *FS, rules ignore.Rules) *FDScanner {
	return &FDScanner{fs: fs, rules: rules}
}

// Scan resolves every entry of the descriptor table of pid.
func (s *FDScanner) Scan(pid string) ([]string, error) {
	p, err := s.fs.proc(pid)
	if err != nil {
		return nil, unreadable(pid, "fd", err)
	}

	// Entries whose link vanished between listing and readlink come back empty.
	links, err := p.FileDescriptorTargets()
	if err != nil {
		return nil, unreadable(pid, "fd", err)
	}

	return deletedFromLinks(links, s.rules), nil
}

func deletedFromLinks(links []string, rules ignore.Rules) []string {
	found := make(map[string]struct{})
	for _, link := range links {
		if !strings.HasSuffix(link, deletedSuffix) {
			continue
		}
		target := strings.TrimSuffix(link, deletedSuffix)
		if rules.Match(target) {
			log.Debugf("ignoring deleted target %s", target)
			continue
		}
		found[target] = struct{}{}
	}
	return sortedKeys(found)
}
