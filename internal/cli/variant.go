package cli

import (
	"fmt"

	"github.com/w31r4/deluse/internal/ignore"
	"github.com/w31r4/deluse/internal/report"
	"github.com/w31r4/deluse/internal/scan"
)

// variant is one way of finding deleted targets.
type variant struct {
	use       string
	short     string
	showFlag  string
	showUsage string
	// what names the reported targets in prose.
	what       string
	newScanner func(fs *scan.FS, rules ignore.Rules) report.Scanner
}

var (
	fdVariant = variant{
		use:       "fd",
		short:     "List processes holding open descriptors to deleted files",
		showFlag:  "showfiles",
		showUsage: "In human readable mode, show deleted files",
		what:      "deleted files",
		newScanner: func(fs *scan.FS, rules ignore.Rules) report.Scanner {
			return scan.NewFDScanner(fs, rules)
		},
	}
	libsVariant = variant{
		use:       "libs",
		short:     "List processes mapping deleted libraries",
		showFlag:  "showlibs",
		showUsage: "In human readable mode, show deleted libraries",
		what:      "deleted libraries",
		newScanner: func(fs *scan.FS, rules ignore.Rules) report.Scanner {
			return scan.NewMapsScanner(fs, rules)
		},
	}
)

// permissionWarning explains an incomplete scan. Running as root and still
// failing usually means processes exited mid-scan.
func (v variant) permissionWarning(euid int) string {
	if euid == 0 {
		return fmt.Sprintf("Warning: Some files could not be read, although deluse runs as root.\n"+
			"Processes may have exited during the scan; the list of %s can be incomplete.", v.what)
	}
	return fmt.Sprintf("Warning: Some files could not be read. Note that deluse has to be run as\n"+
		"root to get a full list of %s.", v.what)
}
