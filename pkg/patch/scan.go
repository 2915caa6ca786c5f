// Package patch scans a directory of generated sources and rewrites, in
// place, the files the pipeline changes.
package patch

import (
	"fmt"
	"os"
	"strings"
)

// Scan returns the names of the entries directly inside dir whose name
// ends with suffix. The scan is non-recursive and the order is whatever
// the platform hands back. A missing or unreadable directory is an error
// that propagates to the caller.
func Scan(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read target directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
