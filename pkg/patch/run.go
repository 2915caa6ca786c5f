package patch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ormasoftchile/retrofit/pkg/rewrite"
)

// Runner drives one patch run: scan, rewrite, change-gated write-back.
// Files are processed one at a time; nothing is shared between them, so a
// failure mid-run leaves earlier writes in place (there is no rollback).
type Runner struct {
	Dir      string
	Suffix   string
	Pipeline *rewrite.Pipeline
	DryRun   bool
	Out      io.Writer // per-file notifications; nil silences them
}

// FileResult records what happened to one scanned file.
type FileResult struct {
	Name    string
	Changed bool
	Written bool
	Passes  []string // ids of the rules that modified the file
}

// Summary aggregates a whole run.
type Summary struct {
	Dir     string
	Scanned int
	Results []FileResult
}

// Changed counts the files the pipeline modified.
func (s *Summary) Changed() int {
	n := 0
	for _, r := range s.Results {
		if r.Changed {
			n++
		}
	}
	return n
}

// Run scans the target directory and pushes every selected file through
// the pipeline. A changed file is written back in place (unless DryRun)
// and announced on Out. Any read or write error aborts the run.
func (r *Runner) Run() (*Summary, error) {
	names, err := Scan(r.Dir, r.Suffix)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Dir: r.Dir, Scanned: len(names)}
	for _, name := range names {
		path := filepath.Join(r.Dir, name)
		original, err := os.ReadFile(path)
		if err != nil {
			return sum, fmt.Errorf("read %s: %w", path, err)
		}
		fixed, passes, err := r.Pipeline.Apply(fileInfo(r.Dir, name), string(original))
		if err != nil {
			return sum, fmt.Errorf("rewrite %s: %w", path, err)
		}
		res := FileResult{Name: name, Passes: passes}
		if fixed != string(original) {
			res.Changed = true
			if !r.DryRun {
				if err := WriteFile(path, fixed); err != nil {
					return sum, err
				}
				res.Written = true
				if r.Out != nil {
					fmt.Fprintf(r.Out, "Updated %s\n", name)
				}
			}
		}
		sum.Results = append(sum.Results, res)
	}
	return sum, nil
}

// Pending is a computed-but-unwritten change, used by the dry-run, review
// and interactive surfaces.
type Pending struct {
	Name   string
	Path   string
	Old    string
	New    string
	Passes []string
}

// Preview runs the pipeline without touching any file. It returns the
// full run summary plus one Pending per file that would change, so a
// dry-run surface needs only a single scan.
func (r *Runner) Preview() (*Summary, []Pending, error) {
	names, err := Scan(r.Dir, r.Suffix)
	if err != nil {
		return nil, nil, err
	}
	sum := &Summary{Dir: r.Dir, Scanned: len(names)}
	var pending []Pending
	for _, name := range names {
		path := filepath.Join(r.Dir, name)
		original, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		fixed, passes, err := r.Pipeline.Apply(fileInfo(r.Dir, name), string(original))
		if err != nil {
			return nil, nil, fmt.Errorf("rewrite %s: %w", path, err)
		}
		res := FileResult{Name: name, Passes: passes}
		if fixed != string(original) {
			res.Changed = true
			pending = append(pending, Pending{
				Name:   name,
				Path:   path,
				Old:    string(original),
				New:    fixed,
				Passes: passes,
			})
		}
		sum.Results = append(sum.Results, res)
	}
	return sum, pending, nil
}

// WriteFile replaces path's content, keeping its existing mode when the
// file can be stat'ed.
func WriteFile(path, content string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fileInfo(dir, name string) rewrite.FileInfo {
	return rewrite.FileInfo{
		Name: name,
		Path: filepath.Join(dir, name),
		Dir:  dir,
	}
}
