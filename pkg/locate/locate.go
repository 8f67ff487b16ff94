// Package locate implements sample-driven discovery and collection of
// sequencing read files. For each sample identifier it searches a directory
// tree for FASTQ-family files named after the sample and optionally copies
// the matches into a flat output directory.
package locate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/seqops/seqops/pkg/samples"
)

// Sentinel errors for precondition failures.
var (
	ErrSearchRootNotFound = errors.New("search root is not a directory")
	ErrOutputNotWritable  = errors.New("output directory cannot be created")
)

// Options configures a locate run.
type Options struct {
	// SearchRoot is the directory tree searched for read files.
	SearchRoot string

	// OutputDir receives copied matches and the samples.txt artifact.
	// Created if absent.
	OutputDir string

	// Separator is the literal text expected immediately after the sample
	// identifier in matching filenames (default "_").
	Separator string

	// ReportOnly disables copying; matches are only counted.
	ReportOnly bool
}

// Pattern returns the filename glob used to match read files for a sample.
// The identifier may appear anywhere in the basename as long as it is
// followed by the separator, and the extension must look FASTQ-like
// (.fastq, .fq, .fastq.gz, ...). Deliberately permissive: sequencing-run
// naming conventions vary and anchoring the match would drop legitimate
// files.
func (o Options) Pattern(sample string) string {
	return "*" + sample + o.Separator + "*.f*q*"
}

// Entry is the per-sample result of a run.
type Entry struct {
	Index   int    // 1-based position in the sample list
	Total   int    // total number of samples
	Sample  string // identifier searched for
	Matches int    // number of files matched
	Copied  bool   // whether matches were copied to the output directory
}

// String renders the entry as a report line.
func (e Entry) String() string {
	suffix := "found"
	if e.Copied {
		suffix = "found and copied"
	}
	return fmt.Sprintf("(%d/%d) %s: %d file(s) %s", e.Index, e.Total, e.Sample, e.Matches, suffix)
}

// Report accumulates results across a run.
type Report struct {
	Entries  []Entry
	NotFound int // samples with zero matches
}

// AllFound reports whether every sample matched at least one file.
func (r *Report) AllFound() bool {
	return r.NotFound == 0
}

// Summary renders the final report line.
func (r *Report) Summary() string {
	if r.AllFound() {
		return "All samples were found"
	}
	return fmt.Sprintf("%d sample(s) couldn't be found", r.NotFound)
}

// Run searches for each sample in order and returns the accumulated report.
// The output directory is created and the normalized sample list is written
// to <output>/samples.txt regardless of mode. progress, if non-nil, is
// called with each entry as it is produced.
//
// Processing is strictly sequential: one sample is fully searched (and
// copied) before the next begins. Cancellation via ctx aborts between
// samples; files already copied are left in place.
func Run(ctx context.Context, opts Options, list samples.List, progress func(Entry)) (*Report, error) {
	info, err := os.Stat(opts.SearchRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSearchRootNotFound, opts.SearchRoot)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}

	if err := list.WriteFile(filepath.Join(opts.OutputDir, "samples.txt")); err != nil {
		return nil, err
	}

	// When the output directory sits inside the search root, files copied
	// by an earlier sample or run would match again and be copied onto
	// themselves, truncating them. Prune it from the walk.
	skipDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}

	report := &Report{}
	total := len(list)

	for i, sample := range list {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		matches, err := findMatches(opts.SearchRoot, opts.Pattern(sample), skipDir)
		if err != nil {
			return report, fmt.Errorf("search failed for %s: %w", sample, err)
		}

		if !opts.ReportOnly {
			for _, path := range matches {
				if err := copyFile(path, filepath.Join(opts.OutputDir, filepath.Base(path))); err != nil {
					return report, fmt.Errorf("copy failed for %s: %w", sample, err)
				}
			}
		}

		entry := Entry{
			Index:   i + 1,
			Total:   total,
			Sample:  sample,
			Matches: len(matches),
			Copied:  !opts.ReportOnly,
		}
		report.Entries = append(report.Entries, entry)
		if len(matches) == 0 {
			report.NotFound++
		}

		if progress != nil {
			progress(entry)
		}
	}

	return report, nil
}

// findMatches walks root and returns paths of regular files whose basename
// matches pattern. The skipDir subtree (absolute path) is not descended
// into.
func findMatches(root, pattern, skipDir string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if abs == skipDir {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// copyFile copies src to dst, overwriting dst if it exists. Copying a
// file onto itself is a no-op: creating dst would truncate src before it
// is read.
func copyFile(src, dst string) error {
	if si, err := os.Stat(src); err == nil {
		if di, err := os.Stat(dst); err == nil && os.SameFile(si, di) {
			return nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
