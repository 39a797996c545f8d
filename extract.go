package rpa

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
)

// ExtractStats contains statistics from an extraction.
type ExtractStats struct {
	// FileCount is the number of entries written.
	FileCount int

	// TotalBytes is the sum of payload sizes written.
	TotalBytes uint64

	// Skipped is the number of entries left alone because the target existed.
	Skipped int
}

// ExtractTo writes every entry below dest, creating parent directories as
// needed.
//
// Entry names must be local slash-separated paths; any name that could
// escape dest fails the whole extraction with an *fs.PathError wrapping
// fs.ErrInvalid before anything is written. Existing files are skipped
// unless ExtractWithOverwrite is set.
//
// Files are written concurrently and the first error cancels the rest.
func (r *Reader) ExtractTo(ctx context.Context, dest string, opts ...ExtractOption) (ExtractStats, error) {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	for e := range r.Entries() {
		if !isLocalName(e.Name) {
			return ExtractStats{}, &fs.PathError{Op: "extract", Path: e.Name, Err: fs.ErrInvalid}
		}
	}

	if err := os.MkdirAll(dest, 0o750); err != nil {
		return ExtractStats{}, fmt.Errorf("create destination: %w", err)
	}
	root, err := os.OpenRoot(dest)
	if err != nil {
		return ExtractStats{}, err
	}
	defer root.Close()

	var written, skipped atomic.Int64
	var bytesDone atomic.Uint64
	total := r.Len()

	p := pool.New().WithMaxGoroutines(workers(cfg.concurrency)).WithContext(ctx).WithCancelOnError().WithFirstError()
	for e := range r.Entries() {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := r.writeEntry(root, e, cfg.overwrite)
			if err != nil {
				return fmt.Errorf("extract %s: %w", e.Name, err)
			}
			if !ok {
				skipped.Add(1)
				return nil
			}
			b := bytesDone.Add(e.Length)
			done := written.Add(1)
			if cfg.progress != nil {
				cfg.progress(ProgressEvent{
					Stage:      StageExtracting,
					Name:       e.Name,
					BytesDone:  b,
					FilesDone:  int(done),
					FilesTotal: total,
				})
			}
			return nil
		})
	}
	err = p.Wait()

	stats := ExtractStats{
		FileCount:  int(written.Load()),
		TotalBytes: bytesDone.Load(),
		Skipped:    int(skipped.Load()),
	}
	return stats, err
}

// writeEntry writes one payload below root. It returns false when the target
// exists and overwrite is off.
func (r *Reader) writeEntry(root *os.Root, e EntryInfo, overwrite bool) (bool, error) {
	name := filepath.FromSlash(e.Name)
	if !overwrite {
		if _, err := root.Lstat(name); err == nil {
			return false, nil
		}
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := root.MkdirAll(dir, 0o750); err != nil {
			return false, err
		}
	}
	if err := root.WriteFile(name, r.slice(e), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// isLocalName reports whether name stays within the extraction root.
func isLocalName(name string) bool {
	return name != "." && fs.ValidPath(name) && filepath.IsLocal(filepath.FromSlash(name))
}
