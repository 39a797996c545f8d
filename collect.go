package rpa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var errSymlink = errors.New("rpa: symlink")

// CollectDir reads every regular file below dir into Entries.
//
// Entry names are slash-separated paths relative to dir (e.g.,
// "images/bg.png"), ordered as fs.WalkDir visits them, which is lexical.
// Directories are not stored and symbolic links are skipped.
//
// Files are read concurrently; the result order does not depend on
// scheduling. The context can be used for cancellation.
func CollectDir(ctx context.Context, dir string, opts ...CollectOption) (*Entries, error) {
	cfg := collectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &collector{cfg: cfg}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	c.log().Info("collecting directory", "dir", dir)

	names, err := c.enumerate(ctx, root)
	if err != nil {
		return nil, err
	}

	payloads, skipped, err := c.read(ctx, root, names)
	if err != nil {
		return nil, err
	}

	entries := NewEntries()
	for i, name := range names {
		if skipped[i] {
			continue
		}
		entries.Set(name, payloads[i])
	}

	c.log().Debug("directory collected", "dir", dir, "file_count", entries.Len())
	return entries, nil
}

// collector holds state for CollectDir.
type collector struct {
	cfg collectConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (c *collector) log() *slog.Logger {
	if c.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.cfg.logger
}

// reportProgress sends a progress event if a callback is configured.
func (c *collector) reportProgress(stage ProgressStage, name string, bytesDone uint64, filesDone, filesTotal int) {
	if c.cfg.progress == nil {
		return
	}
	c.cfg.progress(ProgressEvent{
		Stage:      stage,
		Name:       name,
		BytesDone:  bytesDone,
		FilesDone:  filesDone,
		FilesTotal: filesTotal,
	})
}

// enumerate walks root and returns the names of its regular files.
func (c *collector) enumerate(ctx context.Context, root *os.Root) ([]string, error) {
	maxFiles := c.cfg.maxFiles
	if maxFiles == 0 {
		maxFiles = DefaultMaxFiles
	}

	c.reportProgress(StageEnumerating, "", 0, 0, 0)

	var names []string
	err := fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			c.log().Debug("skipped non-regular file", "path", path, "type", d.Type().String())
			return nil
		}
		if maxFiles > 0 && len(names) >= maxFiles {
			return fmt.Errorf("%w: more than %d files", ErrTooManyEntries, maxFiles)
		}
		if len(path) > MaxNameLength {
			return fmt.Errorf("%w: %s", ErrInvalidName, path)
		}
		names = append(names, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// read loads every named file concurrently. skipped[i] is set when the file
// turned out to be a symlink after enumeration.
func (c *collector) read(ctx context.Context, root *os.Root, names []string) (payloads [][]byte, skipped []bool, err error) {
	payloads = make([][]byte, len(names))
	skipped = make([]bool, len(names))

	var filesDone atomic.Int64
	var bytesDone atomic.Uint64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers(c.cfg.concurrency))
	for i, name := range names {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readFileNoFollow(root, filepath.FromSlash(name))
			if errors.Is(err, errSymlink) {
				c.log().Debug("skipped symlink", "path", name)
				skipped[i] = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			payloads[i] = data
			b := bytesDone.Add(uint64(len(data)))
			done := filesDone.Add(1)
			c.reportProgress(StageReading, name, b, int(done), len(names))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return payloads, skipped, nil
}

func readFileNoFollow(root *os.Root, name string) ([]byte, error) {
	f, err := openFileNoFollow(root, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", name)
	}
	return io.ReadAll(f)
}
