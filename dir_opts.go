package rpa

import (
	"log/slog"
	"runtime"
)

// DefaultMaxFiles is the default limit used by CollectDir when no
// CollectWithMaxFiles option is set.
const DefaultMaxFiles = 200_000

type collectConfig struct {
	concurrency int
	maxFiles    int
	progress    ProgressFunc
	logger      *slog.Logger
}

// CollectOption configures CollectDir.
type CollectOption func(*collectConfig)

// CollectWithConcurrency sets the number of files read in parallel.
// Values < 1 use GOMAXPROCS.
func CollectWithConcurrency(n int) CollectOption {
	return func(c *collectConfig) {
		c.concurrency = n
	}
}

// CollectWithMaxFiles limits the number of files collected.
// Zero uses DefaultMaxFiles. Negative means no limit.
func CollectWithMaxFiles(n int) CollectOption {
	return func(c *collectConfig) {
		c.maxFiles = n
	}
}

// CollectWithProgress sets a callback for progress updates.
func CollectWithProgress(fn ProgressFunc) CollectOption {
	return func(c *collectConfig) {
		c.progress = fn
	}
}

// CollectWithLogger sets the logger for CollectDir.
func CollectWithLogger(logger *slog.Logger) CollectOption {
	return func(c *collectConfig) {
		c.logger = logger
	}
}

type extractConfig struct {
	concurrency int
	overwrite   bool
	progress    ProgressFunc
}

// ExtractOption configures Reader.ExtractTo.
type ExtractOption func(*extractConfig)

// ExtractWithConcurrency sets the number of files written in parallel.
// Values < 1 use GOMAXPROCS.
func ExtractWithConcurrency(n int) ExtractOption {
	return func(c *extractConfig) {
		c.concurrency = n
	}
}

// ExtractWithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithProgress sets a callback for progress updates.
func ExtractWithProgress(fn ProgressFunc) ExtractOption {
	return func(c *extractConfig) {
		c.progress = fn
	}
}

func workers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
