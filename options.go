package projectr

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func nopLogger() *log.Logger { return log.New(io.Discard) }

type collectConfig struct {
	includes    []string
	excludes    []string
	maxFileSize int64
	logger      *log.Logger
}

type CollectOption func(*collectConfig)

// WithIncludePatterns replaces the default include rules. Each pattern is a
// regular expression matched against the file basename; a file is eligible
// when at least one pattern matches. An empty slice admits every basename.
func WithIncludePatterns(patterns []string) CollectOption {
	return func(c *collectConfig) { c.includes = patterns }
}

// WithExcludePatterns replaces the default exclude rules. Each pattern is a
// regular expression matched against the slash-separated relative path; a
// file matching any pattern is dropped even if an include rule admits it.
func WithExcludePatterns(patterns []string) CollectOption {
	return func(c *collectConfig) { c.excludes = patterns }
}

// WithMaxFileSize sets the per-file size cap in bytes. Files larger than the
// cap are not collected. Zero means DefaultMaxFileSize.
func WithMaxFileSize(n int64) CollectOption {
	return func(c *collectConfig) { c.maxFileSize = n }
}

// WithCollectLogger sets the logger used for per-file progress during
// collection. The default discards all output.
func WithCollectLogger(l *log.Logger) CollectOption {
	return func(c *collectConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

type encodeConfig struct {
	generatedAt time.Time
	outputLabel string
	logger      *log.Logger
}

type EncodeOption func(*encodeConfig)

// WithGeneratedAt fixes the timestamp written to the container header.
// The default is the current time; fixing it makes encoding reproducible.
func WithGeneratedAt(t time.Time) EncodeOption {
	return func(c *encodeConfig) { c.generatedAt = t }
}

// WithOutputLabel sets the output path shown in the container trailer.
// EncodeFile sets it to the destination path automatically.
func WithOutputLabel(path string) EncodeOption {
	return func(c *encodeConfig) { c.outputLabel = path }
}

// WithEncodeLogger sets the logger used for per-file progress during
// encoding. The default discards all output.
func WithEncodeLogger(l *log.Logger) EncodeOption {
	return func(c *encodeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

type extractConfig struct {
	onConflict ConflictPolicy
	logger     *log.Logger
}

type ExtractOption func(*extractConfig)

// WithOnConflict selects the policy applied when a target file already
// exists. The default is ConflictSkip.
func WithOnConflict(p ConflictPolicy) ExtractOption {
	return func(c *extractConfig) { c.onConflict = p }
}

// WithExtractLogger sets the logger used for per-file progress during
// extraction. The default discards all output.
func WithExtractLogger(l *log.Logger) ExtractOption {
	return func(c *extractConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
