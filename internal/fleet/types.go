package fleet

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// OperationType enumerates the bulk operations applied across the fleet.
type OperationType string

// Supported fleet operations.
const (
	OperationClone  OperationType = "clone"
	OperationUpdate OperationType = "update"
	OperationStatus OperationType = "status"
)

// Outcome enumerates per-repository operation results.
type Outcome string

// Possible per-repository outcomes.
const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// OperationResult records how a single repository fared.
type OperationResult struct {
	RepositoryName string
	Operation      OperationType
	Outcome        Outcome
	Message        string
}

// Summary aggregates the per-repository results of one fleet run.
type Summary struct {
	Operation OperationType
	Succeeded int
	Skipped   int
	Failed    int
	Results   []OperationResult
}

// Total reports the number of repositories the run visited.
func (runSummary Summary) Total() int {
	return runSummary.Succeeded + runSummary.Skipped + runSummary.Failed
}

func (runSummary *Summary) record(result OperationResult) {
	runSummary.Results = append(runSummary.Results, result)
	switch result.Outcome {
	case OutcomeSucceeded:
		runSummary.Succeeded++
	case OutcomeSkipped:
		runSummary.Skipped++
	case OutcomeFailed:
		runSummary.Failed++
	}
}

// RepositoryManager exposes the git operations the fleet service drives.
type RepositoryManager interface {
	IsRepository(executionContext context.Context, repositoryPath string) bool
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	Pull(executionContext context.Context, repositoryPath string) error
	Clone(executionContext context.Context, remoteURL string, targetPath string) error
}

// FileSystem exposes the filesystem checks the fleet service performs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem against the host filesystem.
type OSFileSystem struct{}

// Stat proxies os.Stat.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll proxies os.MkdirAll.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Reporter emits human-readable per-repository lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, args...)
}
