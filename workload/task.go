// Package workload implements read-heavy load test tasks against a mounted bucket.
package workload

import (
	"context"
	"fmt"
)

// Task is a unit of work invoked by a load generator with a process and thread identifier.
// The result is the number of bytes the task read.
type Task interface {
	Run(ctx context.Context, processID, threadID int) (int64, error)
}

const (
	DefaultFiles     = 20
	DefaultChunkSize = 1024 * 1024
)

// ReadError reports the workload file that could not be read. It unwraps to the underlying
// filesystem or bucket error so errors.Is(err, fs.ErrNotExist) works as expected.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading %s (%v)", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Dir is the directory holding the workload files for a process, relative to the mount root.
func Dir(processID int) string {
	return fmt.Sprintf("Workload.%d", processID)
}
