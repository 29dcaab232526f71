package workload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ChunkedReader opens Files files under <Root>/Workload.<process>/ in index order and reads
// at most ChunkSize bytes from each.
type ChunkedReader struct {
	Root      string
	Files     int
	ChunkSize int64
	DropCache bool
}

func NewChunkedReader(root string) *ChunkedReader {
	return &ChunkedReader{
		Root:      root,
		Files:     DefaultFiles,
		ChunkSize: DefaultChunkSize,
	}
}

// Run returns the total number of bytes read. Any file that cannot be opened or read fails
// the whole invocation with a *ReadError and a zero count.
func (r *ChunkedReader) Run(ctx context.Context, processID, threadID int) (int64, error) {
	buffer := make([]byte, r.ChunkSize)
	total := int64(0)

	for i := 0; i < r.Files; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		path := filepath.Join(r.Root, Dir(processID), strconv.Itoa(i))

		n, err := r.read(path, buffer)
		if err != nil {
			return 0, &ReadError{Path: path, Err: err}
		}

		total += n
	}

	return total, nil
}

func (r *ChunkedReader) read(path string, buffer []byte) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer f.Close()

	n, err := io.ReadFull(f, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}

	if r.DropCache {
		if err := dropCache(f, int64(n)); err != nil {
			return 0, err
		}
	}

	if err := f.Close(); err != nil {
		return 0, err
	}

	return int64(n), nil
}

var _ Task = (*ChunkedReader)(nil)
