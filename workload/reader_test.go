package workload

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeWorkload(t *testing.T, root string, processID int, sizes []int) {
	t.Helper()

	dir := filepath.Join(root, Dir(processID))
	require.NoError(t, os.MkdirAll(dir, 0755))

	for i, size := range sizes {
		if size < 0 {
			continue
		}

		require.NoError(t, os.WriteFile(filepath.Join(dir, strconv.Itoa(i)), make([]byte, size), 0644))
	}
}

func sizes(n, size int) []int {
	list := make([]int, n)
	for i := range list {
		list[i] = size
	}

	return list
}

func TestChunkedReaderReadsOneChunkPerFile(t *testing.T) {
	root := t.TempDir()
	writeWorkload(t, root, 3, sizes(20, 2*1024*1024))

	total, err := NewChunkedReader(root).Run(context.Background(), 3, 0)

	require.NoError(t, err)
	require.Equal(t, int64(20*1048576), total)
}

func TestChunkedReaderWithShortFile(t *testing.T) {
	root := t.TempDir()
	list := sizes(20, 2*1024*1024)
	list[7] = 500000
	writeWorkload(t, root, 0, list)

	total, err := NewChunkedReader(root).Run(context.Background(), 0, 5)

	require.NoError(t, err)
	require.Equal(t, int64(19*1048576+500000), total)
}

func TestChunkedReaderWithEmptyFile(t *testing.T) {
	root := t.TempDir()
	list := sizes(20, 1024)
	list[0] = 0
	writeWorkload(t, root, 1, list)

	total, err := NewChunkedReader(root).Run(context.Background(), 1, 0)

	require.NoError(t, err)
	require.Equal(t, int64(19*1024), total)
}

func TestChunkedReaderWithMissingFile(t *testing.T) {
	root := t.TempDir()
	list := sizes(20, 1024*1024)
	list[10] = -1
	writeWorkload(t, root, 2, list)

	total, err := NewChunkedReader(root).Run(context.Background(), 2, 0)

	require.Error(t, err)
	require.Zero(t, total)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	require.Equal(t, filepath.Join(root, "Workload.2", "10"), readErr.Path)
}

func TestChunkedReaderUsesProcessDirectory(t *testing.T) {
	root := t.TempDir()
	writeWorkload(t, root, 1, sizes(20, 10))

	_, err := NewChunkedReader(root).Run(context.Background(), 2, 0)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestChunkedReaderWithDropCache(t *testing.T) {
	root := t.TempDir()
	writeWorkload(t, root, 0, sizes(4, 4096))

	r := ChunkedReader{Root: root, Files: 4, ChunkSize: 1024, DropCache: true}
	total, err := r.Run(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Equal(t, int64(4*1024), total)
}

func TestChunkedReaderDoesNotModifyFiles(t *testing.T) {
	root := t.TempDir()
	writeWorkload(t, root, 0, sizes(20, 100))

	file := filepath.Join(root, "Workload.0", "0")
	before, err := os.Stat(file)
	require.NoError(t, err)

	_, err = NewChunkedReader(root).Run(context.Background(), 0, 0)
	require.NoError(t, err)

	after, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, before.Size(), after.Size())
	require.Equal(t, before.ModTime(), after.ModTime())
}
