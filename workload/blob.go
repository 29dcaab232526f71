package workload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// BlobReader runs the chunked read workload directly against a bucket, bypassing the mount.
// Object keys follow the same <prefix>Workload.<process>/<index> layout.
type BlobReader struct {
	Bucket    *blob.Bucket
	Prefix    string
	Files     int
	ChunkSize int64
}

// OpenBlobReader opens a bucket URL e.g. gs://bucket, file:///tmp/workload or mem://.
func OpenBlobReader(ctx context.Context, url, prefix string) (*BlobReader, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", url, err)
	}

	return &BlobReader{
		Bucket:    bucket,
		Prefix:    prefix,
		Files:     DefaultFiles,
		ChunkSize: DefaultChunkSize,
	}, nil
}

func (r *BlobReader) Run(ctx context.Context, processID, threadID int) (int64, error) {
	total := int64(0)

	for i := 0; i < r.Files; i++ {
		key := r.Prefix + path.Join(Dir(processID), strconv.Itoa(i))

		n, err := r.read(ctx, key)
		if err != nil {
			return 0, &ReadError{Path: key, Err: err}
		}

		total += n
	}

	return total, nil
}

func (r *BlobReader) read(ctx context.Context, key string) (int64, error) {
	rr, err := r.Bucket.NewRangeReader(ctx, key, 0, r.ChunkSize, nil)
	if err != nil {
		return 0, err
	}

	defer rr.Close()

	n, err := io.Copy(io.Discard, rr)
	if err != nil {
		return 0, err
	}

	return n, rr.Close()
}

// Close releases the bucket.
func (r *BlobReader) Close() error {
	if r.Bucket != nil {
		return r.Bucket.Close()
	}

	return nil
}

var _ Task = (*BlobReader)(nil)
