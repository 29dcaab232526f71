package workload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocloud.dev/gcerrors"
)

func TestBlobReader(t *testing.T) {
	ctx := context.Background()

	r, err := OpenBlobReader(ctx, "mem://", "bucket1/")
	require.NoError(t, err)
	defer r.Close()

	r.Files = 3
	r.ChunkSize = 100

	for i, size := range []int{250, 100, 40} {
		key := "bucket1/Workload.4/" + string(rune('0'+i))
		require.NoError(t, r.Bucket.WriteAll(ctx, key, make([]byte, size), nil))
	}

	total, err := r.Run(ctx, 4, 0)
	require.NoError(t, err)
	require.Equal(t, int64(100+100+40), total)

	total, err = r.Run(ctx, 5, 0)
	require.Zero(t, total)
	require.Equal(t, gcerrors.NotFound, gcerrors.Code(err))

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	require.Equal(t, "bucket1/Workload.5/0", readErr.Path)
}
