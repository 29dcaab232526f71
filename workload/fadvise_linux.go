package workload

import (
	"os"

	"golang.org/x/sys/unix"
)

// dropCache evicts the pages just read so that the next run reads through the mount again.
func dropCache(f *os.File, length int64) error {
	return unix.Fadvise(int(f.Fd()), 0, length, unix.FADV_DONTNEED)
}
