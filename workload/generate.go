package workload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Generate creates files workload files of size bytes for each of processes processes under
// root, one goroutine per process directory. The first failure stops the remaining writers.
func Generate(root string, processes, files int, size int64) error {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte('A' + (i % 26))
	}

	group, ctx := errgroup.WithContext(context.Background())

	for p := 0; p < processes; p++ {
		dir := filepath.Join(root, Dir(p))

		group.Go(func() error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("unable to create %s (%w)", dir, err)
			}

			for i := 0; i < files; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				file := filepath.Join(dir, strconv.Itoa(i))
				if err := os.WriteFile(file, data, 0644); err != nil {
					return fmt.Errorf("unable to write %s (%w)", file, err)
				}
			}

			log.WithFields(log.Fields{"dir": dir, "files": files}).Debug("generated workload files")

			return nil
		})
	}

	return group.Wait()
}
