package workload

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run invokes task once for every (process, thread) pair concurrently and returns the total
// number of bytes read. The first failure cancels the remaining invocations.
func Run(ctx context.Context, task Task, processes, threads int) (int64, error) {
	var total atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)

	for p := 0; p < processes; p++ {
		for t := 0; t < threads; t++ {
			processID, threadID := p, t

			group.Go(func() error {
				n, err := task.Run(groupCtx, processID, threadID)
				if err != nil {
					return err
				}

				log.WithFields(log.Fields{
					"process": processID,
					"thread":  threadID,
					"bytes":   n,
				}).Debug("task complete")

				total.Add(n)
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return 0, err
	}

	return total.Load(), nil
}
