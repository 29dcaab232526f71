package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/gcsfuse-tools/perfmetrics/workload"
)

var ReadCmd = Read{
	processes: 1,
	threads:   1,
}

// Read runs the chunked read workload against the mounted bucket, or directly against a
// bucket URL.
type Read struct {
	root      string
	bucket    string
	prefix    string
	processes int
	threads   int
	files     int
	chunkSize int64
	dropCache bool
}

func (cmd *Read) Name() string {
	return "read"
}

func (cmd *Read) Description() string {
	return "Reads the first chunk of each workload file and reports the total bytes read"
}

func (cmd *Read) Usage() string {
	return "[--root <dir> | --bucket <url>] [--processes <N>] [--threads <N>]"
}

func (cmd *Read) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] read [options]\n", APP)
	fmt.Println()
	fmt.Println("  Reads <root>/Workload.<process>/<0..N-1> once for every process/thread pair, taking")
	fmt.Println("  the first chunk of each file. With --bucket the objects are read directly from the")
	fmt.Println("  bucket instead of through the mount.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s read --root /mnt/disks/bucket1 --processes 4 --threads 2\n", APP)
	fmt.Printf("    %s read --bucket gs://perf-bucket --processes 4\n", APP)
	fmt.Println()
}

func (cmd *Read) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("read", flag.ExitOnError)

	flagset.StringVar(&cmd.root, "root", cmd.root, "Mount point of the bucket. Defaults to the configured mount root")
	flagset.StringVar(&cmd.bucket, "bucket", cmd.bucket, "Bucket URL e.g. gs://bucket, file:///tmp/workload")
	flagset.StringVar(&cmd.prefix, "prefix", cmd.prefix, "Object key prefix (with --bucket)")
	flagset.IntVar(&cmd.processes, "processes", cmd.processes, "Number of processes")
	flagset.IntVar(&cmd.threads, "threads", cmd.threads, "Number of threads per process")
	flagset.IntVar(&cmd.files, "files", cmd.files, "Files per process. Defaults to the configured count")
	flagset.Int64Var(&cmd.chunkSize, "chunk-size", cmd.chunkSize, "Bytes read from each file. Defaults to the configured size")
	flagset.BoolVar(&cmd.dropCache, "drop-cache", cmd.dropCache, "Drops each file from the page cache after reading it")

	return flagset
}

func (cmd *Read) Execute(ctx context.Context, options *Options) error {
	conf, err := options.load()
	if err != nil {
		return err
	}

	if cmd.processes < 1 || cmd.threads < 1 {
		return fmt.Errorf("--processes and --threads must be at least 1")
	}

	files := conf.Workload.Files
	if cmd.files > 0 {
		files = cmd.files
	}

	chunkSize := conf.Workload.ChunkSize
	if cmd.chunkSize > 0 {
		chunkSize = cmd.chunkSize
	}

	bucket := first(cmd.bucket, conf.Workload.Bucket)
	prefix := first(cmd.prefix, conf.Workload.Prefix)

	var task workload.Task
	var source string

	if bucket != "" {
		r, err := workload.OpenBlobReader(ctx, bucket, prefix)
		if err != nil {
			return err
		}
		defer r.Close()

		r.Files = files
		r.ChunkSize = chunkSize
		task, source = r, bucket
	} else {
		r := workload.NewChunkedReader(first(cmd.root, conf.Workload.MountRoot))
		r.Files = files
		r.ChunkSize = chunkSize
		r.DropCache = cmd.dropCache || conf.Workload.DropCache
		task, source = r, r.Root
	}

	debugf("reading %d files per task from %s (processes:%d threads:%d chunk:%d)", files, source, cmd.processes, cmd.threads, chunkSize)

	total, err := workload.Run(ctx, task, cmd.processes, cmd.threads)
	if err != nil {
		return err
	}

	infof("read %d bytes from %s", total, source)
	fmt.Printf("%d\n", total)

	return nil
}

func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
