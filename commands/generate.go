package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/gcsfuse-tools/perfmetrics/workload"
)

var GenerateCmd = Generate{
	processes: 1,
	size:      2 * workload.DefaultChunkSize,
}

// Generate creates the workload files read by the 'read' command.
type Generate struct {
	root      string
	processes int
	files     int
	size      int64
}

func (cmd *Generate) Name() string {
	return "generate"
}

func (cmd *Generate) Description() string {
	return "Creates the workload files for the read benchmark"
}

func (cmd *Generate) Usage() string {
	return "[--root <dir>] [--processes <N>] [--files <N>] [--size <bytes>]"
}

func (cmd *Generate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] generate [options]\n", APP)
	fmt.Println()
	fmt.Println("  Creates <root>/Workload.<process>/<0..N-1> for each process.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s generate --root /mnt/disks/bucket1 --processes 4 --size 4194304\n", APP)
	fmt.Println()
}

func (cmd *Generate) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("generate", flag.ExitOnError)

	flagset.StringVar(&cmd.root, "root", cmd.root, "Directory for the workload files. Defaults to the configured mount root")
	flagset.IntVar(&cmd.processes, "processes", cmd.processes, "Number of process directories")
	flagset.IntVar(&cmd.files, "files", cmd.files, "Files per process. Defaults to the configured count")
	flagset.Int64Var(&cmd.size, "size", cmd.size, "File size in bytes")

	return flagset
}

func (cmd *Generate) Execute(ctx context.Context, options *Options) error {
	conf, err := options.load()
	if err != nil {
		return err
	}

	if cmd.processes < 1 {
		return fmt.Errorf("--processes must be at least 1")
	}

	if cmd.size < 0 {
		return fmt.Errorf("invalid --size %d", cmd.size)
	}

	files := conf.Workload.Files
	if cmd.files > 0 {
		files = cmd.files
	}

	root := first(cmd.root, conf.Workload.MountRoot)

	if err := workload.Generate(root, cmd.processes, files, cmd.size); err != nil {
		return err
	}

	infof("created %d files of %d bytes under %s", cmd.processes*files, cmd.size, root)

	return nil
}
