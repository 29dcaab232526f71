package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gcsfuse-tools/perfmetrics/batch"
	"github.com/gcsfuse-tools/perfmetrics/gsheet"
)

var PutCmd = Put{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},

	worksheet: "",
	file:      "",
	header:    false,
	out:       os.Stdout,
}

// Put replaces the data rows of the worksheet for the current machine type with the
// contents of a TSV/CSV file.
type Put struct {
	command
	worksheet string
	file      string
	header    bool
	out       io.Writer
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Replaces the data rows of a worksheet with the contents of a TSV or CSV file"
}

func (cmd *Put) Usage() string {
	return "--worksheet <worksheet> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --worksheet <worksheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Clears everything below the header row of the worksheet and writes the rows from")
	fmt.Println("  the file in its place. The spreadsheet is selected by the machine type label in the")
	fmt.Println("  MACHINE_TYPE environment variable.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s put --credentials \"gs://bucket/creds.json\" --worksheet \"Read Tests\" --file results.tsv\n", APP)
	fmt.Printf("    %s put --dryrun --header --worksheet Sheet1 --file results.csv\n", APP)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name e.g. 'Read Tests'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or CSV file with the rows to upload")
	flagset.BoolVar(&cmd.header, "header", cmd.header, "Skips the first line of the file")

	return flagset
}

func (cmd *Put) Execute(ctx context.Context, options *Options) error {
	conf, err := options.load()
	if err != nil {
		return err
	}

	if err := required("worksheet", cmd.worksheet, "file", cmd.file); err != nil {
		return err
	}

	b, err := readBatch(cmd.file, cmd.header)
	if err != nil {
		return err
	}

	debugf("read %d rows from %s", len(b.Rows), cmd.file)

	values, err := cmd.values(ctx, conf)
	if err != nil {
		return err
	}

	t := targets(conf)

	// ... dry run: seed the worksheet with the file header
	if m, ok := values.(*gsheet.Memory); ok && b.Header != nil {
		if id, err := t.Resolve(os.Getenv); err == nil {
			m.Put(id, cmd.worksheet, [][]any{b.Header})
		}
	}

	if err := gsheet.NewSyncer(values, t).Sync(ctx, cmd.worksheet, b.Rows); err != nil {
		return err
	}

	infof("uploaded %d rows to worksheet %s", len(b.Rows), cmd.worksheet)

	if m, ok := values.(*gsheet.Memory); ok {
		return cmd.print(m, t)
	}

	return nil
}

func (cmd *Put) print(m *gsheet.Memory, t gsheet.Targets) error {
	id, err := t.Resolve(os.Getenv)
	if err != nil {
		return err
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	rows := m.Rows(id, cmd.worksheet)
	if len(rows) == 0 {
		return nil
	}

	return batch.WriteTSV(out, rows)
}

func readBatch(file string, header bool) (*batch.Batch, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := batch.Read(f, batch.Comma(file), header)
	if err != nil {
		return nil, fmt.Errorf("error reading %s (%w)", file, err)
	}

	return b, nil
}
