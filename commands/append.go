package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gcsfuse-tools/perfmetrics/batch"
	"github.com/gcsfuse-tools/perfmetrics/gsheet"
)

var AppendCmd = Append{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},

	out: os.Stdout,
}

// Append adds the rows of a TSV/CSV file after the last occupied row of a worksheet.
type Append struct {
	command
	url          string
	spreadsheet  string
	worksheet    string
	file         string
	repeatHeader bool
	out          io.Writer
}

func (cmd *Append) Name() string {
	return "append"
}

func (cmd *Append) Description() string {
	return "Appends the contents of a TSV or CSV file to a worksheet"
}

func (cmd *Append) Usage() string {
	return "--url <url> --worksheet <worksheet> --file <file>"
}

func (cmd *Append) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] append [options] --url <url> --worksheet <worksheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Appends the rows of a file (first line is the header) below the existing rows of")
	fmt.Println("  a worksheet. The header is written too if the worksheet is empty or has a different")
	fmt.Println("  header.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s append --url \"https://docs.google.com/spreadsheets/d/1kvHv1OBCzr9GnFxRu9RTJC7jjQjc9M4rAiDnhyak2Sg\" \\\n", APP)
	fmt.Println(`                     --worksheet "GKE" --file results.csv`)
	fmt.Println()
}

func (cmd *Append) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("append")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Spreadsheet ID (alternative to --url)")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or CSV file, with a header line")
	flagset.BoolVar(&cmd.repeatHeader, "repeat-header", cmd.repeatHeader, "Writes the header again before the appended rows")

	return flagset
}

func (cmd *Append) Execute(ctx context.Context, options *Options) error {
	conf, err := options.load()
	if err != nil {
		return err
	}

	if err := required("worksheet", cmd.worksheet, "file", cmd.file); err != nil {
		return err
	}

	spreadsheet := strings.TrimSpace(cmd.spreadsheet)
	if strings.TrimSpace(cmd.url) != "" {
		if spreadsheet, err = gsheet.ParseURL(cmd.url); err != nil {
			return err
		}
	}

	if spreadsheet == "" {
		return fmt.Errorf("one of --url or --spreadsheet is required")
	}

	b, err := readBatch(cmd.file, true)
	if err != nil {
		return err
	}

	values, err := cmd.values(ctx, conf)
	if err != nil {
		return err
	}

	if err := gsheet.Append(ctx, values, spreadsheet, cmd.worksheet, b.Header, b.Rows, cmd.repeatHeader); err != nil {
		return err
	}

	infof("appended %d rows to %s", len(b.Rows), gsheet.URL(spreadsheet))

	if m, ok := values.(*gsheet.Memory); ok {
		out := cmd.out
		if out == nil {
			out = os.Stdout
		}

		if rows := m.Rows(spreadsheet, cmd.worksheet); len(rows) > 0 {
			return batch.WriteTSV(out, rows)
		}
	}

	return nil
}
