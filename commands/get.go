package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gcsfuse-tools/perfmetrics/batch"
	"github.com/gcsfuse-tools/perfmetrics/gsheet"
)

var GetCmd = Get{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},

	area: "",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	url  string
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a range from a Google Sheets worksheet and stores it to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--range <range> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet range to a TSV file. Without --url the spreadsheet")
	fmt.Println("  for the current machine type is used.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get --credentials \"credentials.json\" \\\n", APP)
	fmt.Println(`                   --url "https://docs.google.com/spreadsheets/d/1kvHv1OBCzr9GnFxRu9RTJC7jjQjc9M4rAiDnhyak2Sg" \`)
	fmt.Println(`                   --range "'Read Tests'!A1:D" \`)
	fmt.Println(`                   --file "read-tests.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Sheet1!A1:D'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	conf, err := options.load()
	if err != nil {
		return err
	}

	if err := required("range", cmd.area, "file", cmd.file); err != nil {
		return err
	}

	var spreadsheet string
	if strings.TrimSpace(cmd.url) != "" {
		spreadsheet, err = gsheet.ParseURL(cmd.url)
	} else {
		spreadsheet, err = targets(conf).Resolve(os.Getenv)
	}

	if err != nil {
		return err
	}

	debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, cmd.area)

	values, err := cmd.values(ctx, conf)
	if err != nil {
		return err
	}

	rows, err := values.Get(ctx, spreadsheet, cmd.area)
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".perfmetrics-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := batch.WriteTSV(tmp, rows); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("retrieved %d rows to file %s", len(rows), cmd.file)

	return nil
}
