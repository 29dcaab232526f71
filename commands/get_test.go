package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetWithMissingRange(t *testing.T) {
	cmd := Get{command: command{dryrun: true}, file: "out.tsv"}

	require.EqualError(t, cmd.Execute(context.Background(), &Options{}), "--range is a required option")
}

func TestGetFromEmptyWorksheet(t *testing.T) {
	cmd := Get{
		command: command{dryrun: true},
		url:     "https://docs.google.com/spreadsheets/d/1kvHv1OBCzr9GnFxRu9RTJC7jjQjc9M4rAiDnhyak2Sg",
		area:    "Sheet1!A1:D",
		file:    filepath.Join(t.TempDir(), "out.tsv"),
	}

	require.EqualError(t, cmd.Execute(context.Background(), &Options{}), "no data in spreadsheet/range")
}
