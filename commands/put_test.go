package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutDryRun(t *testing.T) {
	t.Setenv("MACHINE_TYPE", "n2-standard-96")

	dir := t.TempDir()
	file := filepath.Join(dir, "results.tsv")
	require.NoError(t, os.WriteFile(file, []byte("Test\tThroughput\nseq_read\t512.5\nrand_read\t256\n"), 0644))

	var out bytes.Buffer

	cmd := Put{
		command:   command{dryrun: true},
		worksheet: "Read Tests",
		file:      file,
		header:    true,
		out:       &out,
	}

	err := cmd.Execute(context.Background(), &Options{Config: filepath.Join(dir, "missing.yaml")})

	require.NoError(t, err)
	require.Equal(t, "Test\tThroughput\nseq_read\t512.5\nrand_read\t256\n", out.String())
}

func TestPutDryRunCSV(t *testing.T) {
	t.Setenv("MACHINE_TYPE", "n2-standard-96")

	dir := t.TempDir()
	file := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(file, []byte("seq_read,512.5,TRUE\n"), 0644))

	var out bytes.Buffer

	cmd := Put{
		command:   command{dryrun: true},
		worksheet: "Sheet1",
		file:      file,
		out:       &out,
	}

	require.NoError(t, cmd.Execute(context.Background(), &Options{}))
	require.Equal(t, "\nseq_read\t512.5\ttrue\n", out.String())
}

func TestPutWithMissingOptions(t *testing.T) {
	cmd := Put{command: command{dryrun: true}, file: "results.tsv"}

	err := cmd.Execute(context.Background(), &Options{})

	require.EqualError(t, err, "--worksheet is a required option")
}

func TestPutWithMissingFile(t *testing.T) {
	cmd := Put{command: command{dryrun: true}, worksheet: "Sheet1", file: filepath.Join(t.TempDir(), "nope.tsv")}

	err := cmd.Execute(context.Background(), &Options{})

	require.ErrorIs(t, err, os.ErrNotExist)
}
