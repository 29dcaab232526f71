package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// VERSION is set at link time with -ldflags "-X github.com/gcsfuse-tools/perfmetrics/commands.VERSION=v1.2.3".
var VERSION = ""

var VersionCmd = Version{
	out: os.Stdout,
}

// Version prints the perfmetrics release, falling back to the module version recorded by
// 'go install' for untagged builds.
type Version struct {
	out io.Writer
}

func (cmd *Version) Name() string {
	return "version"
}

func (cmd *Version) Description() string {
	return "Displays the perfmetrics version"
}

func (cmd *Version) Usage() string {
	return ""
}

func (cmd *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Println("  Displays the release version e.g. v1.2.3, or 'devel' for local builds")
	fmt.Println()
}

func (cmd *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (cmd *Version) Execute(ctx context.Context, options *Options) error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	_, err := fmt.Fprintln(out, version())

	return err
}

func version() string {
	if VERSION != "" {
		return VERSION
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "devel"
}
