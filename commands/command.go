package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/gcsfuse-tools/perfmetrics/config"
	"github.com/gcsfuse-tools/perfmetrics/gsheet"
)

const APP = "perfmetrics"

// Options are the global command line options, shared by all commands.
type Options struct {
	Debug  bool
	Config string
}

// Command is implemented by each perfmetrics sub-command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// command holds the settings common to the commands that talk to Google Sheets.
type command struct {
	workdir     string
	credentials string
	dryrun      bool
}

func (cmd *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (OAuth2 tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the service account or OAuth2 'credentials.json' file. May be a gs:// URL")
	flagset.BoolVar(&cmd.dryrun, "dryrun", cmd.dryrun, "Writes to an in-memory worksheet and prints the result instead of updating Google Sheets")

	return flagset
}

// values returns the Sheets values API, or an in-memory grid for a dry run.
func (cmd *command) values(ctx context.Context, conf *config.Config) (gsheet.Values, error) {
	if cmd.dryrun {
		return gsheet.NewMemory(), nil
	}

	credentials := cmd.credentials
	if strings.TrimSpace(credentials) == "" {
		credentials = conf.Sheets.Credentials
	}

	client, err := authorize(ctx, credentials, conf.Sheets.Scopes, cmd.workdir)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	return gsheet.NewGoogle(ctx, client)
}

func targets(conf *config.Config) gsheet.Targets {
	return gsheet.Targets{
		Variable:     conf.Sheets.MachineTypeVariable,
		Spreadsheets: conf.Sheets.Spreadsheets,
	}
}

// load reads the configuration file and sets up logging to match.
func (o *Options) load() (*config.Config, error) {
	conf, err := config.Load(o.Config)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration (%w)", err)
	}

	setupLogging(conf.Log, o.Debug)

	return conf, nil
}

func setupLogging(conf config.LogConfig, debug bool) {
	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		level = log.InfoLevel
	}

	if debug {
		level = log.DebugLevel
	}

	log.SetLevel(level)

	switch strings.ToLower(conf.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --debug   Displays internal information for diagnosing errors")
	fmt.Println("    --config  Configuration file (YAML)")
}

func required(flags ...string) error {
	for i := 0; i+1 < len(flags); i += 2 {
		if strings.TrimSpace(flags[i+1]) == "" {
			return fmt.Errorf("--%s is a required option", flags[i])
		}
	}

	return nil
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
