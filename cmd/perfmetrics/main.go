package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gcsfuse-tools/perfmetrics/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.PutCmd,
	&commands.AppendCmd,
	&commands.GetCmd,
	&commands.ReadCmd,
	&commands.GenerateCmd,
}

var options = commands.Options{
	Debug:  false,
	Config: commands.DEFAULT_CONFIG,
}

func main() {
	root := &cobra.Command{
		Use:           commands.APP,
		Short:         "Uploads gcsfuse performance metrics to Google Sheets and runs the read workload",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	root.PersistentFlags().StringVar(&options.Config, "config", options.Config, "Configuration file (YAML)")

	for _, c := range cli {
		root.AddCommand(subcommand(c))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		cancel()
		log.Fatalf("ERROR: %v", err)
	}
}

func subcommand(c commands.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.Name() + " " + c.Usage(),
		Short: c.Description(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Execute(cmd.Context(), &options)
		},
	}

	cmd.Flags().AddGoFlagSet(c.FlagSet())
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		c.Help()
	})

	return cmd
}
