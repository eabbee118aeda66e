package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/jsonview/internal/config"
	"github.com/baaaaaaaka/jsonview/internal/logging"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

type rootOptions struct {
	configPath  string
	maxColWidth int
	logFile     string
	logLevel    string
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jsonview <file>",
		Short:         "Browse a JSON or JSON Lines file as an interactive table",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args:          exactFileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Append structured logs to this file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info or error")
	cmd.Flags().IntVar(&opts.maxColWidth, "max-col-width", 0, "Maximum column width in cells")

	cmd.AddCommand(
		newExportCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

// exactFileArg requires one file argument and prints usage otherwise.
func exactFileArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		_ = cmd.Usage()
		return err
	}
	return nil
}

// settings loads the config file and applies flags given on the command
// line on top of it.
func (o *rootOptions) settings(cmd *cobra.Command) (*config.Store, config.Config, error) {
	store, err := config.NewStore(o.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config %s: %w", store.Path(), err)
	}

	flags := cmd.Flags()
	if f := flags.Lookup("max-col-width"); f != nil && f.Changed {
		cfg.MaxColumnWidth = o.maxColWidth
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.Config{}, err
	}
	return store, cfg.WithDefaults(), nil
}

// startLogging attaches the configured logger to ctx. The returned function
// flushes and closes the log file.
func startLogging(ctx context.Context, cfg config.Config) (context.Context, func() error, error) {
	log, closeFn, err := logging.Open(cfg.LogFile, logging.Options{Level: cfg.LogLevel, Version: buildVersion()})
	if err != nil {
		return ctx, closeFn, err
	}
	return logging.WithLogger(ctx, log), closeFn, nil
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
