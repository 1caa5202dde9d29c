package main

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/proserc/cmd/proserc/commands"
	"github.com/walteh/proserc/cmd/proserc/opts"
	"github.com/walteh/proserc/pkg/config"
	"github.com/walteh/proserc/pkg/log"
	"github.com/walteh/proserc/pkg/status"
)

// rootFlags are the flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	async      bool
}

// newRootCmd builds the command tree. Options are filled in by
// PersistentPreRunE so the subcommands see the loaded settings.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "proserc",
		Short: "Rule-based find and replace for prose, plus a chapter splitter",
		Long: `proserc rewrites text with ordered literal find/replace rules grouped into
named modes, and splits long chapters into parts of roughly equal word count.

Rules are saved in a settings file (.proserc.json by default). Every command
reads standard input when no file is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupRoot(cmd, flags, rootOpts)
			if err != nil {
				return errors.Errorf("initializing: %w", err)
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewReplaceCmd(rootOpts),
		commands.NewSplitCmd(rootOpts),
		commands.NewCountCmd(rootOpts),
		commands.NewModesCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// execute runs cmd and reports a failure once on its stderr
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		log.NewUserLoggerTo(ctx, cmd.ErrOrStderr()).LogValidation(false, "Command failed", err)
	}
	return err
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "settings file path (default $PROSERC_CONFIG or .proserc.json)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.async, "async", false, "process inputs concurrently")
}

// setupRoot merges flags with the environment, configures logging and loads
// the settings file
func setupRoot(cmd *cobra.Command, flags *rootFlags, o *opts.RootOpts) (context.Context, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("config") {
		settings.ConfigPath = flags.configFile
	}
	if cmd.Flags().Changed("debug") {
		settings.Debug = flags.debug
	}
	if cmd.Flags().Changed("async") {
		settings.Async = flags.async
	}

	ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), settings.Debug)

	cfg, err := config.Load(ctx, settings.ConfigPath)
	if err != nil {
		return nil, errors.Errorf("loading settings: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	*o = opts.RootOpts{
		Settings:   settings,
		Config:     cfg,
		Async:      settings.Async,
		UserLogger: log.NewUserLoggerTo(ctx, cmd.ErrOrStderr()),
		Files:      status.New(".", logger, status.WithFormatter(status.NewConsoleFormatter("output"))),
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
	}

	return ctx, nil
}

// setupLogging configures zerolog and the console logger. Both write to
// stderr so results on stdout stay pipeable.
func setupLogging(ctx context.Context, stderr io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
		pterm.EnableDebugMessages()
	}

	if ctx == nil {
		ctx = context.Background()
	}

	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
		w.NoColor = stderr != os.Stderr
	})).With().Timestamp().Logger().Level(level)

	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(stderr, zlog))
}
