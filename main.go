// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/loghier/internal/app"
	"github.com/mia-platform/loghier/internal/config"
	"github.com/mia-platform/loghier/internal/info"
	"github.com/mia-platform/loghier/internal/logger"
	"github.com/mia-platform/loghier/internal/server"
)

var (
	// Version is injected at build time via the Makefile.
	Version = info.Version
	// BuildDate is injected at build time via the Makefile.
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "loghier runs the application modules through a hierarchy of loggers"
	appLong  = `Run the application modules through a hierarchy of loggers.
	The "main" logger writes to the console and to a log file; its children
	inherit or override its level and every accepted message is propagated to
	the sinks of all the ancestors.

	Default values are read from the LOG_FILE, LOG_LEVEL and LOG_CONSOLE
	environment variables and can be overridden by flags.`
	appExample = `# Run with the defaults, appending to app.log
	loghier

	# Only keep warnings and above, without a log file
	loghier --log-level WARNING --log-file ""`

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"

	logFileFlagName  = "log-file"
	logFileFlagUsage = "file appended to by the main logger, empty to disable it"

	consoleFlagName  = "console"
	consoleFlagUsage = "stream used by the console sink (stdout or stderr)"

	versionCmdName = "version"

	serveCmdName  = "serve"
	serveCmdShort = "serve the application over HTTP"
	serveCmdLong  = `Serve the application over HTTP.
	Every POST to /run executes the application modules with the same logger
	hierarchy used by the root command; requests are logged through the
	"main.http.request" logger. GET /-/healthz reports the service status.

	The server listens on HTTP_HOST:HTTP_PORT (default :3000).`
	serveCmdExample = `# Serve on port 8080 and trigger a run
	HTTP_PORT=8080 loghier serve &
	curl -X POST localhost:8080/run`
)

var (
	allLoggerLevels = func() []string {
		levels := make([]string, 0, len(logger.AllLevels))
		for _, level := range logger.AllLevels {
			levels = append(levels, level.String())
		}
		return levels
	}()
	logLevelFlagUsage = "set the level of the main logger and its sinks (possible values: " + strings.Join(allLoggerLevels, ", ") + ")"
)

// rootFlags holds the flags overriding the environment configuration.
type rootFlags struct {
	logLevel string
	logFile  string
	console  string
}

// addFlags registers the CLI flags on cmd, using defaults as default values.
func (f *rootFlags) addFlags(cmd *cobra.Command, defaults *config.Config) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, defaults.LogLevel, heredoc.Doc(logLevelFlagUsage))
	flags.StringVar(&f.logFile, logFileFlagName, defaults.LogFile, logFileFlagUsage)
	flags.StringVar(&f.console, consoleFlagName, defaults.LogConsole, consoleFlagUsage)
}

// toConfig returns the validated configuration resulting from the flags and
// the remaining defaults.
func (f *rootFlags) toConfig(defaults *config.Config) (*config.Config, error) {
	cfg := *defaults
	cfg.LogFile = f.logFile
	cfg.LogLevel = f.logLevel
	cfg.LogConsole = f.console

	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	defaults, err := config.LoadDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := rootCmd(defaults)

	exitCode := 0
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := cmd.ExecuteContext(ctx); err != nil {
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd(defaults *config.Config) *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:     appName,
		Short:   heredoc.Doc(appShort),
		Long:    heredoc.Doc(appLong),
		Example: heredoc.Doc(appExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flag.toConfig(defaults)
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			if err := runApplication(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				cmd.PrintErrln(err)
				return err
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd, defaults)
	cmd.AddCommand(
		serveCmd(flag, defaults),
		versionCmd(),
	)

	return cmd
}

// newApplication sets up the logger hierarchy described by cfg.
func newApplication(cfg *config.Config, stdout, stderr io.Writer) (*app.Application, error) {
	console := stderr
	if strings.EqualFold(cfg.LogConsole, config.ConsoleStdout) {
		console = stdout
	}

	return app.New(app.Options{
		Console: console,
		LogFile: cfg.LogFile,
		Level:   cfg.Level(),
	})
}

// runApplication runs the application once with the hierarchy described by cfg.
func runApplication(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	application, err := newApplication(cfg, stdout, stderr)
	if err != nil {
		return err
	}

	application.Run(ctx)
	return application.Close()
}

// serveCmd constructs the Cobra command that exposes the application over HTTP.
func serveCmd(flag *rootFlags, defaults *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdName,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flag.toConfig(defaults)
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			if err := serveApplication(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				cmd.PrintErrln(err)
				return err
			}
			return nil
		},
	}
}

// serveApplication serves the application until ctx is done.
func serveApplication(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	application, err := newApplication(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	defer application.Close()

	srv := server.New(application.Registry().GetOrCreate(server.LoggerName), cfg.Address(), func(ctx context.Context) error {
		application.Run(ctx)
		return nil
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		if err := srv.Stop(); err != nil {
			return err
		}
		return <-errChan
	}
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, BuildDate, runtime.Version()))
		},
	}
}

// versionString formats the version metadata for display.
func versionString(version, buildDate, runtimeVersion string) string {
	outputString := version
	if buildDate != "" {
		outputString += " (" + buildDate + ")"
	}

	return outputString + ", Go Version: " + runtimeVersion
}
