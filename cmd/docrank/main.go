package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/app"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func runMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := Execute(ctx, args, stdout, stderr); err != nil {
		return 1
	}
	return 0
}

// Execute parses args and runs one invocation. Usage problems, -h/--help
// included, print the usage text to stderr and return an ErrUsage error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		opts       app.Options
		configPath string
		help       bool
	)
	rootCmd := &cobra.Command{
		Use:     `docrank -d <directory> -s "<search query>"`,
		Short:   "Index a directory of text files and rank them against a query",
		Version: Version,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return apperrors.Newf(apperrors.ErrUsage, "unexpected argument %q", args[0])
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, opts, stdout, stderr)
		},
	}
	registerFlags(rootCmd.Flags(), &opts, &configPath, &help)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.New(apperrors.ErrUsage, err.Error())
	})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stderr)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case help:
		// cobra has already printed the help text
		return apperrors.New(apperrors.ErrUsage, "help requested")
	case apperrors.Is(err, apperrors.ErrUsage):
		fmt.Fprintf(stderr, "Error: %v\n%s", err, rootCmd.UsageString())
		return err
	case err != nil:
		fmt.Fprintf(stderr, "Error [%s]: %v\n", apperrors.Category(err), err)
		return err
	}
	return nil
}

func registerFlags(flags *pflag.FlagSet, opts *app.Options, configPath *string, help *bool) {
	flags.StringVarP(&opts.Directory, "directory", "d", "", "directory to scan for new documents; omit to query the stored corpus only")
	flags.StringVarP(&opts.Query, "search", "s", "", "search query, terms separated by single spaces")
	flags.StringVarP(configPath, "config", "c", "", "path to a YAML config file")
	flags.BoolVarP(help, "help", "h", false, "show usage")
}

func run(ctx context.Context, configPath string, opts app.Options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperrors.Newf(apperrors.ErrInvalidInput, "loading config: %v", err)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr)

	runner, err := app.NewRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeWithWarning("runner", runner)
	return runner.Run(ctx, opts, stdout)
}

// closeWithWarning closes c and logs a failure, such as an unflushed kafka
// writer, instead of dropping it.
func closeWithWarning(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("close failed", "component", name, "error", err)
	}
}
