package main

import (
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tuannm99/mlinql/internal"
	"github.com/tuannm99/mlinql/internal/catalog"
	"github.com/tuannm99/mlinql/internal/shell"
	"github.com/tuannm99/mlinql/internal/sql/executor"
)

// Version information (set at build time).
var Version = "0.1.0"

// shownError is a statement failure the shell already printed; it only
// sets the exit status.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

// isTerminal decides between the readline loop and plain line reading.
var isTerminal = readline.DefaultIsTerminal

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		oneShot string
	)

	cmd := &cobra.Command{
		Use:   "mlinql",
		Short: "mlinql - interactive schema shell",
		Long: `mlinql reads schema statements one line at a time and keeps every
database as a <name>.json catalog document:

  CREATE DATABASE shop
  USE shop
  CREATE TABLE users { id, name }
  LIST DATABASES
  LIST TABLES`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := internal.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			sh, err := newShell(cmd, cfg)
			if err != nil {
				return err
			}

			if strings.TrimSpace(oneShot) != "" {
				if err := sh.Exec(oneShot); err != nil {
					return shownError{err}
				}
				return nil
			}
			if isTerminal() {
				return sh.Run()
			}
			return sh.RunScript(cmd.InOrStdin())
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (default: ./mlinql.yaml if present)")
	f.StringVarP(&oneShot, "command", "c", "", "execute one line of statements and exit")
	f.String("workdir", internal.DefaultWorkdir, "directory holding the <database>.json files")
	f.String("prompt", internal.DefaultPrompt, "interactive prompt")
	f.String("history", "", "history file path (default: ~/.mlinql_history)")
	f.Int("history-max", internal.DefaultHistoryMax, "max history lines kept in memory")
	f.StringP("output", "o", internal.DefaultOutput,
		"listing format ("+strings.Join(internal.OutputFormats, "|")+")")
	f.String("log-level", internal.DefaultLogLevel, "log level (debug|info|warn|error)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return internal.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	return cmd
}

func newShell(cmd *cobra.Command, cfg *internal.MlinqlConfig) (*shell.Shell, error) {
	lvl, err := internal.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	store := catalog.NewStore(cfg.Workdir, logger)
	exec := executor.NewExecutor(store, logger)

	logger.Debug("mlinql.start",
		"workdir", cfg.Workdir,
		"history", cfg.Shell.HistoryFile,
		"output", cfg.Shell.Output,
	)

	return shell.New(exec, shell.Options{
		Prompt:  cfg.Shell.Prompt,
		Output:  cfg.Shell.Output,
		History: shell.NewHistory(cfg.Shell.HistoryFile, cfg.Shell.HistoryMax),
	}, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger), nil
}
