// Package cli is the todopager command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager/internal/config"
	"github.com/Alp4ka/todopager/internal/log"
	"github.com/Alp4ka/todopager/todos"
)

const (
	cmdName = "todopager"
	cmdDesc = `Page through, add and edit tasks of a remote todos API.`

	cmdExamples = `  # Browse tasks interactively:
  todopager tui

  # Print the second page of open tasks:
  todopager list --page 2 --completed=false

  # Tasks of one day, oldest first:
  todopager list --day 2026-10-15 --order asc

  # Add a task:
  todopager add "Call the bank" --starts "02:30 pm" --ends "03:00 pm"

  # Serve a local API backed by postgres:
  todopager mock --db-driver postgres --dsn "host=localhost user=todos dbname=todos"`
)

type RootArgs struct {
	LogLevel   string
	LogFormat  string
	ConfigPath string
	APIURL     string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the todopager configuration file")
	cmd.PersistentFlags().
		StringVar(&ra.APIURL, "api-url", "", "Root of the todos API, overrides the config file")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewListCmd(args),
		NewAddCmd(args),
		NewEditCmd(args),
		NewDoneCmd(args),
		NewDeleteCmd(args),
		NewTUICmd(args),
		NewMockCmd(args),
		NewConfigCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}

// loadConfig reads the config file and applies flag overrides.
func (ra *RootArgs) loadConfig() (*config.Config, error) {
	path := ra.ConfigPath
	if path == "" {
		path = config.GetPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	if ra.APIURL != "" {
		cfg.APIURL = ra.APIURL

		err = cfg.Validate()
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// newClient builds the API client for the loaded config.
func (ra *RootArgs) newClient(logger *slog.Logger) (*config.Config, *todos.Client, error) {
	cfg, err := ra.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := todos.NewClient(cfg.ClientOptions(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	return cfg, client, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
