package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager/internal/log"
	"github.com/Alp4ka/todopager/internal/tui"
)

type TUIArgs struct {
	*RootArgs

	LogFile string
	Compact bool
	Remote  bool
}

func (ta *TUIArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ta.LogFile, "log-file", "", "Write logs to this file while the TUI runs")
	cmd.Flags().BoolVar(&ta.Compact, "compact", false, "Start in the compact layout")
	cmd.Flags().BoolVar(&ta.Remote, "remote", false, "Fetch one page at a time from the API")
}

func NewTUICmd(rootArgs *RootArgs) *cobra.Command {
	ta := &TUIArgs{RootArgs: rootArgs}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeLog, err := ta.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, client, err := ta.newClient(logger)
			if err != nil {
				return err
			}

			opts := tui.Options{
				Loader:       client,
				Mutator:      client,
				Compact:      cfg.Compact || ta.Compact,
				ItemsPerPage: cfg.ItemsPerPage,
				Location:     cfg.LoadLocation(),
				Logger:       logger,
			}
			if cfg.RemotePaging || ta.Remote {
				opts.Pages = client
			}

			logger.Info("starting tui", slog.String("api", client.BaseURL()), slog.Bool("remote", opts.Pages != nil))

			err = tui.Run(commandContext(cmd), opts)
			if err != nil {
				return fmt.Errorf("tea: %w", err)
			}

			return nil
		},
	}
	ta.AddFlags(cmd)

	return cmd
}

// logger keeps log output off the terminal the TUI draws on.
func (ta *TUIArgs) logger() (*slog.Logger, func(), error) {
	if ta.LogFile == "" {
		return log.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(ta.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler, err := log.CreateHandlerWithStrings(f, ta.LogLevel, ta.LogFormat)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("create log handler: %w", err)
	}

	return slog.New(handler), func() { _ = f.Close() }, nil
}
