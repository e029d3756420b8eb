package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alp4ka/todopager/internal/config"
)

func NewConfigCmd(rootArgs *RootArgs) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := rootArgs.ConfigPath
			if path == "" {
				path = config.GetPath()
			}

			if write {
				err := config.NewConfig().Write(path)
				if err != nil {
					return fmt.Errorf("write config: %w", err)
				}
			}

			cfg, err := rootArgs.loadConfig()
			if err != nil {
				return err
			}

			b, err := cfg.MarshalYAML()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			_, err = cmd.OutOrStdout().Write(b)

			return err //nolint:wrapcheck // Terminal write.
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Write the default configuration unless the file exists")

	return cmd
}
