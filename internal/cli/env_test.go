package cli_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/todopager/internal/cli"
)

func findCmd(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()

	cmd, _, err := root.Find([]string{name})
	require.NoError(t, err)

	return cmd
}

func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars       map[string]string
		args          []string
		wantLogLevel  string
		wantLogFormat string
		wantAPIURL    string
	}{
		"environment variables are bound when no args provided": {
			envVars: map[string]string{
				"TODOPAGER_LOG_LEVEL":  "debug",
				"TODOPAGER_LOG_FORMAT": "json",
				"TODOPAGER_API_URL":    "http://localhost:8080",
			},
			args:          []string{},
			wantLogLevel:  "debug",
			wantLogFormat: "json",
			wantAPIURL:    "http://localhost:8080",
		},
		"command line args take precedence over environment variables": {
			envVars: map[string]string{
				"TODOPAGER_LOG_LEVEL":  "debug",
				"TODOPAGER_LOG_FORMAT": "json",
			},
			args:          []string{"--log-level", "error", "--log-format", "text"},
			wantLogLevel:  "error",
			wantLogFormat: "text",
		},
		"no environment variables uses defaults": {
			envVars:       map[string]string{},
			args:          []string{},
			wantLogLevel:  "info",
			wantLogFormat: "text",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()

			err := cmd.ParseFlags(tc.args)
			require.NoError(t, err)

			logLevel, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogLevel, logLevel)

			logFormat, err := cmd.Flags().GetString("log-format")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogFormat, logFormat)

			apiURL, err := cmd.Flags().GetString("api-url")
			require.NoError(t, err)
			assert.Equal(t, tc.wantAPIURL, apiURL)
		})
	}
}

func TestBindEnvVars_Subcommands(t *testing.T) {
	t.Setenv("TODOPAGER_ADDR", "0.0.0.0:9000")
	t.Setenv("TODOPAGER_LIMIT", "25")

	root := cli.NewRootCmd()

	addr, err := findCmd(t, root, "mock").Flags().GetString("addr")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", addr)

	limit, err := findCmd(t, root, "list").Flags().GetInt("limit")
	require.NoError(t, err)
	assert.Equal(t, 25, limit)
}

func TestEnvironmentVariableUsageUpdate(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCmd()

	tcs := map[string]struct {
		cmd     *cobra.Command
		flag    string
		wantEnv string
	}{
		"log-level": {root, "log-level", "$TODOPAGER_LOG_LEVEL"},
		"api-url":   {root, "api-url", "$TODOPAGER_API_URL"},
		"db-driver": {findCmd(t, root, "mock"), "db-driver", "$TODOPAGER_DB_DRIVER"},
		"page":      {findCmd(t, root, "list"), "page", "$TODOPAGER_PAGE"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := tc.cmd.Flags().Lookup(tc.flag)
			if flag == nil {
				flag = tc.cmd.PersistentFlags().Lookup(tc.flag)
			}
			require.NotNil(t, flag)
			assert.Contains(t, flag.Usage, tc.wantEnv)
		})
	}
}
