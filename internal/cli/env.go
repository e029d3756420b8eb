package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars fills unset flags of cmd and all of its subcommands from
// TODOPAGER_<FLAG_NAME> environment variables, e.g. "api-url" is read from
// TODOPAGER_API_URL.
//
// Arguments take precedence over environment variables, which take
// precedence over defaults. The variable name is appended to each flag's
// usage text.
func bindEnvVars(cmd *cobra.Command) {
	cmd.LocalFlags().VisitAll(bindFlagToEnv)
	cmd.PersistentFlags().VisitAll(bindFlagToEnv)

	for _, sub := range cmd.Commands() {
		bindEnvVars(sub)
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := flag.Value.Set(envValue)
	if err != nil {
		// Keep the default.
		slog.Error("set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("err", err),
		)
	}
}

// flagToEnvName converts "log-level" to "TODOPAGER_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
