package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix scopes CLI settings in the environment, e.g. SPLITLEDGER_URL.
const envPrefix = "SPLITLEDGER"

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "splitledger-cli",
		Short:         "splitledger CLI tool",
		Long:          `A command line interface for splitledger reports, split previews and schema migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "Base URL of the splitledger API")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = v.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(reportCmd(v), splitCmd(), migrateCmd(v))

	return rootCmd
}
