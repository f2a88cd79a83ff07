package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alfredoptarigan/cv-matcher/internal/config"
)

const app = "cv-matcher"

// Actual version can be specified in build command.
var version = "unknown"

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "cv-matcher scores how well a CV fits a job posting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (yaml, json or toml)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("log.debug", root.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log.json", root.PersistentFlags().Lookup("json"))

	load := func() (*config.Config, error) {
		// a missing .env is fine
		_ = godotenv.Load()

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
			}
		}
		return config.LoadWith(v)
	}

	root.AddCommand(newMatchCmd(load))
	root.AddCommand(newWarmCmd(load))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	})

	return root
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
