// Package cmd wires the Cobra CLI surface on top of the core crawl
// engine, following 3leaps/gonimbus's internal/cmd convention: a root
// command with persistent flags, leaf subcommands registered in init().
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	noColor bool
	quiet   bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "fuzzwalk",
	Short: "Concurrent web-path discovery engine",
	Long: `fuzzwalk issues HTTP requests to candidate paths built from a URL
template and one or more wordlists, filters responses by user-defined
predicates, records discoveries in a tree, and can either enumerate a
flat substitution space or recursively descend into discovered
directories.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-discovery report lines")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fuzzwalk")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("FUZZWALK")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // absent config file is not an error
}

// Execute runs the root command; it is the single entry point cmd/fuzzwalk
// calls from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
