// Package cmd defines the listingforge command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orizehavi/listingforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "listingforge",
	Short: "Human-in-the-loop Etsy listing generator for digital wall art",
	Long: `Listingforge drives a listing from concept to a ready-to-upload
directory: concept generation, artwork generation, SEO copy, print-size
assets, and mockups. The concept and artwork stages wait for your approval;
rejecting a candidate regenerates it instead of failing the run.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/listingforge/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory for listing runs")
	rootCmd.PersistentFlags().String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/listingforge")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LISTINGFORGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., LISTINGFORGE_GEN_TEXT_MODEL for gen.text_model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
