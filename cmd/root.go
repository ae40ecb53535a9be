package cmd

import (
	"github.com/bitrise-io/genai-prompt-form/common"
	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	configPath string

	// Loaded in PersistentPreRunE, shared by all subcommands
	settings = common.WithDefaultSettings()
)

var rootCmd = &cobra.Command{
	Use:   "genai-prompt-form",
	Short: "GenAI Prompt Form - send a prompt to an AI provider from a web form",
	Long: `GenAI Prompt Form serves a small web form that forwards a prompt to one of the
supported providers (azure, openai, github) and shows the returned text.
Running it without a subcommand starts the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger with the specified log level
		logger.Init(logLevel)

		// Variables already present in the environment take precedence over .env
		if err := godotenv.Load(); err == nil {
			logger.Debug("Loaded environment from .env")
		}

		var err error
		settings, err = common.WithYamlFile(configPath)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(settings.LogLevel)
		}
		logger.Debugf("Using settings: %+v", settings)
		return nil
	},
	RunE: runServe,
}

// Execute runs the root command and handles errors
func Execute() error {
	defer logger.Sync()
	// Subcommands are added in their respective init() functions
	return rootCmd.Execute()
}

func init() {
	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a settings file (defaults to prompt-form.yml in the working directory)")

	addServeFlags(rootCmd)
}
