package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bitrise-io/genai-prompt-form/llm"
	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/bitrise-io/genai-prompt-form/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the prompt form web server",
	Long:  `Serve the prompt form on the configured address until interrupted.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, debug := serveConfig(cmd)
	logger.Infof("Starting server on %s (debug: %t)", addr, debug)

	registry := llm.DefaultRegistry(llm.OptionsFromSettings(settings.OpenAI)...)
	srv := server.New(llm.NewInvoker(registry)).WithDebug(debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}

// serveConfig merges the settings file with the serve flags. Only an explicit
// --debug raises the log level; otherwise the configured log_level stays in effect.
func serveConfig(cmd *cobra.Command) (addr string, debug bool) {
	addr = settings.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr, _ = cmd.Flags().GetString("addr")
	}

	debug = settings.Server.Debug
	if cmd.Flags().Changed("debug") {
		debug, _ = cmd.Flags().GetBool("debug")
		if debug && !cmd.Flags().Changed("log-level") {
			logger.SetLevel("debug")
		}
	}
	return addr, debug
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "Address to listen on (default 127.0.0.1:5000)")
	cmd.Flags().Bool("debug", true, "Run in debug mode: log every request, and debug logging unless --log-level is set")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}
