package cmd

import (
	"fmt"

	"github.com/bitrise-io/genai-prompt-form/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of the prompt form`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "GenAI Prompt Form v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
