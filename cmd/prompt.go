package cmd

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/genai-prompt-form/common"
	"github.com/bitrise-io/genai-prompt-form/llm"
	"github.com/bitrise-io/genai-prompt-form/model"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text]",
	Short: "Send a prompt to a provider and print the response",
	Long:  `Send a single prompt to one of the providers and print the response, the same way the web form does.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		width, _ := cmd.Flags().GetInt("width")

		openAISettings := settings.OpenAI
		if cmd.Flags().Changed("model") {
			openAISettings.Model, _ = cmd.Flags().GetString("model")
		}

		req := model.PromptRequest{
			Prompt:   strings.Join(args, " "),
			Provider: llm.ResolveProvider(provider),
		}

		invoker := llm.NewInvoker(llm.DefaultRegistry(llm.OptionsFromSettings(openAISettings)...))
		resp := invoker.Invoke(cmd.Context(), req)

		if width > 0 {
			resp = common.WrapText(resp, width)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringP("provider", "p", llm.DefaultProvider, "Provider to use (azure, openai, github)")
	promptCmd.Flags().StringP("model", "m", "", "OpenAI model to use (defaults to the settings file)")
	promptCmd.Flags().IntP("width", "w", 80, "Wrap the response at this many columns (0 disables wrapping)")
}
