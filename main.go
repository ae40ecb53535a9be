package main

import (
	"os"

	"github.com/bitrise-io/genai-prompt-form/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
