package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_DIR")
	if envConfig == "" {
		envConfig = "configs"
	}

	var configDir string
	cmd := &cobra.Command{
		Use:           "newel",
		Short:         "Classroom writing prompts, responses, grading and leaderboard",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", envConfig, "directory containing config.yaml")
	cmd.AddCommand(NewServeCmd(&configDir))
	cmd.AddCommand(NewMigrateCmd(&configDir))
	cmd.AddCommand(NewDeleteUserCmd(&configDir))
	cmd.AddCommand(NewDeletePromptCmd(&configDir))
	return cmd
}
