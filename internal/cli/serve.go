package cli

import (
	"newel_classroom/internal/app"
	"newel_classroom/internal/config"

	"github.com/spf13/cobra"
)

// NewServeCmd starts the HTTP server and blocks until SIGINT/SIGTERM.
func NewServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}
