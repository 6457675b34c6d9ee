package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/health", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProxyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "Show the current upstream live payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LiveProxyResult

			if err := client.Get("/api/2d-proxy", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
