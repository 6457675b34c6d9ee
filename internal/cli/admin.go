package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin operations (require an admin token)",
	}

	cmd.AddCommand(newFillCreditCmd())
	cmd.AddCommand(newBroadcastCmd())
	cmd.AddCommand(newBroadcastLiveCmd())

	return cmd
}

func newFillCreditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill-credit <username> <amount>",
		Short: "Credit a user's balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return err
			}

			body := map[string]any{
				"username": args[0],
				"amount":   amount,
			}

			var result CreditResult
			if err := client.Post("/api/admin/fill-credit", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBroadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <result>",
		Short: "Broadcast a two-digit result to all live viewers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"result": args[0]}

			var result BroadcastResult
			if err := client.Post("/api/admin/broadcast-result", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBroadcastLiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast-live",
		Short: "Pull the current number from the upstream feed and broadcast it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BroadcastResult
			if err := client.Post("/api/admin/broadcast-live", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
