package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new user",
		Long: `Register a new user account.

The first registered user becomes the admin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"username": args[0],
				"password": args[1],
			}

			var result RegisterResult
			if err := client.Post("/api/auth/register", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Login and store the auth token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"username": args[0],
				"password": args[1],
			}

			var result LoginResult
			if err := client.Post("/api/auth/login", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)

			if !noSave {
				if err := cfg.SaveToken(result.Token); err != nil {
					return err
				}
				out.PrintMessage("Token saved to " + cfg.TokenFile)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the token to the token file")

	return cmd
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user's profile and balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User
			if err := client.Get("/api/user/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
