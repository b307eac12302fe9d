package cli

import (
	"github.com/spf13/cobra"
)

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password utilities",
	}

	cmd.AddCommand(newPasswordCheckCmd())

	return cmd
}

func newPasswordCheckCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a password against the credential policy (advisory)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"password": password}
			var result PasswordCheckResult

			if _, err := client.Post("/api/v1/password/check", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Candidate password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
