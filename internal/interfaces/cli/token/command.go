// Package token mints platform session tokens for operators and local testing.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assetflow/assetflow/internal/infrastructure/auth"
	"github.com/assetflow/assetflow/internal/interfaces/cli/bootstrap"
	"github.com/assetflow/assetflow/internal/shared/authorization"
)

var (
	env    string
	userID uint
	role   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Session token tools",
	}

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token",
		Long:  `Sign an access token for the given user and role with the configured secret.`,
		RunE:  runIssue,
	}
	issue.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	issue.Flags().UintVar(&userID, "user", 0, "User ID (required)")
	issue.Flags().StringVar(&role, "role", string(authorization.RoleModeler), "Role (admin, qa, modeler, client)")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	parsed, ok := authorization.ParseUserRole(role)
	if !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	if userID == 0 {
		return fmt.Errorf("--user must be a positive id")
	}

	rt, err := bootstrap.Init(bootstrap.Env(env), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc := auth.NewJWTService(rt.Config.Auth.JWT.Secret, rt.Config.Auth.JWT.AccessExpMinutes)
	signed, err := svc.Generate(userID, parsed)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
