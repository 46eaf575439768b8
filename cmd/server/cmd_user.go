package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shippingerp/models"
	"shippingerp/services"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateFlags struct {
	email, username, password, role string
}

// userCreateCmd is how staff and admin accounts are made; signup only creates users.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with a given role",
	Args:  cobra.NoArgs,
	RunE:  runUserCreate,
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreateFlags.email, "email", "", "login email")
	f.StringVar(&userCreateFlags.username, "username", "", "display name (max 20 characters)")
	f.StringVar(&userCreateFlags.password, "password", "", "initial password")
	f.StringVar(&userCreateFlags.role, "role", models.RoleUser, "user, staff or admin")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.conn.Disconnect(context.Background())

	svc := &services.UserService{Repo: be.users, Log: logger}
	user, err := svc.CreateUser(ctx, services.SignupInput{
		Username: userCreateFlags.username,
		Email:    userCreateFlags.email,
		Password: userCreateFlags.password,
	}, userCreateFlags.role)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}
