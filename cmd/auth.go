package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the account and session",
	Long:  "Register, log in and out, and inspect the current session",
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  authRegister,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE:  authLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session token",
	RunE:  authLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account owning the current session",
	RunE:  authWhoami,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)

	for _, c := range []*cobra.Command{authRegisterCmd, authLoginCmd} {
		c.Flags().String("login", "", "Account login (required)")
		c.Flags().String("password", "", "Account password (required)")
		c.MarkFlagRequired("login")
		c.MarkFlagRequired("password")
	}
}

func authRegister(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	login, _ := cmd.Flags().GetString("login")
	password, _ := cmd.Flags().GetString("password")

	user, err := client.Register(context.Background(), login, password)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	fmt.Printf("Registered user %s (id %d)\n", user.Login, user.ID)
	return nil
}

func authLogin(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	login, _ := cmd.Flags().GetString("login")
	password, _ := cmd.Flags().GetString("password")

	if _, err := client.Login(context.Background(), login, password); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	fmt.Printf("Logged in as %s\n", login)
	return nil
}

func authLogout(cmd *cobra.Command, args []string) error {
	_, store, err := newClient()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	fmt.Println("Logged out")
	return nil
}

func authWhoami(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	fmt.Printf("%s (id %d)\n", user.Login, user.ID)
	return nil
}
