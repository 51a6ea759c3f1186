package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventify/eventify-web/internal/api"
)

var errNotLoggedIn = errors.New("not logged in")

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the credential",
	Long: `Log in with an Eventify account and save the issued token.

Examples:
  eventify login --email user@example.com --password mypass
  eventify login --email user@example.com --password mypass --token-file ./auth.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		store, client, err := cliSession(cmd.Context())
		if err != nil {
			return err
		}

		res, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", api.Message(err, "please check your credentials"))
		}
		store.Login(res.User, res.Token)

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.User.DisplayName(), res.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := cliSession(cmd.Context())
		if err != nil {
			return err
		}
		store.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account of the saved credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := cliSession(cmd.Context())
		if err != nil {
			return err
		}

		state := store.State()
		if !state.IsAuthenticated || state.Identity == nil {
			return errNotLoggedIn
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:  %s\n", state.Identity.DisplayName())
		fmt.Fprintf(out, "Email: %s\n", state.Identity.Email)
		fmt.Fprintf(out, "Role:  %s\n", state.Identity.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
