package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swasthaai/swastha-cli/internal/flow"
	"github.com/swasthaai/swastha-cli/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, sign up, and manage your session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email OTP (and security PIN, if set)",
	RunE:  runAuthLogin,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account with email OTP and a security PIN",
	RunE:  runAuthSignup,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runAuthStatus,
}

var authGoogleURLCmd = &cobra.Command{
	Use:   "google-url",
	Short: "Print the Google OAuth sign-in URL",
	Long: `Print the Google OAuth sign-in URL. The terminal client cannot complete
a browser redirect; open the URL yourself to continue.`,
	RunE: runAuthGoogleURL,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authGoogleURLCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if app.Store.IsLoggedIn() {
		fmt.Println("Already logged in. Run 'swastha auth logout' first to switch accounts.")
		return nil
	}

	f := flow.NewLogin(app.Config.UserAPIURL, app.Store, app.Logger)
	result, err := tui.RunLogin(f)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s. Dashboard: %s\n", result.Session.Role, result.LandingRoute)
	return nil
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if app.Store.IsLoggedIn() {
		fmt.Println("Already logged in. Run 'swastha auth logout' first.")
		return nil
	}

	f := flow.NewSignup(app.Config.UserAPIURL, app.Store, app.Logger)
	result, err := tui.RunSignup(f)
	if err != nil {
		return err
	}

	fmt.Printf("Account ready (%s). Dashboard: %s\n", result.Session.Role, result.LandingRoute)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	app, err := requireSession()
	if err != nil {
		return err
	}

	// Server-side invalidation is best effort: the local session is
	// authoritative and is cleared regardless.
	if err := app.User.Logout(cmd.Context()); err != nil {
		app.Logger.WithError(err).Warn("server logout failed; clearing local session anyway")
	}
	app.Store.Logout()

	fmt.Println("Logged out.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	sess := app.Store.Session()
	if !sess.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Logged in\n")
	fmt.Printf("  Role:      %s\n", sess.Role)
	fmt.Printf("  Dashboard: %s\n", flow.LandingRoute(sess.Role))
	fmt.Printf("  Scope:     %s\n", app.Config.SessionScope)
	return nil
}

func runAuthGoogleURL(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	url, err := app.User.GoogleAuthURL(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}
