package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/domain"
	"github.com/skyreserve/skyreserve/internal/session"
	"github.com/skyreserve/skyreserve/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the signed-in session",
	Long: `Manage the signed-in session for the SkyReserve platform.

The auth command provides subcommands for registering, logging in,
logging out, and checking the current session.

Subcommands:
  register  Register a new traveller account
  login     Login with email and password
  logout    Logout and clear the stored session
  status    Show the current session

Examples:
  skyreserve auth login --email user@example.com
  skyreserve auth status
  skyreserve auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd handles traveller login
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the platform",
	Long: `Login to the SkyReserve platform with your email and password.

The session is saved locally, so subsequent commands run without
logging in again. Omitted flags are prompted for interactively.

Examples:
  skyreserve auth login
  skyreserve auth login --email user@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds := tui.Credentials{}
		creds.Email, _ = cmd.Flags().GetString("email")
		creds.Password, _ = cmd.Flags().GetString("password")

		if creds.Email == "" || creds.Password == "" {
			if !tui.ShouldPrompt() {
				return session.NewError(session.ErrAuthMissingInput,
					"--email and --password are required in non-interactive mode")
			}
			if err := tui.LoginForm(&creds); err != nil {
				return err
			}
		}

		user, err := current.manager.Login(cmd.Context(), creds.Email, creds.Password)
		if err != nil {
			return err
		}

		fmt.Println(current.renderer.Success("Welcome back, " + user.FullName + "!"))
		return nil
	},
}

// authRegisterCmd handles new account registration
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new traveller account",
	Long: `Register a new traveller account and sign in.

All profile fields are collected interactively unless provided as
flags. Registration signs you in immediately on success.

Examples:
  skyreserve auth register
  skyreserve auth register --email user@example.com --full-name "A. Traveller"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := domain.RegistrationProfile{}
		profile.FullName, _ = cmd.Flags().GetString("full-name")
		profile.Email, _ = cmd.Flags().GetString("email")
		profile.Phone, _ = cmd.Flags().GetString("phone")
		profile.DOB, _ = cmd.Flags().GetString("dob")
		profile.PassportID, _ = cmd.Flags().GetString("passport")
		profile.Password, _ = cmd.Flags().GetString("password")

		if len(profile.MissingFields()) > 0 {
			if !tui.ShouldPrompt() {
				return session.NewError(session.ErrRegistrationIncomplete,
					"all profile flags are required in non-interactive mode")
			}
			if err := tui.RegistrationForm(&profile); err != nil {
				return err
			}
		}

		user, err := current.manager.Register(cmd.Context(), profile)
		if err != nil {
			return err
		}

		fmt.Println(current.renderer.Success("Account created. Welcome, " + user.FullName + "!"))
		return nil
	},
}

// authLogoutCmd clears the stored session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear the stored session",
	Long: `Logout and clear the locally stored session.

Logging out when not logged in is a no-op.

Examples:
  skyreserve auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wasLoggedIn := current.manager.LoggedIn()
		sess := current.manager.Session()

		current.manager.Logout(cmd.Context())

		if !wasLoggedIn {
			fmt.Println("Not logged in.")
			return nil
		}
		if sess.User != nil {
			fmt.Printf("Logged out: %s\n", sess.User.Email)
		} else {
			fmt.Println("Logged out.")
		}
		return nil
	},
}

// authStatusCmd shows the current session
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show the current session: the signed-in traveller, how the
session token was issued, and its expiry when known.

Examples:
  skyreserve auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := current.manager.Session()
		if !sess.LoggedIn() || sess.User == nil {
			fmt.Println("Not logged in. Run 'skyreserve auth login'.")
			return nil
		}

		var expiry *time.Time
		if at, ok := sess.Token.ExpiresAt(); ok {
			expiry = &at
		}
		fmt.Println(current.renderer.StatusCard(*sess.User, sess.Token.Source.String(), expiry))
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "email address")
	authLoginCmd.Flags().String("password", "", "password")

	authRegisterCmd.Flags().String("full-name", "", "full name")
	authRegisterCmd.Flags().String("email", "", "email address")
	authRegisterCmd.Flags().String("phone", "", "phone number")
	authRegisterCmd.Flags().String("dob", "", "date of birth (YYYY-MM-DD)")
	authRegisterCmd.Flags().String("passport", "", "passport number")
	authRegisterCmd.Flags().String("password", "", "password")

	rootCmd.AddCommand(authCmd)
}
