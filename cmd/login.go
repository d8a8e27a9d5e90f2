package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/config"
	"github.com/Rostislav62/alppass/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in with a registered email",
	Long: `Look up a registered account by email and cache its identity locally.

Example:
  alppass login climber@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	client := newClient()
	user, err := client.GetUser(context.Background(), email)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return fmt.Errorf("no account for %s (run: alppass register)", email)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	// Keep a previously chosen theme across logins
	theme := config.GetDefaultTheme()
	if prev, err := sessionStore().Load(); err == nil && prev.Theme != "" {
		theme = prev.Theme
	}

	sess := &session.Session{
		UserID: user.ID,
		Email:  user.Email,
		Fam:    user.Fam,
		Name:   user.Name,
		Otc:    user.Otc,
		Phone:  user.Phone,
		Theme:  theme,
	}
	if err := sessionStore().Save(sess); err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s (%s)\n", sess.DisplayName(), sess.Email)
	return nil
}
