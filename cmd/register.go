package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/config"
	"github.com/Rostislav62/alppass/internal/session"
)

var (
	registerEmail      string
	registerLastName   string
	registerFirstName  string
	registerMiddleName string
	registerPhone      string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an AlpPass account",
	Long: `Register a new account on the backend and log in as it.

Example:
  alppass register --email climber@example.com --last-name Иванов --first-name Пётр --phone "+7 900 000 00 00"`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email (required)")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Family name (required)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "Given name (required)")
	registerCmd.Flags().StringVar(&registerMiddleName, "middle-name", "", "Patronymic")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number (required)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	if registerEmail == "" || registerLastName == "" || registerFirstName == "" || registerPhone == "" {
		return fmt.Errorf("--email, --last-name, --first-name and --phone are required")
	}

	client := newClient()
	user, err := client.Register(context.Background(), &api.User{
		Email: registerEmail,
		Fam:   registerLastName,
		Name:  registerFirstName,
		Otc:   registerMiddleName,
		Phone: registerPhone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	sess := &session.Session{
		UserID: user.ID,
		Email:  user.Email,
		Fam:    user.Fam,
		Name:   user.Name,
		Otc:    user.Otc,
		Phone:  user.Phone,
		Theme:  config.GetDefaultTheme(),
	}
	if err := sessionStore().Save(sess); err != nil {
		return err
	}

	fmt.Printf("✓ Registered and logged in as %s\n", sess.Email)
	return nil
}
