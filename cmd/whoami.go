package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess, err := currentUser()
	if err != nil {
		return err
	}

	fmt.Printf("Name:  %s\n", sess.DisplayName())
	fmt.Printf("Email: %s\n", sess.Email)
	if sess.Phone != "" {
		fmt.Printf("Phone: %s\n", sess.Phone)
	}
	if sess.Theme != "" {
		fmt.Printf("Theme: %s\n", sess.Theme)
	}
	return nil
}
