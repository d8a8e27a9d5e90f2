package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the UI theme preference",
	Long: `Without an argument, print the current theme. With one, store it in the
local session.

Examples:
  alppass theme
  alppass theme dark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	store := sessionStore()
	sess, err := store.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(sess.Theme)
		return nil
	}

	theme := args[0]
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("unknown theme: %s (use dark or light)", theme)
	}

	sess.Theme = theme
	if err := store.Save(sess); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", theme)
	return nil
}
