package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/api"
)

var (
	listMine   bool
	listStatus int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted pass records",
	Long: `List all pass records known to the backend.

Examples:
  alppass list
  alppass list --mine
  alppass list --status 1`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listMine, "mine", false, "Show only records submitted by the logged-in user")
	listCmd.Flags().IntVar(&listStatus, "status", 0, "Filter by record status")
}

func runList(cmd *cobra.Command, args []string) error {
	var email string
	if listMine {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		email = sess.Email
	}

	client := newClient()
	items, err := client.ListPerevals(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	filtered := items[:0]
	for _, item := range items {
		if email != "" && !strings.EqualFold(item.Email, email) {
			continue
		}
		if listStatus != 0 && item.Status != listStatus {
			continue
		}
		filtered = append(filtered, item)
	}

	if len(filtered) == 0 {
		fmt.Println("No records found")
		return nil
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ID > filtered[j].ID
	})

	fmt.Printf("%-6s %-30s %-10s %s\n", "ID", "TITLE", "STATUS", "SUBMITTED")
	for _, item := range filtered {
		title := item.Title
		if item.BeautyTitle != "" {
			title = item.BeautyTitle + " " + title
		}
		fmt.Printf("%-6d %-30s %-10s %s\n", item.ID, title, statusName(item.Status), item.AddTime)
	}
	return nil
}

func statusName(status int) string {
	switch status {
	case api.StatusNew:
		return "new"
	case 2:
		return "pending"
	case 3:
		return "accepted"
	case 4:
		return "rejected"
	}
	return fmt.Sprintf("(%d)", status)
}
