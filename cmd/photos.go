package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/pereval"
)

var photosCmd = &cobra.Command{
	Use:   "photos <id>",
	Short: "Show the photo slots of a pass record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhotos,
}

func init() {
	rootCmd.AddCommand(photosCmd)
}

func runPhotos(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id: %s", args[0])
	}

	client := newClient()
	photos, err := client.ListPhotos(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to fetch photos: %w", err)
	}

	printSlots(pereval.LoadSlots(photos))
	return nil
}
