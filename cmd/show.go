package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/pereval"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one pass record with its photos",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id: %s", args[0])
	}

	ctx := context.Background()
	client := newClient()

	record, err := client.GetPereval(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch record %d: %w", id, err)
	}

	fmt.Printf("Record #%d\n\n", id)
	fmt.Printf("Title:       %s %s\n", record.BeautyTitle, record.Title)
	if record.OtherTitles != "" {
		fmt.Printf("Also known:  %s\n", record.OtherTitles)
	}
	if record.Connect != "" {
		fmt.Printf("Connects:    %s\n", record.Connect)
	}
	fmt.Printf("Status:      %s\n", statusName(record.Status))
	fmt.Printf("Coordinates: %.6f, %.6f (height %d m)\n",
		record.Coords.Latitude, record.Coords.Longitude, record.Coords.Height)
	for _, d := range record.Difficulties {
		fmt.Printf("Difficulty:  %s (%s)\n", pereval.DifficultyGrade(d.Difficulty), pereval.SeasonName(d.Season))
	}
	fmt.Printf("Owner:       %s %s <%s>\n", record.User.Fam, record.User.Name, record.User.Email)
	if record.RouteDescription != "" {
		fmt.Printf("\n%s\n", record.RouteDescription)
	}

	photos, err := client.ListPhotos(ctx, id)
	if err != nil {
		// The record itself rendered fine; photo listing is secondary
		fmt.Fprintf(os.Stderr, "Warning: failed to fetch photos: %v\n", err)
		return nil
	}

	fmt.Println()
	printSlots(pereval.LoadSlots(photos))
	return nil
}

func printSlots(slots pereval.Slots) {
	for i, slot := range slots {
		label := pereval.SlotLabels[i]
		switch {
		case slot.Photo != nil:
			fmt.Printf("%-10s #%d %s\n", label+":", slot.Photo.ID, slot.Photo.FileName)
		default:
			fmt.Printf("%-10s —\n", label+":")
		}
	}
}
