package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/pereval"
)

var (
	editTitle       string
	editMassif      string
	editOtherTitles string
	editConnect     string
	editDescription string
	editLat         float64
	editLon         float64
	editHeight      int
	editSeason      int
	editDifficulty  int
	editSlotFiles   [pereval.SlotCount]string
	editSlotClears  [pereval.SlotCount]bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one of your pending pass records",
	Long: `Change fields or photos of a record you own while it is still in the
"new" status. Only the changed fields are sent; photos are reconciled
slot by slot against the server state.

Examples:
  alppass edit 42 --title Дятлова-Новый
  alppass edit 42 --saddle better-saddle.jpg --clear-descent
  alppass edit 42 --lat 61.7581 --lon 59.4502 --height 1085`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "New pass name")
	editCmd.Flags().StringVar(&editMassif, "massif", "", "New massif name")
	editCmd.Flags().StringVar(&editOtherTitles, "other-titles", "", "New alternative names")
	editCmd.Flags().StringVar(&editConnect, "connect", "", "New connection description")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New route description")
	editCmd.Flags().Float64Var(&editLat, "lat", 0, "New latitude")
	editCmd.Flags().Float64Var(&editLon, "lon", 0, "New longitude")
	editCmd.Flags().IntVar(&editHeight, "height", 0, "New height in meters")
	editCmd.Flags().IntVar(&editSeason, "season", 0, "New season value")
	editCmd.Flags().IntVar(&editDifficulty, "difficulty", 0, "New difficulty grade")
	editCmd.Flags().StringVar(&editSlotFiles[pereval.SlotAscent], "ascent", "", "Replacement photo for the ascent slot")
	editCmd.Flags().StringVar(&editSlotFiles[pereval.SlotSaddle], "saddle", "", "Replacement photo for the saddle slot")
	editCmd.Flags().StringVar(&editSlotFiles[pereval.SlotDescent], "descent", "", "Replacement photo for the descent slot")
	editCmd.Flags().BoolVar(&editSlotClears[pereval.SlotAscent], "clear-ascent", false, "Remove the ascent photo")
	editCmd.Flags().BoolVar(&editSlotClears[pereval.SlotSaddle], "clear-saddle", false, "Remove the saddle photo")
	editCmd.Flags().BoolVar(&editSlotClears[pereval.SlotDescent], "clear-descent", false, "Remove the descent photo")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id: %s", args[0])
	}

	sess, err := currentUser()
	if err != nil {
		return err
	}

	ctx := context.Background()
	user := api.User{
		ID:    sess.UserID,
		Email: sess.Email,
		Fam:   sess.Fam,
		Name:  sess.Name,
		Otc:   sess.Otc,
		Phone: sess.Phone,
	}

	client := newClient()
	if !api.IsAvailable(client.BaseURL()) {
		return fmt.Errorf("backend is not reachable at %s", client.BaseURL())
	}

	formSession, err := pereval.LoadEditSession(ctx, client, id, user)
	if err != nil {
		if errors.Is(err, pereval.ErrNotEditable) || errors.Is(err, pereval.ErrNotOwner) {
			return fmt.Errorf("cannot edit record %d: %w", id, err)
		}
		return fmt.Errorf("failed to load record %d: %w", id, err)
	}
	defer formSession.Close()

	form := formSession.Form()
	applyFieldFlags(cmd, form)

	for slot := 0; slot < pereval.SlotCount; slot++ {
		if editSlotClears[slot] {
			if err := form.ClearSlot(slot); err != nil {
				return err
			}
		}
		if path := editSlotFiles[slot]; path != "" {
			if err := stageFile(form, slot, path); err != nil {
				return err
			}
		}
	}

	outcomes, err := formSession.Save(ctx)
	reportOutcomes(outcomes)
	if err != nil {
		return fmt.Errorf("failed to save record %d: %w", id, err)
	}

	fmt.Printf("✓ Record #%d saved\n", id)
	return nil
}

// applyFieldFlags copies only the flags the user actually set onto the
// working form, so untouched fields stay out of the partial update
func applyFieldFlags(cmd *cobra.Command, form *pereval.Form) {
	if cmd.Flags().Changed("title") {
		form.Title = editTitle
	}
	if cmd.Flags().Changed("massif") {
		form.BeautyTitle = editMassif
	}
	if cmd.Flags().Changed("other-titles") {
		form.OtherTitles = editOtherTitles
	}
	if cmd.Flags().Changed("connect") {
		form.Connect = editConnect
	}
	if cmd.Flags().Changed("description") {
		form.RouteDescription = editDescription
	}
	if cmd.Flags().Changed("lat") {
		form.Latitude = editLat
	}
	if cmd.Flags().Changed("lon") {
		form.Longitude = editLon
	}
	if cmd.Flags().Changed("height") {
		form.Height = editHeight
	}
	if cmd.Flags().Changed("season") {
		form.Season = editSeason
	}
	if cmd.Flags().Changed("difficulty") {
		form.Difficulty = editDifficulty
	}
}
