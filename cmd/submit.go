package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/config"
	"github.com/Rostislav62/alppass/internal/geo"
	"github.com/Rostislav62/alppass/internal/pereval"
)

var (
	submitTitle       string
	submitMassif      string
	submitOtherTitles string
	submitConnect     string
	submitDescription string
	submitLat         float64
	submitLon         float64
	submitHeight      int
	submitSeason      int
	submitDifficulty  int
	submitGPS         bool
	submitSlotFiles   [pereval.SlotCount]string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new pass record",
	Long: `Create a pass record on the backend, then upload the slot photos.

Seasons: 1 winter, 2 spring, 3 summer, 4 autumn.
Difficulties: 1-6 for grades 1А through 3Б.

Example:
  alppass submit --massif "пер." --title Дятлова \
    --lat 61.7580 --lon 59.4500 --height 1079 \
    --season 1 --difficulty 2 \
    --ascent north.jpg --saddle saddle.jpg`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitTitle, "title", "", "Pass name (required)")
	submitCmd.Flags().StringVar(&submitMassif, "massif", "", "Massif or range name (required)")
	submitCmd.Flags().StringVar(&submitOtherTitles, "other-titles", "", "Alternative names")
	submitCmd.Flags().StringVar(&submitConnect, "connect", "", "What the pass connects")
	submitCmd.Flags().StringVar(&submitDescription, "description", "", "Route description")
	submitCmd.Flags().Float64Var(&submitLat, "lat", 0, "Latitude")
	submitCmd.Flags().Float64Var(&submitLon, "lon", 0, "Longitude")
	submitCmd.Flags().IntVar(&submitHeight, "height", 0, "Height in meters")
	submitCmd.Flags().IntVar(&submitSeason, "season", 0, "Season the difficulty applies to (required)")
	submitCmd.Flags().IntVar(&submitDifficulty, "difficulty", 0, "Difficulty grade (required)")
	submitCmd.Flags().BoolVar(&submitGPS, "gps", false, "Pre-fill coordinates from the configured position source")
	submitCmd.Flags().StringVar(&submitSlotFiles[pereval.SlotAscent], "ascent", "", "Photo file for the ascent slot")
	submitCmd.Flags().StringVar(&submitSlotFiles[pereval.SlotSaddle], "saddle", "", "Photo file for the saddle slot")
	submitCmd.Flags().StringVar(&submitSlotFiles[pereval.SlotDescent], "descent", "", "Photo file for the descent slot")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	sess, err := currentUser()
	if err != nil {
		return err
	}

	ctx := context.Background()

	form := &pereval.Form{
		Title:            submitTitle,
		BeautyTitle:      submitMassif,
		OtherTitles:      submitOtherTitles,
		Connect:          submitConnect,
		RouteDescription: submitDescription,
		Latitude:         submitLat,
		Longitude:        submitLon,
		Height:           submitHeight,
		Season:           submitSeason,
		Difficulty:       submitDifficulty,
		Email:            sess.Email,
		Phone:            sess.Phone,
	}

	if submitGPS {
		applyPosition(ctx, cmd, form)
	}

	// Validation comes before the reachability check so a rejected form
	// never touches the network
	if err := form.Validate(); err != nil {
		return err
	}

	client := newClient()
	if !api.IsAvailable(client.BaseURL()) {
		return fmt.Errorf("backend is not reachable at %s", client.BaseURL())
	}

	user := api.User{
		ID:    sess.UserID,
		Email: sess.Email,
		Fam:   sess.Fam,
		Name:  sess.Name,
		Otc:   sess.Otc,
		Phone: sess.Phone,
	}

	formSession := pereval.NewCreateSession(client, user)
	defer formSession.Close()
	*formSession.Form() = *form

	for slot, path := range submitSlotFiles {
		if path == "" {
			continue
		}
		if err := stageFile(formSession.Form(), slot, path); err != nil {
			return err
		}
	}

	id, outcomes, err := formSession.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Record #%d submitted\n", id)
	reportOutcomes(outcomes)
	return nil
}

// applyPosition fills coordinates from the position source for every value
// the user did not set explicitly. Missing altitude is only a warning: the
// height stays open for manual entry.
func applyPosition(ctx context.Context, cmd *cobra.Command, form *pereval.Form) {
	url := config.GetGeoURL()
	if !geo.IsAvailable(url) {
		fmt.Fprintln(os.Stderr, "Warning: position source is not reachable, set coordinates manually")
		return
	}
	pos, err := geo.Lookup(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: GPS assist unavailable: %v\n", err)
		return
	}

	if !cmd.Flags().Changed("lat") {
		form.Latitude = pos.Latitude
	}
	if !cmd.Flags().Changed("lon") {
		form.Longitude = pos.Longitude
	}
	if !cmd.Flags().Changed("height") {
		if pos.HasHeight {
			form.Height = pos.Height
		} else {
			fmt.Fprintln(os.Stderr, "Warning: position source reports no altitude, set --height manually")
		}
	}
}

// stageFile reads a local photo and stages it into the slot
func stageFile(form *pereval.Form, slot int, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s photo: %w", pereval.SlotLabels[slot], err)
	}
	return form.StageImage(slot, filepath.Base(path), data)
}

// reportOutcomes prints the per-slot photo results, warnings on stderr
func reportOutcomes(outcomes []pereval.SlotOutcome) {
	for _, out := range outcomes {
		if !out.Changed() {
			continue
		}
		if out.Err != nil {
			fmt.Fprintf(os.Stderr, "Warning: photo sync failed for %s: %v\n", out.Label, out.Err)
			continue
		}
		switch {
		case out.Uploaded != "" && out.Deleted != 0:
			fmt.Printf("  %s: replaced (photo #%d)\n", out.Label, out.UploadID)
		case out.Uploaded != "":
			fmt.Printf("  %s: uploaded (photo #%d)\n", out.Label, out.UploadID)
		case out.Deleted != 0:
			fmt.Printf("  %s: removed\n", out.Label)
		}
	}
}
