package pereval

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/preview"
)

// Season values accepted by the backend. Zero means "unselected".
var seasonNames = map[int]string{
	1: "Зима",
	2: "Весна",
	3: "Лето",
	4: "Осень",
}

// Difficulty grades accepted by the backend. Zero means "unselected".
var difficultyGrades = map[int]string{
	1: "1А",
	2: "1Б",
	3: "2А",
	4: "2Б",
	5: "3А",
	6: "3Б",
}

// SeasonName returns the display name for a season value
func SeasonName(season int) string {
	if name, ok := seasonNames[season]; ok {
		return name
	}
	return "—"
}

// DifficultyGrade returns the display grade for a difficulty value
func DifficultyGrade(difficulty int) string {
	if grade, ok := difficultyGrades[difficulty]; ok {
		return grade
	}
	return "—"
}

// ValidationError reports a single rejected form field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Form holds the editable fields of a pass record plus the photo slots.
// Two copies exist per edit session: the working form that every edit
// mutates, and the snapshot taken at load time that save-time diffing runs
// against.
type Form struct {
	BeautyTitle      string
	Title            string
	OtherTitles      string
	Connect          string
	RouteDescription string

	Latitude  float64
	Longitude float64
	Height    int

	Season     int
	Difficulty int

	Email string
	Phone string

	Slots Slots
}

// Snapshot returns the immutable diff baseline: a deep copy that no later
// edit can touch
func (f *Form) Snapshot() *Form {
	snap := *f
	for i := range snap.Slots {
		if p := f.Slots[i].Photo; p != nil {
			copied := *p
			snap.Slots[i].Photo = &copied
		}
		// Staged images never survive into a snapshot; baselines are
		// taken straight after load, before any staging
		snap.Slots[i].Staged = nil
	}
	return &snap
}

// Validate checks the fields required before a create submission. The first
// failing field is reported; nothing reaches the network when it fails.
func (f *Form) Validate() error {
	switch {
	case f.Title == "":
		return &ValidationError{Field: "title", Reason: "required"}
	case f.BeautyTitle == "":
		return &ValidationError{Field: "massif", Reason: "required"}
	case f.Latitude == 0 && f.Longitude == 0:
		return &ValidationError{Field: "coordinates", Reason: "required"}
	case f.Season == 0:
		return &ValidationError{Field: "season", Reason: "required"}
	case f.Difficulty == 0:
		return &ValidationError{Field: "difficulty", Reason: "required"}
	case f.Email == "":
		return &ValidationError{Field: "email", Reason: "required"}
	}
	return nil
}

// StageImage places locally selected file bytes into a slot, replacing
// whatever was there. The generated filename carries the slot prefix; the
// preview handle is acquired here and owned by the slot from now on.
// Preview generation is cosmetic, so its failure does not block staging.
func (f *Form) StageImage(slot int, originalName string, data []byte) error {
	if slot < 0 || slot >= SlotCount {
		return fmt.Errorf("no such photo slot: %d", slot)
	}

	s := &f.Slots[slot]
	if s.Staged != nil && bytes.Equal(s.Staged.Data, data) {
		// Restaging the bytes already held is a no-op: the slot keeps its
		// stage id, filename and preview instead of churning through a
		// fresh staging event
		return nil
	}
	replaces := 0
	if s.Photo != nil {
		replaces = s.Photo.ID
	} else if s.Staged != nil {
		replaces = s.Staged.ReplacesServerID
	}
	s.clear()

	img := &LocalImage{
		Data:             data,
		FileName:         SlotFileName(slot, f.Title, originalName),
		ReplacesServerID: replaces,
		Modified:         true,
		StageID:          uuid.New(),
	}
	if handle, err := preview.Acquire(data); err == nil {
		img.Preview = handle
	}

	s.Staged = img
	return nil
}

// ClearSlot empties a slot, releasing any staged preview
func (f *Form) ClearSlot(slot int) error {
	if slot < 0 || slot >= SlotCount {
		return fmt.Errorf("no such photo slot: %d", slot)
	}
	f.Slots[slot].clear()
	return nil
}

// Close releases every staged preview still held by the form. Called when
// the form session ends, whatever state it is in.
func (f *Form) Close() {
	for i := range f.Slots {
		f.Slots[i].release()
	}
}

// DiffFields returns only the record fields that differ from the baseline,
// keyed by their wire names, for a partial update request. Photo slots are
// reconciled separately by SyncPhotos.
func (f *Form) DiffFields(base *Form) map[string]any {
	fields := make(map[string]any)

	if f.BeautyTitle != base.BeautyTitle {
		fields["beautyTitle"] = f.BeautyTitle
	}
	if f.Title != base.Title {
		fields["title"] = f.Title
	}
	if f.OtherTitles != base.OtherTitles {
		fields["other_titles"] = f.OtherTitles
	}
	if f.Connect != base.Connect {
		fields["connect"] = f.Connect
	}
	if f.RouteDescription != base.RouteDescription {
		fields["route_description"] = f.RouteDescription
	}
	if f.Latitude != base.Latitude || f.Longitude != base.Longitude || f.Height != base.Height {
		fields["coords"] = api.Coords{
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
			Height:    f.Height,
		}
	}
	if f.Season != base.Season || f.Difficulty != base.Difficulty {
		fields["difficulties"] = []api.Difficulty{
			{Season: f.Season, Difficulty: f.Difficulty},
		}
	}
	return fields
}

// Record assembles the create-flow payload from the form and the acting user
func (f *Form) Record(user api.User) *api.Pereval {
	return &api.Pereval{
		BeautyTitle:      f.BeautyTitle,
		Title:            f.Title,
		OtherTitles:      f.OtherTitles,
		Connect:          f.Connect,
		RouteDescription: f.RouteDescription,
		User:             user,
		Coords: api.Coords{
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
			Height:    f.Height,
		},
		Difficulties: []api.Difficulty{
			{Season: f.Season, Difficulty: f.Difficulty},
		},
		Status: api.StatusNew,
	}
}
