package pereval

import (
	"errors"
	"testing"

	"github.com/Rostislav62/alppass/internal/api"
)

func validForm() *Form {
	return &Form{
		BeautyTitle: "пер.",
		Title:       "Дятлова",
		Latitude:    61.758,
		Longitude:   59.45,
		Height:      1079,
		Season:      1,
		Difficulty:  2,
		Email:       "climber@example.com",
		Phone:       "+7 900 000 00 00",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"valid", func(f *Form) {}, ""},
		{"missing title", func(f *Form) { f.Title = "" }, "title"},
		{"missing massif", func(f *Form) { f.BeautyTitle = "" }, "massif"},
		{"missing coordinates", func(f *Form) { f.Latitude = 0; f.Longitude = 0 }, "coordinates"},
		{"season unselected", func(f *Form) { f.Season = 0 }, "season"},
		{"difficulty unselected", func(f *Form) { f.Difficulty = 0 }, "difficulty"},
		{"missing email", func(f *Form) { f.Email = "" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			err := form.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
			if verr.Reason != "required" {
				t.Errorf("expected reason %q, got %q", "required", verr.Reason)
			}
		})
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	form := validForm()
	form.Slots[0].Photo = &api.Photo{ID: 10, FileName: "1_a_x.jpg"}

	snap := form.Snapshot()

	form.Title = "Другой"
	form.Slots[0].Photo.FileName = "mutated.jpg"
	form.ClearSlot(0)

	if snap.Title != "Дятлова" {
		t.Errorf("snapshot title mutated: %q", snap.Title)
	}
	if snap.Slots[0].Photo == nil || snap.Slots[0].Photo.FileName != "1_a_x.jpg" {
		t.Errorf("snapshot slot mutated: %+v", snap.Slots[0].Photo)
	}
}

func TestDiffFieldsMinimal(t *testing.T) {
	form := validForm()
	base := form.Snapshot()

	if fields := form.DiffFields(base); len(fields) != 0 {
		t.Errorf("expected no changed fields, got %v", fields)
	}

	form.Title = "Дятлова-Северный"
	form.Height = 1100

	fields := form.DiffFields(base)
	if len(fields) != 2 {
		t.Fatalf("expected 2 changed fields, got %v", fields)
	}
	if fields["title"] != "Дятлова-Северный" {
		t.Errorf("unexpected title: %v", fields["title"])
	}
	coords, ok := fields["coords"].(api.Coords)
	if !ok || coords.Height != 1100 || coords.Latitude != 61.758 {
		t.Errorf("unexpected coords payload: %v", fields["coords"])
	}
}

func TestDiffFieldsSeasonChange(t *testing.T) {
	form := validForm()
	base := form.Snapshot()

	form.Difficulty = 3

	fields := form.DiffFields(base)
	levels, ok := fields["difficulties"].([]api.Difficulty)
	if !ok || len(levels) != 1 {
		t.Fatalf("expected a one-element difficulties payload, got %v", fields["difficulties"])
	}
	if levels[0].Season != 1 || levels[0].Difficulty != 3 {
		t.Errorf("unexpected difficulties payload: %+v", levels[0])
	}
}

func TestStageImageReplacesServerPhoto(t *testing.T) {
	form := validForm()
	form.Slots[1].Photo = &api.Photo{ID: 44, FileName: "2_a_old.jpg"}

	if err := form.StageImage(1, "new.png", []byte("not-a-real-image")); err != nil {
		t.Fatalf("staging failed: %v", err)
	}

	slot := form.Slots[1]
	if slot.Photo != nil {
		t.Error("expected the server photo displaced from the working slot")
	}
	if slot.Staged == nil {
		t.Fatal("expected a staged image")
	}
	if slot.Staged.ReplacesServerID != 44 {
		t.Errorf("expected ReplacesServerID 44, got %d", slot.Staged.ReplacesServerID)
	}
	if !slot.Staged.Modified {
		t.Error("expected the staged image marked modified")
	}
	if got, want := slot.Staged.FileName[:2], "2_"; got != want {
		t.Errorf("expected slot prefix %q, got filename %q", want, slot.Staged.FileName)
	}
}

func TestStageImageIdenticalBytesKeepsStaging(t *testing.T) {
	form := validForm()
	if err := form.StageImage(0, "north.jpg", []byte("same-bytes")); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	first := form.Slots[0].Staged

	// Re-selecting the same file is a no-op: same staging event, same
	// generated filename
	if err := form.StageImage(0, "north.jpg", []byte("same-bytes")); err != nil {
		t.Fatalf("restaging failed: %v", err)
	}
	if form.Slots[0].Staged != first {
		t.Error("expected identical bytes to keep the existing staged image")
	}
	if form.Slots[0].Staged.StageID != first.StageID {
		t.Errorf("stage id changed on an identical restage: %s", form.Slots[0].Staged.StageID)
	}

	if err := form.StageImage(0, "other.jpg", []byte("other-bytes")); err != nil {
		t.Fatalf("restaging failed: %v", err)
	}
	if form.Slots[0].Staged.StageID == first.StageID {
		t.Error("expected a fresh stage id for different bytes")
	}
}

func TestStageImageRejectsBadSlot(t *testing.T) {
	form := validForm()
	if err := form.StageImage(3, "x.jpg", nil); err == nil {
		t.Error("expected error for slot index out of range")
	}
	if err := form.ClearSlot(-1); err == nil {
		t.Error("expected error for negative slot index")
	}
}
