package pereval

import (
	"context"
	"errors"
	"testing"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/testutil"
)

var owner = api.User{
	Email: "climber@example.com",
	Fam:   "Иванов",
	Name:  "Пётр",
	Phone: "+7 900 000 00 00",
}

func seedRecord(backend *testutil.Backend, status int) int {
	return backend.AddPereval(&api.Pereval{
		BeautyTitle:  "пер.",
		Title:        "Дятлова",
		User:         owner,
		Coords:       api.Coords{Latitude: 61.758, Longitude: 59.45, Height: 1079},
		Difficulties: []api.Difficulty{{Season: 1, Difficulty: 2}},
		Status:       status,
	})
}

func TestLoadEditSession(t *testing.T) {
	backend := testutil.NewBackend(t)
	id := seedRecord(backend, api.StatusNew)
	backend.AddPhoto(id, api.Photo{ID: 10, FileName: "1_a_podem.jpg"})

	s, err := LoadEditSession(context.Background(), backend.Client(), id, owner)
	if err != nil {
		t.Fatalf("failed to load edit session: %v", err)
	}
	defer s.Close()

	if s.State() != StateReady {
		t.Errorf("expected ready state, got %s", s.State())
	}

	form := s.Form()
	if form.Title != "Дятлова" || form.Season != 1 || form.Difficulty != 2 {
		t.Errorf("form not populated from the record: %+v", form)
	}
	if form.Slots[SlotAscent].Photo == nil || form.Slots[SlotAscent].Photo.ID != 10 {
		t.Errorf("expected photo 10 loaded into the ascent slot, got %+v", form.Slots[SlotAscent].Photo)
	}
}

func TestLoadEditSessionStatusGate(t *testing.T) {
	backend := testutil.NewBackend(t)
	// Accepted record, matching owner: still denied
	id := seedRecord(backend, 3)

	_, err := LoadEditSession(context.Background(), backend.Client(), id, owner)
	if !errors.Is(err, ErrNotEditable) {
		t.Errorf("expected ErrNotEditable, got %v", err)
	}
}

func TestLoadEditSessionOwnerGate(t *testing.T) {
	backend := testutil.NewBackend(t)
	id := seedRecord(backend, api.StatusNew)

	tests := []struct {
		name    string
		user    api.User
		wantErr error
	}{
		{
			name:    "different email",
			user:    api.User{Email: "other@example.com", Phone: owner.Phone},
			wantErr: ErrNotOwner,
		},
		{
			name:    "different phone",
			user:    api.User{Email: owner.Email, Phone: "+7 911 111 11 11"},
			wantErr: ErrNotOwner,
		},
		{
			name: "email case and phone spacing ignored",
			user: api.User{Email: "Climber@Example.COM", Phone: "+79000000000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadEditSession(context.Background(), backend.Client(), id, tt.user)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if s != nil {
				s.Close()
			}
		})
	}
}

func TestSubmitValidationGate(t *testing.T) {
	backend := testutil.NewBackend(t)

	s := NewCreateSession(backend.Client(), owner)
	defer s.Close()

	form := s.Form()
	*form = *validForm()
	form.Season = 0 // unselected sentinel

	_, _, err := s.Submit(context.Background())

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "season" {
		t.Fatalf("expected season validation error, got %v", err)
	}
	if calls := backend.Calls(); len(calls) != 0 {
		t.Errorf("validation failure must not reach the network, got %v", calls)
	}
	// A failed submission leaves the session ready for a retry, with the
	// failure message retained
	if s.State() != StateReady {
		t.Errorf("expected ready state after failure, got %s", s.State())
	}
	if s.Err() == "" {
		t.Error("expected the error message retained on the session")
	}

	form.Season = 1
	if _, _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("retry on the same session failed: %v", err)
	}
	if s.State() != StateSuccess {
		t.Errorf("expected success state after retry, got %s", s.State())
	}
}

func TestSubmitCreateFlow(t *testing.T) {
	backend := testutil.NewBackend(t)

	s := NewCreateSession(backend.Client(), owner)
	defer s.Close()

	*s.Form() = *validForm()
	if err := s.Form().StageImage(SlotAscent, "north.jpg", []byte("ascent-bytes")); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if err := s.Form().StageImage(SlotDescent, "south.jpg", []byte("descent-bytes")); err != nil {
		t.Fatalf("staging failed: %v", err)
	}

	id, outcomes, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a record id")
	}
	if s.State() != StateSuccess {
		t.Errorf("expected success state, got %s", s.State())
	}

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 upload outcomes, got %+v", outcomes)
	}
	for _, out := range outcomes {
		if out.Err != nil || out.UploadID == 0 {
			t.Errorf("unexpected outcome: %+v", out)
		}
	}
	if outcomes[0].Stage != s.Form().Slots[SlotAscent].Staged.StageID {
		t.Errorf("outcome should carry the stage id of the uploaded image, got %+v", outcomes[0])
	}

	photos := backend.Photos(id)
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos on the backend, got %+v", photos)
	}
	// Uploaded names must carry the slot prefixes so a later load
	// re-associates them
	slots := LoadSlots(photos)
	if slots[SlotAscent].Photo == nil || slots[SlotDescent].Photo == nil || !slots[SlotSaddle].Empty() {
		t.Errorf("uploaded photos did not round-trip into their slots: %+v", photos)
	}
}

func TestSaveSendsOnlyChangedFields(t *testing.T) {
	backend := testutil.NewBackend(t)
	id := seedRecord(backend, api.StatusNew)

	s, err := LoadEditSession(context.Background(), backend.Client(), id, owner)
	if err != nil {
		t.Fatalf("failed to load edit session: %v", err)
	}
	defer s.Close()
	backend.ResetCalls()

	s.Form().Title = "Дятлова-Северный"

	outcomes, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	for _, out := range outcomes {
		if out.Changed() {
			t.Errorf("no photo was touched, got outcome %+v", out)
		}
	}

	updates := backend.Updates()
	if len(updates) != 1 {
		t.Fatalf("expected one partial update, got %d", len(updates))
	}
	up := updates[0]
	if up["title"] != "Дятлова-Северный" {
		t.Errorf("expected the new title in the update, got %v", up)
	}
	if up["email"] != owner.Email {
		t.Errorf("expected the acting email in the update, got %v", up)
	}
	if _, present := up["coords"]; present {
		t.Error("unchanged coords must stay out of the partial update")
	}
}

func TestSaveWithoutChanges(t *testing.T) {
	backend := testutil.NewBackend(t)
	id := seedRecord(backend, api.StatusNew)

	s, err := LoadEditSession(context.Background(), backend.Client(), id, owner)
	if err != nil {
		t.Fatalf("failed to load edit session: %v", err)
	}
	defer s.Close()
	backend.ResetCalls()

	if _, err := s.Save(context.Background()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if calls := backend.Calls(); len(calls) != 0 {
		t.Errorf("expected no network calls for an unchanged form, got %v", calls)
	}
	if s.State() != StateSuccess {
		t.Errorf("expected success state, got %s", s.State())
	}
}

func TestSaveReconcilesPhotos(t *testing.T) {
	backend := testutil.NewBackend(t)
	id := seedRecord(backend, api.StatusNew)
	backend.AddPhoto(id, api.Photo{ID: 10, FileName: "1_a_podem.jpg"})
	backend.AddPhoto(id, api.Photo{ID: 11, FileName: "2_b_sedlo.jpg"})

	s, err := LoadEditSession(context.Background(), backend.Client(), id, owner)
	if err != nil {
		t.Fatalf("failed to load edit session: %v", err)
	}
	defer s.Close()
	backend.ResetCalls()

	form := s.Form()
	if err := form.StageImage(SlotAscent, "better.jpg", []byte("better-bytes")); err != nil {
		t.Fatalf("staging failed: %v", err)
	}
	if err := form.ClearSlot(SlotSaddle); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	outcomes, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if outcomes[SlotAscent].Deleted != 10 || outcomes[SlotAscent].UploadID == 0 {
		t.Errorf("expected the ascent photo replaced, got %+v", outcomes[SlotAscent])
	}
	if outcomes[SlotSaddle].Deleted != 11 || outcomes[SlotSaddle].Uploaded != "" {
		t.Errorf("expected the saddle photo removed, got %+v", outcomes[SlotSaddle])
	}
	if outcomes[SlotDescent].Changed() {
		t.Errorf("descent slot was untouched, got %+v", outcomes[SlotDescent])
	}

	photos := backend.Photos(id)
	if len(photos) != 1 {
		t.Fatalf("expected one photo left on the backend, got %+v", photos)
	}
	if photos[0].FileName[:2] != "1_" {
		t.Errorf("surviving photo should be the new ascent image, got %+v", photos[0])
	}
}
