package pereval

import (
	"context"
	"errors"
	"strings"

	"github.com/Rostislav62/alppass/internal/api"
)

// ErrNotEditable means the record has left the "new" status; the backend
// will refuse changes, so the form is never populated.
var ErrNotEditable = errors.New("record is no longer editable")

// ErrNotOwner means the acting user's email/phone do not match the record's
// stored owner
var ErrNotOwner = errors.New("record belongs to a different user")

// State is the phase of a form session
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	}
	return "unknown"
}

// FormSession drives one create or edit interaction with a pass record.
// All of its state is memory-resident; nothing survives the process.
type FormSession struct {
	client *api.Client
	user   api.User

	perevalID int
	snapshot  *Form
	working   *Form

	state   State
	lastErr string
}

// NewCreateSession starts a blank form for a new record, pre-filled with the
// acting user's identity
func NewCreateSession(client *api.Client, user api.User) *FormSession {
	return &FormSession{
		client: client,
		user:   user,
		working: &Form{
			Email: user.Email,
			Phone: user.Phone,
		},
		state: StateReady,
	}
}

// LoadEditSession fetches an existing record and prepares it for editing.
// The status gate comes first: a record outside the "new" status is denied
// regardless of who asks. Then the acting user must match the stored owner —
// email compared case-insensitively, phone with all whitespace stripped.
func LoadEditSession(ctx context.Context, client *api.Client, perevalID int, user api.User) (*FormSession, error) {
	s := &FormSession{
		client:    client,
		user:      user,
		perevalID: perevalID,
		state:     StateLoading,
	}

	record, err := client.GetPereval(ctx, perevalID)
	if err != nil {
		return nil, err
	}

	if record.Status != api.StatusNew {
		return nil, ErrNotEditable
	}
	if !strings.EqualFold(record.User.Email, user.Email) ||
		stripSpace(record.User.Phone) != stripSpace(user.Phone) {
		return nil, ErrNotOwner
	}

	photos, err := client.ListPhotos(ctx, perevalID)
	if err != nil {
		return nil, err
	}

	form := &Form{
		BeautyTitle:      record.BeautyTitle,
		Title:            record.Title,
		OtherTitles:      record.OtherTitles,
		Connect:          record.Connect,
		RouteDescription: record.RouteDescription,
		Latitude:         record.Coords.Latitude,
		Longitude:        record.Coords.Longitude,
		Height:           record.Coords.Height,
		Email:            record.User.Email,
		Phone:            record.User.Phone,
		Slots:            LoadSlots(photos),
	}
	if len(record.Difficulties) > 0 {
		form.Season = record.Difficulties[0].Season
		form.Difficulty = record.Difficulties[0].Difficulty
	}

	s.working = form
	s.snapshot = form.Snapshot()
	s.state = StateReady
	return s, nil
}

// Form returns the live working form
func (s *FormSession) Form() *Form {
	return s.working
}

// State returns the current session phase
func (s *FormSession) State() State {
	return s.state
}

// Err returns the message retained from the last failed submission
func (s *FormSession) Err() string {
	return s.lastErr
}

// Submit runs the create flow: validate, post the record, then upload each
// staged slot independently. Returns the new record id and per-slot upload
// outcomes. Slot failures do not fail the submission; the record exists
// either way.
func (s *FormSession) Submit(ctx context.Context) (int, []SlotOutcome, error) {
	if err := s.working.Validate(); err != nil {
		return 0, nil, s.fail(err)
	}

	s.state = StateSubmitting
	id, err := s.client.SubmitPereval(ctx, s.working.Record(s.user))
	if err != nil {
		return 0, nil, s.fail(err)
	}
	s.perevalID = id

	outcomes := make([]SlotOutcome, 0, SlotCount)
	for i := range s.working.Slots {
		staged := s.working.Slots[i].Staged
		if staged == nil {
			continue
		}
		out := SlotOutcome{Slot: i, Label: SlotLabels[i], Uploaded: staged.FileName, Stage: staged.StageID}
		uploadID, err := s.client.UploadPhoto(ctx, id, staged.FileName, staged.Data)
		if err != nil {
			out.Err = err
		} else {
			out.UploadID = uploadID
		}
		outcomes = append(outcomes, out)
	}

	s.state = StateSuccess
	return id, outcomes, nil
}

// Save runs the edit flow: reconcile the photo slots against the snapshot,
// then send only the changed record fields as a partial update. A record
// with no changed fields skips the update request entirely.
func (s *FormSession) Save(ctx context.Context) ([]SlotOutcome, error) {
	s.state = StateSubmitting

	outcomes := SyncPhotos(ctx, s.client, s.perevalID, s.user.Email, s.snapshot.Slots, s.working.Slots)

	fields := s.working.DiffFields(s.snapshot)
	if len(fields) > 0 {
		if err := s.client.UpdatePereval(ctx, s.perevalID, s.user.Email, fields); err != nil {
			return outcomes, s.fail(err)
		}
	}

	s.state = StateSuccess
	return outcomes, nil
}

// Close releases every resource the session still holds. The snapshot ends
// with the session too; a new edit starts from a fresh load.
func (s *FormSession) Close() {
	if s.working != nil {
		s.working.Close()
	}
	s.snapshot = nil
}

// fail returns the session to the ready state with the message retained, so
// the caller can fix the form and retry on the same session
func (s *FormSession) fail(err error) error {
	s.lastErr = err.Error()
	s.state = StateReady
	return err
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
