package pereval

import (
	"context"

	"github.com/google/uuid"

	"github.com/Rostislav62/alppass/internal/api"
)

// SlotOutcome records what the sync attempted for one slot and how it went.
// A zero Deleted and empty Uploaded mean the slot needed no action.
type SlotOutcome struct {
	Slot     int
	Label    string
	Deleted  int       // photo id a delete was issued for, 0 if none
	Uploaded string    // filename an upload was issued for, "" if none
	UploadID int       // server-assigned id when the upload succeeded
	Stage    uuid.UUID // stage id of the image the upload came from
	Err      error     // first failure hit for this slot, nil when clean
}

// Changed reports whether the sync touched the slot at all
func (o SlotOutcome) Changed() bool {
	return o.Deleted != 0 || o.Uploaded != ""
}

// SyncPhotos reconciles the working form's slots against the snapshot taken
// at load time, issuing the minimal deletes and uploads to bring the backend
// in line. Slots are processed strictly in index order, one request at a
// time: a replacement's delete is issued before its upload, though a failed
// delete does not cancel the upload.
//
// The whole pass is best effort. A failing slot is recorded in its outcome
// and processing moves on; callers inspect the outcomes to detect partial
// failure.
func SyncPhotos(ctx context.Context, client *api.Client, perevalID int, email string, snapshot, working Slots) []SlotOutcome {
	outcomes := make([]SlotOutcome, 0, SlotCount)

	for i := 0; i < SlotCount; i++ {
		out := SlotOutcome{Slot: i, Label: SlotLabels[i]}
		before := snapshot[i]
		after := working[i]

		switch {
		case before.Photo != nil && after.Empty():
			// Cleared: drop the server photo
			out.Deleted = before.Photo.ID
			if err := client.DeletePhoto(ctx, before.Photo.ID, email); err != nil {
				out.Err = err
			}

		case before.Photo != nil && after.Staged != nil && after.Staged.Modified:
			// Replaced: delete the old photo, then upload the new one
			out.Deleted = before.Photo.ID
			if err := client.DeletePhoto(ctx, before.Photo.ID, email); err != nil {
				out.Err = err
			}
			out.Uploaded = after.Staged.FileName
			out.Stage = after.Staged.StageID
			id, err := client.UploadPhoto(ctx, perevalID, after.Staged.FileName, after.Staged.Data)
			if err != nil {
				if out.Err == nil {
					out.Err = err
				}
			} else {
				out.UploadID = id
			}

		case before.Photo == nil && after.Staged != nil:
			// Newly staged into an empty slot
			out.Uploaded = after.Staged.FileName
			out.Stage = after.Staged.StageID
			id, err := client.UploadPhoto(ctx, perevalID, after.Staged.FileName, after.Staged.Data)
			if err != nil {
				out.Err = err
			} else {
				out.UploadID = id
			}
		}

		outcomes = append(outcomes, out)
	}
	return outcomes
}
