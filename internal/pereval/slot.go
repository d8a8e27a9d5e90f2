// Package pereval models the pass-submission form: the three photo slots,
// the working/snapshot form pair, and the logic that reconciles local edits
// with the backend.
package pereval

import (
	"github.com/google/uuid"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/preview"
)

// SlotCount is fixed: every pass record carries exactly three photo
// positions, identified by index.
const SlotCount = 3

const (
	SlotAscent  = 0
	SlotSaddle  = 1
	SlotDescent = 2
)

// SlotLabels are the human-readable names shown next to each slot
var SlotLabels = [SlotCount]string{"Подъём", "Седловина", "Спуск"}

// LocalImage is a staged, not-yet-uploaded photo occupying a slot
type LocalImage struct {
	// Data holds the raw file bytes until upload completes
	Data []byte
	// FileName is the generated, slot-prefixed upload name
	FileName string
	// Preview is owned by the slot and released when the slot is cleared
	// or replaced
	Preview *preview.Handle
	// ReplacesServerID records the photo id this image displaces, 0 if the
	// slot was empty at load time
	ReplacesServerID int
	// Modified marks the image as user-changed since load
	Modified bool
	// StageID identifies one staging event. Restaging identical bytes
	// into the same slot keeps it; sync outcomes carry it so callers can
	// tie results back to the staging that caused them.
	StageID uuid.UUID
}

// Slot is one photo position: empty, a server-confirmed photo, or a staged
// local image. Never both at once.
type Slot struct {
	Photo  *api.Photo
	Staged *LocalImage
}

// Empty reports whether the slot holds nothing
func (s Slot) Empty() bool {
	return s.Photo == nil && s.Staged == nil
}

// release frees the staged preview, if any
func (s *Slot) release() {
	if s.Staged != nil {
		s.Staged.Preview.Release()
	}
}

// clear empties the slot, releasing any staged preview
func (s *Slot) clear() {
	s.release()
	s.Photo = nil
	s.Staged = nil
}

// Slots is the fixed three-position photo array of one pass record
type Slots [SlotCount]Slot

// LoadSlots maps server photo records onto the three named slots. A filename
// starting with "1_"/"2_"/"3_" selects ascent/saddle/descent; anything else
// lands in the first empty slot. Only the first three records are
// considered, the rest are dropped.
func LoadSlots(photos []api.Photo) Slots {
	var slots Slots
	if len(photos) > SlotCount {
		photos = photos[:SlotCount]
	}

	for _, p := range photos {
		idx, ok := slotIndex(p.FileName)
		if !ok || !slots[idx].Empty() {
			idx, ok = firstEmpty(slots)
			if !ok {
				continue
			}
		}
		p := p
		slots[idx].Photo = &p
	}
	return slots
}

// slotIndex decodes the filename prefix convention. This and SlotFileName
// are the only code aware of it; everything else works with plain indices.
func slotIndex(name string) (int, bool) {
	if len(name) < 2 || name[1] != '_' {
		return 0, false
	}
	switch name[0] {
	case '1':
		return SlotAscent, true
	case '2':
		return SlotSaddle, true
	case '3':
		return SlotDescent, true
	}
	return 0, false
}

func firstEmpty(slots Slots) (int, bool) {
	for i := range slots {
		if slots[i].Empty() {
			return i, true
		}
	}
	return 0, false
}
