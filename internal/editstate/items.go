package editstate

import (
	"fmt"
	"strings"

	"github.com/studiowebux/bl3edit/internal/types"
)

// ItemInput is one editable inventory or bank row
type ItemInput struct {
	Serial string
	Name   string
	Level  int
}

// Items is an editable item list shared by the save inventory and the bank
type Items struct {
	Entries []ItemInput
	// Selected is the highlighted row, -1 when the list is empty
	Selected int
}

func seedItems(items []types.Item) Items {
	out := Items{Entries: make([]ItemInput, len(items)), Selected: -1}
	for i, item := range items {
		out.Entries[i] = ItemInput{Serial: item.Serial, Name: item.Name, Level: item.Level}
	}
	if len(items) > 0 {
		out.Selected = 0
	}
	return out
}

// Import appends an item from a pasted serial and selects it
func (it *Items) Import(serial string) error {
	serial = strings.TrimSpace(serial)
	if err := validateSerial(serial); err != nil {
		return &ValidationError{Field: "serial", Message: err.Error()}
	}
	it.Entries = append(it.Entries, ItemInput{Serial: serial})
	it.Selected = len(it.Entries) - 1
	return nil
}

// Remove deletes the item at index i
func (it *Items) Remove(i int) error {
	if i < 0 || i >= len(it.Entries) {
		return fmt.Errorf("no item at index %d", i)
	}
	it.Entries = append(it.Entries[:i:i], it.Entries[i+1:]...)
	if it.Selected >= len(it.Entries) {
		it.Selected = len(it.Entries) - 1
	}
	return nil
}

// Move shifts the selection by delta, staying inside the list
func (it *Items) Move(delta int) {
	if len(it.Entries) == 0 {
		it.Selected = -1
		return
	}
	it.Selected = min(max(it.Selected+delta, 0), len(it.Entries)-1)
}

// Current returns the highlighted item
func (it *Items) Current() (ItemInput, bool) {
	if it.Selected < 0 || it.Selected >= len(it.Entries) {
		return ItemInput{}, false
	}
	return it.Entries[it.Selected], true
}

func (it Items) models() []types.Item {
	if len(it.Entries) == 0 {
		return nil
	}
	out := make([]types.Item, len(it.Entries))
	for i, e := range it.Entries {
		out[i] = types.Item{Serial: strings.TrimSpace(e.Serial), Name: e.Name, Level: e.Level}
	}
	return out
}
