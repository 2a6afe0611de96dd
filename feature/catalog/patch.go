package catalog

import "fmt"

// MaxPatches is the number of distinct payloads the 5-bit patch index field
// can address; index 0 is reserved for "no patch".
const MaxPatches = 31

// PatchTable interns per-record patch payloads into a small shared table.
// Payloads are opaque strings; identical text across records collapses to one
// entry, and each entry keeps the display names that reference it so the
// emitted artifact can carry provenance.
type PatchTable struct {
	payloads []string
	usedBy   [][]string
}

// NewPatchTable returns a table with the reserved empty slot at index 0.
func NewPatchTable() *PatchTable {
	return &PatchTable{
		payloads: []string{""},
		usedBy:   [][]string{nil},
	}
}

// Intern returns the 1-based index for payload, appending a new entry if the
// text has not been seen. goodName is recorded as provenance either way.
func (t *PatchTable) Intern(payload, goodName string) (uint8, error) {
	for i := 1; i < len(t.payloads); i++ {
		if t.payloads[i] == payload {
			t.usedBy[i] = append(t.usedBy[i], goodName)
			return uint8(i), nil
		}
	}
	if len(t.payloads)-1 >= MaxPatches {
		return 0, fmt.Errorf("patch table full at %d entries: %w", MaxPatches, ErrCapacityExceeded)
	}
	t.payloads = append(t.payloads, payload)
	t.usedBy = append(t.usedBy, []string{goodName})
	return uint8(len(t.payloads) - 1), nil
}

// Len returns the number of non-empty entries.
func (t *PatchTable) Len() int {
	return len(t.payloads) - 1
}

// Payloads returns the full ordinal payload array, reserved slot included.
func (t *PatchTable) Payloads() []string {
	return t.payloads
}

// UsedBy returns the display names referencing entry i.
func (t *PatchTable) UsedBy(i int) []string {
	if i < 0 || i >= len(t.usedBy) {
		return nil
	}
	return t.usedBy[i]
}
