package catalog

import (
	"fmt"
	"sort"
)

// DiffKind classifies one difference between two compiled tables.
type DiffKind string

const (
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
	DiffChanged DiffKind = "changed"
)

// DiffEntry describes one differing checksum.
type DiffEntry struct {
	CRC    uint64   `json:"crc"`
	Kind   DiffKind `json:"kind"`
	Detail string   `json:"detail,omitempty"`
}

// effectiveView is a record's behavior independent of table layout: the
// resolved configuration with the patch index replaced by the payload text,
// so two tables compare equal when their records behave the same even if
// positions and patch indices differ.
type effectiveView struct {
	cfg   Config
	patch string
}

func viewOf(t *Table, i int) effectiveView {
	e := t.Entries[i]
	if e.Reference && int(e.RefIndex) < len(t.Entries) {
		e = t.Entries[e.RefIndex]
	}
	v := effectiveView{cfg: e.Config, patch: t.Patch(e.Config.PatchIndex)}
	v.cfg.PatchIndex = 0
	return v
}

// Diff compares two compiled tables over the union of their checksums,
// ascending. Behavior, not layout, is compared: reference records are
// resolved and patch payloads compared by text.
func Diff(before, after *Table) []DiffEntry {
	beforeViews := make(map[uint64]effectiveView, len(before.Entries))
	for i := range before.Entries {
		beforeViews[before.CRCs[i]] = viewOf(before, i)
	}
	afterViews := make(map[uint64]effectiveView, len(after.Entries))
	for i := range after.Entries {
		afterViews[after.CRCs[i]] = viewOf(after, i)
	}

	union := make([]uint64, 0, len(beforeViews)+len(afterViews))
	for crc := range beforeViews {
		union = append(union, crc)
	}
	for crc := range afterViews {
		if _, ok := beforeViews[crc]; !ok {
			union = append(union, crc)
		}
	}
	sort.Slice(union, func(i, j int) bool { return union[i] < union[j] })

	var diffs []DiffEntry
	for _, crc := range union {
		b, inBefore := beforeViews[crc]
		a, inAfter := afterViews[crc]
		switch {
		case !inBefore:
			diffs = append(diffs, DiffEntry{CRC: crc, Kind: DiffAdded})
		case !inAfter:
			diffs = append(diffs, DiffEntry{CRC: crc, Kind: DiffRemoved})
		case a != b:
			diffs = append(diffs, DiffEntry{CRC: crc, Kind: DiffChanged, Detail: describeChange(b, a)})
		}
	}
	return diffs
}

func describeChange(before, after effectiveView) string {
	var parts []string
	b, a := before.cfg, after.cfg
	if b.SaveType != a.SaveType {
		parts = append(parts, fmt.Sprintf("save_type: %s -> %s", b.SaveType, a.SaveType))
	}
	if b.Status != a.Status {
		parts = append(parts, fmt.Sprintf("status: %d -> %d", b.Status, a.Status))
	}
	if b.Players != a.Players {
		parts = append(parts, fmt.Sprintf("players: %d -> %d", b.Players, a.Players))
	}
	if b.CountPerOp != a.CountPerOp {
		parts = append(parts, fmt.Sprintf("count_per_op: %d -> %d", b.CountPerOp, a.CountPerOp))
	}
	if b.Rumble != a.Rumble || b.Transferpak != a.Transferpak || b.Mempak != a.Mempak ||
		b.Biopak != a.Biopak || b.DisableExtraMem != a.DisableExtraMem ||
		b.SiDmaDuration != a.SiDmaDuration || b.AiDmaModifier != a.AiDmaModifier {
		parts = append(parts, "flags changed")
	}
	if before.patch != after.patch {
		parts = append(parts, "patch payload changed")
	}
	if len(parts) == 0 {
		return "packed form changed"
	}
	detail := parts[0]
	for _, p := range parts[1:] {
		detail += "; " + p
	}
	return detail
}
