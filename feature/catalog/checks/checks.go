// Package checks validates the structural invariants of a compiled catalog
// table: checksum ordering, uniqueness, reference soundness and patch-table
// deduplication.
package checks

import (
	"fmt"

	"romdat/feature/catalog"
)

// VerifyTable runs every structural check over a loaded table. Each returned
// string describes one violation; an empty result means the table is sound.
func VerifyTable(t *catalog.Table) []string {
	var violations []string
	violations = append(violations, checkShape(t)...)
	violations = append(violations, checkOrder(t)...)
	violations = append(violations, checkReferences(t)...)
	violations = append(violations, checkPatches(t)...)
	return violations
}

func checkShape(t *catalog.Table) []string {
	if len(t.CRCs) != len(t.Entries) {
		return []string{fmt.Sprintf("checksum array length %d does not match record array length %d",
			len(t.CRCs), len(t.Entries))}
	}
	return nil
}

// checkOrder verifies ascending order and, because duplicates merge at
// compile time, strict uniqueness.
func checkOrder(t *catalog.Table) []string {
	var violations []string
	for i := 1; i < len(t.CRCs); i++ {
		if t.CRCs[i] < t.CRCs[i-1] {
			violations = append(violations,
				fmt.Sprintf("checksum order violated at index %d: %016X after %016X", i, t.CRCs[i], t.CRCs[i-1]))
		} else if t.CRCs[i] == t.CRCs[i-1] {
			violations = append(violations,
				fmt.Sprintf("duplicate checksum %016X at index %d", t.CRCs[i], i))
		}
	}
	return violations
}

// checkReferences verifies that every reference index is in bounds and points
// at a direct-form record; chains are forbidden by construction.
func checkReferences(t *catalog.Table) []string {
	var violations []string
	for i, e := range t.Entries {
		if !e.Reference {
			if e.Config.IsDefault() {
				violations = append(violations,
					fmt.Sprintf("default-only record at index %d should have been elided", i))
			}
			continue
		}
		if int(e.RefIndex) >= len(t.Entries) {
			violations = append(violations,
				fmt.Sprintf("reference at index %d points out of bounds (%d of %d)", i, e.RefIndex, len(t.Entries)))
			continue
		}
		if t.Entries[e.RefIndex].Reference {
			violations = append(violations,
				fmt.Sprintf("reference at index %d points at another reference (%d)", i, e.RefIndex))
		}
	}
	return violations
}

// checkPatches verifies interning: no duplicate payloads, and every record's
// patch index addresses an existing entry.
func checkPatches(t *catalog.Table) []string {
	var violations []string
	seen := make(map[string]int)
	for i, p := range t.Patches[1:] {
		if first, dup := seen[p]; dup {
			violations = append(violations,
				fmt.Sprintf("patch entries %d and %d carry identical payloads", first, i+1))
			continue
		}
		seen[p] = i + 1
	}
	for i, e := range t.Entries {
		if !e.Reference && int(e.Config.PatchIndex) >= len(t.Patches) {
			violations = append(violations,
				fmt.Sprintf("record at index %d references missing patch entry %d", i, e.Config.PatchIndex))
		}
	}
	return violations
}
