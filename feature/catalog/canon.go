package catalog

import (
	"sort"

	"go.uber.org/zap"
)

// Canonicalize produces the final emitted record sequence: sorted by checksum,
// duplicate checksums merged, default-only records elided, and alias indices
// re-resolved against final positions. Every pass builds a fresh slice; the
// input is not modified.
func Canonicalize(records []Record, logg *zap.Logger) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)

	// Ties order direct-form before reference-form so the direct record in a
	// run is adjacent and wins the merge.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CRC != sorted[j].CRC {
			return sorted[i].CRC < sorted[j].CRC
		}
		return !sorted[i].Reference && sorted[j].Reference
	})

	merged := mergeDuplicates(sorted, logg)
	kept := elideDefaults(merged, logg)
	return reresolve(kept, logg)
}

// mergeDuplicates collapses each run of equal checksums to a single record.
// The first record wins unless a later direct-form record actually declares
// something: the latest non-default direct record in the run overrides
// earlier default-bearing ones.
func mergeDuplicates(sorted []Record, logg *zap.Logger) []Record {
	merged := make([]Record, 0, len(sorted))
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].CRC == sorted[i].CRC {
			j++
		}
		win := i
		for k := i + 1; k < j; k++ {
			if !sorted[k].Reference && !sorted[k].Config.IsDefault() {
				win = k
			}
		}
		if j-i > 1 {
			logg.Debug("merged duplicate checksum",
				zap.Uint64("crc", sorted[i].CRC),
				zap.Int("count", j-i),
				zap.String("good_name", sorted[win].GoodName))
		}
		merged = append(merged, sorted[win])
		i = j
	}
	return merged
}

// elideDefaults drops records that carry no information: unresolved aliases
// and direct records whose configuration equals the defaults.
func elideDefaults(merged []Record, logg *zap.Logger) []Record {
	kept := make([]Record, 0, len(merged))
	for _, r := range merged {
		switch {
		case r.Reference && !r.Resolved:
			logg.Warn("eliding unresolved alias",
				zap.String("md5", r.KeyHash), zap.String("good_name", r.GoodName))
		case !r.Reference && r.Config.IsDefault():
			logg.Debug("eliding default-only record",
				zap.Uint64("crc", r.CRC), zap.String("good_name", r.GoodName))
		default:
			kept = append(kept, r)
		}
	}
	return kept
}

// reresolve rebinds alias indices to post-canonicalization positions, joining
// by the checksum recorded in the first resolution pass. An alias whose
// target was elided, or whose run merged down to another alias, is dropped:
// surviving references must point at a direct-form record, so no chains.
func reresolve(kept []Record, logg *zap.Logger) []Record {
	direct := make(map[uint64]bool, len(kept))
	for _, r := range kept {
		if !r.Reference {
			direct[r.CRC] = true
		}
	}

	final := make([]Record, 0, len(kept))
	for _, r := range kept {
		if r.Reference && !direct[r.RefCRC] {
			logg.Warn("eliding alias with no direct-form target",
				zap.String("md5", r.KeyHash),
				zap.Uint64("ref_crc", r.RefCRC),
				zap.String("good_name", r.GoodName))
			continue
		}
		final = append(final, r)
	}

	pos := make(map[uint64]uint16, len(final))
	for i, r := range final {
		if !r.Reference {
			pos[r.CRC] = uint16(i)
		}
	}
	for i := range final {
		if final[i].Reference {
			final[i].RefIndex = pos[final[i].RefCRC]
		}
	}
	return final
}
