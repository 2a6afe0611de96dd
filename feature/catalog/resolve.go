package catalog

import "go.uber.org/zap"

// Resolve links every reference-form record to its target by key hash and
// records the target's checksum as the join key for re-resolution after
// canonicalization. A missing target is reported, not fatal: the record falls
// back to pure defaults and the canonicalizer elides it.
func Resolve(records []Record, logg *zap.Logger) {
	for i := range records {
		r := &records[i]
		if !r.Reference {
			continue
		}
		for j := range records {
			if records[j].KeyHash == r.RefKeyHash {
				r.RefIndex = uint16(j)
				r.RefCRC = records[j].CRC
				r.Resolved = true
				break
			}
		}
		if !r.Resolved {
			logg.Warn("alias target not found",
				zap.String("md5", r.KeyHash),
				zap.String("ref_md5", r.RefKeyHash),
				zap.String("good_name", r.GoodName))
		}
	}
}
