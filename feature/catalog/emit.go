package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Binary artifact layout, little-endian throughout:
//
//	magic "R64D" | version u8 | record count u16 | patch count u8
//	checksum array: count x u64
//	record array:   count x 4-byte packed configuration
//	patch table:    patch count x (u16 length + payload bytes)
//
// The checksum array is kept parallel to (not interleaved with) the record
// array so the consuming runtime can binary-search checksums without touching
// the packed configuration bytes.
const (
	tableMagic    = "R64D"
	tableVersion  = 1
	headerSize    = 8
	packedSize    = 4
	maxTableCount = 1<<16 - 1
)

// EmitBinary serializes a canonical record sequence and its patch table.
func EmitBinary(records []Record, patches *PatchTable) ([]byte, error) {
	if len(records) > maxTableCount {
		return nil, fmt.Errorf("%d records exceed the 16-bit count field: %w", len(records), ErrCapacityExceeded)
	}

	buf := new(bytes.Buffer)
	buf.Grow(headerSize + len(records)*(8+packedSize))
	buf.WriteString(tableMagic)
	buf.WriteByte(tableVersion)
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(len(records)))
	buf.Write(u16[:])
	buf.WriteByte(uint8(patches.Len()))

	var u64 [8]byte
	for _, r := range records {
		binary.LittleEndian.PutUint64(u64[:], r.CRC)
		buf.Write(u64[:])
	}
	for _, r := range records {
		p := packConfig(r)
		buf.Write(p[:])
	}
	for _, payload := range patches.Payloads()[1:] {
		binary.LittleEndian.PutUint16(u16[:], uint16(len(payload)))
		buf.Write(u16[:])
		buf.WriteString(payload)
	}
	return buf.Bytes(), nil
}

// packConfig packs one record into the 4-byte wire form. Bit 0 of byte 0 is
// the discriminant: 0 selects the direct field layout, 1 the reference
// layout (u16 target index in bytes 1-2).
func packConfig(r Record) [packedSize]byte {
	var b [packedSize]byte
	if r.Reference {
		b[0] = 1
		binary.LittleEndian.PutUint16(b[1:3], r.RefIndex)
		return b
	}
	c := r.Config
	b[0] = byte(c.SaveType)<<1 | c.Players<<4 | bit(c.Rumble)<<7
	b[1] = bit(c.Transferpak) | c.Status<<1 | c.CountPerOp<<4 | bit(c.DisableExtraMem)<<7
	b[2] = c.PatchIndex | bit(c.Mempak)<<5 | bit(c.Biopak)<<6 | bit(c.SiDmaDuration)<<7
	b[3] = bit(c.AiDmaModifier)
	return b
}

func bit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// EmitText renders the canonical record sequence back into block syntax. The
// output re-parses and recompiles to the same binary table: every non-default
// configuration key is written out, and CRC uses the two-half input form.
// Each patch line carries its interning provenance as a comment, which the
// decoder skips on re-parse.
func EmitText(records []Record, patches *PatchTable) []byte {
	def := DefaultConfig()
	var b bytes.Buffer
	for _, r := range records {
		fmt.Fprintf(&b, "[%s]\n", r.KeyHash)
		if r.GoodName != "" {
			fmt.Fprintf(&b, "GoodName=%s\n", r.GoodName)
		}
		fmt.Fprintf(&b, "CRC=%08X %08X\n", r.CRC>>32, r.CRC&0xFFFFFFFF)

		if r.Reference {
			fmt.Fprintf(&b, "RefMD5=%s\n", r.RefKeyHash)
			b.WriteByte('\n')
			continue
		}

		c := r.Config
		if c.SaveType != def.SaveType {
			fmt.Fprintf(&b, "SaveType=%s\n", c.SaveType)
		}
		if c.Status != def.Status {
			fmt.Fprintf(&b, "Status=%d\n", c.Status)
		}
		if c.Players != def.Players {
			fmt.Fprintf(&b, "Players=%d\n", c.Players)
		}
		if c.CountPerOp != def.CountPerOp {
			fmt.Fprintf(&b, "CountPerOp=%d\n", c.CountPerOp)
		}
		if !c.Rumble {
			b.WriteString("Rumble=N\n")
		}
		if c.Transferpak {
			b.WriteString("Transferpak=Y\n")
		}
		if !c.Mempak {
			b.WriteString("Mempak=N\n")
		}
		if c.Biopak {
			b.WriteString("Biopak=Y\n")
		}
		if c.DisableExtraMem {
			b.WriteString("DisableExtraMem=1\n")
		}
		if c.SiDmaDuration {
			b.WriteString("SiDmaDuration=1\n")
		}
		if c.AiDmaModifier {
			b.WriteString("AiDmaModifier=88\n")
		}
		if c.PatchIndex != 0 {
			if names := provenance(patches.UsedBy(int(c.PatchIndex))); names != "" {
				fmt.Fprintf(&b, "; used by: %s\n", names)
			}
			fmt.Fprintf(&b, "Cheat0=%s\n", patches.Payloads()[c.PatchIndex])
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// provenance joins the named users of a patch entry; records without a
// GoodName contribute nothing.
func provenance(names []string) string {
	kept := names[:0:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}
