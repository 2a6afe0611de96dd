package catalog

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Entry is one decoded row of a compiled table.
type Entry struct {
	CRC       uint64
	Reference bool
	RefIndex  uint16
	Config    Config
}

// Table is a compiled catalog loaded back into memory. CRCs and Entries are
// parallel arrays in artifact order; lookups search CRCs alone.
type Table struct {
	CRCs    []uint64
	Entries []Entry
	Patches []string
}

// LoadTable parses a binary artifact produced by EmitBinary.
func LoadTable(data []byte) (*Table, error) {
	if len(data) < headerSize || string(data[:4]) != tableMagic {
		return nil, fmt.Errorf("missing %s magic: %w", tableMagic, ErrMalformedInput)
	}
	if data[4] != tableVersion {
		return nil, fmt.Errorf("unsupported table version %d: %w", data[4], ErrMalformedInput)
	}
	count := int(binary.LittleEndian.Uint16(data[5:7]))
	patchCount := int(data[7])

	need := headerSize + count*(8+packedSize)
	if len(data) < need {
		return nil, fmt.Errorf("artifact truncated at %d of %d bytes: %w", len(data), need, ErrMalformedInput)
	}

	t := &Table{
		CRCs:    make([]uint64, count),
		Entries: make([]Entry, count),
		Patches: make([]string, 1, patchCount+1),
	}

	off := headerSize
	for i := 0; i < count; i++ {
		t.CRCs[i] = binary.LittleEndian.Uint64(data[off : off+8])
		off += 8
	}
	for i := 0; i < count; i++ {
		t.Entries[i] = unpackConfig(t.CRCs[i], data[off:off+packedSize])
		off += packedSize
	}
	for i := 0; i < patchCount; i++ {
		if off+2 > len(data) {
			return nil, fmt.Errorf("patch table truncated: %w", ErrMalformedInput)
		}
		n := int(binary.LittleEndian.Uint16(data[off : off+2]))
		off += 2
		if off+n > len(data) {
			return nil, fmt.Errorf("patch payload truncated: %w", ErrMalformedInput)
		}
		t.Patches = append(t.Patches, string(data[off:off+n]))
		off += n
	}
	return t, nil
}

// unpackConfig inverts packConfig for one wire record.
func unpackConfig(crc uint64, b []byte) Entry {
	e := Entry{CRC: crc}
	if b[0]&1 == 1 {
		e.Reference = true
		e.RefIndex = binary.LittleEndian.Uint16(b[1:3])
		return e
	}
	e.Config = Config{
		SaveType:        SaveType(b[0] >> 1 & 0x7),
		Players:         b[0] >> 4 & 0x7,
		Rumble:          b[0]>>7&1 == 1,
		Transferpak:     b[1]&1 == 1,
		Status:          b[1] >> 1 & 0x7,
		CountPerOp:      b[1] >> 4 & 0x7,
		DisableExtraMem: b[1]>>7&1 == 1,
		PatchIndex:      b[2] & 0x1F,
		Mempak:          b[2]>>5&1 == 1,
		Biopak:          b[2]>>6&1 == 1,
		SiDmaDuration:   b[2]>>7&1 == 1,
		AiDmaModifier:   b[3]&1 == 1,
	}
	return e
}

// Lookup binary-searches the checksum array and resolves one reference hop.
// The second return is false when the checksum is absent; absent records use
// defaults by contract.
func (t *Table) Lookup(crc uint64) (Config, bool) {
	i := sort.Search(len(t.CRCs), func(i int) bool { return t.CRCs[i] >= crc })
	if i >= len(t.CRCs) || t.CRCs[i] != crc {
		return Config{}, false
	}
	e := t.Entries[i]
	if e.Reference {
		if int(e.RefIndex) >= len(t.Entries) {
			return Config{}, false
		}
		e = t.Entries[e.RefIndex]
	}
	return e.Config, true
}

// Patch returns the payload for a 1-based patch index; index 0 and anything
// out of range return the empty string.
func (t *Table) Patch(index uint8) string {
	if int(index) >= len(t.Patches) {
		return ""
	}
	return t.Patches[index]
}
