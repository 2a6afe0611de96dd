package catalog

// SaveType enumerates the cartridge save hardware variants.
type SaveType uint8

const (
	SaveEeprom4KB SaveType = iota
	SaveEeprom16KB
	SaveSram
	SaveFlashRam
	SaveControllerPack
	SaveNone
)

// String returns the catalog vocabulary form of the save type.
func (s SaveType) String() string {
	switch s {
	case SaveEeprom4KB:
		return "Eeprom 4k"
	case SaveEeprom16KB:
		return "Eeprom 16k"
	case SaveSram:
		return "Sram"
	case SaveFlashRam:
		return "Flash Ram"
	case SaveControllerPack:
		return "Controller Pack"
	case SaveNone:
		return "None"
	}
	return "None"
}

// KeyHashLen is the fixed length of the textual key hash in a block header.
const KeyHashLen = 32

// GoodNameMax is the byte limit for display names; longer input is truncated.
const GoodNameMax = 63

// Config is the direct-form per-record configuration. It packs into the low
// bits of the 4-byte wire record.
type Config struct {
	SaveType        SaveType
	Players         uint8
	Rumble          bool
	Transferpak     bool
	Status          uint8
	CountPerOp      uint8
	DisableExtraMem bool
	PatchIndex      uint8
	Mempak          bool
	Biopak          bool
	SiDmaDuration   bool
	AiDmaModifier   bool
}

// DefaultConfig returns the configuration every record starts from the
// instant its CRC is parsed.
func DefaultConfig() Config {
	return Config{
		SaveType:   SaveNone,
		Players:    4,
		Rumble:     true,
		Mempak:     true,
		CountPerOp: 2,
	}
}

// IsDefault reports whether the configuration carries no information beyond
// the defaults.
func (c Config) IsDefault() bool {
	return c == DefaultConfig()
}

// Record is one catalog entry as it moves through the pipeline. A record is
// either direct-form (its own Config) or reference-form (Reference set, the
// target named by RefKeyHash); never both.
type Record struct {
	// CRC is the 64-bit checksum, two 32-bit halves; primary sort key.
	CRC uint64
	// KeyHash is the 32-character block header hash, used only to resolve
	// aliases before positions are final.
	KeyHash string
	// GoodName is the display name, truncated to GoodNameMax.
	GoodName string

	Config Config

	// Reference marks the record as an alias of another record.
	Reference bool
	// RefKeyHash names the alias target by key hash.
	RefKeyHash string
	// RefCRC is the target's checksum, recorded at resolution. Positions are
	// unstable until after canonicalization, so the checksum is the join key
	// for the second resolution pass.
	RefCRC uint64
	// RefIndex is the target's position in the final record array.
	RefIndex uint16
	// Resolved reports whether the first resolution pass found the target.
	Resolved bool
}
