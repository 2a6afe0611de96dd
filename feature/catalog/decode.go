package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parse decodes the whole catalog text into an ordered record sequence,
// interning patch payloads into patches as it goes. Unrecognized keys,
// unparseable lines and unsupported AiDmaModifier values are logged and
// skipped; everything in the fatal class aborts with a wrapped sentinel from
// errors.go.
func Parse(input string, patches *PatchTable, logg *zap.Logger) ([]Record, error) {
	d := &decoder{
		records: make([]Record, 0, countHeaders(input)),
		patches: patches,
		logg:    logg,
	}

	sc := newScanner(input)
	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		switch classify(line) {
		case lineBlank, lineComment:
		case lineHeader:
			if err := d.openBlock(line, sc.line); err != nil {
				return nil, err
			}
		case lineKeyValue:
			if err := d.field(line, sc.line); err != nil {
				return nil, err
			}
		case lineGarbage:
			d.logg.Warn("unparseable line skipped", zap.Int("line", sc.line))
		}
	}
	return d.records, nil
}

// decoder applies block headers and key/value mutations to the record under
// construction. The alias/direct flags reset at each header and guard the
// two mutually exclusive record forms.
type decoder struct {
	records []Record
	patches *PatchTable
	logg    *zap.Logger

	started   bool
	hasCRC    bool
	hasAlias  bool
	hasDirect bool
}

// cur returns the record currently being decoded.
func (d *decoder) cur() *Record {
	return &d.records[len(d.records)-1]
}

func (d *decoder) openBlock(line string, n int) error {
	if len(line) < 1+KeyHashLen {
		return fmt.Errorf("line %d: block header shorter than %d characters: %w", n, KeyHashLen, ErrMalformedInput)
	}
	d.records = append(d.records, Record{
		KeyHash: line[1 : 1+KeyHashLen],
		Config:  DefaultConfig(),
	})
	d.started = true
	d.hasCRC = false
	d.hasAlias = false
	d.hasDirect = false
	return nil
}

// markDirect flags the current record as direct-form; a prior alias
// declaration makes the forms conflict.
func (d *decoder) markDirect(key string, n int) error {
	if d.hasAlias {
		return fmt.Errorf("line %d: %s on a record that already declares RefMD5: %w", n, key, ErrConflictingForm)
	}
	d.hasDirect = true
	return nil
}

func (d *decoder) markAlias(n int) error {
	if d.hasDirect {
		return fmt.Errorf("line %d: RefMD5 on a record with direct configuration: %w", n, ErrConflictingForm)
	}
	d.hasAlias = true
	return nil
}

func (d *decoder) field(line string, n int) error {
	key, value, _ := strings.Cut(line, "=")
	if !d.started {
		return fmt.Errorf("line %d: key %q before any block header: %w", n, key, ErrMalformedInput)
	}
	rec := d.cur()

	switch key {
	case "CRC":
		if d.hasCRC {
			d.logg.Warn("duplicate CRC line ignored", zap.Int("line", n), zap.String("md5", rec.KeyHash))
			return nil
		}
		crc, err := parseCRC(value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.CRC = crc
		rec.Config = DefaultConfig()
		d.hasCRC = true

	case "RefMD5":
		if err := d.markAlias(n); err != nil {
			return err
		}
		if len(value) < KeyHashLen {
			return fmt.Errorf("line %d: RefMD5 shorter than %d characters: %w", n, KeyHashLen, ErrMalformedInput)
		}
		rec.Reference = true
		rec.RefKeyHash = value[:KeyHashLen]

	case "SaveType":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		st, err := decodeSaveType(value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.Config.SaveType = st

	case "Status":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		v, err := parseBounded(key, value, 0, 5)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.Config.Status = uint8(v)

	case "Players":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		v, err := parseBounded(key, value, 0, 7)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.Config.Players = uint8(v)

	case "CountPerOp":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		v, err := parseBounded(key, value, 1, 4)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.Config.CountPerOp = uint8(v)

	case "Rumble":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		rec.Config.Rumble = flagY(value)

	case "Transferpak":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		rec.Config.Transferpak = flagY(value)

	case "Mempak":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		rec.Config.Mempak = flagY(value)

	case "Biopak":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		rec.Config.Biopak = flagY(value)

	case "DisableExtraMem":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		rec.Config.DisableExtraMem = len(value) > 0 && value[0] == '1'

	case "SiDmaDuration":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		if value != "1" {
			return fmt.Errorf("line %d: SiDmaDuration must be 1, got %q: %w", n, value, ErrInvalidLiteral)
		}
		rec.Config.SiDmaDuration = true

	case "AiDmaModifier":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		if value != "88" {
			d.logg.Warn("unsupported AiDmaModifier value ignored",
				zap.Int("line", n), zap.String("value", value), zap.String("md5", rec.KeyHash))
			return nil
		}
		rec.Config.AiDmaModifier = true

	case "Cheat0":
		if err := d.markDirect(key, n); err != nil {
			return err
		}
		idx, err := d.patches.Intern(value, rec.GoodName)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rec.Config.PatchIndex = idx

	case "GoodName":
		if len(value) > GoodNameMax {
			value = value[:GoodNameMax]
		}
		rec.GoodName = value

	default:
		d.logg.Warn("unrecognized key ignored", zap.Int("line", n), zap.String("key", key))
	}
	return nil
}

// parseCRC decodes the "XXXXXXXX YYYYYYYY" form: two hex 32-bit halves
// separated by a single space, high half first.
func parseCRC(value string) (uint64, error) {
	hi, lo, found := strings.Cut(value, " ")
	if !found {
		return 0, fmt.Errorf("CRC %q missing space separator: %w", value, ErrMalformedInput)
	}
	c1, err := strconv.ParseUint(hi, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("CRC high half %q: %w", hi, ErrMalformedInput)
	}
	c2, err := strconv.ParseUint(strings.TrimRight(lo, "\r "), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("CRC low half %q: %w", lo, ErrMalformedInput)
	}
	return c1<<32 | c2, nil
}

// parseBounded parses a decimal field with a closed valid range. The parse
// itself is unbounded so oversized values classify as out-of-range, not
// malformed.
func parseBounded(key, value string, min, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s value %q: %w", key, value, ErrMalformedInput)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s=%d outside [%d,%d]: %w", key, v, min, max, ErrOutOfRange)
	}
	return v, nil
}

// flagY implements the single-character boolean sentinel: 'Y' is true,
// anything else is false.
func flagY(value string) bool {
	return len(value) > 0 && value[0] == 'Y'
}

// decodeSaveType resolves the closed SaveType vocabulary by first character,
// with the character after "Eeprom " disambiguating the two EEPROM sizes.
func decodeSaveType(value string) (SaveType, error) {
	if len(value) == 0 {
		return 0, fmt.Errorf("empty SaveType: %w", ErrUnknownEnumVariant)
	}
	switch value[0] {
	case 'E':
		const prefix = "Eeprom "
		if len(value) > len(prefix) {
			switch value[len(prefix)] {
			case '4':
				return SaveEeprom4KB, nil
			case '1':
				return SaveEeprom16KB, nil
			}
		}
	case 'S':
		return SaveSram, nil
	case 'F':
		return SaveFlashRam, nil
	case 'C':
		return SaveControllerPack, nil
	case 'N':
		return SaveNone, nil
	}
	return 0, fmt.Errorf("SaveType %q: %w", value, ErrUnknownEnumVariant)
}
