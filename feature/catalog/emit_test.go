package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// compileAll runs the full pipeline and returns both artifacts.
func compileAll(t *testing.T, input string) ([]byte, []byte) {
	t.Helper()
	patches := NewPatchTable()
	records, err := Parse(input, patches, zap.NewNop())
	require.NoError(t, err)
	Resolve(records, zap.NewNop())
	final := Canonicalize(records, zap.NewNop())
	bin, err := EmitBinary(final, patches)
	require.NoError(t, err)
	return bin, EmitText(final, patches)
}

func TestEmitBinaryLayout(t *testing.T) {
	bin, _ := compileAll(t, block(hashA, "CRC=00000001 00000002", "Status=3"))

	want := []byte{
		'R', '6', '4', 'D', // magic
		1,    // version
		1, 0, // record count
		0,                      // patch count
		2, 0, 0, 0, 1, 0, 0, 0, // checksum 0x0000000100000002 LE
		0xCA, // save=None(5)<<1 | players=4<<4 | rumble<<7
		0x26, // status=3<<1 | count_per_op=2<<4
		0x20, // mempak<<5
		0x00,
	}
	assert.Equal(t, want, bin)
}

func TestEmitBinaryReferenceForm(t *testing.T) {
	input := block(hashA, "CRC=00000001 00000002", "Status=3") +
		block(hashB, "CRC=00000005 00000006", "RefMD5="+hashA)
	bin, _ := compileAll(t, input)

	table, err := LoadTable(bin)
	require.NoError(t, err)
	require.Len(t, table.Entries, 2)
	assert.False(t, table.Entries[0].Reference)
	assert.True(t, table.Entries[1].Reference)
	assert.Equal(t, uint16(0), table.Entries[1].RefIndex)
}

func TestEmitBinaryPatchTable(t *testing.T) {
	input := block(hashA,
		"GoodName=Game A",
		"CRC=00000001 00000002",
		"Cheat0=8133B1BC 4100",
	)
	bin, _ := compileAll(t, input)

	table, err := LoadTable(bin)
	require.NoError(t, err)
	require.Len(t, table.Patches, 2)
	assert.Equal(t, "", table.Patches[0])
	assert.Equal(t, "8133B1BC 4100", table.Patches[1])
	assert.Equal(t, uint8(1), table.Entries[0].Config.PatchIndex)
}

func TestEmitTextCarriesNonDefaults(t *testing.T) {
	input := block(hashA,
		"GoodName=Game A",
		"CRC=00000001 00000002",
		"SaveType=Flash Ram",
		"Players=2",
		"Rumble=N",
		"Cheat0=8133B1BC 4100",
	)
	_, text := compileAll(t, input)

	s := string(text)
	assert.Contains(t, s, "["+hashA+"]\n")
	assert.Contains(t, s, "GoodName=Game A\n")
	assert.Contains(t, s, "CRC=00000001 00000002\n")
	assert.Contains(t, s, "SaveType=Flash Ram\n")
	assert.Contains(t, s, "Players=2\n")
	assert.Contains(t, s, "Rumble=N\n")
	assert.Contains(t, s, "Cheat0=8133B1BC 4100\n")
	assert.NotContains(t, s, "Status=")
	assert.NotContains(t, s, "Mempak=")
}

func TestEmitTextPatchProvenance(t *testing.T) {
	t.Run("Named Users Listed Above Payload", func(t *testing.T) {
		input := block(hashA, "GoodName=Game A", "CRC=00000001 00000002", "Cheat0=8133B1BC 4100") +
			block(hashB, "GoodName=Game B", "CRC=00000005 00000006", "Cheat0=8133B1BC 4100")
		_, text := compileAll(t, input)

		assert.Contains(t, string(text), "; used by: Game A, Game B\nCheat0=8133B1BC 4100\n")
	})

	t.Run("Unnamed User Leaves No Comment", func(t *testing.T) {
		input := block(hashA, "CRC=00000001 00000002", "Cheat0=8133B1BC 4100")
		_, text := compileAll(t, input)

		s := string(text)
		assert.NotContains(t, s, "used by")
		assert.Contains(t, s, "Cheat0=8133B1BC 4100\n")
	})

	t.Run("Provenance Survives Recompilation", func(t *testing.T) {
		input := block(hashA, "GoodName=Game A", "CRC=00000001 00000002", "Cheat0=8133B1BC 4100")
		bin1, text1 := compileAll(t, input)
		bin2, text2 := compileAll(t, string(text1))
		assert.Equal(t, bin1, bin2)
		assert.Equal(t, text1, text2)
	})
}

func TestEmitTextAliasBlock(t *testing.T) {
	input := block(hashA, "CRC=00000001 00000002", "Status=3") +
		block(hashB, "GoodName=Alias Dump", "CRC=00000005 00000006", "RefMD5="+hashA)
	_, text := compileAll(t, input)

	s := string(text)
	assert.Contains(t, s, "["+hashB+"]\nGoodName=Alias Dump\nCRC=00000005 00000006\nRefMD5="+hashA+"\n")
}

func TestRoundTrip(t *testing.T) {
	t.Run("Already Canonical Input Is Stable", func(t *testing.T) {
		// Records given in ascending checksum order with nothing to merge:
		// one compile pass is already a fixed point.
		input := block(hashA, "GoodName=Game A", "CRC=00000001 00000002", "Status=3") +
			block(hashB, "GoodName=Game B", "CRC=00000003 00000004", "SaveType=Sram", "Cheat0=8133B1BC 4100") +
			block(hashC, "GoodName=Game C", "CRC=00000005 00000006", "RefMD5="+hashA)

		bin1, text1 := compileAll(t, input)
		bin2, text2 := compileAll(t, string(text1))
		assert.Equal(t, bin1, bin2)
		assert.Equal(t, text1, text2)
	})

	t.Run("Idempotent After First Pass", func(t *testing.T) {
		// Unsorted input with duplicates and an unresolved alias: the first
		// pass normalizes, every later pass reproduces itself.
		missing := "ffffffffffffffffffffffffffffffff"
		input := block(hashA, "GoodName=Game A", "CRC=00000009 00000000", "Cheat0=D0064F30 0000") +
			block(hashB, "GoodName=Game B", "CRC=00000001 00000000", "Players=1", "Cheat0=8133B1BC 4100") +
			block(hashC, "GoodName=Dup", "CRC=00000009 00000000") +
			block("dddddddddddddddddddddddddddddddd", "CRC=0000000F 00000000", "RefMD5="+missing)

		_, text1 := compileAll(t, input)
		bin2, text2 := compileAll(t, string(text1))
		bin3, text3 := compileAll(t, string(text2))
		assert.Equal(t, bin2, bin3)
		assert.Equal(t, text2, text3)
	})
}
