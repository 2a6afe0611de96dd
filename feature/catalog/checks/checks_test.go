package checks

import (
	"strings"
	"testing"

	"romdat/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	hashA = strings.Repeat("a", catalog.KeyHashLen)
	hashB = strings.Repeat("b", catalog.KeyHashLen)
)

func compileTable(t *testing.T, input string) *catalog.Table {
	t.Helper()
	patches := catalog.NewPatchTable()
	records, err := catalog.Parse(input, patches, zap.NewNop())
	require.NoError(t, err)
	catalog.Resolve(records, zap.NewNop())
	final := catalog.Canonicalize(records, zap.NewNop())
	bin, err := catalog.EmitBinary(final, patches)
	require.NoError(t, err)
	table, err := catalog.LoadTable(bin)
	require.NoError(t, err)
	return table
}

func TestVerifyTable(t *testing.T) {
	t.Run("Compiled Table Is Sound", func(t *testing.T) {
		input := "[" + hashA + "]\nCRC=00000001 00000002\nStatus=3\nCheat0=8133B1BC 4100\n" +
			"[" + hashB + "]\nCRC=00000005 00000006\nRefMD5=" + hashA + "\n"
		table := compileTable(t, input)
		assert.Empty(t, VerifyTable(table))
	})

	t.Run("Order Violation Detected", func(t *testing.T) {
		table := &catalog.Table{
			CRCs:    []uint64{5, 1},
			Entries: []catalog.Entry{{CRC: 5}, {CRC: 1}},
			Patches: []string{""},
		}
		violations := VerifyTable(table)
		assert.NotEmpty(t, violations)
	})

	t.Run("Duplicate Checksum Detected", func(t *testing.T) {
		cfg := catalog.Config{Status: 1, Players: 4, Rumble: true, Mempak: true, CountPerOp: 2, SaveType: catalog.SaveNone}
		table := &catalog.Table{
			CRCs:    []uint64{1, 1},
			Entries: []catalog.Entry{{CRC: 1, Config: cfg}, {CRC: 1, Config: cfg}},
			Patches: []string{""},
		}
		found := false
		for _, v := range VerifyTable(table) {
			if strings.Contains(v, "duplicate checksum") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Out Of Bounds Reference Detected", func(t *testing.T) {
		table := &catalog.Table{
			CRCs:    []uint64{1},
			Entries: []catalog.Entry{{CRC: 1, Reference: true, RefIndex: 7}},
			Patches: []string{""},
		}
		violations := VerifyTable(table)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "out of bounds")
	})

	t.Run("Reference Chain Detected", func(t *testing.T) {
		table := &catalog.Table{
			CRCs: []uint64{1, 2},
			Entries: []catalog.Entry{
				{CRC: 1, Reference: true, RefIndex: 1},
				{CRC: 2, Reference: true, RefIndex: 0},
			},
			Patches: []string{""},
		}
		violations := VerifyTable(table)
		assert.Len(t, violations, 2)
	})

	t.Run("Duplicate Patch Payloads Detected", func(t *testing.T) {
		cfg := catalog.Config{Status: 1, Players: 4, Rumble: true, Mempak: true, CountPerOp: 2, SaveType: catalog.SaveNone}
		table := &catalog.Table{
			CRCs:    []uint64{1},
			Entries: []catalog.Entry{{CRC: 1, Config: cfg}},
			Patches: []string{"", "same", "same"},
		}
		found := false
		for _, v := range VerifyTable(table) {
			if strings.Contains(v, "identical payloads") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Default Only Record Detected", func(t *testing.T) {
		table := &catalog.Table{
			CRCs:    []uint64{1},
			Entries: []catalog.Entry{{CRC: 1, Config: catalog.DefaultConfig()}},
			Patches: []string{""},
		}
		violations := VerifyTable(table)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "should have been elided")
	})
}
