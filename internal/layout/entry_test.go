package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortEntryClusterSplitting(t *testing.T) {
	var e ShortEntry
	e.SetFirstCluster(0x000A1234)
	assert.Equal(t, uint16(0x000A), e.FirstClusterHI)
	assert.Equal(t, uint16(0x1234), e.FirstClusterLO)
	assert.Equal(t, uint32(0x000A1234), e.FirstCluster())
}

func TestShortEntryTypeClassification(t *testing.T) {
	tests := []struct {
		name       string
		attributes uint8
		wantDir    bool
		wantVolume bool
		wantFile   bool
	}{
		{"plain file", AttrArchive, false, false, true},
		{"directory", AttrDir, true, false, false},
		{"volume label", AttrVolumeID, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ShortEntry{Attributes: tt.attributes}
			assert.Equal(t, tt.wantDir, e.IsDirectory())
			assert.Equal(t, tt.wantVolume, e.IsVolumeLabel())
			assert.Equal(t, tt.wantFile, e.IsRegularFile())
		})
	}
}

func TestShortEntryEncodeDecode(t *testing.T) {
	e := ShortEntry{
		Name:       [ShortNameLen]byte{'F', 'O', 'O', ' ', ' ', ' ', ' ', ' ', 'T', 'X', 'T'},
		Attributes: AttrArchive,
		FileSize:   42,
	}
	e.SetFirstCluster(9)

	encoded, err := e.Encode()
	require.NoError(t, err)
	require.Len(t, encoded, DirEntrySize)

	decoded, err := DecodeShortEntry(encoded)
	require.NoError(t, err)
	assert.Equal(t, e.Name, decoded.Name)
	assert.Equal(t, uint32(9), decoded.FirstCluster())
	assert.Equal(t, uint32(42), decoded.FileSize)
}

func TestLongEntryOrdinalAndNameUnits(t *testing.T) {
	var e LongEntry
	e.Ordinal = 2 | LastLongEntryFlag
	assert.True(t, e.IsLast())
	assert.Equal(t, uint8(2), e.SequenceNumber())

	units := [LongNameLength]uint16{'a', 'b', 'c', LongNameNull, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail, LongNameTrail}
	e.SetNameUnits(units)
	assert.Equal(t, units, e.NameUnits())
}

func TestIsLong(t *testing.T) {
	assert.True(t, IsLong(AttrLongName))
	assert.False(t, IsLong(AttrArchive))
	assert.False(t, IsLong(AttrDir))
}
