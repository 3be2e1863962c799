package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RinpoStk/fmod/internal/testfat"
)

func TestDecodeFSInfo(t *testing.T) {
	fs := testfat.Build()
	f, err := fs.Open(testfat.ImagePath)
	require.NoError(t, err)
	defer f.Close()

	sector := make([]byte, FSInfoSize)
	_, err = f.ReadAt(sector, int64(testfat.FSInfoSector)*testfat.BytesPerSector)
	require.NoError(t, err)

	info, err := DecodeFSInfo(sector)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x41615252), info.LeadSignature)
	assert.Equal(t, uint32(0x61417272), info.StructSignature)
	assert.Equal(t, uint32(testfat.DataClusters-1), info.FreeCount)
	assert.Equal(t, uint32(0xAA550000), info.TrailSignature)
}

func TestFSInfoEncodeDecodeRoundTrip(t *testing.T) {
	orig := &FSInfo{
		LeadSignature:   0x41615252,
		StructSignature: 0x61417272,
		FreeCount:       17,
		NextFree:        3,
		TrailSignature:  0xAA550000,
	}
	encoded, err := orig.Encode()
	require.NoError(t, err)
	require.Len(t, encoded, FSInfoSize)

	decoded, err := DecodeFSInfo(encoded)
	require.NoError(t, err)
	assert.Equal(t, orig.FreeCount, decoded.FreeCount)
	assert.Equal(t, orig.NextFree, decoded.NextFree)
}
