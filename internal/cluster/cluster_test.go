package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RinpoStk/fmod/internal/fat"
	"github.com/RinpoStk/fmod/internal/image"
	"github.com/RinpoStk/fmod/internal/layout"
	"github.com/RinpoStk/fmod/internal/testfat"
)

func openTestLayer(t *testing.T) *Layer {
	t.Helper()
	fs := testfat.Build()
	img, err := image.Open(fs, testfat.ImagePath)
	require.NoError(t, err)

	bpbSector, err := img.ReadAt(0, layout.BPBSize)
	require.NoError(t, err)
	bpb, err := layout.DecodeBPB(bpbSector)
	require.NoError(t, err)

	fsInfoSector, err := img.ReadAt(bpb.FSInfoOffset(), layout.FSInfoSize)
	require.NoError(t, err)
	fsInfo, err := layout.DecodeFSInfo(fsInfoSector)
	require.NoError(t, err)

	table, err := fat.Load(img, bpb, fsInfo)
	require.NoError(t, err)

	return New(img, bpb, table)
}

func TestReadChainOnRootIsOneEmptyCluster(t *testing.T) {
	l := openTestLayer(t)
	buf, chain, err := l.ReadChain(testfat.RootCluster)
	require.NoError(t, err)
	assert.Len(t, chain, 1)
	assert.Equal(t, make([]byte, l.BytesPerCluster()), buf)
}

func TestReadChainOfZeroIsEmpty(t *testing.T) {
	l := openTestLayer(t)
	buf, chain, err := l.ReadChain(0)
	require.NoError(t, err)
	assert.Empty(t, chain)
	assert.Empty(t, buf)
}

func TestAllocateExtendsEmptyChainAndZeroWipes(t *testing.T) {
	l := openTestLayer(t)
	before := l.FreeCount()

	chain, err := l.Allocate(2, nil)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, before-2, l.FreeCount())

	for _, c := range chain {
		data, err := l.img.ReadAt(l.bpb.ClusterOffset(c), int(l.BytesPerCluster()))
		require.NoError(t, err)
		assert.Equal(t, make([]byte, l.BytesPerCluster()), data)
	}
	assert.True(t, l.fat.IsEOC(l.fat.Get(chain[1])))
	assert.Equal(t, chain[1], l.fat.Get(chain[0]))
}

func TestAllocateAppendsToExistingChain(t *testing.T) {
	l := openTestLayer(t)
	first, err := l.Allocate(1, nil)
	require.NoError(t, err)

	grown, err := l.Allocate(1, first)
	require.NoError(t, err)
	require.Len(t, grown, 2)
	assert.Equal(t, first[0], grown[0])
	assert.Equal(t, grown[1], l.fat.Get(grown[0]))
	assert.True(t, l.fat.IsEOC(l.fat.Get(grown[1])))
}

func TestFreeChainPushesInReverseWalkOrder(t *testing.T) {
	l := openTestLayer(t)
	chain, err := l.Allocate(3, nil)
	require.NoError(t, err)
	beforeFree := l.FreeCount()

	l.FreeChain(chain[0])
	require.NoError(t, l.FlushFAT())

	assert.Equal(t, beforeFree+3, l.FreeCount())
	for _, c := range chain {
		assert.True(t, l.fat.IsFree(l.fat.Get(c)))
	}

	// Drain every other free cluster first so the next three pops come
	// exclusively from the chain just freed, in the FIFO order FreeChain
	// queued them: reverse of the walk, i.e. chain[2], chain[1], chain[0].
	_, err = l.Allocate(uint32(l.FreeCount()-3), nil)
	require.NoError(t, err)

	reallocated, err := l.Allocate(3, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{chain[2], chain[1], chain[0]}, reallocated)
}

func TestZeroOutChainDoesNotTouchFAT(t *testing.T) {
	l := openTestLayer(t)
	chain, err := l.Allocate(1, nil)
	require.NoError(t, err)

	payload := make([]byte, l.BytesPerCluster())
	copy(payload, []byte("not zero"))
	require.NoError(t, l.WriteChain(payload, chain))

	before := l.fat.Get(chain[0])
	require.NoError(t, l.ZeroOutChain(chain[0]))
	assert.Equal(t, before, l.fat.Get(chain[0]))

	data, _, err := l.ReadChain(chain[0])
	require.NoError(t, err)
	assert.Equal(t, make([]byte, l.BytesPerCluster()), data)
}

func TestWriteChainRejectsLengthMismatch(t *testing.T) {
	l := openTestLayer(t)
	chain, err := l.Allocate(1, nil)
	require.NoError(t, err)
	err = l.WriteChain([]byte("too short"), chain)
	assert.Error(t, err)
}
