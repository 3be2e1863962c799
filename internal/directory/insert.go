package directory

import (
	"github.com/RinpoStk/fmod/internal/fserrors"
	"github.com/RinpoStk/fmod/internal/layout"
)

// Clusters is the subset of *cluster.Layer the directory package depends
// on: whole-chain read/write and the allocator. Kept as an interface so
// directory tests can stub it without the cluster package's own
// afero-backed image plumbing.
type Clusters interface {
	ReadChain(startCluster uint32) ([]byte, []uint32, error)
	WriteChain(data []byte, chain []uint32) error
	Allocate(amount uint32, chain []uint32) ([]uint32, error)
	BytesPerCluster() uint32
	FreeCount() int
}

// findInsertionRun scans buf front-to-back for the first contiguous run of
// DirFreeEntry slots at least required bytes long, per spec.md §4.6 step 2 —
// a freed run left by removing a non-last entry is reused in place rather
// than forcing growth. A DirLastFreeEntry terminator counts as free for the
// rest of the buffer from that point on, since nothing past it is in use;
// the run that reaches the terminator is returned even when it is shorter
// than required, so the caller grows the directory and the entry continues
// into the new clusters. If no terminator is found and no run is long
// enough, it returns len(buf) so the caller grows the directory instead.
func findInsertionRun(buf []byte, required int) int {
	runStart := -1
	for i := 0; i+layout.DirEntrySize <= len(buf); i += layout.DirEntrySize {
		switch buf[i] {
		case layout.DirFreeEntry:
			if runStart < 0 {
				runStart = i
			}
			if i+layout.DirEntrySize-runStart >= required {
				return runStart
			}
		case layout.DirLastFreeEntry:
			if runStart < 0 {
				runStart = i
			}
			return runStart
		default:
			runStart = -1
		}
	}
	return len(buf)
}

// Insert adds entry (already built by Build) into the directory whose
// cluster chain starts at startCluster, growing the directory on overflow
// via the cluster allocator, per spec.md §4.6. It returns the directory's
// (possibly extended) chain and fills in entry's on-disk offsets.
func Insert(cl Clusters, bpb *layout.BPB, startCluster uint32, entry *Entry) ([]uint32, error) {
	buf, chain, err := cl.ReadChain(startCluster)
	if err != nil {
		return nil, err
	}

	required := entry.SlotCount() * layout.DirEntrySize
	bpc := int(cl.BytesPerCluster())

	runStart := findInsertionRun(buf, required)
	available := len(buf) - runStart

	if available < required {
		shortfall := required - available
		clustersNeeded := (shortfall + bpc - 1) / bpc
		if len(chain)+clustersNeeded > layout.DirMaxSize/bpc {
			return nil, fserrors.Space("directory would exceed the maximum directory size")
		}
		if cl.FreeCount() < clustersNeeded {
			return nil, fserrors.Space("not enough space left")
		}
		newChain, err := cl.Allocate(uint32(clustersNeeded), chain)
		if err != nil {
			return nil, err
		}
		buf = append(buf, make([]byte, clustersNeeded*bpc)...)
		chain = newChain
	}

	entry.LongOffsets = make([]int64, len(entry.Longs))
	pos := runStart
	for i, lde := range entry.Longs {
		encoded, err := lde.Encode()
		if err != nil {
			return nil, err
		}
		copy(buf[pos:pos+layout.DirEntrySize], encoded)
		entry.LongOffsets[i] = slotOffset(bpb, chain, bpc, pos)
		pos += layout.DirEntrySize
	}

	sdeEncoded, err := entry.Short.Encode()
	if err != nil {
		return nil, err
	}
	copy(buf[pos:pos+layout.DirEntrySize], sdeEncoded)
	entry.ShortOffset = slotOffset(bpb, chain, bpc, pos)

	if err := cl.WriteChain(buf, chain); err != nil {
		return nil, err
	}
	return chain, nil
}
