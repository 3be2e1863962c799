package directory

import (
	"github.com/pkg/errors"

	"github.com/RinpoStk/fmod/internal/layout"
)

// Parse turns the raw bytes of a directory's full cluster chain into an
// ordered list of logical entries, per spec.md §4.4's slot-by-slot state
// machine. parentPath is prefixed (with a trailing separator already
// applied by the caller) to each entry's short/long name to build FullPath.
// bpb and chain are needed only to compute each slot's on-disk byte offset.
func Parse(data []byte, chain []uint32, bpb *layout.BPB, parentPath string) ([]*Entry, error) {
	var entries []*Entry
	var pending []layout.LongEntry
	var pendingOffsets []int64

	bpc := int(bpb.BytesPerCluster())

	for i := 0; i+layout.DirEntrySize <= len(data); i += layout.DirEntrySize {
		slot := data[i : i+layout.DirEntrySize]
		offset := slotOffset(bpb, chain, bpc, i)

		switch slot[0] {
		case layout.DirLastFreeEntry:
			return entries, nil
		case layout.DirFreeEntry:
			pending = nil
			pendingOffsets = nil
			continue
		}

		attr := slot[11]
		if layout.IsLong(attr) {
			lde, err := layout.DecodeLongEntry(slot)
			if err != nil {
				return nil, errors.Wrap(err, "directory: parse LDE")
			}
			pending = append([]layout.LongEntry{*lde}, pending...)
			pendingOffsets = append([]int64{offset}, pendingOffsets...)
			continue
		}

		sde, err := layout.DecodeShortEntry(slot)
		if err != nil {
			return nil, errors.Wrap(err, "directory: parse SDE")
		}

		mask := sde.Attributes & (layout.AttrDir | layout.AttrVolumeID)
		valid := mask == 0 || mask == layout.AttrDir || mask == layout.AttrVolumeID
		if valid {
			name := shortNameFromEntry(sde.Name)
			if len(pending) > 0 {
				name = assembleLongName(pending)
			}
			// pending/pendingOffsets are stored ordinal-ascending (front-
			// pushed); the on-disk run itself must stay in on-disk order.
			longs := make([]layout.LongEntry, len(pending))
			longOffsets := make([]int64, len(pendingOffsets))
			for a, b := 0, len(pending)-1; b >= 0; a, b = a+1, b-1 {
				longs[a] = pending[b]
				longOffsets[a] = pendingOffsets[b]
			}
			entries = append(entries, &Entry{
				Name:        name,
				FullPath:    parentPath + name,
				Short:       *sde,
				ShortOffset: offset,
				Longs:       longs,
				LongOffsets: longOffsets,
			})
		}
		pending = nil
		pendingOffsets = nil
	}
	return entries, nil
}

// slotOffset computes the absolute on-disk byte offset of the slot at byte
// position slotByte within the concatenated chain buffer, per spec.md
// §4.4: firstDataSectorOfCluster(chain[slotByte/bytesPerCluster]) ×
// bytesPerSector + (slotByte % bytesPerCluster).
func slotOffset(bpb *layout.BPB, chain []uint32, bpc int, slotByte int) int64 {
	clusterIdx := slotByte / bpc
	within := slotByte % bpc
	if clusterIdx >= len(chain) {
		return -1
	}
	return bpb.ClusterOffset(chain[clusterIdx]) + int64(within)
}
