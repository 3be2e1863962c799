package directory

import "github.com/RinpoStk/fmod/internal/layout"

// ChainFreer is the cluster-layer surface Remove needs to release an
// entry's data and mirror the FAT/FSInfo change, independent of Insert's
// whole-chain read/write surface (removal writes individual 32-byte slots
// at their already-known absolute offsets instead).
type ChainFreer interface {
	FreeChain(startCluster uint32)
	ZeroOutChain(startCluster uint32) error
	FlushFAT() error
}

// SlotWriter is the Image surface Remove needs to rewrite individual
// directory slots in place.
type SlotWriter interface {
	WriteAt(offset int64, data []byte) error
	Flush() error
}

// Remove deletes entry's data and directory-entry run, per spec.md §4.7:
//  1. if safe, zero-wipe the data clusters first;
//  2. free the chain and flush FAT mirrors + FSInfo;
//  3. mark every LDE slot free (0xE5), zeroing the rest of the slot if safe;
//  4. mark the SDE slot free (0xE5), or — if isLastInListing — re-establish
//     the 0x00 terminator there instead;
//  5. flush.
func Remove(cl ChainFreer, img SlotWriter, entry *Entry, isLastInListing bool, safe bool) error {
	if safe {
		if err := cl.ZeroOutChain(entry.Short.FirstCluster()); err != nil {
			return err
		}
	}

	cl.FreeChain(entry.Short.FirstCluster())
	if err := cl.FlushFAT(); err != nil {
		return err
	}

	for _, offset := range entry.LongOffsets {
		if err := writeFreedSlot(img, offset, layout.DirFreeEntry, safe); err != nil {
			return err
		}
	}

	terminator := byte(layout.DirFreeEntry)
	if isLastInListing {
		terminator = layout.DirLastFreeEntry
	}
	if err := writeFreedSlot(img, entry.ShortOffset, terminator, safe); err != nil {
		return err
	}

	return img.Flush()
}

// writeFreedSlot writes a freed or terminated slot back to disk: the full
// 32 bytes zeroed with marker in byte 0 when safe, otherwise just the
// single marker byte, leaving the rest of the slot's bytes untouched.
func writeFreedSlot(img SlotWriter, offset int64, marker byte, safe bool) error {
	if offset < 0 {
		return nil
	}
	if safe {
		slot := make([]byte, layout.DirEntrySize)
		slot[0] = marker
		return img.WriteAt(offset, slot)
	}
	return img.WriteAt(offset, []byte{marker})
}
