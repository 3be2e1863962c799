// Package fat is the in-memory mirror of the primary File Allocation Table:
// accessors that mask off the reserved upper 4 bits, a free-list FIFO
// populated at startup, and a writer that mirrors every change out to all
// numFATs on-disk copies before returning, per spec.md §4.2.
package fat

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/RinpoStk/fmod/internal/fserrors"
	"github.com/RinpoStk/fmod/internal/image"
	"github.com/RinpoStk/fmod/internal/layout"
)

// Table is the session's single in-memory FAT, mirrored to all on-disk
// copies on every Flush.
type Table struct {
	img     *image.Image
	bpb     *layout.BPB
	fsInfo  *layout.FSInfo
	entries []uint32
	free    []uint32 // FIFO: Pop takes the front, Push appends to the back
	log     *logrus.Entry
}

// Load reads the primary FAT mirror into memory and scans it for free
// clusters.
func Load(img *image.Image, bpb *layout.BPB, fsInfo *layout.FSInfo) (*Table, error) {
	count := bpb.CountOfClusters()
	length := int(count+2) * layout.FATEntrySize
	raw, err := img.ReadAt(bpb.FATOffset(0), length)
	if err != nil {
		return nil, errors.Wrap(err, "fat: load primary mirror")
	}

	t := &Table{
		img:     img,
		bpb:     bpb,
		fsInfo:  fsInfo,
		entries: make([]uint32, count+2),
		log:     logrus.WithField("component", "fat"),
	}
	for i := range t.entries {
		t.entries[i] = binary.LittleEndian.Uint32(raw[i*layout.FATEntrySize:])
	}

	for n := uint32(layout.FirstDataCluster); n < count+2; n++ {
		if t.IsFree(t.Get(n)) {
			t.free = append(t.free, n)
		}
	}
	t.log.WithField("freeCount", len(t.free)).Debug("loaded FAT")
	return t, nil
}

// Get returns fat[n] with the reserved high 4 bits masked off.
func (t *Table) Get(n uint32) uint32 {
	return t.entries[n] & layout.FATEntryMask
}

// Set writes v into fat[n], preserving the reserved high 4 bits.
func (t *Table) Set(n uint32, v uint32) {
	t.entries[n] = (t.entries[n] & layout.FATHighMask) | (v & layout.FATEntryMask)
}

// IsFree reports whether v is the FREE sentinel.
func (t *Table) IsFree(v uint32) bool { return v == layout.FATFree }

// IsEOC reports whether v is an end-of-chain marker.
func (t *Table) IsEOC(v uint32) bool { return v >= layout.FATEOCMin }

// FreeCount is the current length of the free-list.
func (t *Table) FreeCount() int { return len(t.free) }

// PopFree removes and returns the cluster at the front of the free-list.
func (t *Table) PopFree() (uint32, error) {
	if len(t.free) == 0 {
		return 0, fserrors.Space("no free clusters remain")
	}
	c := t.free[0]
	t.free = t.free[1:]
	return c, nil
}

// PushFree appends clusters to the back of the free-list. Callers freeing a
// chain push the walked clusters in reverse walk order, per spec.md §4.3.
func (t *Table) PushFree(clusters ...uint32) {
	t.free = append(t.free, clusters...)
}

// FlushAll writes the full in-memory FAT to every mirror, then updates and
// flushes FSInfo.FreeCount, then flushes the image. This is the exact
// ordering spec.md §5 requires after any allocation or free.
func (t *Table) FlushAll() error {
	length := len(t.entries) * layout.FATEntrySize
	raw := make([]byte, length)
	for i, v := range t.entries {
		binary.LittleEndian.PutUint32(raw[i*layout.FATEntrySize:], v)
	}

	for k := 0; k < int(t.bpb.NumFATs); k++ {
		if err := t.img.WriteAt(t.bpb.FATOffset(k), raw); err != nil {
			return errors.Wrapf(err, "fat: flush mirror %d", k)
		}
	}

	t.fsInfo.FreeCount = uint32(len(t.free))
	encoded, err := t.fsInfo.Encode()
	if err != nil {
		return errors.Wrap(err, "fat: encode FSInfo")
	}
	if err := t.img.WriteAt(t.bpb.FSInfoOffset(), encoded); err != nil {
		return errors.Wrap(err, "fat: flush FSInfo")
	}

	if err := t.img.Flush(); err != nil {
		return errors.Wrap(err, "fat: flush image")
	}
	t.log.WithField("freeCount", len(t.free)).Debug("flushed FAT mirrors and FSInfo")
	return nil
}
