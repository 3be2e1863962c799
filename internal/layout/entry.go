package layout

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ShortEntry is the 32-byte Short Directory Entry (SDE). Field order and
// widths follow spec.md §3 and the teacher's FAT32DirEntry.
type ShortEntry struct {
	Name             [ShortNameLen]byte
	Attributes       uint8
	NTReserved       uint8
	CreatedTimeTenth uint8
	CreatedTime      uint16
	CreatedDate      uint16
	LastAccessDate   uint16
	FirstClusterHI   uint16
	WriteTime        uint16
	WriteDate        uint16
	FirstClusterLO   uint16
	FileSize         uint32
}

// LongEntry is the 32-byte Long Directory Entry (LDE).
type LongEntry struct {
	Ordinal        uint8
	Name1          [5]uint16
	Attributes     uint8
	Type           uint8
	Checksum       uint8
	Name2          [6]uint16
	FirstClusterLO uint16
	Name3          [2]uint16
}

// DecodeShortEntry parses one 32-byte slot as an SDE.
func DecodeShortEntry(slot []byte) (*ShortEntry, error) {
	if len(slot) < DirEntrySize {
		return nil, fmt.Errorf("layout: short SDE slot: got %d bytes, want %d", len(slot), DirEntrySize)
	}
	var e ShortEntry
	if err := binary.Read(bytes.NewReader(slot[:DirEntrySize]), binary.LittleEndian, &e); err != nil {
		return nil, fmt.Errorf("layout: decode SDE: %w", err)
	}
	return &e, nil
}

// Encode serializes the SDE back to its 32-byte on-disk form.
func (e *ShortEntry) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, e); err != nil {
		return nil, fmt.Errorf("layout: encode SDE: %w", err)
	}
	return buf.Bytes(), nil
}

// FirstCluster reassembles the 32-bit starting cluster from HI/LO halves.
func (e *ShortEntry) FirstCluster() uint32 {
	return uint32(e.FirstClusterHI)<<16 | uint32(e.FirstClusterLO)
}

// SetFirstCluster splits a 32-bit cluster number into HI/LO halves.
func (e *ShortEntry) SetFirstCluster(cluster uint32) {
	e.FirstClusterHI = uint16(cluster >> 16)
	e.FirstClusterLO = uint16(cluster & 0xFFFF)
}

// IsDirectory reports whether this SDE's attribute mask names a directory.
func (e *ShortEntry) IsDirectory() bool {
	return e.Attributes&(AttrDir|AttrVolumeID) == AttrDir
}

// IsVolumeLabel reports whether this SDE's attribute mask names a volume label.
func (e *ShortEntry) IsVolumeLabel() bool {
	return e.Attributes&(AttrDir|AttrVolumeID) == AttrVolumeID
}

// IsRegularFile reports whether this SDE's attribute mask names a plain file.
func (e *ShortEntry) IsRegularFile() bool {
	return e.Attributes&(AttrDir|AttrVolumeID) == 0
}

// DecodeLongEntry parses one 32-byte slot as an LDE.
func DecodeLongEntry(slot []byte) (*LongEntry, error) {
	if len(slot) < DirEntrySize {
		return nil, fmt.Errorf("layout: short LDE slot: got %d bytes, want %d", len(slot), DirEntrySize)
	}
	var e LongEntry
	if err := binary.Read(bytes.NewReader(slot[:DirEntrySize]), binary.LittleEndian, &e); err != nil {
		return nil, fmt.Errorf("layout: decode LDE: %w", err)
	}
	return &e, nil
}

// Encode serializes the LDE back to its 32-byte on-disk form.
func (e *LongEntry) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, e); err != nil {
		return nil, fmt.Errorf("layout: encode LDE: %w", err)
	}
	return buf.Bytes(), nil
}

// IsLong reports whether the attribute byte at slot offset 11 identifies an LDE.
func IsLong(attr byte) bool {
	return attr&AttrMask == AttrLongName
}

// SequenceNumber is the low 5 bits of Ordinal (1..20).
func (e *LongEntry) SequenceNumber() uint8 {
	return e.Ordinal & LongEntryOrdinal
}

// IsLast reports whether bit 0x40 is set, marking the first-on-disk /
// highest-ordinal entry of an LDE run.
func (e *LongEntry) IsLast() bool {
	return e.Ordinal&LastLongEntryFlag != 0
}

// NameUnits returns the 13 UCS-2 code units packed across name1/name2/name3,
// in on-disk order.
func (e *LongEntry) NameUnits() [LongNameLength]uint16 {
	var units [LongNameLength]uint16
	copy(units[0:5], e.Name1[:])
	copy(units[5:11], e.Name2[:])
	copy(units[11:13], e.Name3[:])
	return units
}

// SetNameUnits packs 13 UCS-2 code units into name1/name2/name3.
func (e *LongEntry) SetNameUnits(units [LongNameLength]uint16) {
	copy(e.Name1[:], units[0:5])
	copy(e.Name2[:], units[5:11])
	copy(e.Name3[:], units[11:13])
}
