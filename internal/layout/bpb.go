package layout

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// BPB is the BIOS Parameter Block read once from offset 0 of the image.
// Field layout and offsets follow spec.md §3; unused/reserved fields are
// preserved verbatim so a later flush does not perturb them, the same
// contract the teacher's FAT32BootSector carries end to end through a
// session (it is read once via getBPR and never partially rewritten).
type BPB struct {
	JumpInstruction       [3]byte
	OEMName               [8]byte
	BytesPerSector        uint16
	SectorsPerCluster     uint8
	ReservedSectorCount   uint16
	NumFATs               uint8
	MaxRootDirEntries     uint16
	TotalSectors16        uint16
	MediaDescriptor       uint8
	SectorsPerFAT16       uint16
	SectorsPerTrack       uint16
	NumHeads              uint16
	HiddenSectors         uint32
	TotalSectors32        uint32
	FATSz32               uint32
	Flags                 uint16
	Version               uint16
	RootCluster           uint32
	FSInfo                uint16
	BackupBootSector      uint16
	Reserved              [12]byte
	BIOSDriveNum          uint8
	Unused                uint8
	ExtendedBootSignature uint8
	VolumeSerialNumber    uint32
	VolumeLabel           [11]byte
	FileSystemType        [8]byte
	Unused2               [420]byte
	Signature             uint16
}

// BPBSize is the fixed on-disk size of the BPB sector this tool reads.
const BPBSize = 512

// DecodeBPB parses a 512-byte sector into a BPB.
func DecodeBPB(sector []byte) (*BPB, error) {
	if len(sector) < BPBSize {
		return nil, fmt.Errorf("layout: short BPB sector: got %d bytes, want %d", len(sector), BPBSize)
	}
	var bpb BPB
	if err := binary.Read(bytes.NewReader(sector[:BPBSize]), binary.LittleEndian, &bpb); err != nil {
		return nil, fmt.Errorf("layout: decode BPB: %w", err)
	}
	return &bpb, nil
}

// BytesPerCluster is bytesPerSector × sectorsPerCluster.
func (b *BPB) BytesPerCluster() uint32 {
	return uint32(b.BytesPerSector) * uint32(b.SectorsPerCluster)
}

// FirstDataSector is reservedSectorCount + numFATs × FATSz32.
func (b *BPB) FirstDataSector() uint32 {
	return uint32(b.ReservedSectorCount) + uint32(b.NumFATs)*b.FATSz32
}

// CountOfClusters is (totalSectors32 − firstDataSector) / sectorsPerCluster.
func (b *BPB) CountOfClusters() uint32 {
	return (b.TotalSectors32 - b.FirstDataSector()) / uint32(b.SectorsPerCluster)
}

// FATOffset returns the byte offset of FAT mirror k (0-based).
func (b *BPB) FATOffset(k int) int64 {
	return int64(b.ReservedSectorCount)*int64(b.BytesPerSector) +
		int64(k)*int64(b.FATSz32)*int64(b.BytesPerSector)
}

// FSInfoOffset returns the byte offset of the FSInfo sector.
func (b *BPB) FSInfoOffset() int64 {
	return int64(b.FSInfo) * int64(b.BytesPerSector)
}

// FirstSectorOfCluster is firstDataSectorOfCluster(n), valid only for n >= 2.
func (b *BPB) FirstSectorOfCluster(n uint32) uint32 {
	return (n-FirstDataCluster)*uint32(b.SectorsPerCluster) + b.FirstDataSector()
}

// ClusterOffset returns the byte offset of cluster n in the image.
func (b *BPB) ClusterOffset(n uint32) int64 {
	return int64(b.FirstSectorOfCluster(n)) * int64(b.BytesPerSector)
}
