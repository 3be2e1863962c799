// Package testfat builds tiny, valid FAT32 images entirely in memory so the
// layout/fat/cluster/session layers can be exercised against
// afero.NewMemMapFs() instead of a real disk image, per aligator-GoFAT's use
// of afero to make filesystem code testable without touching the OS.
package testfat

import (
	"encoding/binary"

	"github.com/spf13/afero"
)

// Geometry constants for the synthetic image: one sector per cluster keeps
// the arithmetic easy to hand-verify in tests.
const (
	BytesPerSector    = 512
	SectorsPerCluster = 1
	ReservedSectors   = 32
	NumFATs           = 2
	FATSectors        = 1
	DataClusters      = 64
	RootCluster       = 2
	FSInfoSector      = 1

	firstDataSector = ReservedSectors + NumFATs*FATSectors
	totalSectors    = firstDataSector + DataClusters*SectorsPerCluster
	ImageSize       = totalSectors * BytesPerSector

	fatFree   uint32 = 0x00000000
	fatEOC    uint32 = 0x0FFFFFFF
	fatMedia  uint32 = 0x0FFFFFF8
	leadSig   uint32 = 0x41615252
	structSig uint32 = 0x61417272
	trailSig  uint32 = 0xAA550000
	bootSig   uint16 = 0xAA55
)

// ImagePath is the fixed path every Build call writes its image to.
const ImagePath = "/image.img"

// Build assembles one empty FAT32 volume (root directory cluster
// zero-filled, all data clusters but the root free) and writes it to a
// fresh afero.MemMapFs at ImagePath. It returns that filesystem.
func Build() afero.Fs {
	img := make([]byte, ImageSize)

	writeBPB(img)
	writeFSInfo(img, DataClusters-1)
	writeFAT(img)

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, ImagePath, img, 0o644); err != nil {
		panic(err)
	}
	return fs
}

func writeBPB(img []byte) {
	b := img[:512]
	copy(b[0:3], []byte{0xEB, 0x58, 0x90})
	copy(b[3:11], []byte("MSWIN4.1"))
	binary.LittleEndian.PutUint16(b[11:13], BytesPerSector)
	b[13] = SectorsPerCluster
	binary.LittleEndian.PutUint16(b[14:16], ReservedSectors)
	b[16] = NumFATs
	binary.LittleEndian.PutUint16(b[17:19], 0) // MaxRootDirEntries
	binary.LittleEndian.PutUint16(b[19:21], 0) // TotalSectors16
	b[21] = 0xF8                               // MediaDescriptor
	binary.LittleEndian.PutUint16(b[22:24], 0) // SectorsPerFAT16
	binary.LittleEndian.PutUint16(b[24:26], 0) // SectorsPerTrack
	binary.LittleEndian.PutUint16(b[26:28], 0) // NumHeads
	binary.LittleEndian.PutUint32(b[28:32], 0) // HiddenSectors
	binary.LittleEndian.PutUint32(b[32:36], uint32(totalSectors))
	binary.LittleEndian.PutUint32(b[36:40], uint32(FATSectors))
	binary.LittleEndian.PutUint16(b[40:42], 0) // Flags
	binary.LittleEndian.PutUint16(b[42:44], 0) // Version
	binary.LittleEndian.PutUint32(b[44:48], uint32(RootCluster))
	binary.LittleEndian.PutUint16(b[48:50], uint16(FSInfoSector))
	binary.LittleEndian.PutUint16(b[50:52], 6) // BackupBootSector
	b[64] = 0x80                               // BIOSDriveNum
	b[66] = 0x29                                // ExtendedBootSignature
	binary.LittleEndian.PutUint32(b[67:71], 0x12345678)
	copy(b[71:82], []byte("NO NAME    "))
	copy(b[82:90], []byte("FAT32   "))
	binary.LittleEndian.PutUint16(b[510:512], bootSig)
}

func writeFSInfo(img []byte, freeCount uint32) {
	off := FSInfoSector * BytesPerSector
	b := img[off : off+512]
	binary.LittleEndian.PutUint32(b[0:4], leadSig)
	binary.LittleEndian.PutUint32(b[484:488], structSig)
	binary.LittleEndian.PutUint32(b[488:492], freeCount)
	binary.LittleEndian.PutUint32(b[492:496], RootCluster+1)
	binary.LittleEndian.PutUint32(b[508:512], trailSig)
}

func writeFAT(img []byte) {
	entries := make([]uint32, DataClusters+2)
	entries[0] = fatMedia
	entries[1] = fatEOC
	entries[RootCluster] = fatEOC
	for i := RootCluster + 1; i < len(entries); i++ {
		entries[i] = fatFree
	}

	raw := make([]byte, len(entries)*4)
	for i, v := range entries {
		binary.LittleEndian.PutUint32(raw[i*4:], v)
	}

	for k := 0; k < NumFATs; k++ {
		off := (ReservedSectors + k*FATSectors) * BytesPerSector
		copy(img[off:off+len(raw)], raw)
	}
}
