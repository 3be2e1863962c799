package layout

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FSInfo is the FAT32 FSInfo sector. Only FreeCount is actively maintained
// by this tool (recomputed as the free-list length after every mutation);
// every other field — including the two lead/trail signatures and the
// reserved padding — is preserved verbatim, per spec.md §3.
type FSInfo struct {
	LeadSignature   uint32
	Reserved1       [480]byte
	StructSignature uint32
	FreeCount       uint32
	NextFree        uint32
	Reserved2       [12]byte
	TrailSignature  uint32
}

// FSInfoSize is the fixed on-disk size of the FSInfo sector.
const FSInfoSize = 512

// DecodeFSInfo parses a 512-byte sector into an FSInfo record.
func DecodeFSInfo(sector []byte) (*FSInfo, error) {
	if len(sector) < FSInfoSize {
		return nil, fmt.Errorf("layout: short FSInfo sector: got %d bytes, want %d", len(sector), FSInfoSize)
	}
	var fs FSInfo
	if err := binary.Read(bytes.NewReader(sector[:FSInfoSize]), binary.LittleEndian, &fs); err != nil {
		return nil, fmt.Errorf("layout: decode FSInfo: %w", err)
	}
	return &fs, nil
}

// Encode serializes the FSInfo record back to its 512-byte on-disk form.
func (fs *FSInfo) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, fs); err != nil {
		return nil, fmt.Errorf("layout: encode FSInfo: %w", err)
	}
	return buf.Bytes(), nil
}
