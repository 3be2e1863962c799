// Package directory parses a directory cluster-chain into logical entries,
// builds new entries (basis name, numeric tail, checksum, LDE packing),
// inserts entries with grow-on-overflow, and deletes entry runs while
// preserving the last-entry sentinel, per spec.md §4.4–§4.7.
package directory

import "github.com/RinpoStk/fmod/internal/layout"

// Entry is the in-memory combined record: a name assembled from either an
// LDE run or the SDE's short name, the fully-qualified path, the SDE with
// its on-disk offset, and the ordered LDE run (in on-disk order — highest
// ordinal first) with each LDE's on-disk offset. Equality/ordering between
// entries is defined by FullPath, per spec.md §3.
type Entry struct {
	Name        string
	FullPath    string
	Short       layout.ShortEntry
	ShortOffset int64
	Longs       []layout.LongEntry
	LongOffsets []int64
}

// SlotCount is the number of 32-byte directory slots this entry occupies:
// its LDE run plus the trailing SDE.
func (e *Entry) SlotCount() int {
	return len(e.Longs) + 1
}

// IsDirectory reports whether the entry's SDE attributes name a directory.
func (e *Entry) IsDirectory() bool { return e.Short.IsDirectory() }

// IsVolumeLabel reports whether the entry's SDE attributes name a volume label.
func (e *Entry) IsVolumeLabel() bool { return e.Short.IsVolumeLabel() }

// IsRegularFile reports whether the entry's SDE attributes name a plain file.
func (e *Entry) IsRegularFile() bool { return e.Short.IsRegularFile() }
