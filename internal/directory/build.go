package directory

import (
	"time"

	"github.com/RinpoStk/fmod/internal/layout"
)

// encodeDate packs a time.Time into the FAT date encoding: day | (month<<5)
// | ((year-1980)<<9), per spec.md §4.5.
func encodeDate(t time.Time) uint16 {
	return uint16(t.Day()) | uint16(t.Month())<<5 | uint16(t.Year()-1980)<<9
}

// encodeTime packs a time.Time into the FAT time encoding: (second/2) |
// (minute<<5) | (hour<<11).
func encodeTime(t time.Time) uint16 {
	return uint16(t.Second()/2) | uint16(t.Minute())<<5 | uint16(t.Hour())<<11
}

// encodeTimeTenth packs the hundredths-of-a-second field spec.md §4.5
// derives from the microsecond component: ((microseconds/1000) mod 1000)/5.
func encodeTimeTenth(t time.Time) uint8 {
	millis := (t.Nanosecond() / 1e6) % 1000
	return uint8(millis / 5)
}

// Build constructs a new logical entry for name (already validated), of the
// requested kind, timestamped at now, against the set of short names
// already present in the target directory. It does not assign on-disk
// offsets — those are filled in by Insert.
func Build(name string, isDir bool, now time.Time, existingShort [][layout.ShortNameLen]byte, parentPath string) *Entry {
	basis, lossy := basisName(name)
	short := basis
	if needsNumericTail(name, lossy, basis, existingShort) {
		if tail, err := numericTail(basis, existingShort); err == nil {
			short = tail
		}
	}

	checksum := shortNameChecksum(short)
	longs := buildLongEntries(name, checksum)

	attr := uint8(layout.AttrArchive)
	if isDir {
		attr = layout.AttrDir
	}

	date := encodeDate(now)
	clock := encodeTime(now)

	sde := layout.ShortEntry{
		Name:             short,
		Attributes:       attr,
		NTReserved:       0,
		CreatedTimeTenth: encodeTimeTenth(now),
		CreatedTime:      clock,
		CreatedDate:      date,
		LastAccessDate:   date,
		WriteTime:        clock,
		WriteDate:        date,
		FirstClusterHI:   0,
		FirstClusterLO:   0,
		FileSize:         0,
	}

	return &Entry{
		Name:     name,
		FullPath: parentPath + name,
		Short:    sde,
		Longs:    longs,
	}
}

// BuildDotEntries builds the synthetic "." and ".." SDEs seeded into a
// freshly-allocated directory cluster by mkdir, per spec.md §4.8. ".."'s
// FirstCluster is 0 when the parent is the root, per spec.md's "current
// directory as implicit global" root-cluster-0 sentinel treatment.
func BuildDotEntries(selfCluster, parentCluster uint32, template layout.ShortEntry) (dot, dotdot layout.ShortEntry) {
	dot = template
	dot.Name = shortDotName(".")
	dot.Attributes = layout.AttrDir
	dot.FileSize = 0
	dot.SetFirstCluster(selfCluster)

	dotdot = template
	dotdot.Name = shortDotName("..")
	dotdot.Attributes = layout.AttrDir
	dotdot.FileSize = 0
	dotdot.SetFirstCluster(parentCluster)

	return dot, dotdot
}

func shortDotName(dots string) [layout.ShortNameLen]byte {
	var name [layout.ShortNameLen]byte
	for i := range name {
		name[i] = layout.ShortNameSpacePad
	}
	copy(name[:], dots)
	return name
}
