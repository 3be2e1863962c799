package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RinpoStk/fmod/internal/layout"
)

func TestBuildAssignsAttributesByKind(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 30, 0, 0, time.UTC)

	file := Build("report.txt", false, now, nil, "")
	assert.Equal(t, uint8(layout.AttrArchive), file.Short.Attributes)
	assert.Equal(t, "report.txt", file.Name)
	assert.Equal(t, "report.txt", file.FullPath)
	assert.Zero(t, file.Short.FileSize)

	dir := Build("sub", true, now, nil, "a/")
	assert.Equal(t, uint8(layout.AttrDir), dir.Short.Attributes)
	assert.Equal(t, "a/sub", dir.FullPath)
}

func TestBuildEncodesCreationDateAndTime(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 30, 46, 0, time.UTC)
	e := Build("f.txt", false, now, nil, "")

	wantDate := uint16(5) | uint16(3)<<5 | uint16(2026-1980)<<9
	wantTime := uint16(46/2) | uint16(30)<<5 | uint16(10)<<11
	assert.Equal(t, wantDate, e.Short.CreatedDate)
	assert.Equal(t, wantTime, e.Short.CreatedTime)
}

func TestBuildAssignsNumericTailOnCollision(t *testing.T) {
	now := time.Now()
	existing, _ := basisName("longname.txt")

	e := Build("longname.txt", false, now, [][layout.ShortNameLen]byte{existing}, "")
	assert.NotEqual(t, existing, e.Short.Name)
}

func TestBuildDotEntriesRootParentIsSentinelZero(t *testing.T) {
	template := layout.ShortEntry{Attributes: layout.AttrDir}
	dot, dotdot := BuildDotEntries(9, 0, template)
	assert.Equal(t, uint32(9), dot.FirstCluster())
	assert.Equal(t, uint32(0), dotdot.FirstCluster())
	assert.Equal(t, ".", shortNameFromEntry(dot.Name))
	assert.Equal(t, "..", shortNameFromEntry(dotdot.Name))
}

func TestBuildDotEntriesNonRootParent(t *testing.T) {
	template := layout.ShortEntry{Attributes: layout.AttrDir}
	_, dotdot := BuildDotEntries(9, 4, template)
	assert.Equal(t, uint32(4), dotdot.FirstCluster())
}
