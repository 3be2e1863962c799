package session

import (
	"fmt"
	"time"

	"github.com/RinpoStk/fmod/internal/directory"
	"github.com/RinpoStk/fmod/internal/fserrors"
	"github.com/RinpoStk/fmod/internal/layout"
)

// Fsinfo renders the six BPB-derived numbers spec.md §4.8 requires: bytes
// per sector, sectors per cluster, reserved sector count, number of FATs,
// sectors per FAT, and free space (freeCount × sectorsPerCluster ×
// bytesPerSector bytes — SPEC_FULL.md §6 resolves the unit as bytes).
func (s *Session) Fsinfo() string {
	freeBytes := uint64(s.fat.FreeCount()) * uint64(s.bpb.SectorsPerCluster) * uint64(s.bpb.BytesPerSector)
	return fmt.Sprintf(
		"Bytes per sector: %d\n"+
			"Sectors per cluster: %d\n"+
			"Reserved sectors: %d\n"+
			"Number of FATs: %d\n"+
			"Sectors per FAT: %d\n"+
			"Free space: %d bytes\n",
		s.bpb.BytesPerSector,
		s.bpb.SectorsPerCluster,
		s.bpb.ReservedSectorCount,
		s.bpb.NumFATs,
		s.bpb.FATSz32,
		freeBytes,
	)
}

// Open marks name open in mode, per spec.md §4.8/§4.9.
func (s *Session) Open(name, mode string) error {
	m, err := ParseOpenMode(mode)
	if err != nil {
		return err
	}
	entry, _, err := s.findFile(name)
	if err != nil {
		return err
	}
	if _, already := s.openFiles[entry.FullPath]; already {
		return fserrors.State("%s is already open.", name)
	}
	s.openFiles[entry.FullPath] = m
	return nil
}

// Close removes name from the open-file table.
func (s *Session) Close(name string) error {
	entry, _, err := s.findFile(name)
	if err != nil {
		return err
	}
	if _, open := s.openFiles[entry.FullPath]; !open {
		return fserrors.State("%s is not open.", name)
	}
	delete(s.openFiles, entry.FullPath)
	return nil
}

// Create builds a new, empty file entry and inserts it into the current
// directory, failing if name already exists.
func (s *Session) Create(name string) error {
	valid, err := directory.ValidateName(name, len(s.Pwd()))
	if err != nil {
		return err
	}
	if _, _, err := s.findEntry(valid); err == nil {
		return fserrors.Exists("%s already exists.", valid)
	}
	entry := directory.Build(valid, false, time.Now(), s.existingShortNames(), s.currentPathPrefix())
	if _, err := directory.Insert(s.cl, s.bpb, s.currentCluster, entry); err != nil {
		return err
	}
	return s.refreshListing()
}

// Read returns up to numBytes bytes of name's data starting at startPos,
// per spec.md §4.8.
func (s *Session) Read(name string, startPos, numBytes uint32) ([]byte, error) {
	entry, _, err := s.findFile(name)
	if err != nil {
		return nil, err
	}
	mode, open := s.openFiles[entry.FullPath]
	if !open || !mode.CanRead() {
		return nil, fserrors.State("%s is not open for reading.", name)
	}
	if startPos >= entry.Short.FileSize {
		return nil, fserrors.Range("%s: start position %d is past end of file (%d bytes).", name, startPos, entry.Short.FileSize)
	}

	data, chain, err := s.cl.ReadChain(entry.Short.FirstCluster())
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fserrors.Fatal("%s has a nonzero size but an empty cluster chain", name)
	}

	end := startPos + numBytes
	if end > entry.Short.FileSize {
		end = entry.Short.FileSize
	}
	if int(end) > len(data) {
		end = uint32(len(data))
	}
	return data[startPos:end], nil
}

// Write writes data into name at startPos, growing and reallocating the
// file's cluster chain as needed, per spec.md §4.8's ordering: the SDE is
// written (new cluster pointers, new size, ARCHIVE set) and flushed before
// the data itself is written and flushed, so an interrupted write always
// leaves the SDE describing the chain that is actually on disk.
func (s *Session) Write(name string, startPos uint32, data []byte) error {
	entry, _, err := s.findFile(name)
	if err != nil {
		return err
	}
	mode, open := s.openFiles[entry.FullPath]
	if !open || !mode.CanWrite() {
		return fserrors.State("%s is not open for writing.", name)
	}

	required := uint64(startPos) + uint64(len(data))
	if required > layout.FileMaxSize {
		return fserrors.Space("write would exceed the maximum file size")
	}

	oldBuf, oldChain, err := s.cl.ReadChain(entry.Short.FirstCluster())
	if err != nil {
		return err
	}

	current := uint64(0)
	if entry.Short.FileSize > 0 {
		current = uint64(len(oldChain)) * uint64(s.cl.BytesPerCluster())
	}

	chain := oldChain
	buf := oldBuf
	if required > current {
		bpc := uint64(s.cl.BytesPerCluster())
		clustersNeeded := (required - current + bpc - 1) / bpc
		if uint64(s.cl.FreeCount()) < clustersNeeded {
			return fserrors.Space("not enough space left")
		}
		newChain, err := s.cl.Allocate(uint32(clustersNeeded), oldChain)
		if err != nil {
			return err
		}
		buf = append(buf, make([]byte, clustersNeeded*bpc)...)
		chain = newChain
	}

	entry.Short.SetFirstCluster(chain[0])
	entry.Short.FileSize = uint32(required)
	entry.Short.Attributes |= layout.AttrArchive
	encoded, err := entry.Short.Encode()
	if err != nil {
		return err
	}
	if err := s.img.WriteAt(entry.ShortOffset, encoded); err != nil {
		return err
	}
	if err := s.img.Flush(); err != nil {
		return err
	}

	copy(buf[startPos:], data)
	if err := s.cl.WriteChain(buf, chain); err != nil {
		return err
	}
	if err := s.img.Flush(); err != nil {
		return err
	}
	return s.refreshListing()
}

// Rm removes a file, optionally zero-wiping its data first when safe.
func (s *Session) Rm(name string, safe bool) error {
	_, idx, err := s.findFile(name)
	if err != nil {
		return err
	}
	return s.removeEntry(idx, safe)
}

func (s *Session) removeEntry(idx int, safe bool) error {
	entry := s.listing[idx]
	isLast := idx == len(s.listing)-1
	if err := directory.Remove(s.cl, s.img, entry, isLast, safe); err != nil {
		return err
	}
	delete(s.openFiles, entry.FullPath)
	return s.refreshListing()
}

// Cd changes the current directory. "." is a no-op; ".." pops one path
// component, returning to rootCluster and clearing the whole path stack if
// the ".." entry's stored FirstCluster is the root sentinel 0.
func (s *Session) Cd(name string) error {
	if name == "." {
		return nil
	}
	entry, _, err := s.findDirectory(name)
	if err != nil {
		return err
	}

	if name == ".." {
		target := entry.Short.FirstCluster()
		if target == 0 {
			s.currentCluster = s.bpb.RootCluster
			s.path = s.path[:0]
		} else {
			s.currentCluster = target
			if len(s.path) > 0 {
				s.path = s.path[:len(s.path)-1]
			}
		}
	} else {
		s.currentCluster = entry.Short.FirstCluster()
		s.path = append(s.path, name)
	}
	return s.refreshListing()
}

// Ls lists the current directory, or a named subdirectory without
// descending into it.
func (s *Session) Ls(dirName string) ([]*directory.Entry, error) {
	if dirName == "" {
		return s.listing, nil
	}
	entry, _, err := s.findDirectory(dirName)
	if err != nil {
		return nil, err
	}
	data, chain, err := s.cl.ReadChain(entry.Short.FirstCluster())
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fserrors.Fatal("%s has an empty cluster chain", dirName)
	}
	return directory.Parse(data, chain, s.bpb, entry.FullPath+"/")
}

// Mkdir creates a new, empty subdirectory named name, allocating exactly
// one cluster for its contents and seeding it with "." and ".." entries,
// per spec.md §4.8.
func (s *Session) Mkdir(name string) error {
	valid, err := directory.ValidateName(name, len(s.Pwd()))
	if err != nil {
		return err
	}
	if _, _, err := s.findEntry(valid); err == nil {
		return fserrors.Exists("%s already exists.", valid)
	}

	entry := directory.Build(valid, true, time.Now(), s.existingShortNames(), s.currentPathPrefix())
	if _, err := directory.Insert(s.cl, s.bpb, s.currentCluster, entry); err != nil {
		return err
	}

	newChain, err := s.cl.Allocate(1, nil)
	if err != nil {
		return err
	}
	selfCluster := newChain[0]

	entry.Short.SetFirstCluster(selfCluster)
	encoded, err := entry.Short.Encode()
	if err != nil {
		return err
	}
	if err := s.img.WriteAt(entry.ShortOffset, encoded); err != nil {
		return err
	}

	parentCluster := s.currentCluster
	if s.currentCluster == s.bpb.RootCluster {
		parentCluster = 0
	}
	dot, dotdot := directory.BuildDotEntries(selfCluster, parentCluster, entry.Short)

	buf, chain, err := s.cl.ReadChain(selfCluster)
	if err != nil {
		return err
	}
	dotEncoded, err := dot.Encode()
	if err != nil {
		return err
	}
	dotdotEncoded, err := dotdot.Encode()
	if err != nil {
		return err
	}
	copy(buf[0:layout.DirEntrySize], dotEncoded)
	copy(buf[layout.DirEntrySize:2*layout.DirEntrySize], dotdotEncoded)
	if err := s.cl.WriteChain(buf, chain); err != nil {
		return err
	}
	if err := s.img.Flush(); err != nil {
		return err
	}
	return s.refreshListing()
}

// Rmdir removes an empty subdirectory: one containing at most "." and "..".
func (s *Session) Rmdir(name string) error {
	if name == "." || name == ".." {
		return fserrors.Name("%s cannot be removed.", name)
	}
	entry, idx, err := s.findDirectory(name)
	if err != nil {
		return err
	}
	data, chain, err := s.cl.ReadChain(entry.Short.FirstCluster())
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return fserrors.Fatal("%s has an empty cluster chain", name)
	}
	children, err := directory.Parse(data, chain, s.bpb, entry.FullPath+"/")
	if err != nil {
		return err
	}
	if !isEmptyDirListing(children) {
		return fserrors.State("%s is not empty.", name)
	}
	return s.removeEntry(idx, false)
}

func isEmptyDirListing(entries []*directory.Entry) bool {
	for _, e := range entries {
		if e.Name != "." && e.Name != ".." {
			return false
		}
	}
	return len(entries) <= 2
}

// Size returns name's file size in bytes; a directory name is an error, per
// spec.md §9's resolution of the open question.
func (s *Session) Size(name string) (uint32, error) {
	entry, _, err := s.findFile(name)
	if err != nil {
		return 0, err
	}
	return entry.Short.FileSize, nil
}

func (s *Session) existingShortNames() [][layout.ShortNameLen]byte {
	names := make([][layout.ShortNameLen]byte, 0, len(s.listing))
	for _, e := range s.listing {
		names = append(names, e.Short.Name)
	}
	return names
}
