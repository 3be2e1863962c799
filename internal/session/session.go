// Package session holds the "current working directory" and open-file
// state that spec.md's design notes require lifting out of any
// process-wide global, and exposes the public command surface (§4.8) atop
// the image/layout/fat/cluster/directory layers.
package session

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/RinpoStk/fmod/internal/cluster"
	"github.com/RinpoStk/fmod/internal/directory"
	"github.com/RinpoStk/fmod/internal/fat"
	"github.com/RinpoStk/fmod/internal/fserrors"
	"github.com/RinpoStk/fmod/internal/image"
	"github.com/RinpoStk/fmod/internal/layout"
)

// OpenMode is an open file's access mode, per spec.md §4.9.
type OpenMode int

const (
	ModeRead      OpenMode = 1
	ModeWrite     OpenMode = 2
	ModeReadWrite OpenMode = 3
)

// ParseOpenMode maps the shell's "r"/"w"/"rw" tokens to an OpenMode.
func ParseOpenMode(s string) (OpenMode, error) {
	switch s {
	case "r":
		return ModeRead, nil
	case "w":
		return ModeWrite, nil
	case "rw":
		return ModeReadWrite, nil
	default:
		return 0, fserrors.Usage("mode must be one of r, w, rw")
	}
}

// CanRead/CanWrite report whether a mode permits a read or a write.
func (m OpenMode) CanRead() bool  { return m == ModeRead || m == ModeReadWrite }
func (m OpenMode) CanWrite() bool { return m == ModeWrite || m == ModeReadWrite }

// Session is one open image and its current navigation/open-file state.
// There is exactly one Session per running shell, owning the image for the
// lifetime of the process — spec.md's concurrency model is single-session,
// single-threaded.
type Session struct {
	img    *image.Image
	bpb    *layout.BPB
	fsInfo *layout.FSInfo
	fat    *fat.Table
	cl     *cluster.Layer

	currentCluster uint32
	path           []string
	listing        []*directory.Entry

	openFiles map[string]OpenMode

	log *logrus.Entry
}

// Open opens the image at path on fs, parses its BPB/FSInfo, loads the FAT,
// and positions the session at the root directory.
func Open(fs afero.Fs, path string) (*Session, error) {
	img, err := image.Open(fs, path)
	if err != nil {
		return nil, err
	}

	bpbSector, err := img.ReadAt(0, layout.BPBSize)
	if err != nil {
		return nil, err
	}
	bpb, err := layout.DecodeBPB(bpbSector)
	if err != nil {
		return nil, err
	}

	fsInfoSector, err := img.ReadAt(bpb.FSInfoOffset(), layout.FSInfoSize)
	if err != nil {
		return nil, err
	}
	fsInfo, err := layout.DecodeFSInfo(fsInfoSector)
	if err != nil {
		return nil, err
	}

	table, err := fat.Load(img, bpb, fsInfo)
	if err != nil {
		return nil, err
	}

	s := &Session{
		img:            img,
		bpb:            bpb,
		fsInfo:         fsInfo,
		fat:            table,
		cl:             cluster.New(img, bpb, table),
		currentCluster: bpb.RootCluster,
		openFiles:      make(map[string]OpenMode),
		log:            logrus.WithField("component", "session"),
	}
	if err := s.refreshListing(); err != nil {
		return nil, err
	}
	return s, nil
}

// CloseImage releases the backing image.
func (s *Session) CloseImage() error {
	return s.img.Close()
}

// currentPathPrefix renders the path stack with a trailing separator, e.g.
// "a/b/", so directory.Entry.FullPath concatenation is a plain string join.
func (s *Session) currentPathPrefix() string {
	if len(s.path) == 0 {
		return ""
	}
	return strings.Join(s.path, "/") + "/"
}

// Pwd renders the current directory path, bracketed with leading and
// trailing separators, matching the shell prompt's rendering (spec.md §6 /
// SPEC_FULL.md §7's supplemented pwd command).
func (s *Session) Pwd() string {
	return "/" + s.currentPathPrefix()
}

func (s *Session) refreshListing() error {
	data, chain, err := s.cl.ReadChain(s.currentCluster)
	if err != nil {
		return err
	}
	if s.currentCluster != 0 && len(chain) == 0 {
		return fserrors.Fatal("directory at cluster %d has an empty cluster chain", s.currentCluster)
	}
	entries, err := directory.Parse(data, chain, s.bpb, s.currentPathPrefix())
	if err != nil {
		return err
	}
	s.listing = entries
	return nil
}

// findEntry is the shared name-lookup helper behind findFile/findDirectory,
// per spec.md §4.8: names containing '/' are rejected, and the scan is a
// case-sensitive linear walk of the current listing.
func (s *Session) findEntry(name string) (*directory.Entry, int, error) {
	if strings.Contains(name, "/") {
		return nil, -1, fserrors.Name("%q must not contain '/'", name)
	}
	for i, e := range s.listing {
		if e.Name == name {
			return e, i, nil
		}
	}
	return nil, -1, fserrors.NotFound("%s not found.", name)
}

func (s *Session) findFile(name string) (*directory.Entry, int, error) {
	e, i, err := s.findEntry(name)
	if err != nil {
		return nil, -1, err
	}
	if !e.IsRegularFile() {
		return nil, -1, fserrors.TypeMismatch("%s is a directory.", name)
	}
	return e, i, nil
}

func (s *Session) findDirectory(name string) (*directory.Entry, int, error) {
	e, i, err := s.findEntry(name)
	if err != nil {
		return nil, -1, err
	}
	if !e.IsDirectory() {
		return nil, -1, fserrors.TypeMismatch("%s is not a directory.", name)
	}
	return e, i, nil
}
