// Package image provides random-access byte I/O over an opened disk-image
// file. Production code opens a real file via afero.NewOsFs(); tests open a
// synthetic image built in memory via afero.NewMemMapFs() (the pattern
// aligator-GoFAT uses afero for). Both paths share this one implementation,
// since both satisfy the same small afero.File contract.
package image

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Image is a random-access byte reader/writer over a backing disk-image
// file: explicit seek-free ReadAt/WriteAt plus an explicit Flush, per
// spec.md §4.1.
type Image struct {
	file afero.File
	log  *logrus.Entry
}

// Open opens path read+write on fs. Opening a nonexistent or unreadable
// image returns a wrapped error: the CLI entrypoint prints it as an
// "error: ..." line and exits rather than starting a session with no image.
func Open(fs afero.Fs, path string) (*Image, error) {
	f, err := fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "image: open %q", path)
	}
	return &Image{
		file: f,
		log:  logrus.WithField("component", "image"),
	}, nil
}

// ReadAt reads exactly len bytes starting at offset.
func (img *Image) ReadAt(offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := img.file.ReadAt(buf, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "image: read %d bytes at %d", length, offset)
	}
	img.log.WithFields(logrus.Fields{"offset": offset, "length": n}).Debug("read")
	return buf[:n], nil
}

// WriteAt writes data at offset.
func (img *Image) WriteAt(offset int64, data []byte) error {
	n, err := img.file.WriteAt(data, offset)
	if err != nil {
		return errors.Wrapf(err, "image: write %d bytes at %d", len(data), offset)
	}
	img.log.WithFields(logrus.Fields{"offset": offset, "length": n}).Debug("write")
	return nil
}

// Flush forces any buffered writes to the backing store.
func (img *Image) Flush() error {
	if err := img.file.Sync(); err != nil {
		return errors.Wrap(err, "image: flush")
	}
	return nil
}

// Close releases the backing file.
func (img *Image) Close() error {
	return errors.Wrap(img.file.Close(), "image: close")
}
