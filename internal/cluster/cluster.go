// Package cluster implements cluster↔sector arithmetic, whole-cluster I/O,
// cluster-chain walking, allocation and deallocation against the free-list,
// and zero-wiping, per spec.md §4.3.
package cluster

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/RinpoStk/fmod/internal/fat"
	"github.com/RinpoStk/fmod/internal/image"
	"github.com/RinpoStk/fmod/internal/layout"
)

// Layer bundles the image, BPB and FAT table needed to walk and mutate
// cluster chains.
type Layer struct {
	img *image.Image
	bpb *layout.BPB
	fat *fat.Table
	log *logrus.Entry
}

// New builds a cluster Layer over an already-open image and loaded FAT.
func New(img *image.Image, bpb *layout.BPB, table *fat.Table) *Layer {
	return &Layer{img: img, bpb: bpb, fat: table, log: logrus.WithField("component", "cluster")}
}

// walk follows the FAT from start until EOC, returning the visited cluster
// numbers in chain order. It tolerates encountering a FREE entry mid-walk
// (an interrupted prior deletion, per spec.md §4.3) by stopping there
// without including the FREE cluster.
func (l *Layer) walk(start uint32) []uint32 {
	if start == 0 {
		return nil
	}
	var chain []uint32
	c := start
	for {
		v := l.fat.Get(c)
		if l.fat.IsFree(v) {
			break
		}
		chain = append(chain, c)
		if l.fat.IsEOC(v) {
			break
		}
		c = v
	}
	return chain
}

// ReadChain follows the FAT from startCluster until EOC, reading each
// cluster in order into a contiguous buffer. startCluster == 0 means no
// data is allocated yet: the chain and buffer are both empty, which callers
// must handle explicitly rather than treat as an I/O failure.
func (l *Layer) ReadChain(startCluster uint32) ([]byte, []uint32, error) {
	chain := l.walk(startCluster)
	buf := make([]byte, 0, len(chain)*int(l.bpb.BytesPerCluster()))
	for _, c := range chain {
		data, err := l.img.ReadAt(l.bpb.ClusterOffset(c), int(l.bpb.BytesPerCluster()))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cluster: read cluster %d", c)
		}
		buf = append(buf, data...)
	}
	return buf, chain, nil
}

// WriteChain writes bytes sequentially, cluster by cluster, across chain.
// len(bytes) must equal len(chain) × bytesPerCluster.
func (l *Layer) WriteChain(data []byte, chain []uint32) error {
	bpc := int(l.bpb.BytesPerCluster())
	if len(data) != len(chain)*bpc {
		return errors.Errorf("cluster: writeChain length mismatch: got %d bytes for %d clusters of %d", len(data), len(chain), bpc)
	}
	for i, c := range chain {
		if err := l.img.WriteAt(l.bpb.ClusterOffset(c), data[i*bpc:(i+1)*bpc]); err != nil {
			return errors.Wrapf(err, "cluster: write cluster %d", c)
		}
	}
	return nil
}

// Allocate extends chain by amount clusters, updating the FAT in memory,
// flushing all FAT mirrors and FSInfo, then zero-wiping strictly the newly
// added clusters and flushing the image (spec.md §4.3 and the correction
// noted in spec.md §9: only the newly appended clusters are zeroed, not the
// sentinel slot of a previously-empty chain).
//
// If chain is empty (the file had no data yet), the first popped cluster
// replaces the empty chain and only amount-1 further clusters are linked.
func (l *Layer) Allocate(amount uint32, chain []uint32) (newChain []uint32, err error) {
	newChain = append([]uint32(nil), chain...)
	added := 0

	if len(newChain) == 0 {
		c, err := l.fat.PopFree()
		if err != nil {
			return nil, err
		}
		l.fat.Set(c, layout.FATEOCMin)
		newChain = append(newChain, c)
		added++
		amount--
	}

	for i := uint32(0); i < amount; i++ {
		tail := newChain[len(newChain)-1]
		next, err := l.fat.PopFree()
		if err != nil {
			return nil, err
		}
		l.fat.Set(tail, next)
		l.fat.Set(next, layout.FATEOCMin)
		newChain = append(newChain, next)
		added++
	}

	if err := l.fat.FlushAll(); err != nil {
		return nil, err
	}

	bpc := int(l.bpb.BytesPerCluster())
	zero := make([]byte, bpc)
	for _, c := range newChain[len(newChain)-added:] {
		if err := l.img.WriteAt(l.bpb.ClusterOffset(c), zero); err != nil {
			return nil, errors.Wrapf(err, "cluster: zero-wipe new cluster %d", c)
		}
	}
	if err := l.img.Flush(); err != nil {
		return nil, err
	}
	l.log.WithFields(logrus.Fields{"added": added, "chainLen": len(newChain)}).Debug("allocated clusters")
	return newChain, nil
}

// FreeChain walks the chain from startCluster, setting each FAT entry to
// FREE (preserving the reserved high bits) and pushing each cluster back
// onto the free-list in reverse walk order. It tolerates chains that
// already contain a FREE entry mid-walk (an interrupted prior deletion) and
// does not flush — callers sequence the FAT/FSInfo flush explicitly per
// spec.md §5's ordering guarantees.
func (l *Layer) FreeChain(startCluster uint32) {
	chain := l.walk(startCluster)
	for _, c := range chain {
		l.fat.Set(c, layout.FATFree)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		l.fat.PushFree(chain[i])
	}
}

// ZeroOutChain walks the chain from startCluster and overwrites every byte
// with 0, without touching the FAT.
func (l *Layer) ZeroOutChain(startCluster uint32) error {
	chain := l.walk(startCluster)
	bpc := int(l.bpb.BytesPerCluster())
	zero := make([]byte, bpc)
	for _, c := range chain {
		if err := l.img.WriteAt(l.bpb.ClusterOffset(c), zero); err != nil {
			return errors.Wrapf(err, "cluster: zero-wipe cluster %d", c)
		}
	}
	return nil
}

// FlushFAT flushes FAT mirrors and FSInfo without any cluster I/O; used by
// the directory layer after FreeChain to satisfy the remove-path ordering
// guarantee independently of Allocate's own internal flush.
func (l *Layer) FlushFAT() error {
	return l.fat.FlushAll()
}

// BytesPerCluster exposes the BPB-derived cluster size for callers sizing
// resize operations.
func (l *Layer) BytesPerCluster() uint32 {
	return l.bpb.BytesPerCluster()
}

// FreeCount exposes the current free-list length.
func (l *Layer) FreeCount() int {
	return l.fat.FreeCount()
}
