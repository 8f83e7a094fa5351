// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides logical bucket for kv store.
type Bucket string

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{
		bucketGetter: bucketGetter{b, src},
		bucketPutter: bucketPutter{b, src},
		src:          src,
	}
}

// Range returns the key range covering the whole bucket.
func (b Bucket) Range() Range {
	start := []byte(b)
	return Range{Start: start, Limit: prefixLimit(start)}
}

func (b Bucket) key(k []byte) []byte {
	return append([]byte(b), k...)
}

type bucketGetter struct {
	bucket Bucket
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.bucket.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.bucket.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error    { return p.src.Delete(p.bucket.key(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) IsNotFound(err error) bool { return s.src.IsNotFound(err) }

func (s *bucketStore) Snapshot() Snapshot {
	snap := s.src.Snapshot()
	return &bucketSnapshot{bucketGetter{s.bucketGetter.bucket, snap}, snap}
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.bucketPutter.bucket, bulk}, bulk}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.bucket
	start := b.key(r.Start)
	var limit []byte
	if len(r.Limit) > 0 {
		limit = b.key(r.Limit)
	} else {
		limit = prefixLimit([]byte(b))
	}
	return &bucketIterator{s.src.Iterate(Range{Start: start, Limit: limit}), len(b)}
}

func (s *bucketStore) Close() error { return s.src.Close() }

type bucketSnapshot struct {
	bucketGetter
	src Snapshot
}

func (s *bucketSnapshot) Release() { s.src.Release() }

type bucketBulk struct {
	bucketPutter
	src Bulk
}

func (b *bucketBulk) Len() int         { return b.src.Len() }
func (b *bucketBulk) EnableAutoFlush() { b.src.EnableAutoFlush() }
func (b *bucketBulk) Write() error     { return b.src.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}

// prefixLimit returns the smallest key greater than every key with the given prefix.
func prefixLimit(prefix []byte) []byte {
	limit := make([]byte, len(prefix))
	copy(limit, prefix)
	for i := len(limit) - 1; i >= 0; i-- {
		if limit[i] < 0xff {
			limit[i]++
			return limit[:i+1]
		}
	}
	return nil
}
