// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "sync"

// Bucket namespaces a store: every key is prefixed with the bucket name.
type Bucket string

var keyBufPool = sync.Pool{
	New: func() any { return new([]byte) },
}

// key calls fn with the prefixed key. The slice is reused after fn returns.
func (b Bucket) key(key []byte, fn func(k []byte)) {
	buf := keyBufPool.Get().(*[]byte)
	defer keyBufPool.Put(buf)

	*buf = append(append((*buf)[:0], b...), key...)
	fn(*buf)
}

func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		IsNotFoundFunc
	}{
		func(key []byte) (val []byte, err error) {
			b.key(key, func(k []byte) { val, err = src.Get(k) })
			return
		},
		src.IsNotFound,
	}
}

func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) (err error) {
			b.key(key, func(k []byte) { err = src.Put(k, val) })
			return
		},
		func(key []byte) (err error) {
			b.key(key, func(k []byte) { err = src.Delete(k) })
			return
		},
	}
}

// NewStore wraps src. Iterated keys come back without the bucket prefix.
func (b Bucket) NewStore(src Store) Store {
	return &struct {
		Getter
		Putter
		BatchFunc
		IterateFunc
	}{
		b.NewGetter(src),
		b.NewPutter(src),
		func(fn func(Putter) error) error {
			return src.Batch(func(p Putter) error {
				return fn(b.NewPutter(p))
			})
		},
		func(r Range, fn func(Pair) bool) error {
			return src.Iterate(b.scope(r), func(p Pair) bool {
				return fn(strippedPair{p, len(b)})
			})
		},
	}
}

// scope moves r into the bucket key space.
func (b Bucket) scope(r Range) Range {
	scoped := Range{From: append([]byte(b), r.From...)}
	if len(r.To) == 0 {
		scoped.To = PrefixRange([]byte(b)).To
	} else {
		scoped.To = append([]byte(b), r.To...)
	}
	return scoped
}

type strippedPair struct {
	Pair
	n int
}

func (p strippedPair) Key() []byte { return p.Pair.Key()[p.n:] }
