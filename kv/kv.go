// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value store used to persist positions.
package kv

import (
	"io"

	"github.com/syndtr/goleveldb/leveldb/util"
)

type Getter interface {
	// Get fails when the key is absent. Check the error with IsNotFound.
	Get(key []byte) ([]byte, error)
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Pair is the entry under an iterator. It is only valid inside the callback.
type Pair interface {
	Key() []byte
	Value() []byte
}

// Store reads and writes single keys, commits batches and scans ranges.
type Store interface {
	Getter
	Putter

	// Batch collects the writes made by fn and commits them together.
	// Nothing is written if fn fails.
	Batch(fn func(Putter) error) error
	// Iterate visits the pairs in r in key order until fn returns false.
	Iterate(r Range, fn func(Pair) bool) error
}

type StoreCloser interface {
	Store
	io.Closer
}

// Range is the key range [From, To). An empty To leaves it unbounded.
type Range struct {
	From []byte
	To   []byte
}

// PrefixRange returns the range of keys starting with prefix.
func PrefixRange(prefix []byte) Range {
	r := util.BytesPrefix(prefix)
	return Range{r.Start, r.Limit}
}
