// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// func adapters, to compose stores from closures.

type (
	GetFunc        func(key []byte) ([]byte, error)
	IsNotFoundFunc func(err error) bool
	PutFunc        func(key, val []byte) error
	DeleteFunc     func(key []byte) error
	BatchFunc      func(fn func(Putter) error) error
	IterateFunc    func(r Range, fn func(Pair) bool) error
)

func (f GetFunc) Get(key []byte) ([]byte, error)                { return f(key) }
func (f IsNotFoundFunc) IsNotFound(err error) bool              { return f(err) }
func (f PutFunc) Put(key, val []byte) error                     { return f(key, val) }
func (f DeleteFunc) Delete(key []byte) error                    { return f(key) }
func (f BatchFunc) Batch(fn func(Putter) error) error           { return f(fn) }
func (f IterateFunc) Iterate(r Range, fn func(Pair) bool) error { return f(r, fn) }
