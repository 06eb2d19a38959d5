// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakevault/kv"
	"github.com/vechain/stakevault/position"
	"github.com/vechain/stakevault/withdrawal"
)

var (
	positionsBucket   = kv.Bucket("p/")
	withdrawalsBucket = kv.Bucket("w/")
)

// record is everything stored for one principal.
type record struct {
	Position   position.Position
	Withdrawal *withdrawal.Request // latest request, nil if none
}

func (r record) clone() record {
	if r.Withdrawal != nil {
		w := *r.Withdrawal
		r.Withdrawal = &w
	}
	return r
}

// loadRecord reads the record of principal.
// It returns the empty position if nothing is stored.
func loadRecord(getter kv.Getter, principal string) (record, error) {
	rec := record{Position: position.New(principal)}
	key := []byte(principal)

	data, err := positionsBucket.NewGetter(getter).Get(key)
	switch {
	case err == nil:
		if err := rlp.DecodeBytes(data, &rec.Position); err != nil {
			return rec, errors.Wrapf(err, "decode position %q", principal)
		}
	case !getter.IsNotFound(err):
		return rec, errors.Wrapf(err, "get position %q", principal)
	}

	data, err = withdrawalsBucket.NewGetter(getter).Get(key)
	switch {
	case err == nil:
		var w withdrawal.Request
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return rec, errors.Wrapf(err, "decode withdrawal %q", principal)
		}
		rec.Withdrawal = &w
	case !getter.IsNotFound(err):
		return rec, errors.Wrapf(err, "get withdrawal %q", principal)
	}
	return rec, nil
}

// saveRecord writes the record into putter.
// An empty position is deleted instead.
func saveRecord(putter kv.Putter, rec record) error {
	key := []byte(rec.Position.Principal)

	positions := positionsBucket.NewPutter(putter)
	if rec.Position.IsEmpty() {
		if err := positions.Delete(key); err != nil {
			return err
		}
	} else {
		data, err := rlp.EncodeToBytes(&rec.Position)
		if err != nil {
			return errors.Wrap(err, "encode position")
		}
		if err := positions.Put(key, data); err != nil {
			return err
		}
	}

	if rec.Withdrawal == nil {
		return nil
	}
	data, err := rlp.EncodeToBytes(rec.Withdrawal)
	if err != nil {
		return errors.Wrap(err, "encode withdrawal")
	}
	return withdrawalsBucket.NewPutter(putter).Put(key, data)
}
