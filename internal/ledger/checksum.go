// Copyright 2026 The Rai Authors
// This file is part of Rai.
//
// Rai is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rai is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Rai. If not, see <http://www.gnu.org/licenses/>.

package ledger

import (
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// ChecksumGet reads the running XOR checksum over every block hash ever
// inserted or deleted (§3) — a cheap whole-ledger integrity digest used to
// detect divergence against a peer before falling back to a full
// frontier-req comparison.
func ChecksumGet(tx kv.RoTx) (raitypes.Hash, error) {
	b, ok, err := tx.Get(kv.Checksum, []byte(checksumFixedKey))
	if err != nil || !ok {
		return raitypes.Hash{}, err
	}
	h, err := raitypes.HashFromBytes(b)
	return h, err
}

// ChecksumXOR folds hash into the running checksum. Called from every
// PutBlock/DeleteBlock so insert and delete are symmetric: XOR is its own
// inverse, so deleting a block removes exactly the contribution it added.
func ChecksumXOR(tx kv.RwTx, hash raitypes.Hash) error {
	cur, err := ChecksumGet(tx)
	if err != nil {
		return err
	}
	var next raitypes.Hash
	for i := range next {
		next[i] = cur[i] ^ hash[i]
	}
	return tx.Put(kv.Checksum, []byte(checksumFixedKey), next[:])
}
