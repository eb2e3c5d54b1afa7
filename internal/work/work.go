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

// Package work implements only the verification side of the proof-of-work
// anti-spam contract (§1: "specified only by its verification contract").
// Work generation is out of scope and lives in the wallet, not the node.
package work

import (
	"encoding/binary"

	"github.com/raiprotocol/rai/internal/raitypes"
	"golang.org/x/crypto/blake2b"
)

// Validate reports whether nonce is valid proof of work for root: the
// little-endian uint64 read from BLAKE2b(nonce || root) must exceed
// threshold.
func Validate(root raitypes.Hash, nonce uint64, threshold uint64) bool {
	return Digest(root, nonce) > threshold
}

// Digest computes the raw BLAKE2b(nonce || root) work digest as a
// little-endian uint64, the quantity Validate compares against threshold.
func Digest(root raitypes.Hash, nonce uint64) uint64 {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)

	h, _ := blake2b.New(8, nil)
	h.Write(nonceBytes[:])
	h.Write(root[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
