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

package block

import (
	"github.com/raiprotocol/rai/internal/raitypes"
	"golang.org/x/crypto/blake2b"
)

// hashFields is the single BLAKE2b-256 digest routine every block variant's
// Hash() funnels through, over its type-specific hashable fields in
// declared order (§4.1: "not over the signature or the work").
func hashFields(parts ...[]byte) raitypes.Hash {
	h, _ := blake2b.New256(nil)
	for _, p := range parts {
		h.Write(p)
	}
	var out raitypes.Hash
	copy(out[:], h.Sum(nil))
	return out
}
