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
	"crypto/ed25519"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// Sign signs the block's hash with priv and installs the signature.
func Sign(b Block, priv ed25519.PrivateKey) {
	h := b.Hash()
	sig := ed25519.Sign(priv, h[:])
	var s raitypes.Signature
	copy(s[:], sig)
	b.SetSignature(s)
}

// Verify checks b's signature against signingAccount, the account that
// actually owns the chain this block extends (§4.1: the caller resolves
// that account — for Open it's the account field, for the others it's
// account(previous), looked up in the store).
func Verify(b Block, signingAccount raitypes.Account) bool {
	h := b.Hash()
	sig := b.Signature()
	return ed25519.Verify(ed25519.PublicKey(signingAccount[:]), h[:], sig[:])
}
