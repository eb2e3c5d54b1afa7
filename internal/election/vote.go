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

// Package election implements §4.4: per-root elections over conflicting
// block candidates, settled by representative-weighted vote tallying.
package election

import (
	"crypto/ed25519"
	"errors"

	"github.com/raiprotocol/rai/internal/raitypes"
	"golang.org/x/crypto/blake2b"
)

// Vote is a representative's signed endorsement of a candidate block for a
// given root. Sequence must strictly increase per representative so a
// replayed old vote can never supersede a newer one.
type Vote struct {
	Representative raitypes.Account
	Sequence       uint64
	BlockHash      raitypes.Hash
	Signature      raitypes.Signature
}

// SigningHash is what the representative actually signs: BLAKE2b-256 of
// block hash followed by sequence, matching the convention block signing
// uses (hash first, sign the digest) rather than signing raw fields.
func (v Vote) SigningHash() raitypes.Hash {
	var seqBytes [8]byte
	for i := 0; i < 8; i++ {
		seqBytes[i] = byte(v.Sequence >> (8 * i))
	}
	h, _ := blake2b.New256(nil)
	h.Write(v.BlockHash[:])
	h.Write(seqBytes[:])
	var out raitypes.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ErrInvalidSignature means the representative named in the vote did not
// actually produce it.
var ErrInvalidSignature = errors.New("election: vote signature does not match representative")

// ErrStaleSequence distinguishes a replayed/out-of-order vote from a
// legitimate new one, mirroring the original implementation's distinction
// between a vote that advances a representative's tally and one that is
// simply a late duplicate of an earlier message.
var ErrStaleSequence = errors.New("election: vote sequence is not newer than the representative's last vote")

// Verify checks v's signature and, if known is set (lastSeq is then the
// representative's previously recorded sequence number), rejects any
// sequence not strictly greater than lastSeq.
func Verify(v Vote, lastSeq uint64, known bool) error {
	h := v.SigningHash()
	if !ed25519.Verify(ed25519.PublicKey(v.Representative[:]), h[:], v.Signature[:]) {
		return ErrInvalidSignature
	}
	if known && v.Sequence <= lastSeq {
		return ErrStaleSequence
	}
	return nil
}

// Sign produces a Vote for candidate, signed by priv.
func Sign(rep raitypes.Account, priv ed25519.PrivateKey, sequence uint64, candidate raitypes.Hash) Vote {
	v := Vote{Representative: rep, Sequence: sequence, BlockHash: candidate}
	h := v.SigningHash()
	sig := ed25519.Sign(priv, h[:])
	copy(v.Signature[:], sig)
	return v
}
