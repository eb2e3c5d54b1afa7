// Copyright 2024 The Erigon Authors
// (original work)
// Copyright 2026 The Rai Authors
// (modifications)
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

// Package raitypes holds the fixed-width value types shared by every layer
// of the node: accounts, block/content hashes, signatures and balances.
package raitypes

import (
	"encoding/hex"
	"errors"

	"github.com/holiman/uint256"
)

const (
	// HashLength is the size in bytes of a block hash (BLAKE2b-256).
	HashLength = 32
	// AccountLength is the size in bytes of an account public key (Ed25519).
	AccountLength = 32
	// SignatureLength is the size in bytes of an Ed25519 signature.
	SignatureLength = 64
)

// Hash is a 256-bit block hash, or more generally a BLAKE2b-256 digest.
type Hash [HashLength]byte

// IsZero reports whether h is the all-zero sentinel hash used to mark
// "no previous"/"no source".
func (h Hash) IsZero() bool { return h == Hash{} }

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func HashFromBytes(b []byte) (h Hash, err error) {
	if len(b) != HashLength {
		return h, errors.New("raitypes: wrong hash length")
	}
	copy(h[:], b)
	return h, nil
}

// Account is an Ed25519 public key that also names the chain it owns.
type Account [AccountLength]byte

func (a Account) Bytes() []byte { return a[:] }

func (a Account) IsZero() bool { return a == Account{} }

func AccountFromBytes(b []byte) (a Account, err error) {
	if len(b) != AccountLength {
		return a, errors.New("raitypes: wrong account length")
	}
	copy(a[:], b)
	return a, nil
}

// Signature is a raw Ed25519 signature.
type Signature [SignatureLength]byte

func (s Signature) Bytes() []byte { return s[:] }

// Amount is a non-negative balance or representative weight. The ledger's
// total supply (2**128 - 1) fits comfortably in a uint256, so we reuse the
// 256-bit integer type for 128-bit domain values rather than hand-rolling
// a second bignum type; AmountFromBig, Add and MulFloor enforce the 128-bit
// ceiling.
type Amount struct {
	v uint256.Int
}

// MaxAmount is 2**128 - 1, the genesis total supply and the ceiling every
// Amount must respect.
var MaxAmount = func() uint256.Int {
	var max uint256.Int
	max.SetAllOne()
	max.Rsh(&max, 128)
	// max is now 2**128 - 1 after clearing the high 128 bits that SetAllOne set.
	return max
}()

func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

func AmountFromBig(b []byte) (Amount, error) {
	var a Amount
	a.v.SetBytes(b)
	if a.v.Gt(&MaxAmount) {
		return Amount{}, errors.New("raitypes: amount exceeds 128-bit domain ceiling")
	}
	return a, nil
}

func (a Amount) Uint256() *uint256.Int { return new(uint256.Int).Set(&a.v) }

func (a Amount) Bytes16() [16]byte {
	var out [16]byte
	b := a.v.Bytes()
	copy(out[16-len(b):], b)
	return out
}

func AmountFromBytes16(b [16]byte) Amount {
	var a Amount
	a.v.SetBytes(b[:])
	return a
}

// Sub returns a-b and reports underflow (a < b) instead of wrapping, matching
// the teacher's SafeAdd/SafeMul convention in erigon-lib/common/math.
func (a Amount) Sub(b Amount) (Amount, bool) {
	if a.v.Lt(&b.v) {
		return Amount{}, true
	}
	var out Amount
	out.v.Sub(&a.v, &b.v)
	return out, false
}

func (a Amount) Add(b Amount) (Amount, bool) {
	var out Amount
	overflow := out.v.AddOverflow(&a.v, &b.v)
	if overflow || out.v.Gt(&MaxAmount) {
		return Amount{}, true
	}
	return out, false
}

func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

func (a Amount) IsZero() bool { return a.v.IsZero() }

func (a Amount) String() string { return a.v.Dec() }

// MaxAmountValue wraps the package's 128-bit ceiling as an Amount, for
// callers (e.g. total-supply-relative thresholds) that need it in that form.
func MaxAmountValue() Amount {
	var a Amount
	a.v.Set(&MaxAmount)
	return a
}

// MulFloor returns a*b, reporting overflow past the 128-bit ceiling instead
// of wrapping (used for integer-fraction thresholds like 15/16 of supply).
func (a Amount) MulFloor(b Amount) (Amount, bool) {
	var out Amount
	overflow := out.v.MulOverflow(&a.v, &b.v)
	if overflow || out.v.Gt(&MaxAmount) {
		return Amount{}, true
	}
	return out, false
}

// DivFloor returns a/b truncated toward zero; dividing by zero reports an
// error via the bool rather than panicking.
func (a Amount) DivFloor(b Amount) (Amount, bool) {
	if b.v.IsZero() {
		return Amount{}, true
	}
	var out Amount
	out.v.Div(&a.v, &b.v)
	return out, false
}
