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

// Package block implements the four ledger block variants of §4.1: a
// tagged sum type (Type + Block interface) replaces the visitor pattern the
// original implementation used over its block class hierarchy.
package block

import (
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Type tags a block variant on the wire and as a single byte prefix in
// standalone streams (§4.1, §6).
type Type byte

const (
	// TypeNotABlock terminates a bulk-pull response stream (§4.5, §6).
	TypeNotABlock Type = 0
	TypeOpen      Type = 1
	TypeSend      Type = 2
	TypeReceive   Type = 3
	TypeChange    Type = 4
)

func (t Type) String() string {
	switch t {
	case TypeOpen:
		return "open"
	case TypeSend:
		return "send"
	case TypeReceive:
		return "receive"
	case TypeChange:
		return "change"
	default:
		return "not_a_block"
	}
}

// Block is the common interface over the four variants. Per-variant logic
// elsewhere (process, rollback, serialize) switches on Type() rather than
// double-dispatching through a visitor.
type Block interface {
	Type() Type
	// Root is the "slot" this block occupies: previous for non-open
	// blocks, account for open blocks. Forks collide on Root.
	Root() raitypes.Hash
	// Hash is the BLAKE2b-256 digest over the block's hashable fields,
	// excluding signature and work.
	Hash() raitypes.Hash
	Signature() raitypes.Signature
	SetSignature(raitypes.Signature)
	Work() uint64
	SetWork(uint64)

	MarshalBinary() ([]byte, error)
}

// Open is the first block of an account's chain.
type Open struct {
	Source         raitypes.Hash
	Representative raitypes.Account
	Account        raitypes.Account
	Sig            raitypes.Signature
	WorkNonce      uint64

	hash *raitypes.Hash
}

func (b *Open) Type() Type                          { return TypeOpen }
func (b *Open) Root() raitypes.Hash                  { return raitypes.Hash(b.Account) }
func (b *Open) Signature() raitypes.Signature        { return b.Sig }
func (b *Open) SetSignature(s raitypes.Signature)    { b.Sig = s }
func (b *Open) Work() uint64                         { return b.WorkNonce }
func (b *Open) SetWork(w uint64)                     { b.WorkNonce = w }

func (b *Open) Hash() raitypes.Hash {
	if b.hash != nil {
		return *b.hash
	}
	h := hashFields(b.Source[:], b.Representative[:], b.Account[:])
	b.hash = &h
	return h
}

// Send forwards funds; Balance is the sender's new balance after the send.
type Send struct {
	Previous    raitypes.Hash
	Destination raitypes.Account
	Balance     raitypes.Amount
	Sig         raitypes.Signature
	WorkNonce   uint64

	hash *raitypes.Hash
}

func (b *Send) Type() Type                       { return TypeSend }
func (b *Send) Root() raitypes.Hash               { return b.Previous }
func (b *Send) Signature() raitypes.Signature     { return b.Sig }
func (b *Send) SetSignature(s raitypes.Signature) { b.Sig = s }
func (b *Send) Work() uint64                      { return b.WorkNonce }
func (b *Send) SetWork(w uint64)                  { b.WorkNonce = w }

func (b *Send) Hash() raitypes.Hash {
	if b.hash != nil {
		return *b.hash
	}
	bal := b.Balance.Bytes16()
	h := hashFields(b.Previous[:], b.Destination[:], bal[:])
	b.hash = &h
	return h
}

// Receive credits a pending send into the receiver's chain.
type Receive struct {
	Previous  raitypes.Hash
	Source    raitypes.Hash
	Sig       raitypes.Signature
	WorkNonce uint64

	hash *raitypes.Hash
}

func (b *Receive) Type() Type                       { return TypeReceive }
func (b *Receive) Root() raitypes.Hash               { return b.Previous }
func (b *Receive) Signature() raitypes.Signature     { return b.Sig }
func (b *Receive) SetSignature(s raitypes.Signature) { b.Sig = s }
func (b *Receive) Work() uint64                      { return b.WorkNonce }
func (b *Receive) SetWork(w uint64)                  { b.WorkNonce = w }

func (b *Receive) Hash() raitypes.Hash {
	if b.hash != nil {
		return *b.hash
	}
	h := hashFields(b.Previous[:], b.Source[:])
	b.hash = &h
	return h
}

// Change alters the account's chosen representative without moving funds.
type Change struct {
	Previous       raitypes.Hash
	Representative raitypes.Account
	Sig            raitypes.Signature
	WorkNonce      uint64

	hash *raitypes.Hash
}

func (b *Change) Type() Type                       { return TypeChange }
func (b *Change) Root() raitypes.Hash               { return b.Previous }
func (b *Change) Signature() raitypes.Signature     { return b.Sig }
func (b *Change) SetSignature(s raitypes.Signature) { b.Sig = s }
func (b *Change) Work() uint64                      { return b.WorkNonce }
func (b *Change) SetWork(w uint64)                  { b.WorkNonce = w }

func (b *Change) Hash() raitypes.Hash {
	if b.hash != nil {
		return *b.hash
	}
	h := hashFields(b.Previous[:], b.Representative[:])
	b.hash = &h
	return h
}

// Representative returns the representative named by an Open or Change
// block, and ok=false for Send/Receive (design note: keep back-references
// explicit rather than caching a derived relation).
func Representative(b Block) (raitypes.Account, bool) {
	switch t := b.(type) {
	case *Open:
		return t.Representative, true
	case *Change:
		return t.Representative, true
	default:
		return raitypes.Account{}, false
	}
}

// Previous returns the previous-block hash for non-open variants.
func Previous(b Block) (raitypes.Hash, bool) {
	switch t := b.(type) {
	case *Send:
		return t.Previous, true
	case *Receive:
		return t.Previous, true
	case *Change:
		return t.Previous, true
	default:
		return raitypes.Hash{}, false
	}
}

// Source returns the source-send hash for Open/Receive variants.
func Source(b Block) (raitypes.Hash, bool) {
	switch t := b.(type) {
	case *Open:
		return t.Source, true
	case *Receive:
		return t.Source, true
	default:
		return raitypes.Hash{}, false
	}
}
