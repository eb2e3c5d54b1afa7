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

// Package ledger implements §4.2 (the account-indexed store built on top of
// internal/kv) and §4.3 (the validator that applies and rolls back blocks
// against it).
package ledger

import (
	"encoding/binary"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// AccountState is the per-account record of §3: head, rep_block,
// open_block, balance, modified_timestamp, block_count.
type AccountState struct {
	Head              raitypes.Hash
	OpenBlock         raitypes.Hash
	RepBlock          raitypes.Hash
	Balance           raitypes.Amount
	ModifiedTimestamp uint64
	BlockCount        uint64
}

const accountStateSize = 32 + 32 + 32 + 16 + 8 + 8

func (s AccountState) encode() []byte {
	out := make([]byte, accountStateSize)
	off := 0
	off += copy(out[off:], s.Head[:])
	off += copy(out[off:], s.OpenBlock[:])
	off += copy(out[off:], s.RepBlock[:])
	bal := s.Balance.Bytes16()
	off += copy(out[off:], bal[:])
	binary.LittleEndian.PutUint64(out[off:], s.ModifiedTimestamp)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], s.BlockCount)
	return out
}

func decodeAccountState(b []byte) (AccountState, bool) {
	if len(b) != accountStateSize {
		return AccountState{}, false
	}
	var s AccountState
	off := 0
	copy(s.Head[:], b[off:off+32])
	off += 32
	copy(s.OpenBlock[:], b[off:off+32])
	off += 32
	copy(s.RepBlock[:], b[off:off+32])
	off += 32
	var bal [16]byte
	copy(bal[:], b[off:off+16])
	off += 16
	s.Balance = raitypes.AmountFromBytes16(bal)
	s.ModifiedTimestamp = binary.LittleEndian.Uint64(b[off:])
	off += 8
	s.BlockCount = binary.LittleEndian.Uint64(b[off:])
	return s, true
}

// pendingKey is (destination_account, send_hash), §3.
func pendingKey(destination raitypes.Account, sendHash raitypes.Hash) []byte {
	k := make([]byte, 64)
	copy(k[:32], destination[:])
	copy(k[32:], sendHash[:])
	return k
}

// PendingValue is (source_account, amount).
type PendingValue struct {
	Source raitypes.Account
	Amount raitypes.Amount
}

func (v PendingValue) encode() []byte {
	out := make([]byte, 48)
	copy(out[:32], v.Source[:])
	amt := v.Amount.Bytes16()
	copy(out[32:], amt[:])
	return out
}

func decodePendingValue(b []byte) (PendingValue, bool) {
	if len(b) != 48 {
		return PendingValue{}, false
	}
	var v PendingValue
	copy(v.Source[:], b[:32])
	var amt [16]byte
	copy(amt[:], b[32:])
	v.Amount = raitypes.AmountFromBytes16(amt)
	return v, true
}

// Block record keys live in the "blocks" sub-space under two disjoint
// prefixes: 0x00+hash for the block body itself, 0x01+root for the
// root->successor index that answers block_successor and doubles as the
// fork-detection check ("is previous already filled").
func blockRecordKey(hash raitypes.Hash) []byte {
	k := make([]byte, 33)
	k[0] = 0x00
	copy(k[1:], hash[:])
	return k
}

func rootIndexKey(root raitypes.Hash) []byte {
	k := make([]byte, 33)
	k[0] = 0x01
	copy(k[1:], root[:])
	return k
}

const checksumFixedKey = "\x00\x00\x00\x00\x00\x00\x00\x00" // prefix (0,0), §4.2

func uncheckedKey(dependency, blockHash raitypes.Hash) []byte {
	k := make([]byte, 64)
	copy(k[:32], dependency[:])
	copy(k[32:], blockHash[:])
	return k
}

// consumedKey indexes which block consumed a given send's pending entry,
// so a cascading rollback (§4.3) can find the dependent receive/open
// without scanning every account. It lives in the "pending" sub-space next
// to the (destination, send_hash) pending keys. A pending key may also start
// with 0xFF (an account's first byte can be anything), so the two are told
// apart by length: consumed keys are 33 bytes, pending keys are 64 bytes.
func consumedKey(sendHash raitypes.Hash) []byte {
	k := make([]byte, 33)
	k[0] = 0xFF
	copy(k[1:], sendHash[:])
	return k
}

// ConsumedBy records the account and block that consumed a pending send,
// and the amount that was pending — kept redundant with the (deleted)
// pending entry so rollback of the consuming receive/open doesn't need to
// re-derive the amount from the chain.
type ConsumedBy struct {
	Account   raitypes.Account
	BlockHash raitypes.Hash
	Amount    raitypes.Amount
}

func (c ConsumedBy) encode() []byte {
	out := make([]byte, 32+32+16)
	copy(out[:32], c.Account[:])
	copy(out[32:64], c.BlockHash[:])
	amt := c.Amount.Bytes16()
	copy(out[64:], amt[:])
	return out
}

func decodeConsumedBy(b []byte) (ConsumedBy, bool) {
	if len(b) != 32+32+16 {
		return ConsumedBy{}, false
	}
	var c ConsumedBy
	copy(c.Account[:], b[:32])
	copy(c.BlockHash[:], b[32:64])
	var amt [16]byte
	copy(amt[:], b[64:])
	c.Amount = raitypes.AmountFromBytes16(amt)
	return c, true
}
