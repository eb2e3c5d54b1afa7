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
	"bytes"
	"fmt"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// GetAccount reads an account's state (§3); ok=false means the account has
// no head block yet.
func GetAccount(tx kv.RoTx, acct raitypes.Account) (AccountState, bool, error) {
	b, ok, err := tx.Get(kv.Accounts, acct[:])
	if err != nil || !ok {
		return AccountState{}, false, err
	}
	st, ok := decodeAccountState(b)
	if !ok {
		return AccountState{}, false, fmt.Errorf("ledger: corrupt account record for %x", acct[:])
	}
	return st, true, nil
}

func PutAccount(tx kv.RwTx, acct raitypes.Account, st AccountState) error {
	return tx.Put(kv.Accounts, acct[:], st.encode())
}

func DeleteAccount(tx kv.RwTx, acct raitypes.Account) error {
	return tx.Delete(kv.Accounts, acct[:])
}

// IterateAccounts walks the accounts sub-space in ascending account order
// starting at start, calling fn for each. fn returns cont=false to stop
// early. Used by the frontier-req server (§4.5) to stream frontiers in the
// order the protocol requires.
func IterateAccounts(tx kv.RoTx, start raitypes.Account, fn func(acct raitypes.Account, st AccountState) (cont bool, err error)) error {
	cursor, err := tx.Cursor(kv.Accounts)
	if err != nil {
		return err
	}
	defer cursor.Close()

	k, v, err := cursor.Seek(start[:])
	for ; k != nil && err == nil; k, v, err = cursor.Next() {
		acct, aerr := raitypes.AccountFromBytes(k)
		if aerr != nil {
			continue
		}
		st, ok := decodeAccountState(v)
		if !ok {
			return fmt.Errorf("ledger: corrupt account record for %x", k)
		}
		cont, ferr := fn(acct, st)
		if ferr != nil {
			return ferr
		}
		if !cont {
			return nil
		}
	}
	return err
}

// AccountOf resolves the account that owns the block hashed h, via the
// frontiers reverse index (§3: "Implicit back-references... are all stored
// explicitly").
func AccountOf(tx kv.RoTx, h raitypes.Hash) (raitypes.Account, bool, error) {
	b, ok, err := tx.Get(kv.Frontiers, h[:])
	if err != nil || !ok {
		return raitypes.Account{}, false, err
	}
	acct, err := raitypes.AccountFromBytes(b)
	if err != nil {
		return raitypes.Account{}, false, err
	}
	return acct, true, nil
}

// HasBlock reports whether hash is already present in the store (the "old"
// check every Process variant performs first).
func HasBlock(tx kv.RoTx, hash raitypes.Hash) (bool, error) {
	return tx.Has(kv.Blocks, blockRecordKey(hash))
}

// GetBlock decodes the stored block and its type tag.
func GetBlock(tx kv.RoTx, hash raitypes.Hash) (block.Block, bool, error) {
	b, ok, err := tx.Get(kv.Blocks, blockRecordKey(hash))
	if err != nil || !ok {
		return nil, false, err
	}
	if len(b) < 1 {
		return nil, false, fmt.Errorf("ledger: corrupt block record for %x", hash[:])
	}
	r := bytes.NewReader(b[1:])
	blk, err := block.Deserialize(r, block.Type(b[0]))
	if err != nil {
		return nil, false, fmt.Errorf("ledger: corrupt block record for %x: %w", hash[:], err)
	}
	return blk, true, nil
}

// PutBlock inserts blk, owned by acct, updates the root->successor index,
// the hash->account reverse index, and folds the hash into the running
// checksum (§4.2: "updated on every block insert/delete").
func PutBlock(tx kv.RwTx, blk block.Block, acct raitypes.Account) error {
	body, err := blk.MarshalBinary()
	if err != nil {
		return err
	}
	rec := append([]byte{byte(blk.Type())}, body...)
	hash := blk.Hash()
	if err := tx.Put(kv.Blocks, blockRecordKey(hash), rec); err != nil {
		return err
	}
	if err := tx.Put(kv.Blocks, rootIndexKey(blk.Root()), hash[:]); err != nil {
		return err
	}
	if err := tx.Put(kv.Frontiers, hash[:], acct[:]); err != nil {
		return err
	}
	return ChecksumXOR(tx, hash)
}

// DeleteBlock removes blk entirely: its body, its root index entry, its
// reverse-index entry, and folds its hash back out of the checksum (XOR is
// its own inverse).
func DeleteBlock(tx kv.RwTx, blk block.Block) error {
	hash := blk.Hash()
	if err := tx.Delete(kv.Blocks, blockRecordKey(hash)); err != nil {
		return err
	}
	if err := tx.Delete(kv.Blocks, rootIndexKey(blk.Root())); err != nil {
		return err
	}
	if err := tx.Delete(kv.Frontiers, hash[:]); err != nil {
		return err
	}
	return ChecksumXOR(tx, hash)
}

// BlockSuccessor answers "what block followed this one on its chain?": the
// block whose Root() equals hash, i.e. the entry at root index hash.
func BlockSuccessor(tx kv.RoTx, hash raitypes.Hash) (raitypes.Hash, bool, error) {
	b, ok, err := tx.Get(kv.Blocks, rootIndexKey(hash))
	if err != nil || !ok {
		return raitypes.Hash{}, false, err
	}
	succ, err := raitypes.HashFromBytes(b)
	return succ, err == nil, err
}

// RootOccupied reports whether some block already fills root (I1: at most
// one successor per root) — this is exactly the fork check.
func RootOccupied(tx kv.RoTx, root raitypes.Hash) (raitypes.Hash, bool, error) {
	return BlockSuccessor(tx, root)
}

func GetPending(tx kv.RoTx, destination raitypes.Account, sendHash raitypes.Hash) (PendingValue, bool, error) {
	b, ok, err := tx.Get(kv.Pending, pendingKey(destination, sendHash))
	if err != nil || !ok {
		return PendingValue{}, false, err
	}
	v, ok := decodePendingValue(b)
	if !ok {
		return PendingValue{}, false, fmt.Errorf("ledger: corrupt pending record")
	}
	return v, true, nil
}

func PutPending(tx kv.RwTx, destination raitypes.Account, sendHash raitypes.Hash, v PendingValue) error {
	return tx.Put(kv.Pending, pendingKey(destination, sendHash), v.encode())
}

func DeletePending(tx kv.RwTx, destination raitypes.Account, sendHash raitypes.Hash) error {
	return tx.Delete(kv.Pending, pendingKey(destination, sendHash))
}

// GetWeight reads a representative's current voting weight (zero if never
// set, which is a valid starting state, not an error).
func GetWeight(tx kv.RoTx, rep raitypes.Account) (raitypes.Amount, error) {
	b, ok, err := tx.Get(kv.Representation, rep[:])
	if err != nil {
		return raitypes.Amount{}, err
	}
	if !ok {
		return raitypes.Amount{}, nil
	}
	var a [16]byte
	if len(b) != 16 {
		return raitypes.Amount{}, fmt.Errorf("ledger: corrupt weight record for %x", rep[:])
	}
	copy(a[:], b)
	return raitypes.AmountFromBytes16(a), nil
}

func setWeight(tx kv.RwTx, rep raitypes.Account, amt raitypes.Amount) error {
	b := amt.Bytes16()
	return tx.Put(kv.Representation, rep[:], b[:])
}

// AddWeight adds delta to rep's weight (§4.3's representative credit on
// open/receive, and the "new representative" side of a change).
func AddWeight(tx kv.RwTx, rep raitypes.Account, delta raitypes.Amount) error {
	cur, err := GetWeight(tx, rep)
	if err != nil {
		return err
	}
	next, overflow := cur.Add(delta)
	if overflow {
		return fmt.Errorf("ledger: representation weight overflow for %x", rep[:])
	}
	return setWeight(tx, rep, next)
}

// SubWeight subtracts delta from rep's weight (§4.3's debit on send, and
// the "old representative" side of a change).
func SubWeight(tx kv.RwTx, rep raitypes.Account, delta raitypes.Amount) error {
	cur, err := GetWeight(tx, rep)
	if err != nil {
		return err
	}
	next, underflow := cur.Sub(delta)
	if underflow {
		return fmt.Errorf("ledger: representation weight underflow for %x", rep[:])
	}
	return setWeight(tx, rep, next)
}

func GetConsumedBy(tx kv.RoTx, sendHash raitypes.Hash) (ConsumedBy, bool, error) {
	b, ok, err := tx.Get(kv.Pending, consumedKey(sendHash))
	if err != nil || !ok {
		return ConsumedBy{}, false, err
	}
	c, ok := decodeConsumedBy(b)
	if !ok {
		return ConsumedBy{}, false, fmt.Errorf("ledger: corrupt consumed-by record")
	}
	return c, true, nil
}

func PutConsumedBy(tx kv.RwTx, sendHash raitypes.Hash, c ConsumedBy) error {
	return tx.Put(kv.Pending, consumedKey(sendHash), c.encode())
}

func DeleteConsumedBy(tx kv.RwTx, sendHash raitypes.Hash) error {
	return tx.Delete(kv.Pending, consumedKey(sendHash))
}
