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
	"fmt"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Rollback undoes hash and everything that followed it on hash's account,
// applying the inverse of Process in reverse order (§4.3). Rolling
// back a send whose pending entry has already been consumed by a
// receive/open elsewhere cascades: that dependent subchain is rolled back
// first. Head, balance, block count, weights and pending entries are
// restored; an account's modified_timestamp is not, it keeps the value set
// when the rolled-back block was processed.
func Rollback(tx kv.RwTx, hash raitypes.Hash) error {
	acct, ok, err := AccountOf(tx, hash)
	if err != nil {
		return err
	}
	if !ok {
		return errRollbackPastOpen
	}
	blk, ok, err := GetBlock(tx, hash)
	if err != nil {
		return err
	}
	if !ok {
		return errRollbackPastOpen
	}
	target := raitypes.Hash{}
	if prev, hasPrev := block.Previous(blk); hasPrev {
		target = prev
	}
	return RollbackAccountTo(tx, acct, target)
}

// RollbackAccountTo rolls acct's chain back to target (exclusive); target
// may be the zero hash to remove the account entirely, including its open
// block. Bounded by I1/I4: a chain has no cycles and block_count blocks,
// so the loop runs at most block_count times plus whatever cascades pull
// in from other accounts.
func RollbackAccountTo(tx kv.RwTx, acct raitypes.Account, target raitypes.Hash) error {
	const cascadeGuard = 1 << 24 // generous bound; a real trip means a store invariant is broken
	for i := 0; ; i++ {
		if i > cascadeGuard {
			return errCascadeLimit
		}
		state, ok, err := GetAccount(tx, acct)
		if err != nil {
			return err
		}
		if !ok {
			if target.IsZero() {
				return nil
			}
			return errRollbackPastOpen
		}
		if state.Head == target {
			return nil
		}
		blk, ok, err := GetBlock(tx, state.Head)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("ledger: head block missing for account %x", acct[:])
		}
		switch b := blk.(type) {
		case *block.Send:
			if err := rollbackSend(tx, acct, state, b); err != nil {
				return err
			}
		case *block.Receive:
			if err := rollbackReceive(tx, acct, state, b); err != nil {
				return err
			}
		case *block.Change:
			if err := rollbackChange(tx, acct, state, b); err != nil {
				return err
			}
		case *block.Open:
			if err := rollbackOpen(tx, acct, state, b); err != nil {
				return err
			}
			if !target.IsZero() {
				return errRollbackPastOpen
			}
			return nil
		}
	}
}

func rollbackSend(tx kv.RwTx, acct raitypes.Account, state AccountState, b *block.Send) error {
	hash := b.Hash()

	pv, ok, err := GetPending(tx, b.Destination, hash)
	if err != nil {
		return err
	}
	if !ok {
		// The pending entry was already consumed: cascade-rollback the
		// dependent chain first, which recreates it as part of its own
		// rollback.
		cb, found, err := GetConsumedBy(tx, hash)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("ledger: send %x has no pending entry and no consumer recorded", hash[:])
		}
		consumingBlk, found, err := GetBlock(tx, cb.BlockHash)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("ledger: consuming block %x missing", cb.BlockHash[:])
		}
		subTarget := raitypes.Hash{}
		if prevHash, hasPrev := block.Previous(consumingBlk); hasPrev {
			subTarget = prevHash
		}
		if err := RollbackAccountTo(tx, cb.Account, subTarget); err != nil {
			return err
		}
		pv, ok, err = GetPending(tx, b.Destination, hash)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("ledger: cascade rollback did not restore pending for send %x", hash[:])
		}
	}
	amount := pv.Amount

	rep, err := repOf(tx, acct, state)
	if err != nil {
		return err
	}
	if err := AddWeight(tx, rep, amount); err != nil {
		return err
	}
	if err := DeletePending(tx, b.Destination, hash); err != nil {
		return err
	}
	if err := DeleteBlock(tx, b); err != nil {
		return err
	}

	prevBalance, overflow := state.Balance.Add(amount)
	if overflow {
		return errBalanceOverflow
	}
	state.Head = b.Previous
	state.Balance = prevBalance
	state.BlockCount--
	return PutAccount(tx, acct, state)
}

func rollbackReceive(tx kv.RwTx, acct raitypes.Account, state AccountState, b *block.Receive) error {
	cb, ok, err := GetConsumedBy(tx, b.Source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ledger: receive %x has no consumed-by record", b.Hash())
	}
	amount := cb.Amount

	senderAcct, ok, err := AccountOf(tx, b.Source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ledger: source send %x has no owning account", b.Source[:])
	}

	rep, err := repOf(tx, acct, state)
	if err != nil {
		return err
	}
	if err := SubWeight(tx, rep, amount); err != nil {
		return err
	}
	if err := PutPending(tx, acct, b.Source, PendingValue{Source: senderAcct, Amount: amount}); err != nil {
		return err
	}
	if err := DeleteConsumedBy(tx, b.Source); err != nil {
		return err
	}
	if err := DeleteBlock(tx, b); err != nil {
		return err
	}

	prevBalance, underflow := state.Balance.Sub(amount)
	if underflow {
		return errBalanceOverflow
	}
	state.Head = b.Previous
	state.Balance = prevBalance
	state.BlockCount--
	return PutAccount(tx, acct, state)
}

func rollbackOpen(tx kv.RwTx, acct raitypes.Account, state AccountState, b *block.Open) error {
	cb, ok, err := GetConsumedBy(tx, b.Source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ledger: open %x has no consumed-by record", b.Hash())
	}
	amount := cb.Amount

	senderAcct, ok, err := AccountOf(tx, b.Source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ledger: source send %x has no owning account", b.Source[:])
	}

	if err := SubWeight(tx, b.Representative, amount); err != nil {
		return err
	}
	if err := PutPending(tx, b.Account, b.Source, PendingValue{Source: senderAcct, Amount: amount}); err != nil {
		return err
	}
	if err := DeleteConsumedBy(tx, b.Source); err != nil {
		return err
	}
	if err := DeleteBlock(tx, b); err != nil {
		return err
	}
	_ = state // open's account state is deleted wholesale, nothing to carry forward
	return DeleteAccount(tx, acct)
}

func rollbackChange(tx kv.RwTx, acct raitypes.Account, state AccountState, b *block.Change) error {
	oldRep, oldRepBlock, err := representativeAsOf(tx, b.Previous)
	if err != nil {
		return err
	}
	if err := SubWeight(tx, b.Representative, state.Balance); err != nil {
		return err
	}
	if err := AddWeight(tx, oldRep, state.Balance); err != nil {
		return err
	}
	if err := DeleteBlock(tx, b); err != nil {
		return err
	}
	state.Head = b.Previous
	state.RepBlock = oldRepBlock
	state.BlockCount--
	return PutAccount(tx, acct, state)
}

// representativeAsOf walks backward from hash (inclusive) until it finds a
// block that carries a representative field (open or change), implementing
// I5 without relying on a cached rep_block that may itself be mid-rollback.
func representativeAsOf(tx kv.RoTx, hash raitypes.Hash) (raitypes.Account, raitypes.Hash, error) {
	cur := hash
	for {
		blk, ok, err := GetBlock(tx, cur)
		if err != nil {
			return raitypes.Account{}, raitypes.Hash{}, err
		}
		if !ok {
			return raitypes.Account{}, raitypes.Hash{}, fmt.Errorf("ledger: chain walk hit missing block %x", cur[:])
		}
		if rep, ok := block.Representative(blk); ok {
			return rep, cur, nil
		}
		prev, ok := block.Previous(blk)
		if !ok {
			return raitypes.Account{}, raitypes.Hash{}, fmt.Errorf("ledger: chain walk reached open block %x with no representative", cur[:])
		}
		cur = prev
	}
}
