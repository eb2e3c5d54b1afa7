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
	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Code is the taxonomy of §4.3 process() outcomes.
type Code int

const (
	Progress Code = iota
	Old
	BadSignature
	NegativeSpend
	Fork
	Unreceivable
	GapPrevious
	GapSource
	NotReceiveFromSend
	AccountMismatch
)

func (c Code) String() string {
	switch c {
	case Progress:
		return "progress"
	case Old:
		return "old"
	case BadSignature:
		return "bad_signature"
	case NegativeSpend:
		return "negative_spend"
	case Fork:
		return "fork"
	case Unreceivable:
		return "unreceivable"
	case GapPrevious:
		return "gap_previous"
	case GapSource:
		return "gap_source"
	case NotReceiveFromSend:
		return "not_receive_from_send"
	case AccountMismatch:
		return "account_mismatch"
	default:
		return "unknown"
	}
}

// Result is process()'s return value: the outcome code, the account the
// block belongs to (when known), and the amount moved (send/receive
// amount, zero for open-without-funds-check variants like change).
type Result struct {
	Code    Code
	Account raitypes.Account
	Amount  raitypes.Amount
}

// Process applies blk to the store under the rules of §4.3. On any
// non-Progress code the store is left exactly as it was: every check below
// runs before any mutation, so there is nothing to unwind.
func Process(tx kv.RwTx, blk block.Block, now uint64) (Result, error) {
	switch b := blk.(type) {
	case *block.Send:
		return processSend(tx, b, now)
	case *block.Receive:
		return processReceive(tx, b, now)
	case *block.Open:
		return processOpen(tx, b, now)
	case *block.Change:
		return processChange(tx, b, now)
	default:
		return Result{Code: AccountMismatch}, nil
	}
}

func processSend(tx kv.RwTx, b *block.Send, now uint64) (Result, error) {
	hash := b.Hash()
	if old, err := HasBlock(tx, hash); err != nil {
		return Result{}, err
	} else if old {
		return Result{Code: Old}, nil
	}

	prevBlk, ok, err := GetBlock(tx, b.Previous)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}

	acct, ok, err := AccountOf(tx, b.Previous)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}
	if !block.Verify(b, acct) {
		return Result{Code: BadSignature}, nil
	}

	state, ok, err := GetAccount(tx, acct)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}
	if state.Head != b.Previous {
		return Result{Code: Fork}, nil
	}
	prevBalance := state.Balance
	if b.Balance.Cmp(prevBalance) > 0 {
		return Result{Code: NegativeSpend}, nil
	}
	_ = prevBlk // previous existence already established; no further use

	amount, underflow := prevBalance.Sub(b.Balance)
	if underflow {
		return Result{Code: NegativeSpend}, nil
	}

	rep, err := repOf(tx, acct, state)
	if err != nil {
		return Result{}, err
	}
	if err := SubWeight(tx, rep, amount); err != nil {
		return Result{}, err
	}
	if err := PutBlock(tx, b, acct); err != nil {
		return Result{}, err
	}
	if err := PutPending(tx, b.Destination, hash, PendingValue{Source: acct, Amount: amount}); err != nil {
		return Result{}, err
	}
	state.Head = hash
	state.Balance = b.Balance
	state.ModifiedTimestamp = now
	state.BlockCount++
	if err := PutAccount(tx, acct, state); err != nil {
		return Result{}, err
	}
	return Result{Code: Progress, Account: acct, Amount: amount}, nil
}

func processReceive(tx kv.RwTx, b *block.Receive, now uint64) (Result, error) {
	hash := b.Hash()
	if old, err := HasBlock(tx, hash); err != nil {
		return Result{}, err
	} else if old {
		return Result{Code: Old}, nil
	}

	sourceBlk, ok, err := GetBlock(tx, b.Source)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapSource}, nil
	}
	if sourceBlk.Type() != block.TypeSend {
		return Result{Code: NotReceiveFromSend}, nil
	}

	acct, ok, err := AccountOf(tx, b.Previous)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}

	pending, ok, err := GetPending(tx, acct, b.Source)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: Unreceivable}, nil
	}

	if !block.Verify(b, acct) {
		return Result{Code: BadSignature}, nil
	}

	state, ok, err := GetAccount(tx, acct)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}
	if state.Head != b.Previous {
		return Result{Code: Fork}, nil
	}

	newBalance, overflow := state.Balance.Add(pending.Amount)
	if overflow {
		return Result{}, errBalanceOverflow
	}

	rep, err := repOf(tx, acct, state)
	if err != nil {
		return Result{}, err
	}
	if err := AddWeight(tx, rep, pending.Amount); err != nil {
		return Result{}, err
	}
	if err := PutBlock(tx, b, acct); err != nil {
		return Result{}, err
	}
	if err := DeletePending(tx, acct, b.Source); err != nil {
		return Result{}, err
	}
	if err := PutConsumedBy(tx, b.Source, ConsumedBy{Account: acct, BlockHash: hash, Amount: pending.Amount}); err != nil {
		return Result{}, err
	}
	state.Head = hash
	state.Balance = newBalance
	state.ModifiedTimestamp = now
	state.BlockCount++
	if err := PutAccount(tx, acct, state); err != nil {
		return Result{}, err
	}
	return Result{Code: Progress, Account: acct, Amount: pending.Amount}, nil
}

func processOpen(tx kv.RwTx, b *block.Open, now uint64) (Result, error) {
	hash := b.Hash()
	if old, err := HasBlock(tx, hash); err != nil {
		return Result{}, err
	} else if old {
		return Result{Code: Old}, nil
	}

	sourceBlk, ok, err := GetBlock(tx, b.Source)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapSource}, nil
	}
	if sourceBlk.Type() != block.TypeSend {
		return Result{Code: NotReceiveFromSend}, nil
	}

	pending, ok, err := GetPending(tx, b.Account, b.Source)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: Unreceivable}, nil
	}

	if _, exists, err := GetAccount(tx, b.Account); err != nil {
		return Result{}, err
	} else if exists {
		return Result{Code: Fork}, nil
	}

	if !block.Verify(b, b.Account) {
		return Result{Code: BadSignature}, nil
	}

	if err := AddWeight(tx, b.Representative, pending.Amount); err != nil {
		return Result{}, err
	}
	if err := PutBlock(tx, b, b.Account); err != nil {
		return Result{}, err
	}
	if err := DeletePending(tx, b.Account, b.Source); err != nil {
		return Result{}, err
	}
	if err := PutConsumedBy(tx, b.Source, ConsumedBy{Account: b.Account, BlockHash: hash, Amount: pending.Amount}); err != nil {
		return Result{}, err
	}
	state := AccountState{
		Head:              hash,
		OpenBlock:         hash,
		RepBlock:          hash,
		Balance:           pending.Amount,
		ModifiedTimestamp: now,
		BlockCount:        1,
	}
	if err := PutAccount(tx, b.Account, state); err != nil {
		return Result{}, err
	}
	return Result{Code: Progress, Account: b.Account, Amount: pending.Amount}, nil
}

func processChange(tx kv.RwTx, b *block.Change, now uint64) (Result, error) {
	hash := b.Hash()
	if old, err := HasBlock(tx, hash); err != nil {
		return Result{}, err
	} else if old {
		return Result{Code: Old}, nil
	}

	acct, ok, err := AccountOf(tx, b.Previous)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}

	state, ok, err := GetAccount(tx, acct)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Code: GapPrevious}, nil
	}
	if state.Head != b.Previous {
		return Result{Code: Fork}, nil
	}

	if !block.Verify(b, acct) {
		return Result{Code: BadSignature}, nil
	}

	oldRep, err := repOf(tx, acct, state)
	if err != nil {
		return Result{}, err
	}
	if err := SubWeight(tx, oldRep, state.Balance); err != nil {
		return Result{}, err
	}
	if err := AddWeight(tx, b.Representative, state.Balance); err != nil {
		return Result{}, err
	}
	if err := PutBlock(tx, b, acct); err != nil {
		return Result{}, err
	}
	state.Head = hash
	state.RepBlock = hash
	state.ModifiedTimestamp = now
	state.BlockCount++
	if err := PutAccount(tx, acct, state); err != nil {
		return Result{}, err
	}
	return Result{Code: Progress, Account: acct}, nil
}

// repOf resolves an account's current representative by reading its
// rep_block (I5) and pulling the representative field out of that block.
func repOf(tx kv.RoTx, acct raitypes.Account, state AccountState) (raitypes.Account, error) {
	repBlk, ok, err := GetBlock(tx, state.RepBlock)
	if err != nil {
		return raitypes.Account{}, err
	}
	if !ok {
		return raitypes.Account{}, errMissingRepBlock
	}
	rep, ok := block.Representative(repBlk)
	if !ok {
		return raitypes.Account{}, errRepBlockHasNoRep
	}
	return rep, nil
}
