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
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

type testAccount struct {
	pub  raitypes.Account
	priv ed25519.PrivateKey
}

func newTestAccount(t *testing.T) testAccount {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var a raitypes.Account
	copy(a[:], pub)
	return testAccount{pub: a, priv: priv}
}

// openGenesis plants an Open block for acct sourced from a synthetic send
// hash that is never itself validated, seeding a chain to build tests on
// without reimplementing real genesis issuance.
func openGenesis(t *testing.T, tx kv.RwTx, acct testAccount, amount raitypes.Amount) *block.Open {
	t.Helper()
	sourceSend := &block.Send{Previous: raitypes.Hash{0xAA}, Destination: acct.pub, Balance: amount}
	require.NoError(t, PutBlock(tx, sourceSend, raitypes.Account{0xEE}))
	require.NoError(t, PutPending(tx, acct.pub, sourceSend.Hash(), PendingValue{Source: raitypes.Account{0xEE}, Amount: amount}))

	open := &block.Open{Source: sourceSend.Hash(), Representative: acct.pub, Account: acct.pub}
	block.Sign(open, acct.priv)
	res, err := Process(tx, open, 1)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)
	return open
}

func TestProcessOpenAndSend(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	bob := newTestAccount(t)
	genesisAmount := raitypes.MaxAmount
	amt, err := raitypes.AmountFromBig(genesisAmount.Bytes())
	require.NoError(t, err)

	open := openGenesis(t, tx, alice, amt)

	state, ok, err := GetAccount(tx, alice.pub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, open.Hash(), state.Head)
	require.Equal(t, uint64(1), state.BlockCount)

	sendAmount := raitypes.NewAmount(1000)
	newBalance, underflow := amt.Sub(sendAmount)
	require.False(t, underflow)

	send := &block.Send{Previous: open.Hash(), Destination: bob.pub, Balance: newBalance}
	block.Sign(send, alice.priv)
	res, err := Process(tx, send, 2)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)
	require.Equal(t, sendAmount, res.Amount)

	state, ok, err = GetAccount(tx, alice.pub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, send.Hash(), state.Head)
	require.Equal(t, newBalance, state.Balance)
	require.Equal(t, uint64(2), state.BlockCount)

	pv, ok, err := GetPending(tx, bob.pub, send.Hash())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sendAmount, pv.Amount)
}

func TestProcessRejectsForkAndOld(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	amt, err := raitypes.AmountFromBig(raitypes.MaxAmount.Bytes())
	require.NoError(t, err)
	open := openGenesis(t, tx, alice, amt)

	// Resubmitting the same open is "old".
	dup := &block.Open{Source: open.Source, Representative: open.Representative, Account: open.Account}
	block.Sign(dup, alice.priv)
	res, err := Process(tx, dup, 3)
	require.NoError(t, err)
	require.Equal(t, Old, res.Code)

	bal1 := raitypes.NewAmount(10)
	changeA := &block.Send{Previous: open.Hash(), Destination: alice.pub, Balance: bal1}
	block.Sign(changeA, alice.priv)
	res, err = Process(tx, changeA, 4)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)

	// A second block off the same previous is a fork.
	bal2 := raitypes.NewAmount(20)
	changeB := &block.Send{Previous: open.Hash(), Destination: alice.pub, Balance: bal2}
	block.Sign(changeB, alice.priv)
	res, err = Process(tx, changeB, 5)
	require.NoError(t, err)
	require.Equal(t, Fork, res.Code)
}

func TestProcessGapPreviousAndSource(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	ghost := raitypes.Hash{0x01, 0x02}
	send := &block.Send{Previous: ghost, Destination: alice.pub, Balance: raitypes.NewAmount(1)}
	block.Sign(send, alice.priv)
	res, err := Process(tx, send, 1)
	require.NoError(t, err)
	require.Equal(t, GapPrevious, res.Code)

	open := &block.Open{Source: ghost, Representative: alice.pub, Account: alice.pub}
	block.Sign(open, alice.priv)
	res, err = Process(tx, open, 1)
	require.NoError(t, err)
	require.Equal(t, GapSource, res.Code)
}

func TestRollbackSendUndoesBalanceAndPending(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	bob := newTestAccount(t)
	amt, err := raitypes.AmountFromBig(raitypes.MaxAmount.Bytes())
	require.NoError(t, err)
	open := openGenesis(t, tx, alice, amt)

	sendAmount := raitypes.NewAmount(500)
	newBalance, _ := amt.Sub(sendAmount)
	send := &block.Send{Previous: open.Hash(), Destination: bob.pub, Balance: newBalance}
	block.Sign(send, alice.priv)
	_, err = Process(tx, send, 2)
	require.NoError(t, err)

	require.NoError(t, Rollback(tx, send.Hash()))

	state, ok, err := GetAccount(tx, alice.pub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, open.Hash(), state.Head)
	require.Equal(t, amt, state.Balance)
	require.Equal(t, uint64(1), state.BlockCount)

	_, ok, err = GetPending(tx, bob.pub, send.Hash())
	require.NoError(t, err)
	require.False(t, ok)

	hasBlock, err := HasBlock(tx, send.Hash())
	require.NoError(t, err)
	require.False(t, hasBlock)
}

// TestRollbackCascades covers the case that motivated ConsumedBy: rolling
// back a send whose destination already received it must first unwind the
// receiving account's chain, restoring the pending entry as a side effect.
func TestRollbackCascades(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	bob := newTestAccount(t)
	amt, err := raitypes.AmountFromBig(raitypes.MaxAmount.Bytes())
	require.NoError(t, err)
	aliceOpen := openGenesis(t, tx, alice, amt)

	sendAmount := raitypes.NewAmount(300)
	newBalance, _ := amt.Sub(sendAmount)
	send := &block.Send{Previous: aliceOpen.Hash(), Destination: bob.pub, Balance: newBalance}
	block.Sign(send, alice.priv)
	res, err := Process(tx, send, 2)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)

	bobOpen := &block.Open{Source: send.Hash(), Representative: bob.pub, Account: bob.pub}
	block.Sign(bobOpen, bob.priv)
	res, err = Process(tx, bobOpen, 3)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)

	// Bob's pending entry is gone now; rolling back the send must cascade
	// into rolling back bob's open first.
	_, ok, err := GetPending(tx, bob.pub, send.Hash())
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, Rollback(tx, send.Hash()))

	_, bobExists, err := GetAccount(tx, bob.pub)
	require.NoError(t, err)
	require.False(t, bobExists, "cascading rollback must have removed bob's opened account")

	aliceState, ok, err := GetAccount(tx, alice.pub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, aliceOpen.Hash(), aliceState.Head)
	require.Equal(t, amt, aliceState.Balance)

	hasSend, err := HasBlock(tx, send.Hash())
	require.NoError(t, err)
	require.False(t, hasSend)
}

func TestRollbackChangeRestoresRepresentative(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	alice := newTestAccount(t)
	repA := newTestAccount(t)
	repB := newTestAccount(t)
	amt, err := raitypes.AmountFromBig(raitypes.MaxAmount.Bytes())
	require.NoError(t, err)

	sourceSend := &block.Send{Previous: raitypes.Hash{0xAA}, Destination: alice.pub, Balance: amt}
	require.NoError(t, PutBlock(tx, sourceSend, raitypes.Account{0xEE}))
	require.NoError(t, PutPending(tx, alice.pub, sourceSend.Hash(), PendingValue{Source: raitypes.Account{0xEE}, Amount: amt}))
	open := &block.Open{Source: sourceSend.Hash(), Representative: repA.pub, Account: alice.pub}
	block.Sign(open, alice.priv)
	_, err = Process(tx, open, 1)
	require.NoError(t, err)

	weightA, err := GetWeight(tx, repA.pub)
	require.NoError(t, err)
	require.Equal(t, amt, weightA)

	change := &block.Change{Previous: open.Hash(), Representative: repB.pub}
	block.Sign(change, alice.priv)
	res, err := Process(tx, change, 2)
	require.NoError(t, err)
	require.Equal(t, Progress, res.Code)

	weightB, err := GetWeight(tx, repB.pub)
	require.NoError(t, err)
	require.Equal(t, amt, weightB)
	weightA, err = GetWeight(tx, repA.pub)
	require.NoError(t, err)
	require.True(t, weightA.IsZero())

	require.NoError(t, Rollback(tx, change.Hash()))

	weightA, err = GetWeight(tx, repA.pub)
	require.NoError(t, err)
	require.Equal(t, amt, weightA)
	weightB, err = GetWeight(tx, repB.pub)
	require.NoError(t, err)
	require.True(t, weightB.IsZero())

	state, ok, err := GetAccount(tx, alice.pub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, open.Hash(), state.Head)
	require.Equal(t, open.Hash(), state.RepBlock)
}

func TestChecksumXORIsSelfInverse(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	before, err := ChecksumGet(tx)
	require.NoError(t, err)
	require.True(t, before.IsZero())

	alice := newTestAccount(t)
	open := &block.Open{Source: raitypes.Hash{0x01}, Representative: alice.pub, Account: alice.pub}
	block.Sign(open, alice.priv)

	require.NoError(t, PutBlock(tx, open, alice.pub))
	afterPut, err := ChecksumGet(tx)
	require.NoError(t, err)
	require.False(t, afterPut.IsZero())

	require.NoError(t, DeleteBlock(tx, open))
	afterDelete, err := ChecksumGet(tx)
	require.NoError(t, err)
	require.True(t, afterDelete.IsZero(), "deleting a block must XOR its hash back out")
}
