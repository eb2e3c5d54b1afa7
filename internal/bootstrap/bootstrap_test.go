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

package bootstrap

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raitypes"
	"github.com/raiprotocol/rai/internal/wire"
)

// plantAccount seeds acct with a synthetic open block so the frontier/
// bulk-pull tests have something real to walk.
func plantAccount(t *testing.T, tx kv.RwTx, seed byte, balance uint64) (raitypes.Account, ed25519.PrivateKey, *block.Open) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(bytes.NewReader(bytes.Repeat([]byte{seed}, ed25519.SeedSize)))
	require.NoError(t, err)
	var acct raitypes.Account
	copy(acct[:], pub)

	open := &block.Open{Source: raitypes.Hash(acct), Representative: acct, Account: acct}
	block.Sign(open, priv)

	require.NoError(t, ledger.PutBlock(tx, open, acct))
	require.NoError(t, ledger.PutAccount(tx, acct, ledger.AccountState{
		Head: open.Hash(), OpenBlock: open.Hash(), RepBlock: open.Hash(),
		Balance: raitypes.NewAmount(balance), ModifiedTimestamp: 1000, BlockCount: 1,
	}))
	require.NoError(t, ledger.AddWeight(tx, acct, raitypes.NewAmount(balance)))
	return acct, priv, open
}

func newTx(t *testing.T) kv.RwTx {
	t.Helper()
	db := kv.NewMemDB()
	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	return tx
}

func TestServeFrontierReqStreamsAndTerminates(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()

	acct, _, open := plantAccount(t, tx, 1, 100)

	var buf bytes.Buffer
	req := wire.FrontierReqRequest{Start: raitypes.Account{}, Age: 0, Count: 0}
	require.NoError(t, ServeFrontierReq(tx, &buf, req))

	pair, ok, err := wire.ReadFrontierPair(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, acct, pair.Account)
	require.Equal(t, open.Hash(), pair.Head)

	_, ok, err = wire.ReadFrontierPair(&buf)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestServeFrontierReqSkipsOldAccounts(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()
	plantAccount(t, tx, 2, 50)

	var buf bytes.Buffer
	req := wire.FrontierReqRequest{Age: 5000}
	require.NoError(t, ServeFrontierReq(tx, &buf, req))

	_, ok, err := wire.ReadFrontierPair(&buf)
	require.NoError(t, err)
	require.False(t, ok, "account modified before the age threshold must be skipped")
}

func TestDecideUnknownAccountPullsFull(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()

	var unknown raitypes.Account
	unknown[0] = 0xAB
	plan, err := Decide(tx, wire.FrontierPair{Account: unknown, Head: raitypes.Hash{0x01}})
	require.NoError(t, err)
	require.Equal(t, ActionPullFull, plan.Action)
}

func TestDecideMatchingHeadNoAction(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()
	acct, _, open := plantAccount(t, tx, 3, 10)

	plan, err := Decide(tx, wire.FrontierPair{Account: acct, Head: open.Hash()})
	require.NoError(t, err)
	require.Equal(t, ActionNone, plan.Action)
}

func TestDecideDivergentHeadPullsDivergent(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()
	acct, _, _ := plantAccount(t, tx, 4, 10)

	plan, err := Decide(tx, wire.FrontierPair{Account: acct, Head: raitypes.Hash{0xFF}})
	require.NoError(t, err)
	require.Equal(t, ActionPullDivergent, plan.Action)
}

func TestServeBulkPullStreamsChainNewestToOldest(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()
	acct, priv, open := plantAccount(t, tx, 5, 1000)

	send := &block.Send{Previous: open.Hash(), Destination: raitypes.Account{0x09}, Balance: raitypes.NewAmount(900)}
	block.Sign(send, priv)
	require.NoError(t, ledger.PutBlock(tx, send, acct))
	require.NoError(t, ledger.PutAccount(tx, acct, ledger.AccountState{
		Head: send.Hash(), OpenBlock: open.Hash(), RepBlock: open.Hash(),
		Balance: raitypes.NewAmount(900), ModifiedTimestamp: 1001, BlockCount: 2,
	}))

	var buf bytes.Buffer
	require.NoError(t, ServeBulkPull(tx, &buf, wire.BulkPullRequest{Start: acct, End: raitypes.Hash{}}))

	first, ok, err := wire.ReadBulkPullBlock(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, send.Hash(), first.Hash(), "newest-to-oldest: send comes before open")

	second, ok, err := wire.ReadBulkPullBlock(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, open.Hash(), second.Hash())

	_, ok, err = wire.ReadBulkPullBlock(&buf)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStageAndReplayAppliesOldestToNewest(t *testing.T) {
	tx := newTx(t)
	defer tx.Rollback()
	acct, priv, open := plantAccount(t, tx, 6, 1000)
	send := &block.Send{Previous: open.Hash(), Destination: raitypes.Account{0x09}, Balance: raitypes.NewAmount(900)}
	block.Sign(send, priv)

	var buf bytes.Buffer
	require.NoError(t, wire.WriteBulkPullBlock(&buf, send))
	require.NoError(t, wire.WriteBulkPullEnd(&buf))

	staged, err := Stage(tx, &buf)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	require.Equal(t, send.Hash(), staged[0].Hash())

	gaps := ledger.NewGapCache()
	require.NoError(t, Replay(tx, gaps, staged, 1002))

	st, ok, err := ledger.GetAccount(tx, acct)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, send.Hash(), st.Head)
}

func TestTargetConnectionsClampsToBounds(t *testing.T) {
	require.Equal(t, 2, TargetConnections(1, 2, 8))
	require.Equal(t, 8, TargetConnections(1_000_000, 2, 8))
	require.Equal(t, 10, TargetConnections(100, 2, 16))
}
