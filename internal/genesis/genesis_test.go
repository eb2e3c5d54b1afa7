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

package genesis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raicfg"
	"github.com/raiprotocol/rai/internal/raitypes"
)

func TestForSelectsVariant(t *testing.T) {
	g, err := For(raicfg.NetworkTest)
	require.NoError(t, err)
	require.Equal(t, testGenesis.Account, g.Account)

	_, err = For(raicfg.NetworkVariant("nonexistent"))
	require.Error(t, err)
}

func TestInitializeSeedsFullSupply(t *testing.T) {
	db := kv.NewMemDB()
	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	g, err := For(raicfg.NetworkTest)
	require.NoError(t, err)
	require.NoError(t, Initialize(tx, g))

	st, ok, err := ledger.GetAccount(tx, g.Account)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), st.BlockCount)
	require.Equal(t, raitypes.MaxAmountValue(), st.Balance)
	require.Equal(t, g.Open().Hash(), st.Head)
	require.Equal(t, g.Open().Hash(), st.OpenBlock)

	weight, err := ledger.GetWeight(tx, g.Account)
	require.NoError(t, err)
	require.Equal(t, raitypes.MaxAmountValue(), weight)
}

func TestInitializeTwiceRejected(t *testing.T) {
	db := kv.NewMemDB()
	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	g, err := For(raicfg.NetworkLive)
	require.NoError(t, err)
	require.NoError(t, Initialize(tx, g))
	require.ErrorIs(t, Initialize(tx, g), ErrAlreadyInitialized)
}
