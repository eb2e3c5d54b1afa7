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

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/genesis"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raicfg"
)

func TestHandleAccountBalanceReturnsGenesisSupply(t *testing.T) {
	db := kv.NewMemDB()
	ctx := context.Background()
	tx, err := db.BeginRw(ctx)
	require.NoError(t, err)
	g, err := genesis.For(raicfg.NetworkTest)
	require.NoError(t, err)
	require.NoError(t, genesis.Initialize(tx, g))
	require.NoError(t, tx.Commit())

	s := &Server{Ledger: NewLedgerView(db)}
	body, err := json.Marshal(accountRequest{Account: g.Account.String()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/account_balance", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	s.HandleAccountBalance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp accountBalanceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "340282366920938463463374607431768211455", resp.Balance)
}

func TestHandleAccountBalanceUnknownAccount(t *testing.T) {
	db := kv.NewMemDB()
	s := &Server{Ledger: NewLedgerView(db)}

	g, err := genesis.For(raicfg.NetworkLive)
	require.NoError(t, err)
	body, _ := json.Marshal(accountRequest{Account: g.Account.String()})
	req := httptest.NewRequest(http.MethodPost, "/account_balance", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	s.HandleAccountBalance(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAccountBalanceBadAccount(t *testing.T) {
	db := kv.NewMemDB()
	s := &Server{Ledger: NewLedgerView(db)}

	body, _ := json.Marshal(accountRequest{Account: "not-a-valid-account"})
	req := httptest.NewRequest(http.MethodPost, "/account_balance", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	s.HandleAccountBalance(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
