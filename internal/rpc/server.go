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

	"github.com/gorilla/websocket"

	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/railog"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// dbLedger adapts a kv.DB to the Ledger interface, so handlers never see
// kv.RwTx/RoTx directly.
type dbLedger struct{ db kv.DB }

func (l dbLedger) AccountBalance(ctx context.Context, acct raitypes.Account) (raitypes.Amount, bool, error) {
	var amt raitypes.Amount
	var ok bool
	err := l.db.View(ctx, func(tx kv.RoTx) error {
		st, found, err := ledger.GetAccount(tx, acct)
		if err != nil {
			return err
		}
		ok = found
		amt = st.Balance
		return nil
	})
	return amt, ok, err
}

func (l dbLedger) AccountBlockCount(ctx context.Context, acct raitypes.Account) (uint64, bool, error) {
	var count uint64
	var ok bool
	err := l.db.View(ctx, func(tx kv.RoTx) error {
		st, found, err := ledger.GetAccount(tx, acct)
		if err != nil {
			return err
		}
		ok = found
		count = st.BlockCount
		return nil
	})
	return count, ok, err
}

func (l dbLedger) AccountHead(ctx context.Context, acct raitypes.Account) (raitypes.Hash, bool, error) {
	var head raitypes.Hash
	var ok bool
	err := l.db.View(ctx, func(tx kv.RoTx) error {
		st, found, err := ledger.GetAccount(tx, acct)
		if err != nil {
			return err
		}
		ok = found
		head = st.Head
		return nil
	})
	return head, ok, err
}

// NewLedgerView wraps db as an rpc.Ledger.
func NewLedgerView(db kv.DB) Ledger { return dbLedger{db: db} }

// Server is the JSON-RPC + websocket front end. It owns no consensus
// state: every handler either reads through Ledger or forwards to
// Submitter/ConfirmationFeed.
type Server struct {
	Ledger    Ledger
	Submitter Submitter
	Feed      ConfirmationFeed
	Logger    *railog.Logger

	upgrader websocket.Upgrader
}

// accountRequest is the shared request shape for the account_* methods.
type accountRequest struct {
	Account string `json:"account"`
}

type accountBalanceResponse struct {
	Balance string `json:"balance"`
}

type accountBlockCountResponse struct {
	BlockCount uint64 `json:"block_count"`
}

// HandleAccountBalance answers account_balance: the account's current
// 128-bit balance as a decimal string (matches the original's JSON-over-
// HTTP convention of stringifying uint128 values to avoid JSON number
// precision loss).
func (s *Server) HandleAccountBalance(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acct, err := raitypes.ParseAddress(req.Account)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad account")
		return
	}
	amt, ok, err := s.Ledger.AccountBalance(r.Context(), acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(w, accountBalanceResponse{Balance: amt.Uint256().String()})
}

// HandleAccountBlockCount answers account_block_count.
func (s *Server) HandleAccountBlockCount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	acct, err := raitypes.ParseAddress(req.Account)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad account")
		return
	}
	count, ok, err := s.Ledger.AccountBlockCount(r.Context(), acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(w, accountBlockCountResponse{BlockCount: count})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// HandleConfirmationStream upgrades to a websocket and relays every
// Confirmation from s.Feed until the client disconnects.
func (s *Server) HandleConfirmationStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("websocket upgrade failed")
		}
		return
	}
	defer conn.Close()

	ch, cancel := s.Feed.Subscribe()
	defer cancel()

	for {
		select {
		case conf, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(conf); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}
