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

// Package rpc is the out-of-scope external collaborator of §1/§6: the
// JSON-RPC surface a wallet or block explorer talks to. Only the interface
// the core hands requests off to is specified here — account_balance,
// account lookups, and block submission — plus a websocket endpoint that
// pushes confirmations as elections close. Everything below is a thin
// front over internal/ledger and internal/election; none of it
// participates in consensus.
package rpc

import (
	"context"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Ledger is the read surface handlers need. internal/ledger's package
// functions satisfy this through a thin adapter (see NewLedgerView in
// server.go);
// it is factored out here so rpc never imports kv.RwTx directly.
type Ledger interface {
	AccountBalance(ctx context.Context, acct raitypes.Account) (raitypes.Amount, bool, error)
	AccountBlockCount(ctx context.Context, acct raitypes.Account) (uint64, bool, error)
	AccountHead(ctx context.Context, acct raitypes.Account) (raitypes.Hash, bool, error)
}

// Submitter accepts a block authored off-node (e.g. by a wallet) and runs
// it through the same process/election path as one arriving over the
// wire.
type Submitter interface {
	Submit(ctx context.Context, blk block.Block) error
}

// ConfirmationFeed is subscribed to by the websocket handler; it receives
// one notification per election that confirms.
type ConfirmationFeed interface {
	Subscribe() (ch <-chan Confirmation, cancel func())
}

// Confirmation is pushed to websocket subscribers when a block's election
// confirms (§4.4).
type Confirmation struct {
	Account raitypes.Account
	Hash    raitypes.Hash
}
