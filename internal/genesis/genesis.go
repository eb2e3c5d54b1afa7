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

// Package genesis holds the hard-coded genesis open block for each network
// variant (live/beta/test) and the routine that seeds an empty ledger with
// it. The genesis account opens with the maximum 128-bit balance, which
// fixes total supply for every subsequent weight invariant.
package genesis

import (
	"errors"
	"time"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raicfg"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Block is a network's canonical, pre-signed genesis open block plus the
// account it belongs to. Source is conventionally the account's own public
// key reinterpreted as a hash, matching the original genesis encoding.
type Block struct {
	Account        raitypes.Account
	Representative raitypes.Account
	Source         raitypes.Hash
	Signature      raitypes.Signature
	Work           uint64
}

// Open builds the block.Open this Block describes.
func (g Block) Open() *block.Open {
	o := &block.Open{
		Source:         g.Source,
		Representative: g.Representative,
		Account:        g.Account,
	}
	o.SetSignature(g.Signature)
	o.SetWork(g.Work)
	return o
}

// For selects the genesis block for variant, the same live/beta/test
// selection the original made at compile time via paper_network.
func For(variant raicfg.NetworkVariant) (Block, error) {
	switch variant {
	case raicfg.NetworkLive:
		return liveGenesis, nil
	case raicfg.NetworkBeta:
		return betaGenesis, nil
	case raicfg.NetworkTest:
		return testGenesis, nil
	default:
		return Block{}, errUnknownVariant
	}
}

var errUnknownVariant = errors.New("genesis: unknown network variant")

// ErrAlreadyInitialized is returned by Initialize when the ledger already
// has a genesis account.
var ErrAlreadyInitialized = errors.New("genesis: ledger already initialized")

// Initialize seeds tx with g's genesis open block: the block body, the
// account's initial state (head = open = rep_block = g's hash, balance =
// total supply, block_count = 1), and full representative weight for the
// genesis account (paper::genesis::initialize).
func Initialize(tx kv.RwTx, g Block) error {
	open := g.Open()
	hash := open.Hash()

	if _, ok, err := ledger.GetAccount(tx, g.Account); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}

	if err := ledger.PutBlock(tx, open, g.Account); err != nil {
		return err
	}
	supply := raitypes.MaxAmountValue()
	st := ledger.AccountState{
		Head:              hash,
		OpenBlock:         hash,
		RepBlock:          hash,
		Balance:           supply,
		ModifiedTimestamp: uint64(time.Now().Unix()),
		BlockCount:        1,
	}
	if err := ledger.PutAccount(tx, g.Account, st); err != nil {
		return err
	}
	return ledger.AddWeight(tx, g.Account, supply)
}
