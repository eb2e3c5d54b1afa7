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

package election

import (
	"fmt"
	"sync"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Candidates holds the block bodies an election's votes refer to by hash
// (a vote only carries a hash; the gossiped block itself arrives
// separately over internal/wire's publish path).
type Candidates struct {
	mu   sync.Mutex
	byID map[raitypes.Hash]block.Block
}

func NewCandidates() *Candidates {
	return &Candidates{byID: make(map[raitypes.Hash]block.Block)}
}

func (c *Candidates) Register(blk block.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[blk.Hash()] = blk
}

func (c *Candidates) Get(hash raitypes.Hash) (block.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	blk, ok := c.byID[hash]
	return blk, ok
}

// Orchestrator wires an election.Table to the ledger: every vote it
// processes may flip the tentative winner (rollback the current chain head
// for that root and reapply the new leader) and, once a threshold is
// crossed, commits the winner for good and retires the election.
type Orchestrator struct {
	table      *Table
	candidates *Candidates
	supply     raitypes.Amount
}

func NewOrchestrator(table *Table, candidates *Candidates, supply raitypes.Amount) *Orchestrator {
	return &Orchestrator{table: table, candidates: candidates, supply: supply}
}

// ProcessVote folds v into root's election (starting one if none exists,
// seeded on v's own candidate), flips the ledger's tentative head when the
// winner changes, and finalizes once the election confirms.
func (o *Orchestrator) ProcessVote(tx kv.RwTx, root raitypes.Hash, v Vote) (Result, error) {
	e := o.table.Start(root, v.BlockHash)

	weightFn := func(rep raitypes.Account) (raitypes.Amount, error) {
		return ledger.GetWeight(tx, rep)
	}

	res, err := e.Vote(weightFn, o.supply, v)
	if err != nil {
		return Result{}, err
	}

	if res.Changed {
		if err := o.applyWinner(tx, root, res.Winner); err != nil {
			return Result{}, err
		}
	}
	if res.Confirmed {
		o.table.Stop(root)
	}
	return res, nil
}

// applyWinner makes winner the block actually occupying root: if a
// different block currently fills that slot it is rolled back first (and,
// transitively, anything built on top of it), then winner is processed.
func (o *Orchestrator) applyWinner(tx kv.RwTx, root, winner raitypes.Hash) error {
	current, occupied, err := ledger.RootOccupied(tx, root)
	if err != nil {
		return err
	}
	if occupied {
		if current == winner {
			return nil
		}
		if err := ledger.Rollback(tx, current); err != nil {
			return err
		}
	}
	blk, ok := o.candidates.Get(winner)
	if !ok {
		return fmt.Errorf("election: winning candidate %x for root %x has no known block body", winner[:], root[:])
	}
	// This path re-applies a block already known to be valid and passes 0
	// as the clock, so the account's modified_timestamp is set to 0.
	_, err = ledger.Process(tx, blk, 0)
	return err
}
