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
	"sync"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// WeightFunc resolves a representative's current voting weight; callers
// wire this to ledger.GetWeight against whatever transaction is open.
type WeightFunc func(rep raitypes.Account) (raitypes.Amount, error)

type repEntry struct {
	sequence  uint64
	candidate raitypes.Hash
}

// Election tracks one root's competing candidate blocks and the
// representatives who have voted on them. One Election exists per
// contested root at a time (§4.4).
type Election struct {
	mu         sync.Mutex
	root       raitypes.Hash
	repVotes   map[raitypes.Account]repEntry
	candidates map[raitypes.Hash]struct{}
	lastWinner raitypes.Hash
	confirmed  bool
}

// NewElection opens an election at root, seeded with the first-seen
// candidate as the tentative winner (mirrors the original's anonymous
// self-vote that seeds votes.last_winner at zero weight).
func NewElection(root, seedCandidate raitypes.Hash) *Election {
	return &Election{
		root:       root,
		repVotes:   make(map[raitypes.Account]repEntry),
		candidates: map[raitypes.Hash]struct{}{seedCandidate: {}},
		lastWinner: seedCandidate,
	}
}

func (e *Election) Root() raitypes.Hash { return e.root }

// Result is the outcome of folding one vote into the election.
type Result struct {
	Winner    raitypes.Hash
	Weight    raitypes.Amount
	Changed   bool // winner differs from the previous call's winner
	Confirmed bool // just crossed its confirmation threshold (fires once)
}

// Vote folds v into the election's tally and re-derives the winner. The
// caller supplies weights (bound to whatever ledger snapshot it is voting
// against) and supply (the ledger's total issued amount, for the
// uncontested/contested thresholds).
func (e *Election) Vote(weights WeightFunc, supply raitypes.Amount, v Vote) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	existing, known := e.repVotes[v.Representative]
	var lastSeq uint64
	if known {
		lastSeq = existing.sequence
	}
	if err := Verify(v, lastSeq, known); err != nil {
		return Result{}, err
	}
	e.repVotes[v.Representative] = repEntry{sequence: v.Sequence, candidate: v.BlockHash}
	e.candidates[v.BlockHash] = struct{}{}

	winner, total, err := tally(weights, e.repVotes)
	if err != nil {
		return Result{}, err
	}

	res := Result{Winner: winner, Weight: total, Changed: winner != e.lastWinner}
	e.lastWinner = winner

	if !e.confirmed {
		threshold := uncontestedThreshold(supply)
		if len(e.candidates) >= 2 {
			threshold = contestedThreshold(supply)
		}
		if total.Cmp(threshold) > 0 {
			e.confirmed = true
			res.Confirmed = true
		}
	}
	return res, nil
}

// Confirmed reports whether this election has already settled.
func (e *Election) Confirmed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.confirmed
}

// Winner returns the election's current leading candidate.
func (e *Election) Winner() raitypes.Hash {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastWinner
}
