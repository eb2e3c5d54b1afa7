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

// Table is the set of currently contested roots, grounded on the original
// implementation's conflicts table: one Election per root, started the
// first time a block lands on that root and stopped once confirmed.
type Table struct {
	mu        sync.Mutex
	elections map[raitypes.Hash]*Election
}

func NewTable() *Table {
	return &Table{elections: make(map[raitypes.Hash]*Election)}
}

// Start opens an election for root if one isn't already running, seeded
// with candidate as the tentative winner; it returns the (possibly
// pre-existing) election either way, matching the original's idempotent
// conflicts::start.
func (t *Table) Start(root, candidate raitypes.Hash) *Election {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.elections[root]; ok {
		return e
	}
	e := NewElection(root, candidate)
	t.elections[root] = e
	return e
}

// Lookup returns the in-progress election for root, if any.
func (t *Table) Lookup(root raitypes.Hash) (*Election, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.elections[root]
	return e, ok
}

// Stop removes root's election once it is confirmed and applied.
func (t *Table) Stop(root raitypes.Hash) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.elections, root)
}
