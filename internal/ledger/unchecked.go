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
	"bytes"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// gapCacheSize matches paper's gap_cache: a small bounded table,
// eviction by arrival order rather than by any fairness policy.
const gapCacheSize = 128

// GapCache tracks blocks that arrived with a missing previous/source
// dependency (§4.3's gap_previous/gap_source codes), so that when the
// missing block later arrives the dependents can be replayed without a
// full bootstrap. It is a soft cache: entries may be evicted under
// pressure, in which case the gapped block is simply rediscovered the
// next time it is rebroadcast or pulled during bootstrap.
type GapCache struct {
	mu    sync.Mutex
	byDep *lru.Cache[raitypes.Hash, []raitypes.Hash]
}

// NewGapCache builds a cache bounded at gapCacheSize entries.
func NewGapCache() *GapCache {
	c, err := lru.New[raitypes.Hash, []raitypes.Hash](gapCacheSize)
	if err != nil {
		// Only size <= 0 can fail construction; the constant above is fixed.
		panic(err)
	}
	return &GapCache{byDep: c}
}

// Add records that blk is blocked on dependency (the hash of its missing
// previous or source block) and persists it to the unchecked sub-space so
// it survives a restart even if evicted from the in-memory cache.
func (g *GapCache) Add(tx kv.RwTx, dependency raitypes.Hash, blk block.Block) error {
	g.mu.Lock()
	waiters, _ := g.byDep.Get(dependency)
	waiters = append(waiters, blk.Hash())
	g.byDep.Add(dependency, waiters)
	g.mu.Unlock()

	body, err := blk.MarshalBinary()
	if err != nil {
		return err
	}
	rec := append([]byte{byte(blk.Type())}, body...)
	return tx.Put(kv.Unchecked, uncheckedKey(dependency, blk.Hash()), rec)
}

// Take returns every block gapped on dependency and clears them from both
// the in-memory cache and the persisted store, so a caller can attempt to
// reprocess them now that dependency exists.
func (g *GapCache) Take(tx kv.RwTx, dependency raitypes.Hash) ([]block.Block, error) {
	g.mu.Lock()
	hashes, _ := g.byDep.Get(dependency)
	g.byDep.Remove(dependency)
	g.mu.Unlock()

	out := make([]block.Block, 0, len(hashes))
	for _, h := range hashes {
		key := uncheckedKey(dependency, h)
		rec, ok, err := tx.Get(kv.Unchecked, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // evicted from the store independently of the memory cache
		}
		if len(rec) < 1 {
			continue
		}
		blk, err := block.Deserialize(bytes.NewReader(rec[1:]), block.Type(rec[0]))
		if err != nil {
			continue
		}
		if err := tx.Delete(kv.Unchecked, key); err != nil {
			return nil, err
		}
		out = append(out, blk)
	}
	return out, nil
}
