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
	"errors"
	"io"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raitypes"
	"github.com/raiprotocol/rai/internal/wire"
)

// ErrUnknownAccount is returned by ServeBulkPull when the requested start
// account has no chain locally.
var ErrUnknownAccount = errors.New("bootstrap: unknown start account")

// ServeBulkPull streams req.Start's chain from its current head back
// toward (but not past) req.End, newest-to-oldest, terminated by the
// not-a-block sentinel (§4.5).
func ServeBulkPull(tx kv.RoTx, w io.Writer, req wire.BulkPullRequest) error {
	st, ok, err := ledger.GetAccount(tx, req.Start)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownAccount
	}
	cur := st.Head
	for cur != req.End && !cur.IsZero() {
		blk, ok, err := ledger.GetBlock(tx, cur)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := wire.WriteBulkPullBlock(w, blk); err != nil {
			return err
		}
		prev, hasPrev := block.Previous(blk)
		if !hasPrev {
			break
		}
		cur = prev
	}
	return wire.WriteBulkPullEnd(w)
}

// ErrGap is returned by Replay at the first staged block whose previous or
// source is still missing; that block is parked in the gap cache and the
// replay stops there per §4.5 ("a gap source/gap previous halts the pull").
var ErrGap = errors.New("bootstrap: gap in bulk-pull response")

// Stage reads a bulk-pull response stream into the bootstrap sub-space in
// the order it arrives (newest-to-oldest), returning the staged blocks
// oldest-to-newest so the caller can replay them through ledger.Process in
// chain order.
func Stage(tx kv.RwTx, r io.Reader) ([]block.Block, error) {
	var newestFirst []block.Block
	for {
		blk, ok, err := wire.ReadBulkPullBlock(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := putStaged(tx, blk); err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, blk)
	}
	oldestFirst := make([]block.Block, len(newestFirst))
	for i, blk := range newestFirst {
		oldestFirst[len(newestFirst)-1-i] = blk
	}
	return oldestFirst, nil
}

func putStaged(tx kv.RwTx, blk block.Block) error {
	body, err := blk.MarshalBinary()
	if err != nil {
		return err
	}
	rec := append([]byte{byte(blk.Type())}, body...)
	hash := blk.Hash()
	return tx.Put(kv.Bootstrap, hash[:], rec)
}

func deleteStaged(tx kv.RwTx, hash raitypes.Hash) error {
	return tx.Delete(kv.Bootstrap, hash[:])
}

// Replay applies staged oldest-to-newest through ledger.Process. A block
// whose predecessor or source is still missing is parked in the gap cache
// and Replay stops, returning ErrGap; the caller is expected to resume
// once the missing dependency is supplied by another pull. Every block
// applied so far stays committed (§4.5: "partial progress is kept").
func Replay(tx kv.RwTx, gaps *ledger.GapCache, staged []block.Block, now uint64) error {
	for _, blk := range staged {
		result, err := ledger.Process(tx, blk, now)
		if err != nil {
			return err
		}
		switch result.Code {
		case ledger.Progress:
			if err := deleteStaged(tx, blk.Hash()); err != nil {
				return err
			}
		case ledger.GapPrevious, ledger.GapSource:
			dep, _ := block.Previous(blk)
			if result.Code == ledger.GapSource {
				dep, _ = block.Source(blk)
			}
			if err := gaps.Add(tx, dep, blk); err != nil {
				return err
			}
			return ErrGap
		default:
			// Old/Fork/BadSignature/etc: the block is already resolved
			// one way or another locally; drop the staged copy and move
			// on rather than aborting the whole pull over it.
			if err := deleteStaged(tx, blk.Hash()); err != nil {
				return err
			}
		}
	}
	return nil
}
