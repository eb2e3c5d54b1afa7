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

// Package bootstrap implements §4.5's frontier-diff and bulk-pull
// anti-entropy protocols on top of internal/ledger. Socket transport is
// out of scope (internal/wire supplies the byte codecs); this package
// takes an io.Reader/io.Writer pair and drives the protocol over it.
package bootstrap

import (
	"io"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/kv"
	"github.com/raiprotocol/rai/internal/ledger"
	"github.com/raiprotocol/rai/internal/raitypes"
	"github.com/raiprotocol/rai/internal/wire"
)

// ServeFrontierReq answers a frontier-req by streaming every account at or
// after start whose modified_timestamp is at or after ageThreshold, in
// ascending account order, terminated by the zero pair (§4.5).
func ServeFrontierReq(tx kv.RoTx, w io.Writer, req wire.FrontierReqRequest) error {
	sent := uint32(0)
	err := ledger.IterateAccounts(tx, req.Start, func(acct raitypes.Account, st ledger.AccountState) (bool, error) {
		if req.Count != 0 && sent >= req.Count {
			return false, nil
		}
		if uint32(st.ModifiedTimestamp) < req.Age {
			return true, nil
		}
		if werr := wire.WriteFrontierPair(w, wire.FrontierPair{Account: acct, Head: st.Head}); werr != nil {
			return false, werr
		}
		sent++
		return true, nil
	})
	if err != nil {
		return err
	}
	return wire.WriteFrontierEnd(w)
}

// Action is a client's decision for one frontier pair, per §4.5's four
// cases.
type Action int

const (
	// ActionNone means the pair matches the local chain exactly.
	ActionNone Action = iota
	// ActionPullFull means the account is unknown locally: pull the full
	// chain (start=account, end=zero hash).
	ActionPullFull
	// ActionPullSuffix means the local head is an ancestor of the
	// remote head: pull only the suffix after the local head.
	ActionPullSuffix
	// ActionPullDivergent means the local chain is neither identical to
	// nor an ancestor of the remote one: pull the full remote chain and
	// let the validator/consensus settle the fork.
	ActionPullDivergent
)

// Plan is what to do about one frontier pair the server sent: a bulk-pull
// request to issue, or nothing.
type Plan struct {
	Account raitypes.Account
	Action  Action
	// End is the bulk-pull end hash: the local head for a suffix pull,
	// the zero hash (pull to genesis) for a full pull.
	End raitypes.Hash
}

// Decide implements §4.5's frontier-diff decision table for one
// (account, remoteHead) pair against the local store.
func Decide(tx kv.RoTx, pair wire.FrontierPair) (Plan, error) {
	st, known, err := ledger.GetAccount(tx, pair.Account)
	if err != nil {
		return Plan{}, err
	}
	if !known {
		return Plan{Account: pair.Account, Action: ActionPullFull}, nil
	}
	if st.Head == pair.Head {
		return Plan{Account: pair.Account, Action: ActionNone}, nil
	}
	isAncestor, err := localHeadIsAncestor(tx, pair.Account, st.Head, pair.Head)
	if err != nil {
		return Plan{}, err
	}
	if isAncestor {
		return Plan{Account: pair.Account, Action: ActionPullSuffix, End: st.Head}, nil
	}
	return Plan{Account: pair.Account, Action: ActionPullDivergent}, nil
}

// maxAncestorWalk bounds the backward chain walk so a corrupt or
// adversarial frontier pair can never spin the decision loop forever.
const maxAncestorWalk = 1 << 20

// localHeadIsAncestor reports whether localHead is reachable by walking
// remoteHead backward through Previous links, stopping once it leaves the
// account or the chain runs out. Only meaningful when remoteHead is
// already present locally (the server having sent a differing head that
// this node has not fetched yet resolves to "not an ancestor", the safe
// default that triggers a full divergent pull).
func localHeadIsAncestor(tx kv.RoTx, acct raitypes.Account, localHead, remoteHead raitypes.Hash) (bool, error) {
	cur := remoteHead
	for i := 0; i < maxAncestorWalk; i++ {
		if cur == localHead {
			return true, nil
		}
		blk, ok, err := ledger.GetBlock(tx, cur)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		owner, ok, err := ledger.AccountOf(tx, cur)
		if err != nil {
			return false, err
		}
		if !ok || owner != acct {
			return false, nil
		}
		prev, hasPrev := block.Previous(blk)
		if !hasPrev {
			return false, nil
		}
		cur = prev
	}
	return false, nil
}
