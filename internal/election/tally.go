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
	"bytes"
	"sort"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// tally sums each candidate block's representative weight and returns the
// hash with the greatest total. Ties are broken by lexicographically
// smallest hash rather than map iteration order, so the winner is a pure
// function of the vote set regardless of the order votes were applied
// (§8 P5) — Go deliberately randomizes map range order, so picking a
// tied winner by walking totals directly is not reproducible.
func tally(weights WeightFunc, repVotes map[raitypes.Account]repEntry) (raitypes.Hash, raitypes.Amount, error) {
	totals := make(map[raitypes.Hash]raitypes.Amount)
	for rep, entry := range repVotes {
		w, err := weights(rep)
		if err != nil {
			return raitypes.Hash{}, raitypes.Amount{}, err
		}
		sum, overflow := totals[entry.candidate].Add(w)
		if overflow {
			sum = raitypes.MaxAmountValue()
		}
		totals[entry.candidate] = sum
	}

	hashes := make([]raitypes.Hash, 0, len(totals))
	for hash := range totals {
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })

	var winner raitypes.Hash
	var winnerWeight raitypes.Amount
	first := true
	for _, hash := range hashes {
		weight := totals[hash]
		if first || weight.Cmp(winnerWeight) > 0 {
			winner = hash
			winnerWeight = weight
			first = false
		}
	}
	return winner, winnerWeight, nil
}

// uncontestedThreshold is half of supply; a candidate's tally (the summed
// weight of every representative voting for it) must exceed it.
func uncontestedThreshold(supply raitypes.Amount) raitypes.Amount {
	two := raitypes.NewAmount(2)
	half, _ := supply.DivFloor(two)
	return half
}

// contestedThreshold requires broader agreement once the root has seen more
// than one distinct candidate: 15/16 of supply. Divides before multiplying
// so the intermediate never exceeds supply itself — supply*15 can overflow
// the 128-bit domain (e.g. at genesis's full 2^128-1 supply) even though
// 15/16 of supply never does.
func contestedThreshold(supply raitypes.Amount) raitypes.Amount {
	fifteen := raitypes.NewAmount(15)
	sixteen := raitypes.NewAmount(16)
	sixteenth, _ := supply.DivFloor(sixteen)
	out, overflow := sixteenth.MulFloor(fifteen)
	if overflow {
		out = raitypes.MaxAmountValue()
	}
	return out
}
