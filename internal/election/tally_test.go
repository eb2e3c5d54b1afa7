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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// TestTallyTieBreaksDeterministically exercises an exact tie between two
// candidates' tallies: the winner must be the same on every call, not a
// function of Go's randomized map iteration order (§8 P5).
func TestTallyTieBreaksDeterministically(t *testing.T) {
	repA, _ := genRep(t)
	repB, _ := genRep(t)

	candidateLow := raitypes.Hash{0x01}
	candidateHigh := raitypes.Hash{0x02}

	repVotes := map[raitypes.Account]repEntry{
		repA: {sequence: 1, candidate: candidateHigh},
		repB: {sequence: 1, candidate: candidateLow},
	}
	weights := func(a raitypes.Account) (raitypes.Amount, error) {
		return raitypes.NewAmount(5), nil
	}

	for i := 0; i < 50; i++ {
		winner, total, err := tally(weights, repVotes)
		require.NoError(t, err)
		require.Equal(t, candidateLow, winner, "tie must resolve to the lexicographically smallest candidate")
		require.Equal(t, raitypes.NewAmount(5).Cmp(total), 0)
	}
}

// TestTallyNoTieWinnerWeight checks the non-tie path picks the strictly
// heavier candidate regardless of map order, since tally sums per-candidate
// weight before comparing.
func TestTallyNoTieWinnerWeight(t *testing.T) {
	repA, _ := genRep(t)
	repB, _ := genRep(t)
	repC, _ := genRep(t)

	light := raitypes.Hash{0x01}
	heavy := raitypes.Hash{0x02}

	repVotes := map[raitypes.Account]repEntry{
		repA: {sequence: 1, candidate: light},
		repB: {sequence: 1, candidate: heavy},
		repC: {sequence: 1, candidate: heavy},
	}
	weights := func(a raitypes.Account) (raitypes.Amount, error) {
		return raitypes.NewAmount(3), nil
	}

	winner, total, err := tally(weights, repVotes)
	require.NoError(t, err)
	require.Equal(t, heavy, winner)
	require.Equal(t, raitypes.NewAmount(6).Cmp(total), 0)
}

// TestContestedThresholdAtGenesisSupply guards against the 15/16
// computation overflowing its 128-bit domain at the genesis-scale supply
// (2**128-1): multiplying by 15 before dividing by 16 blows past the
// ceiling even though the true result is well within range.
func TestContestedThresholdAtGenesisSupply(t *testing.T) {
	supply := raitypes.MaxAmountValue()
	threshold := contestedThreshold(supply)
	require.False(t, threshold.IsZero())

	half := uncontestedThreshold(supply)
	require.True(t, threshold.Cmp(half) > 0, "15/16 of supply must exceed half of supply")
	require.True(t, threshold.Cmp(supply) <= 0, "15/16 of supply must not exceed supply")
}
