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
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/raitypes"
)

func genRep(t *testing.T) (raitypes.Account, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var a raitypes.Account
	copy(a[:], pub)
	return a, priv
}

func TestSingleRepresentativeUncontestedConfirm(t *testing.T) {
	rep, priv := genRep(t)
	supply := raitypes.MaxAmountValue()

	root := raitypes.Hash{0x01}
	candidate := raitypes.Hash{0x02}
	e := NewElection(root, candidate)

	weights := func(a raitypes.Account) (raitypes.Amount, error) { return supply, nil }

	v := Sign(rep, priv, 1, candidate)
	res, err := e.Vote(weights, supply, v)
	require.NoError(t, err)
	require.Equal(t, candidate, res.Winner)
	require.True(t, res.Confirmed, "a single representative holding the entire supply clears uncontested threshold")
}

func TestStaleSequenceRejected(t *testing.T) {
	rep, priv := genRep(t)
	supply := raitypes.MaxAmountValue()
	root := raitypes.Hash{0x01}
	candidateA := raitypes.Hash{0x02}
	candidateB := raitypes.Hash{0x03}
	e := NewElection(root, candidateA)
	weights := func(a raitypes.Account) (raitypes.Amount, error) { return raitypes.NewAmount(1), nil }

	v1 := Sign(rep, priv, 5, candidateA)
	_, err := e.Vote(weights, supply, v1)
	require.NoError(t, err)

	stale := Sign(rep, priv, 3, candidateB)
	_, err = e.Vote(weights, supply, stale)
	require.ErrorIs(t, err, ErrStaleSequence)

	newer := Sign(rep, priv, 6, candidateB)
	res, err := e.Vote(weights, supply, newer)
	require.NoError(t, err)
	require.Equal(t, candidateB, res.Winner)
	require.True(t, res.Changed)
}

func TestInvalidSignatureRejected(t *testing.T) {
	rep, _ := genRep(t)
	_, otherPriv := genRep(t)
	supply := raitypes.MaxAmountValue()
	e := NewElection(raitypes.Hash{0x01}, raitypes.Hash{0x02})
	weights := func(a raitypes.Account) (raitypes.Amount, error) { return raitypes.NewAmount(1), nil }

	v := Sign(rep, otherPriv, 1, raitypes.Hash{0x02})
	_, err := e.Vote(weights, supply, v)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestUncontestedSameCandidateStaysUncontested(t *testing.T) {
	repA, privA := genRep(t)
	repB, privB := genRep(t)
	supply := raitypes.NewAmount(16)
	weightA := raitypes.NewAmount(8)
	weightB := raitypes.NewAmount(8)

	root := raitypes.Hash{0x01}
	candidate := raitypes.Hash{0x02}
	e := NewElection(root, candidate)
	weights := func(a raitypes.Account) (raitypes.Amount, error) {
		if a == repA {
			return weightA, nil
		}
		return weightB, nil
	}

	// repA alone holds exactly half of supply: the uncontested threshold
	// (half of supply) requires strictly more than that, so no confirm yet.
	res, err := e.Vote(weights, supply, Sign(repA, privA, 1, candidate))
	require.NoError(t, err)
	require.False(t, res.Confirmed)

	// repB votes for the same candidate: only one distinct candidate has
	// ever been seen, so this is still uncontested (§4.4). Both reps
	// together hold all of supply, clearing the half-of-supply threshold.
	res, err = e.Vote(weights, supply, Sign(repB, privB, 1, candidate))
	require.NoError(t, err)
	require.True(t, res.Confirmed)
}

func TestContestedDivergentCandidatesRequiresSuperMajority(t *testing.T) {
	repA, privA := genRep(t)
	repB, privB := genRep(t)
	supply := raitypes.NewAmount(16)
	weightA := raitypes.NewAmount(8)
	weightB := raitypes.NewAmount(8)

	root := raitypes.Hash{0x01}
	candidateA := raitypes.Hash{0x02}
	candidateB := raitypes.Hash{0x03}
	e := NewElection(root, candidateA)
	weights := func(a raitypes.Account) (raitypes.Amount, error) {
		if a == repA {
			return weightA, nil
		}
		return weightB, nil
	}

	res, err := e.Vote(weights, supply, Sign(repA, privA, 1, candidateA))
	require.NoError(t, err)
	require.False(t, res.Confirmed)

	// repB votes for a genuinely different candidate: two distinct
	// candidates have now been seen, so the race is contested and needs
	// 15/16 of supply behind a single candidate. The 8/8 split between
	// candidateA and candidateB clears neither.
	res, err = e.Vote(weights, supply, Sign(repB, privB, 1, candidateB))
	require.NoError(t, err)
	require.False(t, res.Confirmed)
}
