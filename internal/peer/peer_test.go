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

package peer

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func addr(a, b, c, d byte, port uint16) netip.AddrPort {
	return netip.AddrPortFrom(netip.AddrFrom4([4]byte{a, b, c, d}), port)
}

func TestIncomingFromPeerInsertsAndUpdates(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Inf, 0)
	require.True(t, tbl.Empty())

	p := addr(10, 0, 0, 2, 7075)
	tbl.IncomingFromPeer(p)
	require.Equal(t, 1, tbl.Size())

	list := tbl.List()
	require.Len(t, list, 1)
	require.Equal(t, p, list[0].Endpoint)

	tbl.IncomingFromPeer(p)
	require.Equal(t, 1, tbl.Size(), "repeat contact updates, does not duplicate")
}

func TestIncomingFromSelfIgnored(t *testing.T) {
	self := addr(10, 0, 0, 1, 7075)
	tbl := New(self, rate.Inf, 0)
	tbl.IncomingFromPeer(self)
	require.True(t, tbl.Empty())
}

func TestInsertPeerReportsKnown(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Inf, 0)
	p := addr(10, 0, 0, 2, 7075)

	already := tbl.InsertPeer(p)
	require.False(t, already)

	already = tbl.InsertPeer(p)
	require.True(t, already)
}

func TestReservedAddressRejected(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Inf, 0)
	testNet := addr(192, 0, 2, 5, 7075)
	require.True(t, Reserved(testNet))

	already := tbl.InsertPeer(testNet)
	require.True(t, already)
	require.True(t, tbl.Empty())
}

func TestRandomFillPadsWithZero(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Inf, 0)
	tbl.IncomingFromPeer(addr(10, 0, 0, 2, 7075))
	tbl.IncomingFromPeer(addr(10, 0, 0, 3, 7075))

	var target [randSlots]netip.AddrPort
	require.NoError(t, RandomFill(tbl, &target))

	nonZero := 0
	for _, p := range target {
		if p.IsValid() {
			nonZero++
		}
	}
	require.Equal(t, 2, nonZero)
}

func TestPurgeListEvictsStaleContacts(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Inf, 0)
	stale := addr(10, 0, 0, 2, 7075)
	fresh := addr(10, 0, 0, 3, 7075)

	tbl.IncomingFromPeer(stale)
	time.Sleep(2 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(2 * time.Millisecond)
	tbl.IncomingFromPeer(fresh)

	purged := tbl.PurgeList(cutoff)
	require.Len(t, purged, 1)
	require.Equal(t, stale, purged[0].Endpoint)
	require.Equal(t, 1, tbl.Size())

	remaining := tbl.List()
	require.Equal(t, fresh, remaining[0].Endpoint)
}

func TestAllowUnknownEndpointPasses(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Limit(1), 1)
	require.True(t, tbl.Allow(addr(10, 0, 0, 9, 7075)))
}

func TestAllowRateLimitsKnownPeer(t *testing.T) {
	tbl := New(addr(10, 0, 0, 1, 7075), rate.Limit(1), 1)
	p := addr(10, 0, 0, 2, 7075)
	tbl.IncomingFromPeer(p)

	require.True(t, tbl.Allow(p))
	require.False(t, tbl.Allow(p), "burst of 1 exhausted immediately")
}
