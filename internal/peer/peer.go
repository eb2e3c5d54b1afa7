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

// Package peer tracks known peer endpoints and their contact history. The
// transport that actually dials and accepts connections lives elsewhere;
// this package only keeps the table peer_container kept: who we know about,
// when we last heard from them, and a random sample for keepalive gossip.
package peer

import (
	"crypto/rand"
	"math/big"
	"net/netip"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info mirrors peer_information: an endpoint plus its last-contact and
// last-attempt timestamps.
type Info struct {
	Endpoint    netip.AddrPort
	LastContact time.Time
	LastAttempt time.Time
}

// Table is the peer_container equivalent: a mutex-guarded set of known
// endpoints, each with a per-peer rate limiter for inbound message traffic.
type Table struct {
	mu    sync.Mutex
	self  netip.AddrPort
	peers map[netip.AddrPort]*entry

	// limiterRate/limiterBurst size every peer's rate.Limiter; the
	// teacher's bsc-erigon talerpc layer uses the same fixed-budget
	// pattern for request throttling.
	limiterRate  rate.Limit
	limiterBurst int
}

type entry struct {
	info    Info
	limiter *rate.Limiter
}

// New returns an empty table. self is excluded from every insert, matching
// peer_container's refusal to peer with itself.
func New(self netip.AddrPort, limiterRate rate.Limit, limiterBurst int) *Table {
	return &Table{
		self:         self,
		peers:        make(map[netip.AddrPort]*entry),
		limiterRate:  limiterRate,
		limiterBurst: limiterBurst,
	}
}

// IncomingFromPeer records a message just received from endpoint, creating
// the entry on first contact and bumping last_contact/last_attempt
// otherwise (incoming_from_peer).
func (t *Table) IncomingFromPeer(endpoint netip.AddrPort) {
	if Reserved(endpoint) || endpoint == t.self {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	e, ok := t.peers[endpoint]
	if !ok {
		t.peers[endpoint] = &entry{
			info:    Info{Endpoint: endpoint, LastContact: now, LastAttempt: now},
			limiter: rate.NewLimiter(t.limiterRate, t.limiterBurst),
		}
		return
	}
	e.info.LastContact = now
	e.info.LastAttempt = now
}

// InsertPeer registers endpoint as known without marking contact, returning
// true if it was already known or reserved (insert_peer's "already known"
// boolean).
func (t *Table) InsertPeer(endpoint netip.AddrPort) bool {
	if Reserved(endpoint) {
		return true
	}
	if endpoint == t.self {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.peers[endpoint]; ok {
		return true
	}
	t.peers[endpoint] = &entry{
		info:    Info{Endpoint: endpoint, LastAttempt: time.Now()},
		limiter: rate.NewLimiter(t.limiterRate, t.limiterBurst),
	}
	return false
}

// Known reports whether endpoint already has a table entry.
func (t *Table) Known(endpoint netip.AddrPort) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.peers[endpoint]
	return ok
}

// Allow consults endpoint's rate limiter, reporting whether a message
// arriving right now should be processed. Unknown endpoints are always
// allowed; Allow does not insert them into the table.
func (t *Table) Allow(endpoint netip.AddrPort) bool {
	t.mu.Lock()
	e, ok := t.peers[endpoint]
	t.mu.Unlock()
	if !ok {
		return true
	}
	return e.limiter.Allow()
}

// List returns every known peer (peer_container::list).
func (t *Table) List() []Info {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Info, 0, len(t.peers))
	for _, e := range t.peers {
		out = append(out, e.info)
	}
	return out
}

// Size reports the number of known peers.
func (t *Table) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.peers)
}

// Empty reports whether the table holds no peers.
func (t *Table) Empty() bool {
	return t.Size() == 0
}

// randSlots is the fixed keepalive fan-out width (§6's 8 peer slots).
const randSlots = 8

// RandomFill fills target with up to randSlots endpoints sampled without
// replacement from the table, zero-padding any remainder
// (peer_container::random_fill).
func RandomFill(t *Table, target *[randSlots]netip.AddrPort) error {
	peers := t.List()
	for len(peers) > len(target) {
		idx, err := randIndex(len(peers))
		if err != nil {
			return err
		}
		peers[idx] = peers[len(peers)-1]
		peers = peers[:len(peers)-1]
	}
	var zero netip.AddrPort
	for i := range target {
		target[i] = zero
	}
	for i, p := range peers {
		target[i] = p.Endpoint
	}
	return nil
}

func randIndex(n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// PurgeList evicts every peer whose last_contact is older than cutoff,
// returning the evicted entries (peer_container::purge_list).
func (t *Table) PurgeList(cutoff time.Time) []Info {
	t.mu.Lock()
	defer t.mu.Unlock()
	var purged []Info
	for addr, e := range t.peers {
		if e.info.LastContact.Before(cutoff) {
			purged = append(purged, e.info)
			delete(t.peers, addr)
		}
	}
	return purged
}
