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

package wire

import (
	"encoding/binary"
	"io"
	"net/netip"
)

// keepaliveSlots is the fixed number of peer address slots per message
// (§6): "8 fixed slots".
const keepaliveSlots = 8

// Keepalive carries up to keepaliveSlots peer endpoints; unused slots are
// the all-zero address. Reader and writer always encode all slots;
// NonReserved drops the zero ones.
type Keepalive struct {
	Peers [keepaliveSlots]netip.AddrPort
}

const keepaliveSlotSize = 16 + 2 // 16-byte ip6 address + u16 port

func (k Keepalive) MarshalBinary() ([]byte, error) {
	out := make([]byte, keepaliveSlots*keepaliveSlotSize)
	for i, p := range k.Peers {
		off := i * keepaliveSlotSize
		addr := p.Addr().As16()
		copy(out[off:off+16], addr[:])
		binary.LittleEndian.PutUint16(out[off+16:], p.Port())
	}
	return out, nil
}

func ReadKeepalive(r io.Reader) (Keepalive, error) {
	buf := make([]byte, keepaliveSlots*keepaliveSlotSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Keepalive{}, err
	}
	var k Keepalive
	for i := range k.Peers {
		off := i * keepaliveSlotSize
		var addr [16]byte
		copy(addr[:], buf[off:off+16])
		port := binary.LittleEndian.Uint16(buf[off+16:])
		k.Peers[i] = netip.AddrPortFrom(netip.AddrFrom16(addr), port)
	}
	return k, nil
}

// NonReserved returns the slots that name an actual address, filtering out
// the all-zero placeholder entries a partially-filled keepalive carries.
func (k Keepalive) NonReserved() []netip.AddrPort {
	out := make([]netip.AddrPort, 0, keepaliveSlots)
	for _, p := range k.Peers {
		if p.Addr().IsUnspecified() && p.Port() == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
