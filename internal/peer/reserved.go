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

import "net/netip"

// Reserved reports whether endpoint falls in a range this node will never
// dial or accept gossip about: broadcast, the RFC5737 TEST-NET blocks,
// 233.252.0.0/24, and the RFC6890 reserved block above 240.0.0.0
// (reserved_address).
func Reserved(endpoint netip.AddrPort) bool {
	addr := endpoint.Addr()
	if !addr.Is4() && !addr.Is4In6() {
		return false
	}
	v4 := addr.As4()
	n := uint32(v4[0])<<24 | uint32(v4[1])<<16 | uint32(v4[2])<<8 | uint32(v4[3])
	switch {
	case n <= 0x00ffffff: // Broadcast RFC1700
		return true
	case n >= 0xc0000200 && n <= 0xc00002ff: // TEST-NET RFC5737
		return true
	case n >= 0xc6336400 && n <= 0xc63364ff: // TEST-NET-2 RFC5737
		return true
	case n >= 0xcb007100 && n <= 0xcb0071ff: // TEST-NET-3 RFC5737
		return true
	case n >= 0xe9fc0000 && n <= 0xe9fc00ff:
		return true
	case n >= 0xf0000000: // Reserved RFC6890
		return true
	}
	return false
}
