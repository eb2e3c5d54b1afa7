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

package raitypes

import (
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// alphabet is the human-facing base-32 alphabet used for account strings
// (§6). It deliberately omits visually ambiguous characters (0, 2, l, v).
const alphabet = "13456789abcdefghijkmnopqrstuwxyz"

var reverseAlphabet = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = int8(i)
	}
	return m
}()

// AddressPrefix selects the human-facing prefix for an account string; it is
// a function of network variant (live vs beta), not a global constant, so
// tests can exercise both without touching process-level state.
type AddressPrefix string

const (
	PrefixLive AddressPrefix = "rai_"
	PrefixBeta AddressPrefix = "rab_"
)

// String encodes the account as "<prefix><52 base32 chars><8 base32 checksum
// chars>": the 256-bit public key padded to 260 bits, followed by a 40-bit
// BLAKE2b checksum of the key, byte-reversed before encoding.
func (a Account) String() string { return a.Encode(PrefixLive) }

func (a Account) Encode(prefix AddressPrefix) string {
	var sb strings.Builder
	sb.WriteString(string(prefix))

	// 256 key bits + 4 leading zero pad bits = 260 bits = 52 quintets.
	sb.WriteString(encode5(a[:], 4))

	sum := addressChecksum(a)
	sb.WriteString(encode5(sum[:], 0))
	return sb.String()
}

// addressChecksum is the 5-byte (40-bit) BLAKE2b digest of the account's
// public key, stored and encoded in reversed byte order as is conventional
// for this address scheme.
func addressChecksum(a Account) [5]byte {
	h, _ := blake2b.New(5, nil)
	h.Write(a[:])
	sum := h.Sum(nil)
	var rev [5]byte
	for i := range sum {
		rev[len(sum)-1-i] = sum[i]
	}
	return rev
}

// encode5 encodes data as base-32 quintets, MSB-first, after prepending
// padBits zero bits (so the total bit length is a multiple of 5).
func encode5(data []byte, padBits int) string {
	totalBits := len(data)*8 + padBits
	nQuintets := totalBits / 5
	out := make([]byte, nQuintets)
	// bitIndex counts from the most significant bit of the padded bitstream.
	for q := 0; q < nQuintets; q++ {
		bitStart := q*5 - padBits
		var v byte
		for b := 0; b < 5; b++ {
			bi := bitStart + b
			var bit byte
			if bi >= 0 && bi < len(data)*8 {
				byteIdx := bi / 8
				bitInByte := 7 - uint(bi%8)
				bit = (data[byteIdx] >> bitInByte) & 1
			}
			v = (v << 1) | bit
		}
		out[q] = alphabet[v]
	}
	return string(out)
}

// ParseAddress decodes an account string produced by Encode/String and
// verifies its embedded checksum.
func ParseAddress(s string) (Account, error) {
	var a Account
	var prefix AddressPrefix
	switch {
	case strings.HasPrefix(s, string(PrefixLive)):
		prefix = PrefixLive
	case strings.HasPrefix(s, string(PrefixBeta)):
		prefix = PrefixBeta
	default:
		return a, errors.New("raitypes: unrecognized address prefix")
	}
	body := s[len(prefix):]
	if len(body) != 60 {
		return a, errors.New("raitypes: wrong address length")
	}
	keyPart, sumPart := body[:52], body[52:]

	keyBits, err := decode5(keyPart, 4, 256)
	if err != nil {
		return a, err
	}
	copy(a[:], keyBits)

	sumBits, err := decode5(sumPart, 0, 40)
	if err != nil {
		return a, err
	}
	var sum [5]byte
	copy(sum[:], sumBits)
	if sum != addressChecksum(a) {
		return Account{}, errors.New("raitypes: address checksum mismatch")
	}
	return a, nil
}

// decode5 is the inverse of encode5: it parses len(s) base-32 quintets,
// drops padBits leading bits, and returns exactly wantBits/8 bytes.
func decode5(s string, padBits, wantBits int) ([]byte, error) {
	totalBits := len(s)*5 - padBits
	if totalBits != wantBits {
		return nil, errors.New("raitypes: bad address segment length")
	}
	out := make([]byte, wantBits/8)
	bitPos := -padBits
	for i := 0; i < len(s); i++ {
		v := reverseAlphabet[s[i]]
		if v < 0 {
			return nil, errors.New("raitypes: invalid address character")
		}
		for b := 4; b >= 0; b-- {
			bit := (byte(v) >> uint(b)) & 1
			if bitPos >= 0 && bitPos < wantBits {
				byteIdx := bitPos / 8
				bitInByte := 7 - uint(bitPos%8)
				out[byteIdx] |= bit << bitInByte
			}
			bitPos++
		}
	}
	return out, nil
}
