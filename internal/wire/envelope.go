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

// Package wire implements §6's on-the-wire message codecs: the shared
// envelope and the keepalive/publish/confirm_req/confirm_ack/bulk_pull/
// frontier_req bodies. Socket/async-IO plumbing is out of scope; this
// package only encodes and decodes byte streams.
package wire

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/raiprotocol/rai/internal/block"
)

// MessageType is the envelope's type tag (§6).
type MessageType byte

const (
	TypeKeepalive   MessageType = 2
	TypePublish     MessageType = 3
	TypeConfirmReq  MessageType = 4
	TypeConfirmAck  MessageType = 5
	TypeBulkPull    MessageType = 6
	TypeBulkPush    MessageType = 7
	TypeFrontierReq MessageType = 8
)

// Magic identifies the network: live, beta, or test, chosen by the second
// byte (the first is always 'R' for this protocol family).
type Magic [2]byte

var (
	MagicLive = Magic{'R', 'A'}
	MagicBeta = Magic{'R', 'B'}
	MagicTest = Magic{'R', 'T'}
)

// ipv4OnlyBit is extensions bit 0 (§6).
const ipv4OnlyBit = 1 << 0

// blockTypeShift/blockTypeMask carve the block-type nibble out of
// extensions bits 8-12.
const (
	blockTypeShift = 8
	blockTypeMask  = 0x1F
)

// Envelope is the fixed header shared by every message (§6): magic bytes,
// a version triple, the type tag, and a bitfield of extensions.
type Envelope struct {
	Magic          Magic
	VersionMax     uint8
	VersionUsing   uint8
	VersionMin     uint8
	Type           MessageType
	IPv4Only       bool
	ExtensionBlock block.Type // TypeNotABlock (0) when the message carries no block
}

const envelopeSize = 2 + 1 + 1 + 1 + 1 + 2

func (e Envelope) extensions() uint16 {
	var ext uint16
	if e.IPv4Only {
		ext |= ipv4OnlyBit
	}
	ext |= uint16(e.ExtensionBlock&blockTypeMask) << blockTypeShift
	return ext
}

func (e Envelope) MarshalBinary() ([]byte, error) {
	out := make([]byte, envelopeSize)
	out[0], out[1] = e.Magic[0], e.Magic[1]
	out[2] = e.VersionMax
	out[3] = e.VersionUsing
	out[4] = e.VersionMin
	out[5] = byte(e.Type)
	binary.LittleEndian.PutUint16(out[6:], e.extensions())
	return out, nil
}

var ErrMalformedEnvelope = errors.New("wire: malformed envelope")

func ReadEnvelope(r io.Reader) (Envelope, error) {
	var buf [envelopeSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Envelope{}, err
	}
	ext := binary.LittleEndian.Uint16(buf[6:])
	return Envelope{
		Magic:          Magic{buf[0], buf[1]},
		VersionMax:     buf[2],
		VersionUsing:   buf[3],
		VersionMin:     buf[4],
		Type:           MessageType(buf[5]),
		IPv4Only:       ext&ipv4OnlyBit != 0,
		ExtensionBlock: block.Type((ext >> blockTypeShift) & blockTypeMask),
	}, nil
}
