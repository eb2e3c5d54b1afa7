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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// Publish is envelope + 8-byte work + typed block body (§6). ConfirmReq
// shares this exact shape.
type Publish struct {
	Work  uint64
	Block block.Block
}

func (p Publish) MarshalBinary() ([]byte, error) {
	body, err := p.Block.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint64(out, p.Work)
	copy(out[8:], body)
	return out, nil
}

func ReadPublish(r io.Reader, blockType block.Type) (Publish, error) {
	var workBuf [8]byte
	if _, err := io.ReadFull(r, workBuf[:]); err != nil {
		return Publish{}, err
	}
	blk, err := block.Deserialize(r, blockType)
	if err != nil {
		return Publish{}, err
	}
	return Publish{Work: binary.LittleEndian.Uint64(workBuf[:]), Block: blk}, nil
}

// ConfirmAck is a publish-shaped message with account, signature, and
// sequence prepended before the block (§6).
type ConfirmAck struct {
	Account   raitypes.Account
	Signature raitypes.Signature
	Sequence  uint64
	Work      uint64
	Block     block.Block
}

func (a ConfirmAck) MarshalBinary() ([]byte, error) {
	body, err := a.Block.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(a.Account[:])
	buf.Write(a.Signature[:])
	var seqBuf, workBuf [8]byte
	binary.LittleEndian.PutUint64(seqBuf[:], a.Sequence)
	binary.LittleEndian.PutUint64(workBuf[:], a.Work)
	buf.Write(seqBuf[:])
	buf.Write(workBuf[:])
	buf.Write(body)
	return buf.Bytes(), nil
}

func ReadConfirmAck(r io.Reader, blockType block.Type) (ConfirmAck, error) {
	var fixed [raitypes.AccountLength + raitypes.SignatureLength + 16]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return ConfirmAck{}, err
	}
	var a ConfirmAck
	off := 0
	copy(a.Account[:], fixed[off:off+raitypes.AccountLength])
	off += raitypes.AccountLength
	copy(a.Signature[:], fixed[off:off+raitypes.SignatureLength])
	off += raitypes.SignatureLength
	a.Sequence = binary.LittleEndian.Uint64(fixed[off:])
	off += 8
	a.Work = binary.LittleEndian.Uint64(fixed[off:])

	blk, err := block.Deserialize(r, blockType)
	if err != nil {
		return ConfirmAck{}, err
	}
	a.Block = blk
	return a, nil
}
