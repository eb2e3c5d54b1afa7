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

package block

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/raiprotocol/rai/internal/raitypes"
)

// ErrMalformed is returned by Deserialize/ReadTagged on any length or tag
// mismatch; callers treat the packet as dropped (§4.1 failure semantics),
// they never propagate this as a fatal error.
var ErrMalformed = errors.New("block: malformed or truncated block body")

const (
	openSize    = 32 + 32 + 32 + raitypes.SignatureLength + 8
	sendSize    = 32 + 32 + 16 + raitypes.SignatureLength + 8
	receiveSize = 32 + 32 + raitypes.SignatureLength + 8
	changeSize  = 32 + 32 + raitypes.SignatureLength + 8
)

func (b *Open) MarshalBinary() ([]byte, error) {
	out := make([]byte, openSize)
	off := 0
	off += copy(out[off:], b.Source[:])
	off += copy(out[off:], b.Representative[:])
	off += copy(out[off:], b.Account[:])
	off += copy(out[off:], b.Sig[:])
	binary.LittleEndian.PutUint64(out[off:], b.WorkNonce)
	return out, nil
}

func (b *Send) MarshalBinary() ([]byte, error) {
	out := make([]byte, sendSize)
	off := 0
	off += copy(out[off:], b.Previous[:])
	off += copy(out[off:], b.Destination[:])
	bal := b.Balance.Bytes16()
	off += copy(out[off:], bal[:])
	off += copy(out[off:], b.Sig[:])
	binary.LittleEndian.PutUint64(out[off:], b.WorkNonce)
	return out, nil
}

func (b *Receive) MarshalBinary() ([]byte, error) {
	out := make([]byte, receiveSize)
	off := 0
	off += copy(out[off:], b.Previous[:])
	off += copy(out[off:], b.Source[:])
	off += copy(out[off:], b.Sig[:])
	binary.LittleEndian.PutUint64(out[off:], b.WorkNonce)
	return out, nil
}

func (b *Change) MarshalBinary() ([]byte, error) {
	out := make([]byte, changeSize)
	off := 0
	off += copy(out[off:], b.Previous[:])
	off += copy(out[off:], b.Representative[:])
	off += copy(out[off:], b.Sig[:])
	binary.LittleEndian.PutUint64(out[off:], b.WorkNonce)
	return out, nil
}

// Deserialize decodes a block body of the given type from r. It returns
// ErrMalformed (never a lower-level io error) on any short read, so
// callers can uniformly treat it as a dropped packet.
func Deserialize(r io.Reader, t Type) (Block, error) {
	switch t {
	case TypeOpen:
		buf := make([]byte, openSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrMalformed
		}
		b := &Open{}
		off := 0
		copy(b.Source[:], buf[off:off+32])
		off += 32
		copy(b.Representative[:], buf[off:off+32])
		off += 32
		copy(b.Account[:], buf[off:off+32])
		off += 32
		copy(b.Sig[:], buf[off:off+raitypes.SignatureLength])
		off += raitypes.SignatureLength
		b.WorkNonce = binary.LittleEndian.Uint64(buf[off:])
		return b, nil
	case TypeSend:
		buf := make([]byte, sendSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrMalformed
		}
		b := &Send{}
		off := 0
		copy(b.Previous[:], buf[off:off+32])
		off += 32
		copy(b.Destination[:], buf[off:off+32])
		off += 32
		var bal [16]byte
		copy(bal[:], buf[off:off+16])
		off += 16
		b.Balance = raitypes.AmountFromBytes16(bal)
		copy(b.Sig[:], buf[off:off+raitypes.SignatureLength])
		off += raitypes.SignatureLength
		b.WorkNonce = binary.LittleEndian.Uint64(buf[off:])
		return b, nil
	case TypeReceive:
		buf := make([]byte, receiveSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrMalformed
		}
		b := &Receive{}
		off := 0
		copy(b.Previous[:], buf[off:off+32])
		off += 32
		copy(b.Source[:], buf[off:off+32])
		off += 32
		copy(b.Sig[:], buf[off:off+raitypes.SignatureLength])
		off += raitypes.SignatureLength
		b.WorkNonce = binary.LittleEndian.Uint64(buf[off:])
		return b, nil
	case TypeChange:
		buf := make([]byte, changeSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrMalformed
		}
		b := &Change{}
		off := 0
		copy(b.Previous[:], buf[off:off+32])
		off += 32
		copy(b.Representative[:], buf[off:off+32])
		off += 32
		copy(b.Sig[:], buf[off:off+raitypes.SignatureLength])
		off += raitypes.SignatureLength
		b.WorkNonce = binary.LittleEndian.Uint64(buf[off:])
		return b, nil
	default:
		return nil, ErrMalformed
	}
}

// ReadTagged reads a one-byte type tag followed by the matching body, the
// shape used by bulk-pull streams (§6). A tag of TypeNotABlock yields
// (nil, TypeNotABlock, io.EOF) to signal stream end.
func ReadTagged(r io.Reader) (Block, Type, error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return nil, TypeNotABlock, err
	}
	t := Type(tagBuf[0])
	if t == TypeNotABlock {
		return nil, t, io.EOF
	}
	b, err := Deserialize(r, t)
	if err != nil {
		return nil, t, err
	}
	return b, t, nil
}

// WriteTagged writes the one-byte type tag followed by b's serialized body.
func WriteTagged(w io.Writer, b Block) error {
	if _, err := w.Write([]byte{byte(b.Type())}); err != nil {
		return err
	}
	body, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// WriteNotABlock writes the sentinel tag that terminates a bulk-pull stream.
func WriteNotABlock(w io.Writer) error {
	_, err := w.Write([]byte{byte(TypeNotABlock)})
	return err
}
