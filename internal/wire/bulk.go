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

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/raitypes"
)

// BulkPullRequest is the TCP bulk-pull header (§6): an 8-byte header
// (opaque to this layer, threaded through by the transport), a 32-byte
// start account, and a 32-byte end hash (zero meaning "until genesis").
type BulkPullRequest struct {
	Header [8]byte
	Start  raitypes.Account
	End    raitypes.Hash
}

const bulkPullRequestSize = 8 + raitypes.AccountLength + raitypes.HashLength

func (req BulkPullRequest) MarshalBinary() ([]byte, error) {
	out := make([]byte, bulkPullRequestSize)
	copy(out[:8], req.Header[:])
	copy(out[8:], req.Start[:])
	copy(out[8+raitypes.AccountLength:], req.End[:])
	return out, nil
}

func ReadBulkPullRequest(r io.Reader) (BulkPullRequest, error) {
	var buf [bulkPullRequestSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return BulkPullRequest{}, err
	}
	var req BulkPullRequest
	copy(req.Header[:], buf[:8])
	copy(req.Start[:], buf[8:8+raitypes.AccountLength])
	copy(req.End[:], buf[8+raitypes.AccountLength:])
	return req, nil
}

// WriteBulkPullBlock streams one (type-tag, block-body) entry of a
// bulk-pull response.
func WriteBulkPullBlock(w io.Writer, blk block.Block) error {
	body, err := blk.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(blk.Type())}); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// WriteBulkPullEnd terminates a bulk-pull response stream with the
// not_a_block sentinel tag (§6).
func WriteBulkPullEnd(w io.Writer) error {
	_, err := w.Write([]byte{byte(block.TypeNotABlock)})
	return err
}

// ReadBulkPullBlock reads one stream entry; ok=false at the not_a_block
// sentinel, which is not an error.
func ReadBulkPullBlock(r io.Reader) (blk block.Block, ok bool, err error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return nil, false, err
	}
	t := block.Type(tagBuf[0])
	if t == block.TypeNotABlock {
		return nil, false, nil
	}
	blk, err = block.Deserialize(r, t)
	if err != nil {
		return nil, false, err
	}
	return blk, true, nil
}

// FrontierReqRequest is the TCP frontier-req header (§6): an 8-byte
// header, a 32-byte start account, a max-age, and a max-count.
type FrontierReqRequest struct {
	Header [8]byte
	Start  raitypes.Account
	Age    uint32
	Count  uint32
}

const frontierReqRequestSize = 8 + raitypes.AccountLength + 4 + 4

func (req FrontierReqRequest) MarshalBinary() ([]byte, error) {
	out := make([]byte, frontierReqRequestSize)
	copy(out[:8], req.Header[:])
	off := 8
	copy(out[off:], req.Start[:])
	off += raitypes.AccountLength
	binary.LittleEndian.PutUint32(out[off:], req.Age)
	off += 4
	binary.LittleEndian.PutUint32(out[off:], req.Count)
	return out, nil
}

func ReadFrontierReqRequest(r io.Reader) (FrontierReqRequest, error) {
	var buf [frontierReqRequestSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return FrontierReqRequest{}, err
	}
	var req FrontierReqRequest
	copy(req.Header[:], buf[:8])
	off := 8
	copy(req.Start[:], buf[off:off+raitypes.AccountLength])
	off += raitypes.AccountLength
	req.Age = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	req.Count = binary.LittleEndian.Uint32(buf[off:])
	return req, nil
}

// FrontierPair is one entry of a frontier-req response stream: an
// account and its current chain head. The stream ends with a zero pair.
type FrontierPair struct {
	Account raitypes.Account
	Head    raitypes.Hash
}

const frontierPairSize = raitypes.AccountLength + raitypes.HashLength

func WriteFrontierPair(w io.Writer, p FrontierPair) error {
	out := make([]byte, frontierPairSize)
	copy(out[:raitypes.AccountLength], p.Account[:])
	copy(out[raitypes.AccountLength:], p.Head[:])
	_, err := w.Write(out)
	return err
}

// WriteFrontierEnd terminates a frontier-req response with the (0, 0)
// sentinel pair (§6).
func WriteFrontierEnd(w io.Writer) error {
	return WriteFrontierPair(w, FrontierPair{})
}

// ReadFrontierPair reads one stream entry; ok=false at the (0,0) sentinel.
func ReadFrontierPair(r io.Reader) (p FrontierPair, ok bool, err error) {
	buf := make([]byte, frontierPairSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return FrontierPair{}, false, err
	}
	copy(p.Account[:], buf[:raitypes.AccountLength])
	copy(p.Head[:], buf[raitypes.AccountLength:])
	if p.Account.IsZero() && p.Head.IsZero() {
		return FrontierPair{}, false, nil
	}
	return p, true, nil
}
