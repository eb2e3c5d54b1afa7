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
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raiprotocol/rai/internal/block"
	"github.com/raiprotocol/rai/internal/raitypes"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	e := Envelope{
		Magic:          MagicLive,
		VersionMax:     18,
		VersionUsing:   18,
		VersionMin:     16,
		Type:           TypePublish,
		IPv4Only:       true,
		ExtensionBlock: block.TypeSend,
	}
	buf, err := e.MarshalBinary()
	require.NoError(t, err)

	got, err := ReadEnvelope(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestKeepaliveRoundTrip(t *testing.T) {
	var k Keepalive
	k.Peers[0] = netip.AddrPortFrom(netip.AddrFrom4([4]byte{127, 0, 0, 1}), 7075)
	buf, err := k.MarshalBinary()
	require.NoError(t, err)

	got, err := ReadKeepalive(bytes.NewReader(buf))
	require.NoError(t, err)
	nonReserved := got.NonReserved()
	require.Len(t, nonReserved, 1)
	require.Equal(t, uint16(7075), nonReserved[0].Port())
}

func TestPublishRoundTrip(t *testing.T) {
	send := &block.Send{Previous: raitypes.Hash{0x01}, Destination: raitypes.Account{0x02}, Balance: raitypes.NewAmount(42)}
	p := Publish{Work: 0xDEADBEEF, Block: send}
	buf, err := p.MarshalBinary()
	require.NoError(t, err)

	got, err := ReadPublish(bytes.NewReader(buf), block.TypeSend)
	require.NoError(t, err)
	require.Equal(t, p.Work, got.Work)
	require.Equal(t, send.Hash(), got.Block.Hash())
}

func TestBulkPullRoundTrip(t *testing.T) {
	req := BulkPullRequest{Start: raitypes.Account{0x01}, End: raitypes.Hash{0x02}}
	buf, err := req.MarshalBinary()
	require.NoError(t, err)
	got, err := ReadBulkPullRequest(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, req, got)

	var stream bytes.Buffer
	blk := &block.Change{Previous: raitypes.Hash{0x03}, Representative: raitypes.Account{0x04}}
	require.NoError(t, WriteBulkPullBlock(&stream, blk))
	require.NoError(t, WriteBulkPullEnd(&stream))

	gotBlk, ok, err := ReadBulkPullBlock(&stream)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, blk.Hash(), gotBlk.Hash())

	_, ok, err = ReadBulkPullBlock(&stream)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFrontierReqRoundTrip(t *testing.T) {
	req := FrontierReqRequest{Start: raitypes.Account{0x01}, Age: 100, Count: 50}
	buf, err := req.MarshalBinary()
	require.NoError(t, err)
	got, err := ReadFrontierReqRequest(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, req, got)

	var stream bytes.Buffer
	pair := FrontierPair{Account: raitypes.Account{0x05}, Head: raitypes.Hash{0x06}}
	require.NoError(t, WriteFrontierPair(&stream, pair))
	require.NoError(t, WriteFrontierEnd(&stream))

	gotPair, ok, err := ReadFrontierPair(&stream)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, pair, gotPair)

	_, ok, err = ReadFrontierPair(&stream)
	require.NoError(t, err)
	require.False(t, ok)
}
