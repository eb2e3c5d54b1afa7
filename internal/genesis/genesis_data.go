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

package genesis

import (
	"encoding/hex"

	"github.com/raiprotocol/rai/internal/raitypes"
)

func mustAccount(s string) raitypes.Account {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	a, err := raitypes.AccountFromBytes(b)
	if err != nil {
		panic(err)
	}
	return a
}

func mustHash(s string) raitypes.Hash {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	h, err := raitypes.HashFromBytes(b)
	if err != nil {
		panic(err)
	}
	return h
}

func mustSignature(s string) raitypes.Signature {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	var sig raitypes.Signature
	copy(sig[:], b)
	return sig
}

// The three network-variant genesis blocks below are ported verbatim from
// the reference implementation's hard-coded test/beta/live constants: each
// network's genesis account opens against its own public key reinterpreted
// as the "source" hash, pre-signed and pre-worked offline.
var (
	testGenesis = Block{
		Account:        mustAccount("B0311EA55708D6A53C75CDBF88300259C6D018522FE3D4D0A242E431F9E8B6D"),
		Representative: mustAccount("B0311EA55708D6A53C75CDBF88300259C6D018522FE3D4D0A242E431F9E8B6D"),
		Source:         mustHash("B0311EA55708D6A53C75CDBF88300259C6D018522FE3D4D0A242E431F9E8B6D"),
		Signature:      mustSignature("ECDA914373A2F0CA1296475BAEE40500A7F0A7AD72A5A80C81D7FAB7F6C802B2CC7DB50F5DD0FB25B2EF11761FA7344A158DD5A700B21BD47DE5BD0F63153A02"),
		Work:           0x9680625b39d3363d,
	}

	betaGenesis = Block{
		Account:        mustAccount("9D3A5B66B478670455B241D6BAC3D3FE1CBB7E7B7EAA429FA036C2704C3DC0A"),
		Representative: mustAccount("9D3A5B66B478670455B241D6BAC3D3FE1CBB7E7B7EAA429FA036C2704C3DC0A"),
		Source:         mustHash("9D3A5B66B478670455B241D6BAC3D3FE1CBB7E7B7EAA429FA036C2704C3DC0A"),
		Signature:      mustSignature("BD0D374FCEB33EAABDF728E9B4DCDBF3B226DA97EEAB8EA5B7EDE286B1282C24D6EB544644FE871235E4F58CD94DF66D9C555309895F67A7D1F922AAC12CE907"),
		Work:           0x6eb12d4c42dba31e,
	}

	liveGenesis = Block{
		Account:        mustAccount("E89208DD038FBB269987689621D52292AE9C35941A7484756ECCED92A65093B"),
		Representative: mustAccount("E89208DD038FBB269987689621D52292AE9C35941A7484756ECCED92A65093B"),
		Source:         mustHash("E89208DD038FBB269987689621D52292AE9C35941A7484756ECCED92A65093B"),
		Signature:      mustSignature("9F0C933C8ADE004D808EA1985FA746A7E95BA2A38F867640F53EC8F180BDFE9E2C1268DEAD7C2664F356E37ABA362BC58E46DBA03E523A7B5A19E4B6EB12BB02"),
		Work:           0x62f05417dd3fb691,
	}
)
