// Copyright 2021 The Erigon Authors
// (original work)
// Copyright 2026 The Rai Authors
// (modifications)
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

// Package kv is the transactional ordered key-value store contract of
// §4.2: named sub-spaces, RAII-scoped transactions, point operations and
// ordered iteration. It is deliberately narrow — just enough surface for
// the ledger, bootstrap staging area and gap cache to sit on top of either
// the production mdbx backend or the in-memory test backend.
package kv

import "context"

// Sub-space (bucket) names, §4.2.
const (
	Accounts       = "accounts"
	Blocks         = "blocks"
	Pending        = "pending"
	Representation = "representation"
	Frontiers      = "frontiers"
	Checksum       = "checksum"
	Unchecked      = "unchecked"
	Bootstrap      = "bootstrap"
)

// Tables lists every sub-space a store must provision; both backends
// iterate this at open time instead of hardcoding the bucket set in two
// places.
var Tables = []string{Accounts, Blocks, Pending, Representation, Frontiers, Checksum, Unchecked, Bootstrap}

// Cursor walks a bucket in key order starting from Seek's argument.
type Cursor interface {
	// Seek positions the cursor at the first key >= key (or the first key
	// overall if key is nil), and returns it.
	Seek(key []byte) (k, v []byte, err error)
	Next() (k, v []byte, err error)
	Close()
}

// RoTx is a read-only transaction: any number may be open concurrently
// with each other and with a writer; none observes a writer's uncommitted
// changes.
type RoTx interface {
	Get(bucket string, key []byte) (value []byte, ok bool, err error)
	Has(bucket string, key []byte) (bool, error)
	Cursor(bucket string) (Cursor, error)
	Rollback()
}

// RwTx is the single, exclusive writer transaction. Commit/Rollback end
// its scope; per §4.2 a write transaction is held only for the duration of
// one ledger Process or Rollback call.
type RwTx interface {
	RoTx
	Put(bucket string, key, value []byte) error
	Delete(bucket string, key []byte) error
	Commit() error
}

// DB opens read and read-write transactions against the persisted store.
type DB interface {
	BeginRo(ctx context.Context) (RoTx, error)
	BeginRw(ctx context.Context) (RwTx, error)

	// View and Update run fn inside a scoped transaction and roll back (for
	// View) or commit-unless-aborted (for Update), mirroring the teacher's
	// begin_read()/begin_write() RAII convention without needing a real
	// defer-based destructor.
	View(ctx context.Context, fn func(tx RoTx) error) error
	Update(ctx context.Context, fn func(tx RwTx) error) error

	Close() error
}
