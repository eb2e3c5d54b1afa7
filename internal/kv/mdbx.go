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

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/gofrs/flock"

	"github.com/raiprotocol/rai/internal/railog"
)

// MdbxDB is the production store: one mdbx environment, one DBI per §4.2
// sub-space, and an exclusive process-level file lock on the data
// directory so two node instances can never open the same store (§7:
// "store corruption is fatal, the node refuses to start").
type MdbxDB struct {
	env    *mdbx.Env
	dbis   map[string]mdbx.DBI
	lock   *flock.Flock
	log    *railog.Logger
}

// OpenMdbx opens (creating if absent) the mdbx environment rooted at dir.
func OpenMdbx(dir string) (*MdbxDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: creating data dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "LOCK"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("kv: locking data dir: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("kv: data dir %s is already in use by another node", dir)
	}

	env, err := mdbx.NewEnv()
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("kv: creating mdbx env: %w", err)
	}
	if err := env.SetOption(mdbx.OptMaxDB, uint64(len(Tables))); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("kv: configuring mdbx env: %w", err)
	}
	// Geometry: start small, grow in 2GiB steps, cap well above any single
	// account-lattice node is expected to need.
	const (
		sizeLower = 64 << 20
		sizeNow   = 64 << 20
		sizeUpper = 2 << 40
		growth    = 2 << 30
	)
	if err := env.SetGeometry(sizeLower, sizeNow, sizeUpper, growth, -1, -1); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("kv: setting mdbx geometry: %w", err)
	}
	if err := env.Open(dir, mdbx.NoReadahead, 0o644); err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("kv: opening mdbx env at %s: %w (store corruption is fatal, not repaired)", dir, err)
	}

	db := &MdbxDB{env: env, dbis: make(map[string]mdbx.DBI), lock: lock, log: railog.New("kv")}
	if err := db.provisionTables(); err != nil {
		env.Close()
		lock.Unlock()
		return nil, err
	}
	return db, nil
}

func (db *MdbxDB) provisionTables() error {
	return db.env.Update(func(txn *mdbx.Txn) error {
		for _, name := range Tables {
			dbi, err := txn.OpenDBISimple(name, mdbx.Create)
			if err != nil {
				return fmt.Errorf("kv: opening table %s: %w", name, err)
			}
			db.dbis[name] = dbi
		}
		return nil
	})
}

func (db *MdbxDB) Close() error {
	db.env.Close()
	return db.lock.Unlock()
}

func (db *MdbxDB) BeginRo(_ context.Context) (RoTx, error) {
	txn, err := db.env.BeginTxn(nil, mdbx.Readonly)
	if err != nil {
		return nil, fmt.Errorf("kv: begin read tx: %w", err)
	}
	return &mdbxTx{db: db, txn: txn}, nil
}

func (db *MdbxDB) BeginRw(_ context.Context) (RwTx, error) {
	txn, err := db.env.BeginTxn(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("kv: begin write tx: %w", err)
	}
	return &mdbxTx{db: db, txn: txn, writable: true}, nil
}

func (db *MdbxDB) View(ctx context.Context, fn func(tx RoTx) error) error {
	tx, err := db.BeginRo(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	return fn(tx)
}

func (db *MdbxDB) Update(ctx context.Context, fn func(tx RwTx) error) error {
	tx, err := db.BeginRw(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

type mdbxTx struct {
	db       *MdbxDB
	txn      *mdbx.Txn
	writable bool
	done     bool
}

func (t *mdbxTx) dbi(bucket string) (mdbx.DBI, error) {
	d, ok := t.db.dbis[bucket]
	if !ok {
		return 0, fmt.Errorf("kv: unknown bucket %s", bucket)
	}
	return d, nil
}

func (t *mdbxTx) Get(bucket string, key []byte) ([]byte, bool, error) {
	dbi, err := t.dbi(bucket)
	if err != nil {
		return nil, false, err
	}
	v, err := t.txn.Get(dbi, key)
	if mdbx.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (t *mdbxTx) Has(bucket string, key []byte) (bool, error) {
	_, ok, err := t.Get(bucket, key)
	return ok, err
}

func (t *mdbxTx) Put(bucket string, key, value []byte) error {
	dbi, err := t.dbi(bucket)
	if err != nil {
		return err
	}
	return t.txn.Put(dbi, key, value, 0)
}

func (t *mdbxTx) Delete(bucket string, key []byte) error {
	dbi, err := t.dbi(bucket)
	if err != nil {
		return err
	}
	err = t.txn.Del(dbi, key, nil)
	if mdbx.IsNotFound(err) {
		return nil
	}
	return err
}

func (t *mdbxTx) Cursor(bucket string) (Cursor, error) {
	dbi, err := t.dbi(bucket)
	if err != nil {
		return nil, err
	}
	c, err := t.txn.OpenCursor(dbi)
	if err != nil {
		return nil, err
	}
	return &mdbxCursor{c: c}, nil
}

func (t *mdbxTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	_, err := t.txn.Commit()
	return err
}

func (t *mdbxTx) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.txn.Abort()
}

type mdbxCursor struct {
	c *mdbx.Cursor
}

func (c *mdbxCursor) Seek(key []byte) (k, v []byte, err error) {
	k, v, err = c.c.Get(key, nil, mdbx.SetRange)
	if mdbx.IsNotFound(err) {
		return nil, nil, nil
	}
	return k, v, err
}

func (c *mdbxCursor) Next() (k, v []byte, err error) {
	k, v, err = c.c.Get(nil, nil, mdbx.Next)
	if mdbx.IsNotFound(err) {
		return nil, nil, nil
	}
	return k, v, err
}

func (c *mdbxCursor) Close() { c.c.Close() }
