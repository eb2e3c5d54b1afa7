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

package kv

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/google/btree"
)

// MemDB is an in-memory ordered store backed by google/btree, used by unit
// tests and by any component that wants a store without a real mdbx file.
// It uses one RWMutex: BeginRw blocks until no other writer or reader holds
// the lock, and BeginRo blocks while a writer is open, so unlike the
// production backend readers do not run alongside a writer.
type MemDB struct {
	mu      sync.RWMutex
	buckets map[string]*btree.BTreeG[memItem]
}

type memItem struct {
	key, value []byte
}

func memLess(a, b memItem) bool { return bytes.Compare(a.key, b.key) < 0 }

func NewMemDB() *MemDB {
	db := &MemDB{buckets: make(map[string]*btree.BTreeG[memItem])}
	for _, b := range Tables {
		db.buckets[b] = btree.NewG(32, memLess)
	}
	return db
}

func (db *MemDB) Close() error { return nil }

func (db *MemDB) BeginRo(_ context.Context) (RoTx, error) {
	db.mu.RLock()
	return &memTx{db: db, writable: false}, nil
}

func (db *MemDB) BeginRw(_ context.Context) (RwTx, error) {
	db.mu.Lock()
	return &memTx{db: db, writable: true}, nil
}

func (db *MemDB) View(ctx context.Context, fn func(tx RoTx) error) error {
	tx, err := db.BeginRo(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	return fn(tx)
}

func (db *MemDB) Update(ctx context.Context, fn func(tx RwTx) error) error {
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

type memTx struct {
	db       *MemDB
	writable bool
	done     bool
}

func (t *memTx) bucket(name string) (*btree.BTreeG[memItem], error) {
	b, ok := t.db.buckets[name]
	if !ok {
		return nil, errors.New("kv: unknown bucket " + name)
	}
	return b, nil
}

func (t *memTx) Get(bucket string, key []byte) ([]byte, bool, error) {
	b, err := t.bucket(bucket)
	if err != nil {
		return nil, false, err
	}
	item, ok := b.Get(memItem{key: key})
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, true, nil
}

func (t *memTx) Has(bucket string, key []byte) (bool, error) {
	_, ok, err := t.Get(bucket, key)
	return ok, err
}

func (t *memTx) Put(bucket string, key, value []byte) error {
	if !t.writable {
		return errors.New("kv: write on a read-only transaction")
	}
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	b.ReplaceOrInsert(memItem{key: k, value: v})
	return nil
}

func (t *memTx) Delete(bucket string, key []byte) error {
	if !t.writable {
		return errors.New("kv: write on a read-only transaction")
	}
	b, err := t.bucket(bucket)
	if err != nil {
		return err
	}
	b.Delete(memItem{key: key})
	return nil
}

func (t *memTx) Cursor(bucket string) (Cursor, error) {
	b, err := t.bucket(bucket)
	if err != nil {
		return nil, err
	}
	return &memCursor{tree: b}, nil
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.db.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() {
	if t.done {
		return
	}
	t.done = true
	if t.writable {
		t.db.mu.Unlock()
	} else {
		t.db.mu.RUnlock()
	}
}

type memCursor struct {
	tree    *btree.BTreeG[memItem]
	current memItem
	ok      bool
}

func (c *memCursor) Seek(key []byte) (k, v []byte, err error) {
	c.ok = false
	c.tree.AscendGreaterOrEqual(memItem{key: key}, func(item memItem) bool {
		c.current = item
		c.ok = true
		return false
	})
	if !c.ok {
		return nil, nil, nil
	}
	return c.current.key, c.current.value, nil
}

func (c *memCursor) Next() (k, v []byte, err error) {
	if !c.ok {
		return nil, nil, nil
	}
	next := memItem{}
	found := false
	from := c.current
	c.tree.AscendGreaterOrEqual(from, func(item memItem) bool {
		if bytes.Equal(item.key, from.key) {
			return true // skip current, keep scanning
		}
		next = item
		found = true
		return false
	})
	if !found {
		c.ok = false
		return nil, nil, nil
	}
	c.current = next
	return next.key, next.value, nil
}

func (c *memCursor) Close() {}
