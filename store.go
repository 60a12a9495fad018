package bench

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Store keeps a snapshot of loaded tables in LevelDB. Keys are
// backend + 0x00 + zero-padded row index, values are JSON rows.
type Store struct {
	db   *leveldb.DB
	path string
}

// OpenStore opens or creates a snapshot database in dir.
func OpenStore(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("can't open snapshot %s: %w", dir, err)
	}
	return &Store{db: db, path: dir}, nil
}

// OpenMemStore creates a snapshot store held in memory.
func OpenMemStore() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: "memory"}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func rowKey(backend string, i int) []byte {
	return []byte(fmt.Sprintf("%s\x00%08d", backend, i))
}

func backendPrefix(backend string) *util.Range {
	return util.BytesPrefix([]byte(backend + "\x00"))
}

// Put replaces the stored rows of every backend in tables.
func (s *Store) Put(tables Tables) error {
	batch := new(leveldb.Batch)
	var err error
	tables.Each(func(t *Table) {
		if err != nil {
			return
		}
		it := s.db.NewIterator(backendPrefix(t.Backend), nil)
		for it.Next() {
			batch.Delete(copyBytes(it.Key()))
		}
		it.Release()
		if err = it.Error(); err != nil {
			return
		}
		for i, r := range t.Rows {
			var v []byte
			if v, err = json.Marshal(r); err != nil {
				return
			}
			batch.Put(rowKey(t.Backend, i), v)
		}
	})
	if err != nil {
		return err
	}
	return s.db.Write(batch, nil)
}

// Tables reads back all stored tables.
func (s *Store) Tables() (Tables, error) {
	var (
		list []*Table
		cur  *Table
	)
	it := s.db.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		k := it.Key()
		sep := bytes.IndexByte(k, 0)
		if sep < 0 {
			return Tables{}, fmt.Errorf("%w: bad snapshot key %q", ErrParse, k)
		}
		backend := string(k[:sep])
		if cur == nil || cur.Backend != backend {
			cur = &Table{Backend: backend, Path: s.path}
			list = append(list, cur)
		}
		var r Row
		if err := json.Unmarshal(it.Value(), &r); err != nil {
			return Tables{}, fmt.Errorf("%w: snapshot row %q: %v", ErrParse, k, err)
		}
		cur.Rows = append(cur.Rows, r)
	}
	if err := it.Error(); err != nil {
		return Tables{}, err
	}
	return NewTables(list...), nil
}

// copyBytes returns an exact copy of the provided bytes.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
