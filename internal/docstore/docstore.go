// package docstore implements the target document store on BadgerDB.
//
// Documents are JSON-encoded field maps keyed "doc:<table>:<id>", where the id
// is assigned on insert. The store exposes the four primitives the migration
// needs (insert, patch, delete, prefix-scan queries) plus a field-equality
// lookup used for uniqueness pre-checks.
package docstore

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/paperlift/paperlift/internal/shared"
)

// keyPrefix namespaces all document keys in the underlying store.
const keyPrefix = "doc:"

// deleteBatchSize caps deletions per transaction to stay under Badger's
// transaction size limit.
const deleteBatchSize = 1000

// Tables lists every target table, in migration order.
var Tables = []string{
	"users",
	"accounts",
	"userSettings",
	"boards",
	"tasks",
	"notifications",
	"dictionaryEntries",
	"notepads",
	"sharedNotes",
}

// Document is one stored record: its table, its store-assigned id, and its
// field map.
type Document struct {
	Table  string
	ID     string
	Fields map[string]any
}

// Store wraps a Badger database holding JSON documents.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a document store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTargetUnavailable, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a document store that lives entirely in memory.
// Used by tests and dry-run tooling.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTargetUnavailable, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func docKey(table, id string) []byte {
	return []byte(keyPrefix + table + ":" + id)
}

func tablePrefix(table string) []byte {
	return []byte(keyPrefix + table + ":")
}

// Insert stores a new document in table and returns its assigned id.
func (s *Store) Insert(table string, fields map[string]any) (string, error) {
	id := shared.GenerateID()

	value, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(table, id), value)
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return id, nil
}

// Get retrieves one document by table and id.
func (s *Store) Get(table, id string) (*Document, error) {
	var fields map[string]any

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(table, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fields)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %s/%s", shared.ErrDocumentNotFound, table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", table, id, err)
	}

	return &Document{Table: table, ID: id, Fields: fields}, nil
}

// Patch merges fields into an existing document. Keys present in fields
// overwrite the stored values; other keys are untouched.
func (s *Store) Patch(table, id string, fields map[string]any) error {
	key := docKey(table, id)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		var current map[string]any
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &current)
		}); err != nil {
			return err
		}

		for k, v := range fields {
			current[k] = v
		}

		value, err := json.Marshal(current)
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %s/%s", shared.ErrDocumentNotFound, table, id)
	}
	if err != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", table, id, err)
	}

	return nil
}

// Delete removes one document. Deleting a missing document is an error.
func (s *Store) Delete(table, id string) error {
	key := docKey(table, id)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %s/%s", shared.ErrDocumentNotFound, table, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}

	return nil
}

// List returns every document in table, in key order.
func (s *Store) List(table string) ([]Document, error) {
	prefix := tablePrefix(table)
	var docs []Document

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])

			var fields map[string]any
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &fields)
			})
			if err != nil {
				return err
			}

			docs = append(docs, Document{Table: table, ID: id, Fields: fields})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}

	return docs, nil
}

// Count returns the number of documents in table without decoding values.
func (s *Store) Count(table string) (int, error) {
	prefix := tablePrefix(table)
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

// FindByField scans table for the first document whose field equals want.
// Returns the document and true when found, nil and false otherwise.
func (s *Store) FindByField(table, field string, want any) (*Document, bool, error) {
	docs, err := s.List(table)
	if err != nil {
		return nil, false, err
	}

	for i := range docs {
		got, ok := docs[i].Fields[field]
		if ok && fieldEqual(got, want) {
			return &docs[i], true, nil
		}
	}

	return nil, false, nil
}

// DeleteAll removes every document in table and returns how many were deleted.
func (s *Store) DeleteAll(table string) (int, error) {
	prefix := tablePrefix(table)
	var keys [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", table, err)
	}

	deleted := 0
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		err := s.db.Update(func(txn *badger.Txn) error {
			for _, key := range chunk {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		deleted += len(chunk)
	}

	return deleted, nil
}

// fieldEqual compares a stored field against a caller-supplied value.
// Stored numbers come back from JSON as float64, so numeric comparisons are
// normalized before testing equality.
func fieldEqual(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return got == want
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
