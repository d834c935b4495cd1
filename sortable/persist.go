package sortable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// OrderEntry is one persisted id→position pair.
type OrderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// OrderRecord is the serialized ordering for one storage key. Positions are
// dense and zero-based at the moment of save; a loaded record may be sparse
// or reference ids no longer present.
type OrderRecord struct {
	Order []OrderEntry `json:"order"`
}

// Store persists ordering records keyed by a caller-supplied storage key.
// Unrelated containers sharing a key will corrupt each other's stored order.
type Store interface {
	SaveOrder(key string, entries []OrderEntry) error
	// LoadOrder returns nil entries and nil error when no record exists.
	LoadOrder(key string) ([]OrderEntry, error)
}

// FileStore keeps one JSON file per storage key under a directory. The
// directory is passed in explicitly so parallel containers (and tests) can
// use isolated stores.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create order store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are caller-chosen strings; keep the file name tame.
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) SaveOrder(key string, entries []OrderEntry) error {
	data, err := json.Marshal(OrderRecord{Order: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal order record: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write order record: %w", err)
	}
	return nil
}

func (s *FileStore) LoadOrder(key string) ([]OrderEntry, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order record: %w", err)
	}
	var rec OrderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse order record: %w", err)
	}
	return rec.Order, nil
}

// Keys lists the storage keys with a saved record.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list order store: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes the record for a key. Clearing an absent key is not an error.
func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// EntriesFor serializes the current sequence positions, dense and zero-based.
func EntriesFor[T Item](items []T) []OrderEntry {
	entries := make([]OrderEntry, len(items))
	for i, it := range items {
		entries[i] = OrderEntry{ID: it.Key(), Order: i}
	}
	return entries
}

// Reconcile re-sorts the live item set according to a loaded record. Items
// with a recorded position come first, ordered by position; items the record
// does not mention keep their pre-existing relative order after them. Ids in
// the record that are no longer live are dropped silently. Order fields are
// re-stamped to the reconciled sequence.
func Reconcile[T Item](items []T, entries []OrderEntry) []T {
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		pos[e.ID] = e.Order
	}

	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := pos[out[i].Key()]
		pj, jok := pos[out[j].Key()]
		if iok && jok {
			return pi < pj
		}
		return iok && !jok
	})
	for i, it := range out {
		it.SetOrderIndex(i)
	}
	return out
}

// Persister mirrors committed orders to a local store and, when configured,
// best-effort to a remote endpoint. Remote failures never roll back the
// local save and are only logged.
type Persister struct {
	local  Store
	remote *RemoteStore
	log    *zap.Logger
}

func NewPersister(local Store, remote *RemoteStore, log *zap.Logger) *Persister {
	if log == nil {
		log = zap.NewNop()
	}
	return &Persister{local: local, remote: remote, log: log}
}

func (p *Persister) Save(key string, entries []OrderEntry) {
	if err := p.local.SaveOrder(key, entries); err != nil {
		p.log.Warn("order save failed", zap.String("key", key), zap.Error(err))
	}
	if p.remote != nil {
		if err := p.remote.Push(key, entries); err != nil {
			p.log.Warn("remote order push failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Load reads the local record first and falls back to the remote endpoint
// when none exists. Any failure is treated as "no stored order".
func (p *Persister) Load(key string) []OrderEntry {
	entries, err := p.local.LoadOrder(key)
	if err != nil {
		p.log.Warn("order load failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if entries != nil {
		return entries
	}
	if p.remote == nil {
		return nil
	}
	entries, err = p.remote.Fetch(key)
	if err != nil {
		p.log.Warn("remote order fetch failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return entries
}
