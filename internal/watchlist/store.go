package watchlist

import (
	"encoding/json"
	"fmt"

	"github.com/tinytelemetry/coinwatch/internal/logging"
	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/sirupsen/logrus"
)

// KV is the persistent key-value capability the watchlist is stored in.
// Get reports ok=false when the key has never been written.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// Store loads and saves a List as a JSON array under a fixed key.
type Store struct {
	kv  KV
	key string
	log logrus.FieldLogger
}

// NewStore creates a Store over kv. An empty key uses model.DefaultWatchlistKey;
// a nil logger discards output.
func NewStore(kv KV, key string, log logrus.FieldLogger) *Store {
	if key == "" {
		key = model.DefaultWatchlistKey
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store{kv: kv, key: key, log: log}
}

// Load reads the persisted list. A missing, unreadable or malformed value
// yields an empty list.
func (s *Store) Load() List {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).Warn("watchlist: read failed, starting empty")
		return List{}
	}
	if !ok {
		return List{}
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		s.log.WithError(err).WithField("key", s.key).Warn("watchlist: malformed value, starting empty")
		return List{}
	}
	return FromIDs(ids)
}

// Save overwrites the persisted value with the full list.
func (s *Store) Save(l List) error {
	ids := l.IDs()
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("watchlist: marshal: %w", err)
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		return fmt.Errorf("watchlist: save %s: %w", s.key, err)
	}
	return nil
}
