package tmdb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Cache stores raw successful response bodies keyed by request path.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// CacheConfig configures a BadgerCache.
type CacheConfig struct {
	// Dir holds the badger files. Ignored when InMemory is set.
	Dir string
	// InMemory keeps everything in RAM. Useful for tests.
	InMemory bool
	// TTL expires entries; zero keeps them forever.
	TTL    time.Duration
	Logger *slog.Logger
}

// BadgerCache is a Cache backed by an embedded badger database.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// badgerLogger adapts slog to badger's logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenCache opens (or creates) a response cache.
func OpenCache(cfg CacheConfig) (*BadgerCache, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("cache dir is required")
		}
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &BadgerCache{db: db, ttl: cfg.TTL}, nil
}

func (c *BadgerCache) Get(key string) ([]byte, bool, error) {
	var body []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *BadgerCache) Put(key string, body []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), body)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}
