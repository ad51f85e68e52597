package storage

import (
	"fmt"
	"time"

	"github.com/jacksmith/todo/internal/model"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	bucketName = []byte("todo")
	slotKey    = []byte("tasks")
)

// openTimeout bounds how long OpenBolt waits for another process holding
// the database lock.
const openTimeout = 2 * time.Second

// BoltSlot stores the snapshot under a single key of a bbolt database.
// Each Write is one read-write transaction, so a reader sees either the old
// or the new snapshot and never a partial one.
type BoltSlot struct {
	db     *bolt.DB
	path   string
	logger *zap.Logger
}

// OpenBolt opens (creating if needed) the bbolt database at path.
func OpenBolt(path string, logger *zap.Logger) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoltSlot{db: db, path: path, logger: logger}, nil
}

// Read returns the stored collection, or an empty one if nothing has been
// written yet or the stored value does not parse.
func (b *BoltSlot) Read() ([]model.Task, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}
		// Values are only valid for the life of the transaction.
		if v := bucket.Get(slotKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decodeOrEmpty(data, b.logger, b.path), nil
}

// Write replaces the stored snapshot.
func (b *BoltSlot) Write(tasks []model.Task) error {
	data, err := model.EncodeSnapshot(tasks)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put(slotKey, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	b.logger.Debug("snapshot written", zap.String("path", b.path), zap.Int("tasks", len(tasks)))
	return nil
}

// writeRaw stores data verbatim. Used by tests to plant corrupt snapshots.
func (b *BoltSlot) writeRaw(data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put(slotKey, data)
	})
}

// Close releases the database file.
func (b *BoltSlot) Close() error {
	return b.db.Close()
}
