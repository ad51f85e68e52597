package storage

import (
	"github.com/jacksmith/todo/internal/model"
	"go.uber.org/zap"
)

// MemorySlot keeps the encoded snapshot in memory. It goes through the same
// encode/decode path as the durable slots, so tests can plant raw bytes.
type MemorySlot struct {
	data   []byte
	writes int
	logger *zap.Logger

	// WriteErr, when set, is returned by every Write and nothing is stored.
	WriteErr error
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{logger: zap.NewNop()}
}

// Read returns the stored collection.
func (m *MemorySlot) Read() ([]model.Task, error) {
	return decodeOrEmpty(m.data, m.logger, "memory"), nil
}

// Write replaces the stored snapshot.
func (m *MemorySlot) Write(tasks []model.Task) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	data, err := model.EncodeSnapshot(tasks)
	if err != nil {
		return err
	}
	m.data = data
	m.writes++
	return nil
}

// Close is a no-op.
func (m *MemorySlot) Close() error {
	return nil
}

// Raw returns the encoded snapshot as last written.
func (m *MemorySlot) Raw() []byte {
	return m.data
}

// SetRaw replaces the stored bytes without validation.
func (m *MemorySlot) SetRaw(data []byte) {
	m.data = data
}

// Writes returns how many successful writes the slot has received.
func (m *MemorySlot) Writes() int {
	return m.writes
}
