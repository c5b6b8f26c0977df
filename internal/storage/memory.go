package storage

import (
	"go.uber.org/zap"

	"kadai/internal/task"
)

// Memory is a Persistor holding the serialized collection in process memory.
// Used by tests and anywhere durability is not wanted.
type Memory struct {
	data []byte
	log  *zap.Logger
}

func NewMemory(log *zap.Logger) *Memory {
	return &Memory{log: log}
}

func (m *Memory) Save(ts []task.Task) error {
	data, err := encodeTasks(ts)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func (m *Memory) Load() ([]task.Task, error) {
	if m.data == nil {
		return nil, nil
	}
	return decodeTasks(m.data, m.log), nil
}
