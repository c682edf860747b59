// Package memory provides the default storage.Storage implementation:
// a fixed-size slice of students plus a count of slots in use.
package memory

import (
	"fmt"

	"github.com/aanand-mishra/result-manager/internal/config"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/types"
)

// Memory keeps slots [0, count) filled; the rest are unused.
// It is not safe for concurrent use.
type Memory struct {
	students []types.Student
	count    int
}

// New allocates a store with cfg.Capacity slots.
func New(cfg *config.Config) (*Memory, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("memory.New: capacity must be positive, got %d", cfg.Capacity)
	}

	return &Memory{students: make([]types.Student, cfg.Capacity)}, nil
}

func (m *Memory) AddStudent(student types.Student) error {
	if m.count >= len(m.students) {
		return storage.ErrCapacityExceeded
	}

	m.students[m.count] = student
	m.count++
	return nil
}

func (m *Memory) GetStudentByRoll(roll int) (types.Student, error) {
	for i := 0; i < m.count; i++ {
		if m.students[i].RollNumber() == roll {
			return m.students[i], nil
		}
	}
	return types.Student{}, fmt.Errorf("%w: roll number %d", storage.ErrNotFound, roll)
}

func (m *Memory) CountStudents() (int, error) { return m.count, nil }

func (m *Memory) Capacity() int { return len(m.students) }

// Close is a no-op; the slice goes away with the process.
func (m *Memory) Close() error { return nil }
