// Package storage defines the Storage interface: the contract that any
// record store backend must satisfy to work with this application.
//
// The menu handlers depend only on this interface, so the slice-backed
// store and the SQLite store are interchangeable, and tests can pass a
// mock instead of a real backend.
package storage

import (
	"errors"

	"github.com/aanand-mishra/result-manager/internal/types"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/aanand-mishra/result-manager/internal/storage Storage

var (
	// ErrCapacityExceeded is returned by AddStudent when every slot is taken.
	ErrCapacityExceeded = errors.New("capacity full")

	// ErrNotFound is returned by GetStudentByRoll when no record matches.
	ErrNotFound = errors.New("student not found")
)

// Storage is the record store contract.
//
// Records are kept in insertion order. There is no update or delete:
// the store only grows, up to Capacity.
type Storage interface {
	// AddStudent appends a student. It returns ErrCapacityExceeded and
	// leaves the store unchanged when the store is full. Duplicate roll
	// numbers are accepted.
	AddStudent(student types.Student) error

	// GetStudentByRoll returns the first inserted student with the given
	// roll number, or ErrNotFound.
	GetStudentByRoll(roll int) (types.Student, error)

	// CountStudents returns the number of occupied slots.
	CountStudents() (int, error)

	// Capacity returns the fixed maximum number of records.
	Capacity() int

	// Close releases any resources held by the backend.
	Close() error
}
