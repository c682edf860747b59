package sqlite_test

import (
	"testing"

	"github.com/aanand-mishra/result-manager/internal/config"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/storage/sqlite"
	"github.com/aanand-mishra/result-manager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T, capacity int) *sqlite.SQLite {
	t.Helper()
	db, err := sqlite.New(&config.Config{Capacity: capacity})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newStudent(t *testing.T, roll int, name string, marks ...int) types.Student {
	t.Helper()
	s, err := types.NewStudent(roll, name, marks)
	require.NoError(t, err)
	return s
}

func TestSQLite_CreateTable(t *testing.T) {
	db := setupTestDB(t, 10)

	var tableName string
	err := db.Db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='students';").Scan(&tableName)
	require.NoError(t, err, "Table should be created")
	assert.Equal(t, "students", tableName)
}

func TestSQLite_AddAndFind(t *testing.T) {
	db := setupTestDB(t, 10)
	alice := newStudent(t, 1, "Alice", 80, 70, 90)

	require.NoError(t, db.AddStudent(alice))

	got, err := db.GetStudentByRoll(1)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Equal(t, types.StatusPass, got.Status())
}

func TestSQLite_CapacityExceeded(t *testing.T) {
	db := setupTestDB(t, 2)
	require.NoError(t, db.AddStudent(newStudent(t, 1, "A", 1, 1, 1)))
	require.NoError(t, db.AddStudent(newStudent(t, 2, "B", 2, 2, 2)))

	err := db.AddStudent(newStudent(t, 3, "C", 3, 3, 3))
	assert.ErrorIs(t, err, storage.ErrCapacityExceeded)

	count, err := db.CountStudents()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, db.Capacity())
}

func TestSQLite_DuplicateRollReturnsFirst(t *testing.T) {
	db := setupTestDB(t, 5)
	require.NoError(t, db.AddStudent(newStudent(t, 9, "First", 10, 20, 30)))
	require.NoError(t, db.AddStudent(newStudent(t, 9, "Second", 40, 50, 60)))

	got, err := db.GetStudentByRoll(9)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name())
	assert.Equal(t, [3]int{10, 20, 30}, got.Marks())
}

func TestSQLite_NotFound(t *testing.T) {
	db := setupTestDB(t, 5)

	_, err := db.GetStudentByRoll(404)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLite_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := sqlite.New(&config.Config{Capacity: -1})
	assert.Error(t, err)
}
