// Package student contains the menu handlers for the Student record.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────
// The menu calls every handler with the same signature:
//
//	func(*terminal.Terminal) error
//
// To inject the record store, a factory receives the store and returns a
// handler that closes over it:
//
//	routes["1"] = student.Add(store)
//	//                     ^^^^^
//	//  Add(store) is called ONCE at start-up; the returned handler is
//	//  called every time the user picks the menu entry.
//
// Outcomes the user should see (bad input, full store, unknown roll
// number) are printed here and the handler returns nil. A non-nil error
// means something unexpected happened; the menu reports it and carries on.
// Add prints its own unexpected errors, ahead of "Returning to main menu...".
package student

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/types"
	"github.com/aanand-mishra/result-manager/internal/utils/terminal"
	"github.com/go-playground/validator/v10"
)

// Handler is a single menu operation.
type Handler func(t *terminal.Terminal) error

// ErrEmptyName is returned by Register when the name is blank.
var ErrEmptyName = errors.New("name cannot be empty")

var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// Register builds a student and appends it to the store.
//
// Checks, in order:
//  1. the store has a free slot (storage.ErrCapacityExceeded)
//  2. the trimmed name is not empty (ErrEmptyName)
//  3. the marks are valid (*types.InvalidMarksError)
//
// The store is only touched when all three pass.
// ─────────────────────────────────────────────────────────────────────────────
func Register(store storage.Storage, roll int, name string, marks []int) (types.Student, error) {
	full, err := isFull(store)
	if err != nil {
		return types.Student{}, err
	}
	if full {
		return types.Student{}, storage.ErrCapacityExceeded
	}

	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required"); err != nil {
		return types.Student{}, ErrEmptyName
	}

	s, err := types.NewStudent(roll, name, marks)
	if err != nil {
		return types.Student{}, err
	}

	if err := store.AddStudent(s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

func isFull(store storage.Storage) (bool, error) {
	count, err := store.CountStudents()
	if err != nil {
		return false, fmt.Errorf("count students: %w", err)
	}
	return count >= store.Capacity(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Add handles menu entry 1: prompt for a student and store it.
//
// Prompts, in order:
//
//	Enter Roll Number:
//	Enter Student Name:
//	Enter marks for subject 1..3:
//
// The capacity check runs before any prompt, so a full store costs the
// user no typing.
// ─────────────────────────────────────────────────────────────────────────────
func Add(store storage.Storage) Handler {
	return func(t *terminal.Terminal) (err error) {
		slog.Info("adding a student")

		// Unexpected failures, panics included, print before the closing
		// line. End of input is passed up untouched.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				slog.Error("error adding student", slog.String("error", err.Error()))
				t.Printf("Unexpected error: %s\n", err.Error())
				err = nil
			}
			t.Println("Returning to main menu...")
		}()

		full, err := isFull(store)
		if err != nil {
			return err
		}
		if full {
			t.Println("Capacity full. Cannot add more students.")
			return nil
		}

		roll, err := t.ReadInt("Enter Roll Number: ")
		if err != nil {
			return inputError(t, err)
		}

		name, err := t.ReadLine("Enter Student Name: ")
		if errors.Is(err, terminal.ErrLineTooLong) {
			t.Println("Error: Name is too long.")
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			t.Println("Name cannot be empty.")
			return nil
		}

		marks := make([]int, types.SubjectCount)
		for i := range marks {
			marks[i], err = t.ReadInt(fmt.Sprintf("Enter marks for subject %d: ", i+1))
			if err != nil {
				return inputError(t, err)
			}
		}

		s, err := Register(store, roll, name, marks)

		var marksErr *types.InvalidMarksError
		switch {
		case err == nil:
		case errors.As(err, &marksErr):
			slog.Debug("marks rejected",
				slog.Int("roll", roll),
				slog.Int("subject", marksErr.Subject))
			t.WriteError(marksErr)
			return nil
		case errors.Is(err, storage.ErrCapacityExceeded):
			t.Println("Capacity full. Cannot add more students.")
			return nil
		case errors.Is(err, ErrEmptyName):
			t.Println("Name cannot be empty.")
			return nil
		default:
			return err
		}

		slog.Info("student added", slog.Int("roll", s.RollNumber()))
		t.Println("Student added successfully!")
		return nil
	}
}

// inputError reports a non-numeric roll number or mark and swallows it.
// Anything else (end of input, read failures) is passed up.
func inputError(t *terminal.Terminal, err error) error {
	var parseErr *terminal.ParseError
	if errors.As(err, &parseErr) {
		slog.Debug("rejected input", slog.String("input", parseErr.Input))
		t.Println("Error: Invalid input type. Please enter numbers for roll and marks.")
		return nil
	}
	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// Show handles menu entry 2: look a student up by roll number and print
// the result block, or "Student not found.".
// ─────────────────────────────────────────────────────────────────────────────
func Show(store storage.Storage) Handler {
	return func(t *terminal.Terminal) error {
		roll, err := t.ReadInt("Enter Roll Number to search: ")
		if err != nil {
			var parseErr *terminal.ParseError
			if errors.As(err, &parseErr) {
				t.Println("Error: Please enter a valid roll number.")
				return nil
			}
			return err
		}

		slog.Info("getting a student", slog.Int("roll", roll))

		s, err := store.GetStudentByRoll(roll)
		if errors.Is(err, storage.ErrNotFound) {
			t.Println("Student not found.")
			return nil
		}
		if err != nil {
			slog.Error("error getting student",
				slog.Int("roll", roll),
				slog.String("error", err.Error()))
			return err
		}

		t.WriteStudent(s)
		return nil
	}
}
