// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SubjectCount is the number of subjects every student is graded in.
const SubjectCount = 3

// PassThreshold is the lowest average that still counts as a pass.
const PassThreshold = 40.0

// Status is the derived Pass/Fail label of a student.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// Student represents one student's exam result.
//
// Fields are unexported: a Student only comes from NewStudent, which
// validates the marks, and has no setters.
type Student struct {
	rollNumber int
	name       string
	marks      [SubjectCount]int
}

// markSheet is the shape the validator checks.
//
// validate:"..." tags are rules checked by the go-playground/validator
// package:
//
//	len=3          exactly three subjects
//	dive           apply the following rules to every element
//	min=0,max=100  each mark lies in the closed range [0, 100]
type markSheet struct {
	Marks []int `validate:"len=3,dive,min=0,max=100"`
}

var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// NewStudent validates the marks and returns an immutable Student.
//
// Validation order:
//  1. exactly 3 marks, else "Exactly 3 subjects are required."
//  2. every mark in [0, 100]; the first offending mark (in subject order)
//     is reported with its 1-based subject number.
//
// The roll number and name are stored as given.
// ─────────────────────────────────────────────────────────────────────────────
func NewStudent(rollNumber int, name string, marks []int) (Student, error) {
	if err := validate.Struct(markSheet{Marks: marks}); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) || len(validateErrs) == 0 {
			return Student{}, fmt.Errorf("NewStudent: validate: %w", err)
		}
		// The validator reports failures in element order, so the first
		// entry is the first offending subject.
		return Student{}, marksError(validateErrs[0], marks)
	}

	s := Student{rollNumber: rollNumber, name: name}
	copy(s.marks[:], marks)
	return s, nil
}

// RollNumber returns the caller-supplied identifier.
func (s Student) RollNumber() int { return s.rollNumber }

// Name returns the student's name.
func (s Student) Name() string { return s.name }

// Marks returns a copy of the three marks in subject order.
func (s Student) Marks() [SubjectCount]int { return s.marks }

// Average is the arithmetic mean of the three marks.
func (s Student) Average() float64 {
	sum := 0
	for _, m := range s.marks {
		sum += m
	}
	return float64(sum) / float64(SubjectCount)
}

// Status is Pass when the average is at least PassThreshold.
func (s Student) Status() Status {
	if s.Average() >= PassThreshold {
		return StatusPass
	}
	return StatusFail
}

// InvalidMarksError is returned by NewStudent when the marks are rejected.
//
// Subject is the 1-based index of the offending mark and Value its value.
// Both are zero when the number of marks was wrong.
type InvalidMarksError struct {
	Subject int
	Value   int
	msg     string
}

func (e *InvalidMarksError) Error() string { return e.msg }

func errWrongSubjectCount() *InvalidMarksError {
	return &InvalidMarksError{msg: "Exactly 3 subjects are required."}
}

func errMarkOutOfRange(subject, value int) *InvalidMarksError {
	return &InvalidMarksError{
		Subject: subject,
		Value:   value,
		msg: fmt.Sprintf("Invalid marks in subject %d: %d (must be 0–100)",
			subject, value),
	}
}

// marksError converts a validator.FieldError into an InvalidMarksError.
//
// Element failures carry the slice index in the field name, e.g. "Marks[1]".
func marksError(fe validator.FieldError, marks []int) *InvalidMarksError {
	switch fe.Tag() {
	case "len":
		return errWrongSubjectCount()
	case "min", "max":
		idx, ok := elementIndex(fe.Field())
		if !ok || idx >= len(marks) {
			break
		}
		return errMarkOutOfRange(idx+1, marks[idx])
	}

	// Unknown tag: fall back to a plain scan so the caller still gets a
	// precise subject.
	for i, m := range marks {
		if m < 0 || m > 100 {
			return errMarkOutOfRange(i+1, m)
		}
	}
	return errWrongSubjectCount()
}

func elementIndex(field string) (int, bool) {
	open := strings.IndexByte(field, '[')
	end := strings.IndexByte(field, ']')
	if open < 0 || end <= open+1 {
		return 0, false
	}
	idx, err := strconv.Atoi(field[open+1 : end])
	if err != nil {
		return 0, false
	}
	return idx, true
}
