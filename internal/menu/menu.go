// Package menu implements the interactive controller: it prints the main
// menu, reads a choice and dispatches to the student handlers until the
// user exits or the input ends.
package menu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/result-manager/internal/menu/handlers/student"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/utils/terminal"
)

// State is the controller's position in the menu loop.
type State int

const (
	StateMenu State = iota
	StateAdding
	StateSearching
	StateExited
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateAdding:
		return "adding"
	case StateSearching:
		return "searching"
	case StateExited:
		return "exited"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

const (
	choiceAdd  = 1
	choiceShow = 2
	choiceExit = 3
)

type route struct {
	state   State
	handler student.Handler
}

// Menu owns the terminal and the record store for the whole session.
type Menu struct {
	term   *terminal.Terminal
	routes map[int]route
	state  State
	log    *slog.Logger
}

// New wires the handlers to their menu numbers.
//
// Route table:
//
//	1 → ADDING     student.Add
//	2 → SEARCHING  student.Show
//	3 → EXITED
func New(term *terminal.Terminal, store storage.Storage, log *slog.Logger) *Menu {
	return &Menu{
		term: term,
		routes: map[int]route{
			choiceAdd:  {state: StateAdding, handler: student.Add(store)},
			choiceShow: {state: StateSearching, handler: student.Show(store)},
		},
		state: StateMenu,
		log:   log,
	}
}

// State reports where the controller currently is.
func (m *Menu) State() State { return m.state }

// Run loops over the menu until the user picks Exit or the input ends.
// Errors inside an operation are reported and never stop the loop; the
// only error returned is a failure to read the input.
func (m *Menu) Run() error {
	for m.state != StateExited {
		if err := m.step(); err != nil {
			if errors.Is(err, io.EOF) {
				m.log.Info("input closed")
				m.state = StateExited
				return nil
			}
			m.state = StateExited
			return err
		}
	}
	return nil
}

// step shows the menu once and handles one choice.
func (m *Menu) step() error {
	m.printMenu()

	line, err := m.term.ReadLine("Enter your choice: ")
	if errors.Is(err, terminal.ErrLineTooLong) {
		m.term.Println("Error: Please enter a number (1-3).")
		return nil
	}
	if err != nil {
		return err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		m.term.Println("Error: Please enter a number (1-3).")
		return nil
	}

	if choice == choiceExit {
		m.term.Println("Exiting program. Thank you!")
		m.state = StateExited
		return nil
	}

	r, ok := m.routes[choice]
	if !ok {
		m.term.Println("Invalid choice. Try again.")
		return nil
	}

	m.state = r.state
	defer func() { m.state = StateMenu }()

	if err := m.dispatch(r.handler); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		m.log.Error("operation failed",
			slog.String("state", r.state.String()),
			slog.String("error", err.Error()))
		m.term.Printf("Unexpected error: %s\n", err.Error())
	}
	return nil
}

// dispatch runs h, turning a panic into an error so one broken
// operation cannot take the session down.
func (m *Menu) dispatch(h student.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return h(m.term)
}

func (m *Menu) printMenu() {
	m.term.Println()
	m.term.Println("===== Student Result Management System CLI =====")
	m.term.Println("1. Add Student")
	m.term.Println("2. Show Student Details")
	m.term.Println("3. Exit")
}
