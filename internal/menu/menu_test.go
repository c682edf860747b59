package menu_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/aanand-mishra/result-manager/internal/config"
	"github.com/aanand-mishra/result-manager/internal/menu"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/storage/memory"
	"github.com/aanand-mishra/result-manager/internal/storage/mocks"
	"github.com/aanand-mishra/result-manager/internal/types"
	"github.com/aanand-mishra/result-manager/internal/utils/terminal"
)

const menuBlock = "\n===== Student Result Management System CLI =====\n" +
	"1. Add Student\n" +
	"2. Show Student Details\n" +
	"3. Exit\n" +
	"Enter your choice: "

// panickingStore blows up on first use.
type panickingStore struct {
	storage.Storage
}

func (panickingStore) CountStudents() (int, error) { panic("count exploded") }

var _ = Describe("Menu", func() {
	var (
		store *memory.Memory
		out   *bytes.Buffer
		log   *slog.Logger
	)

	BeforeEach(func() {
		var err error
		store, err = memory.New(&config.Config{Capacity: 10})
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
		log = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
	})

	session := func(s storage.Storage, input string) *menu.Menu {
		return menu.New(terminal.New(strings.NewReader(input), out), s, log)
	}

	It("should start in the menu state", func() {
		m := session(store, "")
		Expect(m.State()).To(Equal(menu.StateMenu))
	})

	It("should exit on choice 3", func() {
		m := session(store, "3\n")

		Expect(m.Run()).To(Succeed())
		Expect(m.State()).To(Equal(menu.StateExited))
		Expect(out.String()).To(Equal(menuBlock + "Exiting program. Thank you!\n"))
	})

	It("should exit quietly when the input ends", func() {
		m := session(store, "")

		Expect(m.Run()).To(Succeed())
		Expect(m.State()).To(Equal(menu.StateExited))
		Expect(out.String()).NotTo(ContainSubstring("Thank you"))
	})

	It("should add a student and show it", func() {
		m := session(store, "1\n1\nAlice\n80\n70\n90\n2\n1\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Student added successfully!\n"))
		Expect(out.String()).To(ContainSubstring(
			"\n----- Student Result -----\n" +
				"Roll Number: 1\n" +
				"Name: Alice\n" +
				"Marks: 80, 70, 90\n" +
				"Average: 80.00\n" +
				"Result: Pass\n"))
		Expect(store.CountStudents()).To(Equal(1))
	})

	It("should report a failing student", func() {
		m := session(store, "1\n2\nBob\n30\n20\n10\n2\n2\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Average: 20.00\nResult: Fail\n"))
	})

	It("should show the first of two students with the same roll number", func() {
		m := session(store, "1\n5\nFirst\n10\n10\n10\n1\n5\nSecond\n90\n90\n90\n2\n5\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Name: First\n"))
		Expect(out.String()).NotTo(ContainSubstring("Name: Second\n"))
		Expect(store.CountStudents()).To(Equal(2))
	})

	It("should report an unknown roll number", func() {
		m := session(store, "2\n99\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Student not found.\n"))
	})

	It("should stay in the menu on an unknown choice", func() {
		m := session(store, "7\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(Equal(
			menuBlock + "Invalid choice. Try again.\n" +
				menuBlock + "Exiting program. Thank you!\n"))
	})

	It("should stay in the menu on a non-numeric choice", func() {
		m := session(store, "add\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Error: Please enter a number (1-3).\n"))
		Expect(out.String()).To(HaveSuffix("Exiting program. Thank you!\n"))
	})

	It("should discard a malformed roll number and carry on", func() {
		m := session(store, "1\nabc\n1\n1\nAlice\n80\n70\n90\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring(
			"Error: Invalid input type. Please enter numbers for roll and marks.\n"))
		Expect(out.String()).To(ContainSubstring("Student added successfully!\n"))
		Expect(store.CountStudents()).To(Equal(1))
	})

	It("should reject invalid marks without storing anything", func() {
		m := session(store, "1\n4\nX\n101\n50\n50\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring(
			"Error: Invalid marks in subject 1: 101 (must be 0–100)\n"))
		Expect(store.CountStudents()).To(Equal(0))
	})

	It("should reject an empty name without storing anything", func() {
		m := session(store, "1\n3\n\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Name cannot be empty.\n"))
		Expect(store.CountStudents()).To(Equal(0))
	})

	It("should refuse the eleventh student", func() {
		var input strings.Builder
		for i := 0; i < 11; i++ {
			input.WriteString("1\n")
			if i < 10 {
				input.WriteString("7\nS\n50\n50\n50\n")
			}
		}
		input.WriteString("3\n")

		m := session(store, input.String())

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Capacity full. Cannot add more students.\n"))
		Expect(store.CountStudents()).To(Equal(10))
	})

	It("should report unexpected errors and return to the menu", func() {
		ctrl := gomock.NewController(GinkgoT())
		mockStore := mocks.NewMockStorage(ctrl)
		mockStore.EXPECT().GetStudentByRoll(1).Return(types.Student{}, errors.New("database is locked")).AnyTimes()

		m := session(mockStore, "2\n1\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Unexpected error: database is locked\n"))
		Expect(m.State()).To(Equal(menu.StateExited))
	})

	It("should discard an oversized line at the menu prompt", func() {
		m := session(store, strings.Repeat("x", 70000)+"\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Error: Please enter a number (1-3).\n"))
		Expect(out.String()).To(HaveSuffix("Exiting program. Thank you!\n"))
	})

	It("should discard an oversized name and carry on", func() {
		m := session(store, "1\n1\n"+strings.Repeat("x", 70000)+"\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Error: Name is too long.\n"))
		Expect(out.String()).To(HaveSuffix("Exiting program. Thank you!\n"))
		Expect(store.CountStudents()).To(Equal(0))
	})

	It("should print an add failure before returning to the menu", func() {
		m := session(panickingStore{}, "1\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring(
			"Unexpected error: count exploded\nReturning to main menu...\n"))
	})

	It("should survive a panicking operation", func() {
		m := session(panickingStore{}, "1\n3\n")

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Unexpected error: count exploded\n"))
		Expect(out.String()).To(HaveSuffix("Exiting program. Thank you!\n"))
	})
})
