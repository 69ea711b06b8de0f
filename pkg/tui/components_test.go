package tui_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/tui"
)

var _ = Describe("MessageDisplay", func() {
	Describe("NewMessageDisplay", func() {
		It("should start empty with auto-scroll enabled", func() {
			display := tui.NewMessageDisplay(80, 24)

			Expect(display.Messages).To(BeEmpty())
			Expect(display.AutoScroll).To(BeTrue())
		})
	})

	Describe("WithMessages", func() {
		It("should return a copy without mutating the original", func() {
			display := tui.NewMessageDisplay(80, 24)
			updated := display.WithMessages([]*chat.Message{chat.NewUserMessage("hi")})

			Expect(updated.Messages).To(HaveLen(1))
			Expect(display.Messages).To(BeEmpty())
		})
	})

	Describe("WithScroll", func() {
		It("should disable auto-scroll", func() {
			display := tui.NewMessageDisplay(80, 24).WithScroll(5)

			Expect(display.Scroll).To(Equal(5))
			Expect(display.AutoScroll).To(BeFalse())
		})

		It("should clamp negative scroll to zero", func() {
			display := tui.NewMessageDisplay(80, 24).WithScroll(-3)
			Expect(display.Scroll).To(Equal(0))
		})
	})

	Describe("WithAutoScroll", func() {
		It("should re-enable pinning to the newest content", func() {
			display := tui.NewMessageDisplay(80, 24).WithScroll(5).WithAutoScroll()
			Expect(display.AutoScroll).To(BeTrue())
		})
	})
})

var _ = Describe("InputField", func() {
	Describe("InsertRune", func() {
		It("should insert at the cursor position", func() {
			input := tui.NewInputField(80).
				InsertRune('a').
				InsertRune('c').
				WithCursor(1).
				InsertRune('b')

			Expect(input.Content).To(Equal("abc"))
			Expect(input.Cursor).To(Equal(2))
		})

		It("should handle multi-byte runes", func() {
			input := tui.NewInputField(80).InsertRune('é')

			Expect(input.Content).To(Equal("é"))
			Expect(input.Cursor).To(Equal(len("é")))
		})
	})

	Describe("DeleteBackward", func() {
		It("should remove the rune before the cursor", func() {
			input := tui.NewInputField(80).
				InsertRune('a').
				InsertRune('b').
				DeleteBackward()

			Expect(input.Content).To(Equal("a"))
			Expect(input.Cursor).To(Equal(1))
		})

		It("should be a no-op at the start of the field", func() {
			input := tui.NewInputField(80).DeleteBackward()
			Expect(input.Content).To(BeEmpty())
		})
	})

	Describe("WithCursor", func() {
		It("should clamp the cursor into the content bounds", func() {
			input := tui.NewInputField(80).WithContent("ab")

			Expect(input.WithCursor(99).Cursor).To(Equal(2))
			Expect(input.WithCursor(-1).Cursor).To(Equal(0))
		})
	})

	Describe("Clear", func() {
		It("should drop content but keep the width", func() {
			input := tui.NewInputField(42).WithContent("draft").Clear()

			Expect(input.Content).To(BeEmpty())
			Expect(input.Cursor).To(Equal(0))
			Expect(input.Width).To(Equal(42))
		})
	})
})

var _ = Describe("StatusBar", func() {
	It("should start ready and assume the backend is up", func() {
		status := tui.NewStatusBar(80)

		Expect(status.Status).To(Equal("Ready"))
		Expect(status.BackendAvailable).To(BeTrue())
	})

	It("should chain updates immutably", func() {
		base := tui.NewStatusBar(80)
		updated := base.
			WithBackend("http://localhost:8058", false).
			WithSession("sess-1").
			WithStatus("Thinking...")

		Expect(updated.BackendURL).To(Equal("http://localhost:8058"))
		Expect(updated.BackendAvailable).To(BeFalse())
		Expect(updated.SessionID).To(Equal("sess-1"))
		Expect(updated.Status).To(Equal("Thinking..."))

		Expect(base.BackendURL).To(BeEmpty())
		Expect(base.Status).To(Equal("Ready"))
	})
})
