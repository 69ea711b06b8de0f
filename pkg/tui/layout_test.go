package tui_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/datadiver/diver/pkg/tui"
)

var _ = Describe("Rect", func() {
	Describe("NewRect", func() {
		It("should create rect with specified dimensions", func() {
			rect := tui.NewRect(10, 20, 30, 40)

			Expect(rect.X).To(Equal(10))
			Expect(rect.Y).To(Equal(20))
			Expect(rect.Width).To(Equal(30))
			Expect(rect.Height).To(Equal(40))
		})
	})

	Describe("edges", func() {
		It("should return right and bottom coordinates", func() {
			rect := tui.NewRect(10, 20, 30, 40)

			Expect(rect.Right()).To(Equal(40))
			Expect(rect.Bottom()).To(Equal(60))
		})
	})

	Describe("Contains", func() {
		It("should return true for points inside rect", func() {
			rect := tui.NewRect(10, 20, 30, 40)

			Expect(rect.Contains(10, 20)).To(BeTrue())
			Expect(rect.Contains(25, 30)).To(BeTrue())
			Expect(rect.Contains(39, 59)).To(BeTrue())
		})

		It("should return false for points outside rect", func() {
			rect := tui.NewRect(10, 20, 30, 40)

			Expect(rect.Contains(9, 20)).To(BeFalse())
			Expect(rect.Contains(40, 30)).To(BeFalse())
			Expect(rect.Contains(25, 60)).To(BeFalse())
		})
	})
})

var _ = Describe("Layout", func() {
	Describe("CalculateAreas", func() {
		It("should divide screen into message, retrieval, input, and status areas", func() {
			layout := tui.NewLayout(100, 50)

			messageArea, retrievalArea, inputArea, statusArea := layout.CalculateAreas()

			// Status bar: 1 line at the bottom, full width.
			Expect(statusArea.Height).To(Equal(1))
			Expect(statusArea.Y).To(Equal(49))
			Expect(statusArea.Width).To(Equal(100))

			// Input area: 3 lines above the status bar.
			Expect(inputArea.Height).To(Equal(3))
			Expect(inputArea.Y).To(Equal(46))

			// Retrieval strip: 1 line between messages and input.
			Expect(retrievalArea.Height).To(Equal(1))
			Expect(retrievalArea.Y).To(Equal(45))

			// Messages: everything else, with horizontal padding.
			Expect(messageArea.Y).To(Equal(0))
			Expect(messageArea.Height).To(Equal(45))
			Expect(messageArea.X).To(Equal(2))
			Expect(messageArea.Width).To(Equal(96))
		})

		It("should never collapse the message area below one line", func() {
			layout := tui.NewLayout(80, 4)

			messageArea, _, _, _ := layout.CalculateAreas()
			Expect(messageArea.Height).To(Equal(1))
		})

		It("should drop padding on very narrow screens", func() {
			layout := tui.NewLayout(3, 24)

			messageArea, _, _, _ := layout.CalculateAreas()
			Expect(messageArea.X).To(Equal(0))
			Expect(messageArea.Width).To(Equal(3))
		})
	})
})

var _ = Describe("WrapText", func() {
	It("should return text unchanged when it fits", func() {
		Expect(tui.WrapText("hello", 10)).To(Equal([]string{"hello"}))
	})

	It("should wrap at word boundaries", func() {
		lines := tui.WrapText("the quick brown fox", 10)
		Expect(lines).To(Equal([]string{"the quick", "brown fox"}))
	})

	It("should hard-break words longer than the width", func() {
		lines := tui.WrapText("abcdefghij", 4)
		Expect(lines).To(Equal([]string{"abcd", "efgh", "ij"}))
	})

	It("should return empty for zero width or empty text", func() {
		Expect(tui.WrapText("hello", 0)).To(BeEmpty())
		Expect(tui.WrapText("", 10)).To(BeEmpty())
	})
})

var _ = Describe("CalculateVisibleLines", func() {
	lines := []string{"a", "b", "c", "d", "e"}

	It("should return the window starting at the scroll offset", func() {
		visible, start := tui.CalculateVisibleLines(lines, 2, 1)

		Expect(visible).To(Equal([]string{"b", "c"}))
		Expect(start).To(Equal(1))
	})

	It("should clamp scroll past the end", func() {
		visible, start := tui.CalculateVisibleLines(lines, 2, 10)

		Expect(start).To(Equal(4))
		Expect(visible).To(Equal([]string{"e"}))
	})

	It("should clamp negative scroll to zero", func() {
		visible, start := tui.CalculateVisibleLines(lines, 2, -3)

		Expect(start).To(Equal(0))
		Expect(visible).To(Equal([]string{"a", "b"}))
	})

	It("should handle empty input", func() {
		visible, start := tui.CalculateVisibleLines(nil, 2, 0)

		Expect(visible).To(BeEmpty())
		Expect(start).To(Equal(0))
	})
})
