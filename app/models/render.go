package models

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	// BoxWidth is the width of every rendered row, decorators included.
	BoxWidth = 54
	// TextWidth is the room left between the two decorators.
	TextWidth = BoxWidth - 4
)

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

var decorators = [2][2]string{
	{"\\ ", " /"},
	{"/ ", " \\"},
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", strings.Repeat(" ", tabWidth))

// Render draws the post as a fixed-width box: a dashed border, the centered
// title over a blank row, the word-wrapped message with alternating side
// decorators, and a closing border. The last row has no trailing newline.
func (p *Post) Render() string {
	border := strings.Repeat("-", BoxWidth)

	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')

	b.WriteString(decorators[0][0] + center(sanitize(p.title), TextWidth) + decorators[0][1] + "\n")
	b.WriteString(decorators[1][0] + strings.Repeat(" ", TextWidth) + decorators[1][1] + "\n")

	for count, line := range wrap(sanitize(p.msg)+"\n", TextWidth) {
		d := decorators[count%2]
		b.WriteString(d[0] + runewidth.FillRight(line, TextWidth) + d[1] + "\n")
	}

	b.WriteString(border)
	return b.String()
}

// String implements fmt.Stringer with the boxed rendering.
func (p *Post) String() string {
	return p.Render()
}

// sanitize normalises line endings, expands tabs and drops the remaining
// control characters, none of which occupy a column.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, lineEndings.Replace(s))
}

// center pads s to exactly width columns, cutting it when it is wider.
// Odd padding leaves the extra column on the right.
func center(s string, width int) string {
	s = runewidth.Truncate(strings.ReplaceAll(s, "\n", " "), width, "")
	pad := width - runewidth.StringWidth(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

type word struct {
	text  string
	space string
}

// wrap breaks text into lines of at most width columns. Every "\n" starts a
// new paragraph and an empty paragraph yields a single empty line.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

// wrapParagraph fills lines greedily, first fit. Words wider than width are
// cut into width-sized chunks.
func wrapParagraph(paragraph string, width int) []string {
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
		started   bool
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	for _, w := range splitWords(paragraph) {
		chunks := breakWord(w.text, width)
		for i, chunk := range chunks {
			space := ""
			if i == len(chunks)-1 {
				space = w.space
			}
			chunkWidth := runewidth.StringWidth(chunk)
			if started && lineWidth+chunkWidth > width {
				flush()
			}
			line.WriteString(chunk + space)
			lineWidth += chunkWidth + len(space)
			started = true
		}
	}
	flush()
	return lines
}

// splitWords cuts s at runs of spaces. Each word keeps the spaces that follow it.
func splitWords(s string) []word {
	var words []word
	for len(s) > 0 {
		end := strings.IndexByte(s, ' ')
		if end < 0 {
			words = append(words, word{text: s})
			break
		}
		rest := strings.TrimLeft(s[end:], " ")
		words = append(words, word{text: s[:end], space: s[end : len(s)-len(rest)]})
		s = rest
	}
	return words
}

func breakWord(text string, width int) []string {
	if runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var (
		chunks []string
		chunk  strings.Builder
		w      int
	)
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if w > 0 && w+rw > width {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
			w = 0
		}
		chunk.WriteRune(r)
		w += rw
	}
	if chunk.Len() > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
