package richgui

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// wordSpan is one segment produced by Unicode word segmentation, in character indices.
type wordSpan struct {
	from, to int
	isWord   bool
}

// charIndexAt converts a byte offset of line to a character index, rounding
// offsets inside a multi-byte character (or entity) up to the next character.
func (l *Line) charIndexAt(off int) int {
	for i, c := range l.Characters {
		if off <= c.Index {
			return i
		}
		if off < c.Index+c.NumBytes {
			return i + 1
		}
	}
	return len(l.Characters)
}

// wordSpans segments a line into words and separators.
func (l *Line) wordSpans() []wordSpan {
	var spans []wordSpan
	rest := string(l.text)
	state := -1
	off := 0
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		from, to := l.charIndexAt(off), l.charIndexAt(off+len(word))
		off += len(word)
		if from == to {
			continue
		}
		spans = append(spans, wordSpan{from: from, to: to, isWord: isWordLike(word)})
	}
	return spans
}

func isWordLike(s string) bool {
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
		s = s[n:]
	}
	return false
}

// WordAt returns the character range of the word (or separator run) containing index.
func (m *TextEditModel) WordAt(line, index int) (from, to int) {
	if !m.validLine(line) {
		return 0, 0
	}
	l := &m.Lines[line]
	spans := l.wordSpans()
	for _, s := range spans {
		if index >= s.from && index < s.to {
			return s.from, s.to
		}
	}
	if n := len(spans); n > 0 && index >= spans[n-1].to {
		return spans[n-1].from, spans[n-1].to
	}
	return index, index
}

// nextWordEnd returns the end of the first word ending after index.
func (l *Line) nextWordEnd(index int) int {
	for _, s := range l.wordSpans() {
		if s.isWord && s.to > index {
			return s.to
		}
	}
	return l.Len()
}

// prevWordStart returns the start of the last word starting before index.
func (l *Line) prevWordStart(index int) int {
	spans := l.wordSpans()
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].isWord && spans[i].from < index {
			return spans[i].from
		}
	}
	return 0
}

// ApplyKeyboardInput interprets one key event against the buffer.
//
// A handled event is cleared so no other widget acts on it, and true is returned.
// In readonly mode every mutating command is skipped and its event left in place.
// clip may be nil, which disables copy, cut and paste.
func (m *TextEditModel) ApplyKeyboardInput(key *KeyEvent, clip ClipboardProvider, readonly bool) bool {
	if key == nil || key.IsZero() || !key.Pressed() {
		return false
	}
	ev := *key
	if m.keyboardCommand(ev, clip, readonly) {
		*key = KeyEvent{}
		return true
	}
	return false
}

func (m *TextEditModel) keyboardCommand(ev KeyEvent, clip ClipboardProvider, readonly bool) bool {
	cmd := ev.Has(CommandMod)
	shift := ev.Has(ModShift)
	sel := &m.Selection
	line, index := sel.BLine, sel.BIndex

	moveTo := func(ln, idx int, keepDesired bool) {
		sel.BLine, sel.BIndex = ln, idx
		if !shift {
			sel.ALine, sel.AIndex = ln, idx
		}
		if !keepDesired {
			sel.DesiredIndex = idx
		}
	}
	lineLen := func(ln int) int { return m.Lines[ln].Len() }
	lastLine := len(m.Lines) - 1

	switch ev.Key {
	case KeyLeft:
		switch {
		case !shift && !sel.IsEmpty():
			minLine, minIndex, _, _ := sel.Normalized()
			moveTo(minLine, minIndex, false)
		case index == 0 && line > 0:
			moveTo(line-1, lineLen(line-1), false)
		case cmd:
			moveTo(line, m.Lines[line].prevWordStart(index), false)
		case index > 0:
			moveTo(line, index-1, false)
		default:
			moveTo(line, index, false)
		}
		return true

	case KeyRight:
		switch {
		case !shift && !sel.IsEmpty():
			_, _, maxLine, maxIndex := sel.Normalized()
			moveTo(maxLine, maxIndex, false)
		case index >= lineLen(line) && line < lastLine:
			moveTo(line+1, 0, false)
		case cmd:
			moveTo(line, m.Lines[line].nextWordEnd(index), false)
		case index < lineLen(line):
			moveTo(line, index+1, false)
		default:
			moveTo(line, index, false)
		}
		return true

	case KeyUp:
		switch {
		case cmd:
			moveTo(0, min(sel.DesiredIndex, lineLen(0)), true)
		case line == 0:
			moveTo(0, 0, false)
		default:
			moveTo(line-1, min(sel.DesiredIndex, lineLen(line-1)), true)
		}
		return true

	case KeyDown:
		switch {
		case cmd:
			moveTo(lastLine, min(sel.DesiredIndex, lineLen(lastLine)), true)
		case line == lastLine:
			moveTo(lastLine, lineLen(lastLine), false)
		default:
			moveTo(line+1, min(sel.DesiredIndex, lineLen(line+1)), true)
		}
		return true

	case KeyHome:
		if cmd {
			moveTo(0, 0, false)
		} else {
			moveTo(line, 0, false)
		}
		return true

	case KeyEnd:
		if cmd {
			moveTo(lastLine, lineLen(lastLine), false)
		} else {
			moveTo(line, lineLen(line), false)
		}
		return true

	case KeyEnter:
		if readonly {
			return false
		}
		ln, idx := m.deleteSelection()
		m.InsertLineBreak(ln, idx)
		m.Selection = Caret(ln+1, 0)
		return true

	case KeyBackspace:
		if readonly {
			return false
		}
		if m.HasSelection() {
			m.deleteSelection()
			return true
		}
		switch {
		case index > 0:
			m.DeleteRange(Selection{ALine: line, AIndex: index - 1, BLine: line, BIndex: index})
			m.Selection = Caret(line, index-1)
		case line > 0:
			prev := lineLen(line - 1)
			m.DeleteRange(Selection{ALine: line - 1, AIndex: prev, BLine: line, BIndex: 0})
			m.Selection = Caret(line-1, prev)
		}
		return true

	case KeyDelete:
		if readonly {
			return false
		}
		if m.HasSelection() {
			m.deleteSelection()
			return true
		}
		switch {
		case index < lineLen(line):
			m.DeleteRange(Selection{ALine: line, AIndex: index, BLine: line, BIndex: index + 1})
		case line < lastLine:
			m.DeleteRange(Selection{ALine: line, AIndex: index, BLine: line + 1, BIndex: 0})
		}
		m.Selection = Caret(line, index)
		return true
	}

	if cmd {
		switch ev.Key {
		case KeyA:
			m.SelectAll()
			return true
		case KeyC:
			m.Copy(clip)
			return true
		case KeyX:
			if readonly {
				m.Copy(clip)
			} else {
				m.Cut(clip)
			}
			return true
		case KeyV:
			if readonly {
				return false
			}
			m.Paste(clip)
			return true
		case KeyB:
			if readonly {
				return false
			}
			m.ToggleBold()
			return true
		}
		return false
	}

	if ev.Char != "" {
		if readonly {
			return false
		}
		m.replaceSelection(ev.Char)
		return true
	}
	return false
}

// deleteSelection removes the selected text and collapses the caret at its start.
func (m *TextEditModel) deleteSelection() (line, index int) {
	minLine, minIndex, _, _ := m.Selection.Normalized()
	if m.HasSelection() {
		m.DeleteRange(m.Selection)
	}
	m.Selection = Caret(minLine, minIndex)
	m.clampSelection()
	return m.Selection.BLine, m.Selection.BIndex
}

// replaceSelection deletes the selection and inserts text in its place.
func (m *TextEditModel) replaceSelection(text string) {
	line, index := m.deleteSelection()
	line, index = m.InsertTextContent(line, index, text)
	m.Selection = Caret(line, index)
}

// Copy puts the selected text on clip. Returns false when nothing was copied.
func (m *TextEditModel) Copy(clip ClipboardProvider) bool {
	if clip == nil || !m.HasSelection() {
		return false
	}
	clip.SetText(m.SelectedText())
	return true
}

// Cut copies the selection to clip and deletes it.
func (m *TextEditModel) Cut(clip ClipboardProvider) bool {
	if !m.Copy(clip) {
		return false
	}
	m.deleteSelection()
	return true
}

// Paste replaces the selection with the clipboard text.
func (m *TextEditModel) Paste(clip ClipboardProvider) bool {
	if clip == nil {
		return false
	}
	text := clip.GetText()
	if text == "" {
		return false
	}
	m.replaceSelection(text)
	return true
}

// ToggleBold flips bold on the selection, based on the style at its start.
func (m *TextEditModel) ToggleBold() {
	m.ApplyStyle(m.Selection, StyleCommand{Kind: StyleBold, Bold: !m.SelectionStyle().Bold})
}
