package richgui

import (
	"fmt"
	"strings"
)

// NoEntity marks a Character that holds plain text.
const NoEntity = -1

// TextStyle is the per-character formatting of a TextEditModel.
type TextStyle struct {
	Bold  bool    `toml:"bold"`
	Size  float32 `toml:"size"`
	Color uint32  `toml:"color"`
}

// DefaultTextStyle is the style of a freshly constructed model.
var DefaultTextStyle = TextStyle{Size: 16, Color: ColorBlack}

// Character is one logical character of a Line.
//
// Index is the byte offset of the first byte inside the line's content and
// NumBytes the length of its UTF-8 encoding. An entity character (EntityID != NoEntity)
// stands for an opaque embedded object whose raw bytes span NumBytes.
type Character struct {
	Index    int
	NumBytes int
	EntityID int
	Style    TextStyle
}

// IsEntity reports whether the character is an embedded object.
func (c Character) IsEntity() bool { return c.EntityID != NoEntity }

// Line owns a run of UTF-8 bytes and the characters decoded from it.
// Style is the fallback used when the line is empty and for start-of-line queries.
type Line struct {
	text       []byte
	Characters []Character
	Style      TextStyle
}

// NumBytes returns the content length including the terminator slot, so that
// the sum of all Character.NumBytes plus one always equals NumBytes.
func (l *Line) NumBytes() int { return len(l.text) + 1 }

// Content returns a copy of the line's bytes (without the terminator).
func (l *Line) Content() string { return string(l.text) }

// Len returns the number of characters on the line.
func (l *Line) Len() int { return len(l.Characters) }

// byteOffset maps a character index to a byte offset; index == Len() maps to the end.
func (l *Line) byteOffset(index int) int {
	if index < len(l.Characters) {
		return l.Characters[index].Index
	}
	return len(l.text)
}

// CharacterBytes returns the raw bytes of character i.
func (l *Line) CharacterBytes(i int) []byte {
	c := l.Characters[i]
	return l.text[c.Index : c.Index+c.NumBytes]
}

// reindex recomputes every Character.Index from the byte widths.
func (l *Line) reindex() {
	off := 0
	for i := range l.Characters {
		l.Characters[i].Index = off
		off += l.Characters[i].NumBytes
	}
}

// Selection is an anchor (A) and caret (B) pair. The two ends are not ordered;
// use Normalized before taking a range.
type Selection struct {
	ALine, AIndex int
	BLine, BIndex int
	// DesiredIndex remembers the column targeted by vertical caret movement.
	DesiredIndex int
}

// IsEmpty reports whether anchor and caret coincide.
func (s Selection) IsEmpty() bool {
	return s.ALine == s.BLine && s.AIndex == s.BIndex
}

// Normalized returns (minLine, minIndex, maxLine, maxIndex) in text order.
func (s Selection) Normalized() (minLine, minIndex, maxLine, maxIndex int) {
	if s.ALine < s.BLine || (s.ALine == s.BLine && s.AIndex <= s.BIndex) {
		return s.ALine, s.AIndex, s.BLine, s.BIndex
	}
	return s.BLine, s.BIndex, s.ALine, s.AIndex
}

// Swapped returns the selection with anchor and caret exchanged.
func (s Selection) Swapped() Selection {
	return Selection{
		ALine: s.BLine, AIndex: s.BIndex,
		BLine: s.ALine, BIndex: s.AIndex,
		DesiredIndex: s.DesiredIndex,
	}
}

// Caret returns a collapsed selection at (line, index).
func Caret(line, index int) Selection {
	return Selection{ALine: line, AIndex: index, BLine: line, BIndex: index, DesiredIndex: index}
}

// StyleCommandKind selects which TextStyle field a StyleCommand changes.
type StyleCommandKind int

const (
	StyleBold StyleCommandKind = iota
	StyleSize
	StyleColor
)

// StyleCommand is one formatting change applied by ApplyStyle.
type StyleCommand struct {
	Kind  StyleCommandKind
	Bold  bool
	Size  float32
	Color uint32
}

func (c StyleCommand) apply(s *TextStyle) {
	switch c.Kind {
	case StyleBold:
		s.Bold = c.Bold
	case StyleSize:
		s.Size = c.Size
	case StyleColor:
		s.Color = c.Color
	}
}

// TextEditModel is the line/character buffer behind a rich text editor.
//
// The model always holds at least one line. Every structural mutation increments
// VersionCount, which downstream caches use as a dirty flag.
type TextEditModel struct {
	Lines        []Line
	Selection    Selection
	VersionCount uint64

	FontRegular string
	FontBold    string
}

// NewTextEditModel returns a model holding one empty line.
func NewTextEditModel() *TextEditModel {
	return &TextEditModel{
		Lines:       []Line{{Style: DefaultTextStyle}},
		FontRegular: FontRegular,
		FontBold:    FontBold,
	}
}

// FontFor returns the font name used to draw style.
func (m *TextEditModel) FontFor(style TextStyle) string {
	if style.Bold {
		return m.FontBold
	}
	return m.FontRegular
}

// utf8Width returns the byte width of the codepoint starting with lead.
// Only the high bits are inspected; malformed sequences get an unspecified width.
func utf8Width(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// decodeCharacters splits b into characters of the given style, with indices relative to base.
func decodeCharacters(b []byte, base int, style TextStyle) []Character {
	chars := make([]Character, 0, len(b))
	for i := 0; i < len(b); {
		n := utf8Width(b[i])
		if i+n > len(b) {
			n = len(b) - i
		}
		chars = append(chars, Character{Index: base + i, NumBytes: n, EntityID: NoEntity, Style: style})
		i += n
	}
	return chars
}

func newLine(s string, style TextStyle) Line {
	b := []byte(s)
	return Line{text: b, Characters: decodeCharacters(b, 0, style), Style: style}
}

func (m *TextEditModel) validLine(line int) bool {
	return line >= 0 && line < len(m.Lines)
}

// clampSelection keeps both selection ends inside the buffer.
func (m *TextEditModel) clampSelection() {
	clamp := func(line, index *int) {
		if *line < 0 {
			*line = 0
		}
		if *line >= len(m.Lines) {
			*line = len(m.Lines) - 1
		}
		if *index < 0 {
			*index = 0
		}
		if n := m.Lines[*line].Len(); *index > n {
			*index = n
		}
	}
	clamp(&m.Selection.ALine, &m.Selection.AIndex)
	clamp(&m.Selection.BLine, &m.Selection.BIndex)
}

func (m *TextEditModel) touch() {
	m.VersionCount++
	m.clampSelection()
}

// SetTextContent replaces the whole buffer, splitting s on '\n'.
// Every character takes the previous line-0 style.
func (m *TextEditModel) SetTextContent(s string) {
	style := DefaultTextStyle
	if len(m.Lines) > 0 {
		style = m.Lines[0].Style
	}
	parts := strings.Split(s, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = newLine(p, style)
	}
	m.Lines = lines
	m.Selection = Selection{}
	m.touch()
}

// Text returns the whole buffer with lines joined by '\n'.
func (m *TextEditModel) Text() string {
	last := len(m.Lines) - 1
	return m.GetTextContent(Selection{BLine: last, BIndex: m.Lines[last].Len()})
}

// GetTextContent returns the raw bytes covered by sel (entities contribute their raw bytes).
func (m *TextEditModel) GetTextContent(sel Selection) string {
	minLine, minIndex, maxLine, maxIndex := sel.Normalized()
	if !m.validLine(minLine) || !m.validLine(maxLine) {
		return ""
	}
	var sb strings.Builder
	for l := minLine; l <= maxLine; l++ {
		line := &m.Lines[l]
		from, to := 0, line.Len()
		if l == minLine {
			from = min(minIndex, line.Len())
		}
		if l == maxLine {
			to = min(maxIndex, line.Len())
		}
		if from < to {
			sb.Write(line.text[line.byteOffset(from):line.byteOffset(to)])
		}
		if l != maxLine {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StyleAt returns the style a character inserted at (line, index) inherits:
// the character before the position, or the line style at index 0.
func (m *TextEditModel) StyleAt(line, index int) TextStyle {
	if !m.validLine(line) {
		return DefaultTextStyle
	}
	l := &m.Lines[line]
	if index > 0 && index <= l.Len() {
		return l.Characters[index-1].Style
	}
	return l.Style
}

// InsertTextContent inserts s at (line, index) and returns the caret after the inserted text.
// Multi-line input splits the target line into a head and a tail with the inner lines between.
func (m *TextEditModel) InsertTextContent(line, index int, s string) (int, int) {
	if !m.validLine(line) {
		editLogger.Warn("insert outside buffer", "line", line, "lines", len(m.Lines))
		return line, index
	}
	l := &m.Lines[line]
	index = max(0, min(index, l.Len()))
	if s == "" {
		return line, index
	}

	style := m.StyleAt(line, index)
	off := l.byteOffset(index)
	parts := strings.Split(s, "\n")

	if len(parts) == 1 {
		ins := decodeCharacters([]byte(s), 0, style)
		text := make([]byte, 0, len(l.text)+len(s))
		text = append(text, l.text[:off]...)
		text = append(text, s...)
		text = append(text, l.text[off:]...)
		chars := make([]Character, 0, len(l.Characters)+len(ins))
		chars = append(chars, l.Characters[:index]...)
		chars = append(chars, ins...)
		chars = append(chars, l.Characters[index:]...)
		l.text = text
		l.Characters = chars
		l.reindex()
		m.touch()
		return line, index + len(ins)
	}

	first, last := parts[0], parts[len(parts)-1]

	head := Line{Style: l.Style}
	head.text = append(append([]byte{}, l.text[:off]...), first...)
	head.Characters = append(append([]Character{}, l.Characters[:index]...), decodeCharacters([]byte(first), 0, style)...)
	head.reindex()

	lastChars := decodeCharacters([]byte(last), 0, style)
	tail := Line{Style: style}
	tail.text = append(append([]byte{}, last...), l.text[off:]...)
	tail.Characters = append(lastChars, l.Characters[index:]...)
	tail.reindex()

	lines := make([]Line, 0, len(m.Lines)+len(parts)-1)
	lines = append(lines, m.Lines[:line]...)
	lines = append(lines, head)
	for _, p := range parts[1 : len(parts)-1] {
		lines = append(lines, newLine(p, style))
	}
	lines = append(lines, tail)
	lines = append(lines, m.Lines[line+1:]...)
	m.Lines = lines
	m.touch()
	return line + len(parts) - 1, len(lastChars)
}

// InsertCharacter inserts one character (its UTF-8 encoding) at (line, index).
func (m *TextEditModel) InsertCharacter(line, index int, ch string) {
	if ch == "\n" {
		m.InsertLineBreak(line, index)
		return
	}
	m.InsertTextContent(line, index, ch)
}

// DeleteRange removes the text covered by sel. An empty selection is a no-op.
func (m *TextEditModel) DeleteRange(sel Selection) {
	if sel.IsEmpty() {
		return
	}
	minLine, minIndex, maxLine, maxIndex := sel.Normalized()
	if !m.validLine(minLine) || !m.validLine(maxLine) {
		editLogger.Warn("delete outside buffer", "from", minLine, "to", maxLine, "lines", len(m.Lines))
		return
	}
	first := &m.Lines[minLine]
	last := &m.Lines[maxLine]
	minIndex = max(0, min(minIndex, first.Len()))
	maxIndex = max(0, min(maxIndex, last.Len()))

	from := first.byteOffset(minIndex)
	to := last.byteOffset(maxIndex)

	if minLine == maxLine {
		if minIndex >= maxIndex {
			return
		}
		removed := to - from
		text := make([]byte, 0, len(first.text)-removed)
		text = append(text, first.text[:from]...)
		text = append(text, first.text[to:]...)
		first.text = text
		first.Characters = append(first.Characters[:minIndex:minIndex], first.Characters[maxIndex:]...)
	} else {
		text := make([]byte, 0, from+len(last.text)-to)
		text = append(text, first.text[:from]...)
		text = append(text, last.text[to:]...)
		chars := make([]Character, 0, minIndex+last.Len()-maxIndex)
		chars = append(chars, first.Characters[:minIndex]...)
		chars = append(chars, last.Characters[maxIndex:]...)
		first.text = text
		first.Characters = chars
		m.Lines = append(m.Lines[:minLine+1], m.Lines[maxLine+1:]...)
		first = &m.Lines[minLine]
	}
	first.reindex()

	if minIndex == 0 && first.Len() > 0 {
		first.Style = first.Characters[0].Style
	}
	m.touch()
}

// InsertLineBreak splits line at index. The new line takes its style from its own
// first character, else the original line's last character, else the original line style.
func (m *TextEditModel) InsertLineBreak(line, index int) {
	if !m.validLine(line) {
		editLogger.Warn("line break outside buffer", "line", line, "lines", len(m.Lines))
		return
	}
	l := &m.Lines[line]
	index = max(0, min(index, l.Len()))
	off := l.byteOffset(index)

	next := Line{
		text:       append([]byte{}, l.text[off:]...),
		Characters: append([]Character{}, l.Characters[index:]...),
	}
	next.reindex()
	switch {
	case next.Len() > 0:
		next.Style = next.Characters[0].Style
	case l.Len() > 0:
		next.Style = l.Characters[l.Len()-1].Style
	default:
		next.Style = l.Style
	}

	l.text = l.text[:off:off]
	l.Characters = l.Characters[:index:index]

	lines := make([]Line, 0, len(m.Lines)+1)
	lines = append(lines, m.Lines[:line+1]...)
	lines = append(lines, next)
	lines = append(lines, m.Lines[line+1:]...)
	m.Lines = lines
	m.touch()
}

// flatOffset converts (line, index) to a character count from the buffer start.
func (m *TextEditModel) flatOffset(line, index int) int {
	off := 0
	for i := 0; i < line && i < len(m.Lines); i++ {
		off += m.Lines[i].Len()
	}
	return off + index
}

// RemoveLineBreaks collapses the buffer into a single line, preserving the selection.
func (m *TextEditModel) RemoveLineBreaks() {
	if len(m.Lines) == 1 {
		return
	}
	a := m.flatOffset(m.Selection.ALine, m.Selection.AIndex)
	b := m.flatOffset(m.Selection.BLine, m.Selection.BIndex)

	joined := Line{Style: m.Lines[0].Style}
	for i := range m.Lines {
		joined.text = append(joined.text, m.Lines[i].text...)
		joined.Characters = append(joined.Characters, m.Lines[i].Characters...)
	}
	joined.reindex()
	m.Lines = []Line{joined}
	m.Selection = Selection{AIndex: a, BIndex: b, DesiredIndex: b}
	m.touch()
}

// ApplyStyle changes one style field on every character in sel. Lines whose affected
// range starts at index 0 also get their fallback style updated.
func (m *TextEditModel) ApplyStyle(sel Selection, cmd StyleCommand) {
	minLine, minIndex, maxLine, maxIndex := sel.Normalized()
	if !m.validLine(minLine) || !m.validLine(maxLine) {
		editLogger.Warn("style outside buffer", "from", minLine, "to", maxLine, "lines", len(m.Lines))
		return
	}
	for ln := minLine; ln <= maxLine; ln++ {
		l := &m.Lines[ln]
		from, to := 0, l.Len()
		if ln == minLine {
			from = min(minIndex, l.Len())
		}
		if ln == maxLine {
			to = min(maxIndex, l.Len())
		}
		for i := from; i < to; i++ {
			cmd.apply(&l.Characters[i].Style)
		}
		if from == 0 {
			cmd.apply(&l.Style)
		}
	}
	m.touch()
}

// CreateEntity collapses characters [from, to) of line into one opaque entity character.
// from > to is a programming error and panics; out-of-range requests are logged and ignored.
func (m *TextEditModel) CreateEntity(line, from, to, entityID int) {
	if from > to {
		panic(fmt.Sprintf("richgui: CreateEntity range inverted (from=%d, to=%d)", from, to))
	}
	if !m.validLine(line) || from < 0 || to > m.Lines[line].Len() || from == to {
		editLogger.Warn("create entity ignored: range out of bounds",
			"line", line, "from", from, "to", to, "entity", entityID)
		return
	}
	l := &m.Lines[line]
	span := 0
	for _, c := range l.Characters[from:to] {
		span += c.NumBytes
	}
	ent := Character{
		Index:    l.Characters[from].Index,
		NumBytes: span,
		EntityID: entityID,
		Style:    l.Characters[from].Style,
	}
	chars := make([]Character, 0, l.Len()-(to-from)+1)
	chars = append(chars, l.Characters[:from]...)
	chars = append(chars, ent)
	chars = append(chars, l.Characters[to:]...)
	l.Characters = chars
	l.reindex()
	m.touch()
}

// HasSelection reports whether the model's selection covers any text.
func (m *TextEditModel) HasSelection() bool {
	return !m.Selection.IsEmpty()
}

// SetSelection replaces the selection, clamped to the buffer.
func (m *TextEditModel) SetSelection(sel Selection) {
	m.Selection = sel
	m.clampSelection()
}

// SelectAll selects the whole buffer with the caret at the end.
func (m *TextEditModel) SelectAll() {
	last := len(m.Lines) - 1
	n := m.Lines[last].Len()
	m.Selection = Selection{BLine: last, BIndex: n, DesiredIndex: n}
}

// CollapseSelection moves the anchor onto the caret.
func (m *TextEditModel) CollapseSelection() {
	m.Selection.ALine = m.Selection.BLine
	m.Selection.AIndex = m.Selection.BIndex
}

// SelectedText returns the text covered by the model's selection.
func (m *TextEditModel) SelectedText() string {
	return m.GetTextContent(m.Selection)
}

// SelectionStyle returns the style new text typed at the selection start would use.
func (m *TextEditModel) SelectionStyle() TextStyle {
	minLine, minIndex, _, _ := m.Selection.Normalized()
	if m.HasSelection() && m.validLine(minLine) && minIndex < m.Lines[minLine].Len() {
		return m.Lines[minLine].Characters[minIndex].Style
	}
	return m.StyleAt(minLine, minIndex)
}

// CheckInvariants verifies the byte/character bookkeeping of every line.
func (m *TextEditModel) CheckInvariants() error {
	if len(m.Lines) == 0 {
		return fmt.Errorf("model has no lines")
	}
	for ln := range m.Lines {
		l := &m.Lines[ln]
		sum := 0
		for i, c := range l.Characters {
			if c.Index != sum {
				return fmt.Errorf("line %d char %d: index %d, want %d", ln, i, c.Index, sum)
			}
			if c.NumBytes <= 0 {
				return fmt.Errorf("line %d char %d: non-positive width %d", ln, i, c.NumBytes)
			}
			sum += c.NumBytes
		}
		if sum+1 != l.NumBytes() {
			return fmt.Errorf("line %d: characters cover %d bytes, line has %d", ln, sum+1, l.NumBytes())
		}
	}
	for _, p := range [][2]int{{m.Selection.ALine, m.Selection.AIndex}, {m.Selection.BLine, m.Selection.BIndex}} {
		if !m.validLine(p[0]) || p[1] < 0 || p[1] > m.Lines[p[0]].Len() {
			return fmt.Errorf("selection end (%d, %d) outside buffer", p[0], p[1])
		}
	}
	return nil
}
