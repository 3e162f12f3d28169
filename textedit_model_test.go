package richgui

import (
	"strings"
	"testing"
)

func lineTexts(m *TextEditModel) []string {
	out := make([]string, len(m.Lines))
	for i := range m.Lines {
		out[i] = m.Lines[i].Content()
	}
	return out
}

func mustInvariants(t *testing.T, m *TextEditModel) {
	t.Helper()
	if err := m.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}

func TestSetTextContent(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab\ncd")

	if len(m.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(m.Lines))
	}
	if m.VersionCount != 1 {
		t.Errorf("Expected VersionCount=1, got %d", m.VersionCount)
	}
	if m.Lines[0].Len() != 2 || m.Lines[1].Len() != 2 {
		t.Errorf("Expected 2 characters per line, got %d and %d", m.Lines[0].Len(), m.Lines[1].Len())
	}
	if got := m.Text(); got != "ab\ncd" {
		t.Errorf("Expected round trip %q, got %q", "ab\ncd", got)
	}
	mustInvariants(t, m)
}

func TestSetTextContentMultiByte(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("aé€😀")
	l := &m.Lines[0]
	wantWidths := []int{1, 2, 3, 4}
	wantIndex := []int{0, 1, 3, 6}
	if l.Len() != 4 {
		t.Fatalf("Expected 4 characters, got %d", l.Len())
	}
	for i, c := range l.Characters {
		if c.NumBytes != wantWidths[i] || c.Index != wantIndex[i] {
			t.Errorf("char %d: expected (index %d, width %d), got (%d, %d)",
				i, wantIndex[i], wantWidths[i], c.Index, c.NumBytes)
		}
	}
	if l.NumBytes() != 11 {
		t.Errorf("Expected NumBytes=11 (10 + terminator), got %d", l.NumBytes())
	}
	mustInvariants(t, m)
}

func TestMalformedUTF8IsClamped(t *testing.T) {
	m := NewTextEditModel()
	// A 3-byte lead with only one continuation byte left.
	m.SetTextContent("a\xe2\x82")
	mustInvariants(t, m)
	if m.Lines[0].Len() != 2 {
		t.Errorf("Expected 2 characters, got %d", m.Lines[0].Len())
	}
}

func TestInsertLineBreak(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab\ncd")
	m.InsertLineBreak(0, 1)

	got := lineTexts(m)
	want := []string{"a", "b", "cd"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Expected lines %v, got %v", want, got)
	}
	mustInvariants(t, m)
}

func TestInsertLineBreakStyle(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab")
	m.ApplyStyle(Selection{AIndex: 1, BIndex: 2}, StyleCommand{Kind: StyleBold, Bold: true})

	// Break at the end: the new line inherits the last character's style.
	m.InsertLineBreak(0, 2)
	if !m.Lines[1].Style.Bold {
		t.Error("Expected the empty new line to inherit bold from the previous character")
	}

	// Break before the bold character: the new line takes its first character's style.
	m.InsertLineBreak(0, 1)
	if !m.Lines[1].Style.Bold {
		t.Error("Expected the new line to take the style of its first character")
	}
	if got := lineTexts(m); strings.Join(got, "|") != "a|b|" {
		t.Errorf("Expected lines a|b|, got %v", got)
	}
}

func TestDeleteRangeAcrossLines(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab\ncd")
	m.DeleteRange(Selection{ALine: 0, AIndex: 0, BLine: 1, BIndex: 2})

	if len(m.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(m.Lines))
	}
	if got := m.Lines[0].Content(); got != "" {
		t.Errorf("Expected an empty line, got %q", got)
	}
	mustInvariants(t, m)
}

func TestDeleteRangePartial(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("hello\nbig\nworld")
	m.DeleteRange(Selection{ALine: 2, AIndex: 2, BLine: 0, BIndex: 3})

	if got := m.Text(); got != "helrld" {
		t.Errorf("Expected %q, got %q", "helrld", got)
	}
	mustInvariants(t, m)
}

func TestDeleteRangeSwapSymmetry(t *testing.T) {
	sel := Selection{ALine: 0, AIndex: 1, BLine: 1, BIndex: 1}

	a := NewTextEditModel()
	a.SetTextContent("abc\ndef")
	a.DeleteRange(sel)

	b := NewTextEditModel()
	b.SetTextContent("abc\ndef")
	b.DeleteRange(sel.Swapped())

	if a.Text() != b.Text() {
		t.Errorf("Expected swapped selections to delete the same text, got %q and %q", a.Text(), b.Text())
	}
	if a.Text() != "aef" {
		t.Errorf("Expected %q, got %q", "aef", a.Text())
	}
}

func TestDeleteRangeEmptyIsNoOp(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("abc")
	v := m.VersionCount
	m.DeleteRange(Caret(0, 1))
	if m.VersionCount != v {
		t.Errorf("Expected VersionCount unchanged at %d, got %d", v, m.VersionCount)
	}
	if m.Text() != "abc" {
		t.Errorf("Expected text unchanged, got %q", m.Text())
	}
}

func TestDeleteRangeMultiByte(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("aé€b")
	m.DeleteRange(Selection{AIndex: 1, BIndex: 3})
	if m.Text() != "ab" {
		t.Errorf("Expected %q, got %q", "ab", m.Text())
	}
	mustInvariants(t, m)
}

func TestInsertTextContent(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ad")

	line, idx := m.InsertTextContent(0, 1, "bc")
	if line != 0 || idx != 3 {
		t.Errorf("Expected caret (0, 3), got (%d, %d)", line, idx)
	}
	if m.Text() != "abcd" {
		t.Errorf("Expected %q, got %q", "abcd", m.Text())
	}

	line, idx = m.InsertTextContent(0, 2, "X\nYY\nZ")
	if line != 2 || idx != 1 {
		t.Errorf("Expected caret (2, 1), got (%d, %d)", line, idx)
	}
	if got := strings.Join(lineTexts(m), "|"); got != "abX|YY|Zcd" {
		t.Errorf("Expected abX|YY|Zcd, got %s", got)
	}
	mustInvariants(t, m)
}

func TestInsertTextContentEmptyIsNoOp(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab")
	v := m.VersionCount
	m.InsertTextContent(0, 1, "")
	if m.VersionCount != v {
		t.Errorf("Expected VersionCount unchanged, got %d", m.VersionCount)
	}
}

func TestInsertInheritsStyle(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab")
	m.ApplyStyle(Selection{AIndex: 0, BIndex: 1}, StyleCommand{Kind: StyleBold, Bold: true})

	m.InsertTextContent(0, 1, "x")
	if !m.Lines[0].Characters[1].Style.Bold {
		t.Error("Expected inserted text to inherit bold from the preceding character")
	}
	m.InsertTextContent(0, 3, "y")
	if m.Lines[0].Characters[3].Style.Bold {
		t.Error("Expected text inserted after 'b' to stay regular")
	}
}

func TestInsertCharacterNewline(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab")
	m.InsertCharacter(0, 1, "\n")
	if len(m.Lines) != 2 {
		t.Errorf("Expected a line break, got %d lines", len(m.Lines))
	}
	m.InsertCharacter(1, 0, "é")
	if m.Lines[1].Content() != "éb" {
		t.Errorf("Expected %q, got %q", "éb", m.Lines[1].Content())
	}
}

func TestDeleteRefreshesLineStyle(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab")
	m.ApplyStyle(Selection{AIndex: 1, BIndex: 2}, StyleCommand{Kind: StyleSize, Size: 30})
	m.DeleteRange(Selection{AIndex: 0, BIndex: 1})
	if m.Lines[0].Style.Size != 30 {
		t.Errorf("Expected line style size 30 from the new first character, got %v", m.Lines[0].Style.Size)
	}
}

func TestRemoveLineBreaks(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab\ncd\ne")
	m.SetSelection(Selection{ALine: 1, AIndex: 1, BLine: 2, BIndex: 1})
	m.RemoveLineBreaks()

	if len(m.Lines) != 1 || m.Text() != "abcde" {
		t.Fatalf("Expected a single line %q, got %q", "abcde", m.Text())
	}
	if m.Selection.AIndex != 3 || m.Selection.BIndex != 5 {
		t.Errorf("Expected selection 3..5, got %d..%d", m.Selection.AIndex, m.Selection.BIndex)
	}
	mustInvariants(t, m)

	v := m.VersionCount
	m.RemoveLineBreaks()
	if m.VersionCount != v {
		t.Error("Expected RemoveLineBreaks on one line to be a no-op")
	}
}

func TestApplyStyle(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("abc\ndef")
	m.ApplyStyle(Selection{ALine: 0, AIndex: 2, BLine: 1, BIndex: 1}, StyleCommand{Kind: StyleColor, Color: ColorRed})

	want := []bool{false, false, true}
	for i, w := range want {
		if got := m.Lines[0].Characters[i].Style.Color == ColorRed; got != w {
			t.Errorf("line 0 char %d: expected red=%v, got %v", i, w, got)
		}
	}
	if m.Lines[1].Characters[0].Style.Color != ColorRed || m.Lines[1].Characters[1].Style.Color == ColorRed {
		t.Error("Expected only the first character of line 1 to be red")
	}
	if m.Lines[0].Style.Color == ColorRed {
		t.Error("Expected line 0 style unchanged (range starts mid-line)")
	}
	if m.Lines[1].Style.Color != ColorRed {
		t.Error("Expected line 1 style updated (range starts at index 0)")
	}
}

func TestApplyStyleSwapSymmetry(t *testing.T) {
	sel := Selection{ALine: 0, AIndex: 1, BLine: 2, BIndex: 2}
	cmd := StyleCommand{Kind: StyleBold, Bold: true}

	a := NewTextEditModel()
	a.SetTextContent("abc\ndef\nghi")
	a.ApplyStyle(sel, cmd)

	b := NewTextEditModel()
	b.SetTextContent("abc\ndef\nghi")
	b.ApplyStyle(sel.Swapped(), cmd)

	bold := 0
	for ln := range a.Lines {
		if a.Lines[ln].Style != b.Lines[ln].Style {
			t.Errorf("line %d: expected the same line style, got %+v and %+v", ln, a.Lines[ln].Style, b.Lines[ln].Style)
		}
		for i, ch := range a.Lines[ln].Characters {
			if ch.Style != b.Lines[ln].Characters[i].Style {
				t.Errorf("line %d char %d: expected the same style, got %+v and %+v", ln, i, ch.Style, b.Lines[ln].Characters[i].Style)
			}
			if ch.Style.Bold {
				bold++
			}
		}
	}
	if bold != 7 {
		t.Errorf("Expected 7 bold characters, got %d", bold)
	}
}

func TestCreateEntity(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("a[img]b")
	m.CreateEntity(0, 1, 6, 42)

	l := &m.Lines[0]
	if l.Len() != 3 {
		t.Fatalf("Expected 3 characters, got %d", l.Len())
	}
	ent := l.Characters[1]
	if !ent.IsEntity() || ent.EntityID != 42 || ent.NumBytes != 5 {
		t.Errorf("Expected entity 42 spanning 5 bytes, got %+v", ent)
	}
	if m.Text() != "a[img]b" {
		t.Errorf("Expected raw bytes preserved, got %q", m.Text())
	}
	mustInvariants(t, m)

	m.DeleteRange(Selection{AIndex: 1, BIndex: 2})
	if m.Text() != "ab" {
		t.Errorf("Expected deleting the entity to remove its bytes, got %q", m.Text())
	}
}

func TestCreateEntityOutOfRangeIgnored(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("abc")
	v := m.VersionCount
	m.CreateEntity(0, 1, 10, 1)
	m.CreateEntity(5, 0, 1, 1)
	m.CreateEntity(0, 1, 1, 1)
	if m.VersionCount != v {
		t.Errorf("Expected ignored requests to leave VersionCount at %d, got %d", v, m.VersionCount)
	}
}

func TestCreateEntityInvertedPanics(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("abc")
	defer func() {
		if recover() == nil {
			t.Error("Expected CreateEntity with from > to to panic")
		}
	}()
	m.CreateEntity(0, 2, 1, 1)
}

func TestGetTextContent(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("héllo\nwörld")
	got := m.GetTextContent(Selection{ALine: 1, AIndex: 2, BLine: 0, BIndex: 1})
	if got != "éllo\nwö" {
		t.Errorf("Expected %q, got %q", "éllo\nwö", got)
	}
}

func TestSelectionHelpers(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("ab\ncde")
	m.SelectAll()
	if m.SelectedText() != "ab\ncde" {
		t.Errorf("Expected all text selected, got %q", m.SelectedText())
	}
	m.CollapseSelection()
	if m.HasSelection() {
		t.Error("Expected no selection after collapse")
	}
	if m.Selection.BLine != 1 || m.Selection.BIndex != 3 {
		t.Errorf("Expected caret at end (1, 3), got (%d, %d)", m.Selection.BLine, m.Selection.BIndex)
	}

	m.SetSelection(Selection{ALine: 9, AIndex: 9, BLine: -1, BIndex: -1})
	mustInvariants(t, m)
}

func TestVersionCountIncrements(t *testing.T) {
	m := NewTextEditModel()
	m.SetTextContent("abc")
	ops := []func(){
		func() { m.InsertTextContent(0, 0, "x") },
		func() { m.InsertLineBreak(0, 1) },
		func() { m.DeleteRange(Selection{ALine: 0, AIndex: 0, BLine: 1, BIndex: 0}) },
		func() { m.ApplyStyle(Selection{BIndex: 1}, StyleCommand{Kind: StyleBold, Bold: true}) },
		func() { m.CreateEntity(0, 0, 2, 7) },
	}
	for i, op := range ops {
		v := m.VersionCount
		op()
		if m.VersionCount <= v {
			t.Errorf("op %d: expected VersionCount to grow from %d, got %d", i, v, m.VersionCount)
		}
		mustInvariants(t, m)
	}
}
