// Package composer abstracts the host application's message field: the
// editable text area the paste path inserts into. The host supplies the
// real Field; Buffer is an in-process implementation for the CLI and
// tests.
package composer

// Field is the editable surface the paste trigger operates on. All
// mutation goes through two primitives so the host's undo history stays
// useful: WrapSelectionWithLink for URL-over-selection pastes, and
// InsertAndReplace for transformations whose raw form should be one
// undo step away.
type Field interface {
	// Selection returns the currently selected text, empty when the
	// selection is collapsed.
	Selection() string
	// InCodeRegion reports whether the cursor sits inside a code span or
	// fenced block, where markup insertion must not happen.
	InCodeRegion() bool
	// AfterLinkOpener reports whether the cursor directly follows a
	// link-opening marker.
	AfterLinkOpener() bool
	// WrapSelectionWithLink replaces the selection with a formatted link
	// labeled by the selected text and targeting url.
	WrapSelectionWithLink(url string)
	// InsertAndReplace inserts raw at the cursor, selects it, then
	// replaces the selection with final. Undoing once recovers raw.
	InsertAndReplace(raw, final string)
}

// Buffer is a minimal in-memory Field. The cursor is an offset and the
// selection a half-open range; context predicates are plain flags set by
// whoever drives the buffer.
type Buffer struct {
	text       string
	selStart   int
	selEnd     int
	inCode     bool
	afterLink  bool
	lastInsert string
}

var _ Field = (*Buffer)(nil)

// NewBuffer creates a Buffer holding text with a collapsed selection at
// the end.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text, selStart: len(text), selEnd: len(text)}
}

// Text returns the buffer contents.
func (b *Buffer) Text() string { return b.text }

// LastInsert returns the raw text of the most recent InsertAndReplace,
// the value a single undo would restore.
func (b *Buffer) LastInsert() string { return b.lastInsert }

// Select sets the selection range. Out-of-range offsets are clamped.
func (b *Buffer) Select(start, end int) {
	start = clamp(start, 0, len(b.text))
	end = clamp(end, start, len(b.text))
	b.selStart, b.selEnd = start, end
}

// SetInCode marks the cursor as inside a code region.
func (b *Buffer) SetInCode(v bool) { b.inCode = v }

// SetAfterLinkOpener marks the cursor as directly after a link opener.
func (b *Buffer) SetAfterLinkOpener(v bool) { b.afterLink = v }

func (b *Buffer) Selection() string     { return b.text[b.selStart:b.selEnd] }
func (b *Buffer) InCodeRegion() bool    { return b.inCode }
func (b *Buffer) AfterLinkOpener() bool { return b.afterLink }

func (b *Buffer) WrapSelectionWithLink(url string) {
	label := b.Selection()
	b.replaceSelection("[" + label + "](" + url + ")")
}

func (b *Buffer) InsertAndReplace(raw, final string) {
	b.replaceSelection(raw)
	b.Select(b.selEnd-len(raw), b.selEnd)
	b.lastInsert = raw
	b.replaceSelection(final)
}

func (b *Buffer) replaceSelection(s string) {
	b.text = b.text[:b.selStart] + s + b.text[b.selEnd:]
	b.selStart += len(s)
	b.selEnd = b.selStart
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
