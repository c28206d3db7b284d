package document

import (
	"fmt"
	"sort"
)

// Message is the raw input for one feed entry: the host-side message
// before rendering.
type Message struct {
	ID       int64
	Group    string
	Sender   string
	Markdown string

	// DateSeparator inserts a date divider row before this message.
	DateSeparator bool
}

// Feed is an in-memory rendered document: an ordered block list plus the
// row structure the host's renderer would produce around it (group
// headers, date separators, a trailing spacer). It implements both Rows
// and Store.
type Feed struct {
	blocks []*Block
	byID   map[BlockID]*Block
	rows   []Row
}

var (
	_ Rows  = (*Feed)(nil)
	_ Store = (*Feed)(nil)
)

// NewFeed renders the given messages into a Feed. Messages must be in
// document order with strictly increasing ids.
func NewFeed(msgs []Message) (*Feed, error) {
	f := &Feed{byID: make(map[BlockID]*Block, len(msgs))}

	var prevID int64
	var prevGroup GroupID
	for i, m := range msgs {
		if i > 0 && m.ID <= prevID {
			return nil, fmt.Errorf("message ids out of order: %d after %d", m.ID, prevID)
		}
		prevID = m.ID

		content, err := RenderMarkdown(m.Markdown)
		if err != nil {
			return nil, fmt.Errorf("render message %d: %w", m.ID, err)
		}
		b := &Block{
			ID:      BlockID(m.ID),
			Group:   GroupID(m.Group),
			Sender:  m.Sender,
			Content: content,
		}
		f.blocks = append(f.blocks, b)
		f.byID[b.ID] = b

		if b.Group != prevGroup {
			f.rows = append(f.rows, Row{Kind: RowGroupHeader, Group: b.Group})
			prevGroup = b.Group
		}
		if m.DateSeparator {
			f.rows = append(f.rows, Row{Kind: RowDateSeparator})
		}
		f.rows = append(f.rows, Row{Kind: RowBlock, Block: b.ID, Group: b.Group})
	}

	if len(f.rows) > 0 {
		f.rows = append(f.rows, Row{Kind: RowSpacer})
	}
	return f, nil
}

// Len returns the number of rows in the rendered document.
func (f *Feed) Len() int { return len(f.rows) }

// Row returns the row at index i. Out-of-range indices return a spacer,
// matching the empty regions around the document.
func (f *Feed) Row(i int) Row {
	if i < 0 || i >= len(f.rows) {
		return Row{Kind: RowSpacer}
	}
	return f.rows[i]
}

// RowIndex returns the row index of the block with the given id, or -1.
func (f *Feed) RowIndex(id BlockID) int {
	for i, r := range f.rows {
		if r.Kind == RowBlock && r.Block == id {
			return i
		}
	}
	return -1
}

// Block returns the block with the given id.
func (f *Feed) Block(id BlockID) (*Block, bool) {
	b, ok := f.byID[id]
	return b, ok
}

// Between returns all blocks with start <= id <= end in document order.
func (f *Feed) Between(start, end BlockID) []*Block {
	if end < start {
		return nil
	}
	lo := sort.Search(len(f.blocks), func(i int) bool { return f.blocks[i].ID >= start })
	hi := sort.Search(len(f.blocks), func(i int) bool { return f.blocks[i].ID > end })
	out := make([]*Block, hi-lo)
	copy(out, f.blocks[lo:hi])
	return out
}
