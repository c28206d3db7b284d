package document

import (
	"errors"

	"golang.org/x/net/html"
)

// Domain errors. These represent contract failures, not user-facing
// conditions; callers fall back to the platform's native behaviour.
var (
	ErrUnknownBlock = errors.New("unknown block")
	ErrEmptyRange   = errors.New("empty block range")
	ErrBadRange     = errors.New("range end precedes start")
)

// BlockID identifies a single message block. IDs are assigned by the host
// in document order, so comparing two IDs compares document positions.
type BlockID int64

// GroupID identifies the recipient group a block was sent to. Blocks with
// the same GroupID render under a shared header.
type GroupID string

// Block is one discrete content unit: a chat message with a stable id,
// its recipient group, the sender's display name, and the rendered
// content tree. Blocks are read-only to this package's consumers.
type Block struct {
	ID      BlockID
	Group   GroupID
	Sender  string
	Content *html.Node
}

// RowKind classifies a row of the rendered document.
type RowKind int

const (
	// RowBlock is a content-bearing message row.
	RowBlock RowKind = iota
	// RowGroupHeader is the header rendered above a recipient group.
	RowGroupHeader
	// RowDateSeparator is a date divider between messages.
	RowDateSeparator
	// RowSpacer is decorative padding with no content.
	RowSpacer
)

// Row is one entry in the rendered document's ordered row list. Only
// RowBlock rows carry content; every other kind is a gap the selection
// resolver must walk across.
type Row struct {
	Kind  RowKind
	Block BlockID
	Group GroupID

	// Hidden marks a row that is rendered collapsed but still occupies a
	// position in the list. A hidden row belongs to the block named by
	// Block yet must never terminate a selection.
	Hidden bool
}

// IsContent reports whether a selection boundary may rest on this row.
func (r Row) IsContent() bool {
	return r.Kind == RowBlock && !r.Hidden
}

// Rows is the ordered row sequence of the rendered document. Indices run
// from 0 to Len()-1; an index outside that range addresses the empty
// regions before and after the document.
type Rows interface {
	Len() int
	Row(i int) Row
}

// Store resolves block ids to blocks.
type Store interface {
	// Block returns the block with the given id, if it exists.
	Block(id BlockID) (*Block, bool)
	// Between returns all blocks with start <= id <= end in document order.
	Between(start, end BlockID) []*Block
}
