// Package selection maps raw platform selections onto inclusive block
// ranges. A selection arrives as an ordered list of anchor pairs whose
// positions are not guaranteed to sit inside a message block; the
// resolver walks the document's row list to find the blocks actually
// touched.
package selection

import (
	"github.com/sorrel-io/chatclip/internal/document"
)

// maxHops bounds boundary walking so degenerate row structures cannot
// loop. A boundary that is still unresolved after this many steps is
// treated as unresolvable and the whole range is skipped.
const maxHops = 10

// Anchor is one end of a platform selection range: a row index into the
// rendered document. The index may address a gap row, a position past the
// last row (the trailing empty region), or -1 when the position has no
// document ancestor at all.
type Anchor struct {
	Row int
}

// Outside is the anchor used when a selection endpoint has no
// structured-document ancestor.
var Outside = Anchor{Row: -1}

// Range is one start/end anchor pair. Platforms fragment a single user
// selection into several ranges when it crosses certain boundaries, so a
// user selection is an ordered slice of Ranges. Both major platforms
// place the start anchor before the end anchor in document order
// regardless of drag direction.
type Range struct {
	Start Anchor
	End   Anchor
}

// Resolved is the inclusive block-id range a selection spans. Nil ids
// mean no boundary could be resolved and the caller must defer to the
// platform's native behaviour. ForceMultiBlock is true when resolving
// either boundary required stepping across non-content rows, which
// proves the selection cannot be contained in one block's own
// substructure.
type Resolved struct {
	Start           *document.BlockID
	End             *document.BlockID
	ForceMultiBlock bool
}

// SingleBlock reports whether the resolved range may take the
// same-block short-circuit: both boundaries resolved to the same block
// and no walking was required. ForceMultiBlock stays sticky even when
// the two ids coincide; that is the documented fallback-safety choice.
func (r Resolved) SingleBlock() bool {
	return r.Start != nil && r.End != nil && *r.Start == *r.End && !r.ForceMultiBlock
}

// Resolver resolves selections against a document's row list.
type Resolver struct {
	rows document.Rows
}

// New creates a Resolver over the given row list.
func New(rows document.Rows) *Resolver {
	return &Resolver{rows: rows}
}

// Resolve maps a fragmented selection onto a single inclusive block
// range. The first resolved start across all ranges becomes the overall
// start; the last resolved end becomes the overall end. Ranges whose
// boundaries cannot be resolved within the hop cap are skipped entirely.
// Resolve never fails; an unresolvable selection yields nil ids.
func (r *Resolver) Resolve(ranges []Range) Resolved {
	var out Resolved
	for _, rng := range ranges {
		start, startWalked, ok := r.resolveStart(rng.Start)
		if !ok {
			continue
		}
		end, endWalked, ok := r.resolveEnd(rng.End)
		if !ok {
			continue
		}

		if out.Start == nil {
			out.Start = &start
		}
		out.End = &end

		if startWalked || endWalked {
			out.ForceMultiBlock = true
		}
	}
	return out
}

// resolveStart walks forward from the anchor until it reaches a
// content-bearing row.
func (r *Resolver) resolveStart(a Anchor) (id document.BlockID, walked, ok bool) {
	if a.Row < 0 {
		return 0, false, false
	}
	i := a.Row
	for hops := 0; hops <= maxHops; hops++ {
		if i >= r.rows.Len() {
			return 0, false, false
		}
		if row := r.rows.Row(i); row.IsContent() {
			return row.Block, hops > 0, true
		}
		i++
	}
	return 0, false, false
}

// resolveEnd walks backward from the anchor until it reaches a
// content-bearing row. An anchor in the trailing empty region after the
// last row first snaps to the final row; a snap counts as walking. An
// anchor on a hidden row belonging to the following block, or on a
// header above the next group, lands on the last block before it.
func (r *Resolver) resolveEnd(a Anchor) (id document.BlockID, walked, ok bool) {
	if a.Row < 0 {
		return 0, false, false
	}
	i := a.Row
	if i >= r.rows.Len() {
		i = r.rows.Len() - 1
		walked = true
	}
	for hops := 0; hops <= maxHops; hops++ {
		if i < 0 {
			return 0, false, false
		}
		if row := r.rows.Row(i); row.IsContent() {
			return row.Block, walked || hops > 0, true
		}
		i--
	}
	return 0, false, false
}
