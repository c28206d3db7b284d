// Package clip wires the copy and paste paths together: the copy
// trigger runs resolver, assembler, and converter to build a clipboard
// replacement payload, and the paste trigger decides what to do with an
// incoming clipboard payload. Both paths are pure; when they decline,
// the platform's native behaviour proceeds untouched.
package clip

import (
	"errors"
	"fmt"

	"github.com/sorrel-io/chatclip/internal/assemble"
	"github.com/sorrel-io/chatclip/internal/composer"
	"github.com/sorrel-io/chatclip/internal/document"
	"github.com/sorrel-io/chatclip/internal/markup"
	"github.com/sorrel-io/chatclip/internal/selection"
)

// CopyResult is the replacement payload for a multi-block copy. HTML is
// what the platform clipboard should observe; Markdown is the canonical
// text form of the same content. Restore must be scheduled by the host
// to run after the native copy has consumed the replacement, never
// synchronously.
type CopyResult struct {
	Range    selection.Resolved
	HTML     string
	Markdown string
	Restore  func()
}

// Copier implements the copy trigger.
type Copier struct {
	resolver *selection.Resolver
	store    document.Store
	conv     *markup.Converter
}

// NewCopier creates a Copier over a rendered document.
func NewCopier(rows document.Rows, store document.Store, conv *markup.Converter) *Copier {
	return &Copier{resolver: selection.New(rows), store: store, conv: conv}
}

// Copy resolves the selection and, when it spans more than one block,
// builds the replacement payload. A nil result with a nil error means
// the custom path does not apply and native copy should proceed: the
// selection was unresolvable, out of order, or contained in a single
// block. Restore is the deferred selection restoration; here it is a
// no-op placeholder the host replaces with its own range bookkeeping.
func (cp *Copier) Copy(ranges []selection.Range, restore func()) (*CopyResult, error) {
	rng := cp.resolver.Resolve(ranges)
	if rng.Start == nil || rng.End == nil {
		return nil, nil
	}
	if *rng.End < *rng.Start {
		return nil, nil
	}
	if rng.SingleBlock() {
		return nil, nil
	}

	tree, err := assemble.Assemble(rng, cp.store)
	if err != nil {
		// Contract violation in the block store; the native path is the
		// safety net.
		return nil, fmt.Errorf("assemble copy payload: %w", err)
	}

	payload, err := document.RenderHTML(tree)
	if err != nil {
		return nil, fmt.Errorf("serialise copy payload: %w", err)
	}

	if restore == nil {
		restore = func() {}
	}
	return &CopyResult{
		Range:    rng,
		HTML:     payload,
		Markdown: cp.conv.Convert(tree),
		Restore:  restore,
	}, nil
}

// PasteAction describes what the paste trigger did.
type PasteAction int

const (
	// PasteNone means the trigger declined; native paste proceeds.
	PasteNone PasteAction = iota
	// PasteLinked means the selection was wrapped with the pasted URL.
	PasteLinked
	// PasteShorthand means the URL was replaced with its internal
	// cross-reference shorthand.
	PasteShorthand
	// PasteConverted means structured markup was converted and inserted.
	PasteConverted
	// PasteImage means the payload is a single image for the host's
	// upload handler; the trigger did not act.
	PasteImage
)

// Payload is one clipboard paste event: the plain-text representation,
// the structured markup representation (may be empty), and whether the
// user forced a plain paste with the shift modifier.
type Payload struct {
	Text       string
	HTML       string
	ForcePlain bool
}

// Paster implements the paste trigger's decision ladder.
type Paster struct {
	conv  *markup.Converter
	links composer.LinkResolver
}

// NewPaster creates a Paster. links may be nil when the deployment has
// no internal cross-reference shorthand.
func NewPaster(conv *markup.Converter, links composer.LinkResolver) *Paster {
	return &Paster{conv: conv, links: links}
}

// Paste applies the decision ladder to one paste event against the
// given field. It reports the action taken; PasteNone and PasteImage
// leave the field untouched.
func (p *Paster) Paste(field composer.Field, payload Payload) (PasteAction, error) {
	if field == nil {
		return PasteNone, errors.New("paste: nil field")
	}

	if composer.IsURL(payload.Text) {
		if sel := field.Selection(); sel != "" && !composer.IsURL(sel) {
			field.WrapSelectionWithLink(payload.Text)
			return PasteLinked, nil
		}
		if p.links != nil && !payload.ForcePlain && !field.InCodeRegion() && !field.AfterLinkOpener() {
			if short := p.links.Shorthand(payload.Text); short != "" {
				// Insert the URL first so a single undo recovers it.
				field.InsertAndReplace(payload.Text, short)
				return PasteShorthand, nil
			}
		}
	}

	if payload.HTML != "" && !payload.ForcePlain && !field.InCodeRegion() {
		root, err := markup.ParseFragment(payload.HTML)
		if err != nil {
			// Malformed payload: nothing to transform.
			return PasteNone, nil
		}
		if markup.IsSingleImage(root) {
			return PasteImage, nil
		}
		text := p.conv.Convert(root)
		if text == "" {
			return PasteNone, nil
		}
		field.InsertAndReplace(payload.Text, text)
		return PasteConverted, nil
	}

	return PasteNone, nil
}
