package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorrel-io/chatclip/internal/document"
)

// rows is a hand-built row list for resolver tests.
type rows []document.Row

func (r rows) Len() int               { return len(r) }
func (r rows) Row(i int) document.Row { return r[i] }

func block(id int64) document.Row {
	return document.Row{Kind: document.RowBlock, Block: document.BlockID(id)}
}

func header(group string) document.Row {
	return document.Row{Kind: document.RowGroupHeader, Group: document.GroupID(group)}
}

func hidden(owner int64) document.Row {
	return document.Row{Kind: document.RowBlock, Block: document.BlockID(owner), Hidden: true}
}

func spacer() document.Row {
	return document.Row{Kind: document.RowSpacer}
}

// feed is the baseline document used below:
//
//	0 header dev
//	1 block 1
//	2 block 2
//	3 header ops
//	4 date separator
//	5 block 3
//	6 spacer
var feed = rows{
	header("dev"),
	block(1),
	block(2),
	header("ops"),
	{Kind: document.RowDateSeparator},
	block(3),
	spacer(),
}

func ids(r Resolved) (int64, int64) {
	if r.Start == nil || r.End == nil {
		return -1, -1
	}
	return int64(*r.Start), int64(*r.End)
}

func TestResolve_SingleBlock(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{{Start: Anchor{Row: 1}, End: Anchor{Row: 1}}})

	start, end := ids(got)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(1), end)
	assert.False(t, got.ForceMultiBlock)
	assert.True(t, got.SingleBlock())
}

func TestResolve_SpansBlocks(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{{Start: Anchor{Row: 1}, End: Anchor{Row: 5}}})

	start, end := ids(got)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(3), end)
	assert.False(t, got.ForceMultiBlock)
	assert.False(t, got.SingleBlock())
}

func TestResolve_StartOnHeaderWalksForward(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{{Start: Anchor{Row: 0}, End: Anchor{Row: 2}}})

	start, end := ids(got)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(2), end)
	assert.True(t, got.ForceMultiBlock, "walking a gap row must force the multi-block path")
}

func TestResolve_EndOnHeaderAboveNextGroup(t *testing.T) {
	// An end anchor in the header region above "ops" belongs to the
	// selection that ends with the last "dev" block, not the upcoming
	// group.
	r := New(feed)
	got := r.Resolve([]Range{{Start: Anchor{Row: 1}, End: Anchor{Row: 3}}})

	start, end := ids(got)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(2), end)
	assert.True(t, got.ForceMultiBlock)
}

func TestResolve_EndInTrailingEmptyRegion(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{{Start: Anchor{Row: 5}, End: Anchor{Row: 40}}})

	start, end := ids(got)
	assert.Equal(t, int64(3), start)
	assert.Equal(t, int64(3), end)
	assert.True(t, got.ForceMultiBlock, "snapping out of the trailing region counts as walking")
	assert.False(t, got.SingleBlock(), "force flag stays sticky even when both ids coincide")
}

func TestResolve_EndOnHiddenRowOfFollowingBlock(t *testing.T) {
	// Row 2 is a collapsed region rendered with block 5's rows; a
	// selection ending there must resolve to block 4.
	r := New(rows{block(4), hidden(5), block(5)})
	got := r.Resolve([]Range{{Start: Anchor{Row: 0}, End: Anchor{Row: 1}}})

	start, end := ids(got)
	assert.Equal(t, int64(4), start)
	assert.Equal(t, int64(4), end)
	assert.True(t, got.ForceMultiBlock)
}

func TestResolve_HopCap(t *testing.T) {
	// Eleven consecutive gap rows exceed the hop cap.
	var long rows
	long = append(long, block(1))
	for i := 0; i < 11; i++ {
		long = append(long, spacer())
	}
	long = append(long, block(2))

	r := New(long)

	t.Run("start walk capped", func(t *testing.T) {
		got := r.Resolve([]Range{{Start: Anchor{Row: 1}, End: Anchor{Row: 12}}})
		assert.Nil(t, got.Start)
		assert.Nil(t, got.End)
	})

	t.Run("within cap resolves", func(t *testing.T) {
		got := r.Resolve([]Range{{Start: Anchor{Row: 2}, End: Anchor{Row: 12}}})
		require.NotNil(t, got.Start)
		start, end := ids(got)
		assert.Equal(t, int64(2), start)
		assert.Equal(t, int64(2), end)
	})
}

func TestResolve_AnchorOutsideDocument(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{{Start: Outside, End: Anchor{Row: 2}}})

	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
	assert.False(t, got.SingleBlock())
}

func TestResolve_FragmentedSelection(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{
		{Start: Anchor{Row: 1}, End: Anchor{Row: 1}},
		{Start: Anchor{Row: 2}, End: Anchor{Row: 2}},
		{Start: Anchor{Row: 5}, End: Anchor{Row: 5}},
	})

	start, end := ids(got)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(3), end)
	assert.False(t, got.ForceMultiBlock)
}

func TestResolve_SkipsUnresolvableFragment(t *testing.T) {
	r := New(feed)
	got := r.Resolve([]Range{
		{Start: Outside, End: Anchor{Row: 1}},
		{Start: Anchor{Row: 2}, End: Anchor{Row: 2}},
	})

	start, end := ids(got)
	assert.Equal(t, int64(2), start)
	assert.Equal(t, int64(2), end)
}

func TestResolve_NoRanges(t *testing.T) {
	r := New(feed)
	got := r.Resolve(nil)
	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
	assert.False(t, got.ForceMultiBlock)
}
