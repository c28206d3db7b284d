package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeed_RowStructure(t *testing.T) {
	f, err := NewFeed([]Message{
		{ID: 1, Group: "dev", Sender: "alice", Markdown: "a"},
		{ID: 2, Group: "dev", Sender: "bob", Markdown: "b"},
		{ID: 3, Group: "ops", Sender: "carol", Markdown: "c", DateSeparator: true},
	})
	require.NoError(t, err)

	kinds := make([]RowKind, f.Len())
	for i := range kinds {
		kinds[i] = f.Row(i).Kind
	}
	assert.Equal(t, []RowKind{
		RowGroupHeader,
		RowBlock,
		RowBlock,
		RowGroupHeader,
		RowDateSeparator,
		RowBlock,
		RowSpacer,
	}, kinds)

	assert.Equal(t, GroupID("ops"), f.Row(3).Group)
	assert.Equal(t, BlockID(3), f.Row(5).Block)
}

func TestNewFeed_RejectsOutOfOrderIDs(t *testing.T) {
	_, err := NewFeed([]Message{
		{ID: 2, Group: "dev", Sender: "a", Markdown: "x"},
		{ID: 1, Group: "dev", Sender: "b", Markdown: "y"},
	})
	assert.Error(t, err)
}

func TestFeed_OutOfRangeRowsAreGaps(t *testing.T) {
	f, err := NewFeed([]Message{{ID: 1, Group: "dev", Sender: "a", Markdown: "x"}})
	require.NoError(t, err)

	assert.False(t, f.Row(-1).IsContent())
	assert.False(t, f.Row(f.Len()).IsContent())
}

func TestFeed_Between(t *testing.T) {
	f, err := NewFeed([]Message{
		{ID: 10, Group: "dev", Sender: "a", Markdown: "x"},
		{ID: 20, Group: "dev", Sender: "b", Markdown: "y"},
		{ID: 30, Group: "ops", Sender: "c", Markdown: "z"},
	})
	require.NoError(t, err)

	got := f.Between(10, 20)
	require.Len(t, got, 2)
	assert.Equal(t, BlockID(10), got[0].ID)
	assert.Equal(t, BlockID(20), got[1].ID)

	// Boundaries need not be existing ids.
	got = f.Between(11, 35)
	require.Len(t, got, 2)
	assert.Equal(t, BlockID(20), got[0].ID)

	assert.Empty(t, f.Between(40, 50))
	assert.Empty(t, f.Between(20, 10))
}

func TestFeed_RowIndex(t *testing.T) {
	f, err := NewFeed([]Message{
		{ID: 1, Group: "dev", Sender: "a", Markdown: "x"},
		{ID: 2, Group: "ops", Sender: "b", Markdown: "y"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.RowIndex(1))
	assert.Equal(t, 3, f.RowIndex(2))
	assert.Equal(t, -1, f.RowIndex(9))
}

func TestRenderMarkdown(t *testing.T) {
	root, err := RenderMarkdown("**hi** ~~x~~")
	require.NoError(t, err)

	out, err := RenderHTML(root)
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>hi</strong>")
	assert.Contains(t, out, "<del>x</del>")
}

func TestCloneTree(t *testing.T) {
	root, err := ParseFragment(`<p class="x">a<em>b</em></p>`)
	require.NoError(t, err)

	clone := CloneTree(root)
	clone.FirstChild.AppendChild(NewText("!"))

	orig, err := RenderHTML(root)
	require.NoError(t, err)
	cloned, err := RenderHTML(clone)
	require.NoError(t, err)

	assert.Equal(t, `<p class="x">a<em>b</em></p>`, orig)
	assert.Equal(t, `<p class="x">a<em>b</em>!</p>`, cloned)
}
