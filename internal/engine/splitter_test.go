package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBlocksKeepsIdentifierWithItsBlock(t *testing.T) {
	blocks := SplitBlocks("#11111 first entry #22222 second entry")
	require.Len(t, blocks, 2)
	assert.Equal(t, "#11111 first entry ", blocks[0])
	assert.Equal(t, "#22222 second entry", blocks[1])
}

func TestSplitBlocksLeadingPageFurniture(t *testing.T) {
	blocks := SplitBlocks("Report header page 1\n#11111 first entry")
	require.Len(t, blocks, 2)
	assert.Equal(t, "Report header page 1\n", blocks[0])
	assert.Equal(t, "#11111 first entry", blocks[1])
}

func TestSplitBlocksNoIdentifiers(t *testing.T) {
	blocks := SplitBlocks("no identifiers here at all")
	require.Len(t, blocks, 1)
	assert.Equal(t, "no identifiers here at all", blocks[0])
}

func TestSplitBlocksRequiresFiveDigits(t *testing.T) {
	// #1234 is too short to open a block.
	blocks := SplitBlocks("intro #1234 still intro #12345 real entry")
	require.Len(t, blocks, 2)
	assert.Equal(t, "intro #1234 still intro ", blocks[0])
	assert.Equal(t, "#12345 real entry", blocks[1])
}

func TestSplitBlocksEmpty(t *testing.T) {
	assert.Nil(t, SplitBlocks(""))
}

func TestSplitBlocksPreservesDocumentOrder(t *testing.T) {
	blocks := SplitBlocks("#33333 c #11111 a #22222 b")
	require.Len(t, blocks, 3)
	assert.Equal(t, "#33333 c ", blocks[0])
	assert.Equal(t, "#11111 a ", blocks[1])
	assert.Equal(t, "#22222 b", blocks[2])
}
