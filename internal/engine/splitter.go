package engine

import "regexp"

// A record identifier is '#' followed by at least five decimal digits.
var reRecordID = regexp.MustCompile(`#\d{5,}`)

// SplitBlocks partitions normalized text into candidate record blocks. Each
// boundary sits immediately before a record identifier, so the identifier
// stays with the block it opens. Text before the first identifier becomes a
// leading block; the parser is expected to reject it as page furniture.
// Blocks come back in document order.
func SplitBlocks(text string) []string {
	if text == "" {
		return nil
	}
	locs := reRecordID.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	blocks := make([]string, 0, len(locs)+1)
	if locs[0][0] > 0 {
		blocks = append(blocks, text[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, text[loc[0]:end])
	}
	return blocks
}
