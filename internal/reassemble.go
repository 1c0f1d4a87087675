package internal

import (
	"fmt"
	"strings"
)

// Reassemble copies doc, replacing the span of every edit with its text.
// Edits must be sorted and must not overlap.
func Reassemble(doc []byte, edits []Edit) (string, error) {
	var sb strings.Builder
	sb.Grow(len(doc))

	cursor := 0
	for _, e := range edits {
		if e.Start < cursor || e.End < e.Start || e.End > len(doc) {
			return "", fmt.Errorf("edit %s is out of order or out of bounds (cursor %d, document %d bytes)", e.Range, cursor, len(doc))
		}
		sb.Write(doc[cursor:e.Start])
		sb.WriteString(e.Text)
		cursor = e.End
	}
	sb.Write(doc[cursor:])
	return sb.String(), nil
}
