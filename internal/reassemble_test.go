package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apertium/apgrep/internal/types"
)

func TestReassemble(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		doc      string
		edits    []Edit
		expected string
		wantErr  bool
	}{
		{
			name:     "no edits",
			doc:      "hello",
			expected: "hello",
		},
		{
			name: "edits in the middle and at both ends",
			doc:  "abcdef",
			edits: []Edit{
				{Range: types.Range{Start: 0, End: 1}, Text: "A"},
				{Range: types.Range{Start: 2, End: 4}, Text: ""},
				{Range: types.Range{Start: 5, End: 6}, Text: "FF"},
			},
			expected: "AbeFF",
		},
		{
			name:     "insertion at an empty range",
			doc:      "ab",
			edits:    []Edit{{Range: types.Range{Start: 1, End: 1}, Text: "-"}},
			expected: "a-b",
		},
		{
			name: "overlapping edits",
			doc:  "abcdef",
			edits: []Edit{
				{Range: types.Range{Start: 0, End: 3}, Text: "x"},
				{Range: types.Range{Start: 2, End: 4}, Text: "y"},
			},
			wantErr: true,
		},
		{
			name:    "out of bounds",
			doc:     "ab",
			edits:   []Edit{{Range: types.Range{Start: 1, End: 5}, Text: "x"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Reassemble([]byte(tt.doc), tt.edits)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateEncoding(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateEncoding([]byte("LEXICON Ñandú\nçà<n>\n")))
	assert.NoError(t, ValidateEncoding(nil))

	err := ValidateEncoding([]byte("ab\xc3"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	err = ValidateEncoding([]byte("\xff"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	err = ValidateEncoding([]byte("LEXICON X\n\xffa\n"))
	require.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "at byte offset 10")
}
