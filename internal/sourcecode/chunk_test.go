package sourcecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkGetSourcePosition(t *testing.T) {

	t.Run("single line", func(t *testing.T) {
		chunk := NewChunk("a.asm", "{ let x := 1 }")

		pos := chunk.GetSourcePosition(NodeSpan{Start: 2, End: 12})
		assert.Equal(t, PositionRange{
			SourceName:  "a.asm",
			StartLine:   1,
			StartColumn: 3,
			EndLine:     1,
			EndColumn:   13,
			Span:        NodeSpan{Start: 2, End: 12},
		}, pos)
		assert.Equal(t, "a.asm:1:3:", pos.String())
	})

	t.Run("multiline", func(t *testing.T) {
		chunk := NewChunk("a.asm", "{\n  let x := 1\n}")

		line, col := chunk.GetSpanLineColumn(NodeSpan{Start: 4, End: 14})
		assert.EqualValues(t, 2, line)
		assert.EqualValues(t, 3, col)
	})

	t.Run("no code", func(t *testing.T) {
		chunk := NewChunk("generated", "")

		pos := chunk.GetSourcePosition(NodeSpan{Start: 10, End: 20})
		assert.EqualValues(t, 1, pos.StartLine)
		assert.EqualValues(t, 1, pos.StartColumn)
		assert.Equal(t, NodeSpan{Start: 10, End: 20}, pos.Span)
	})
}
