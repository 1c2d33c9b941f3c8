package sourcecode

import (
	"sync"
)

// A Chunk is a named piece of source code. Code can be empty when the AST was produced
// by a tool that did not keep the source around, positions then only carry the span.
type Chunk struct {
	Name string
	Code string

	runes     []rune
	runesLock sync.Mutex
}

func NewChunk(name, code string) *Chunk {
	return &Chunk{Name: name, Code: code}
}

// Runes returns the runes of the code, the result should not be modified.
func (c *Chunk) Runes() []rune {
	c.runesLock.Lock()
	defer c.runesLock.Unlock()

	if c.Code != "" && len(c.runes) == 0 {
		c.runes = []rune(c.Code)
	}
	return c.runes
}

func (c *Chunk) GetSpanLineColumn(span NodeSpan) (int32, int32) {
	return c.lineColumnAt(span.Start)
}

func (c *Chunk) GetEndSpanLineColumn(span NodeSpan) (int32, int32) {
	return c.lineColumnAt(span.End)
}

func (c *Chunk) lineColumnAt(index int32) (int32, int32) {
	line := int32(1)
	col := int32(1)
	runes := c.Runes()

	for i := 0; i < int(index) && i < len(runes); i++ {
		if runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

func (c *Chunk) GetSourcePosition(span NodeSpan) PositionRange {
	line, col := c.GetSpanLineColumn(span)
	endLine, endCol := c.GetEndSpanLineColumn(span)

	return PositionRange{
		SourceName:  c.Name,
		StartLine:   line,
		StartColumn: col,
		EndLine:     endLine,
		EndColumn:   endCol,
		Span:        span,
	}
}
