package asmscope

import (
	"testing"

	"github.com/inlineasm/asmscope/internal/sourcecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		b := block(let("x", num("1")))

		analysis, err := Analyze(b, AnalysisConfig{})
		require.NoError(t, err)
		assert.True(t, analysis.Success)
		assert.True(t, analysis.Errors.Empty())
		assert.Equal(t, 2, analysis.Tree.Len())
	})

	t.Run("declaration errors are not returned as error", func(t *testing.T) {
		b := withSpan(block(let("x", num("1")), withSpan(let("x", num("1")), 2, 3)), 0, 4)

		analysis, err := Analyze(b, AnalysisConfig{Chunk: sourcecode.NewChunk("a.asm", "{ab}")})
		require.NoError(t, err)
		assert.False(t, analysis.Success)
		assert.EqualError(t, analysis.Errors.Combined(), "a.asm:1:3: DeclarationError: Variable name x already taken in this scope.")
	})

	t.Run("a block shared by two parents aborts the analysis", func(t *testing.T) {
		shared := block()
		b := block(block(shared), block(shared))

		analysis, err := Analyze(b, AnalysisConfig{})
		assert.Nil(t, analysis)
		assert.IsType(t, (*ConsistencyError)(nil), err)
	})

	t.Run("a block visited twice under the same parent is not an error", func(t *testing.T) {
		shared := block()
		b := block(shared, shared)

		analysis, err := Analyze(b, AnalysisConfig{})
		require.NoError(t, err)
		assert.True(t, analysis.Success)
		assert.Len(t, analysis.Tree.Get(b).SubScopes(), 1)
	})

	t.Run("nil top-level block", func(t *testing.T) {
		analysis, err := Analyze(nil, AnalysisConfig{})
		assert.Nil(t, analysis)
		assert.IsType(t, (*ConsistencyError)(nil), err)
	})
}
