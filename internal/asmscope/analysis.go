package asmscope

import (
	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/sourcecode"
	"github.com/rs/zerolog"
)

type AnalysisConfig struct {
	Chunk  *sourcecode.Chunk //optional
	Logger *zerolog.Logger   //optional
}

// An Analysis is the result of filling the scopes of a top-level block.
type Analysis struct {
	Tree    *Tree
	Errors  *ErrorList
	Success bool
}

// Analyze creates a new tree and error list and fills them from $block. A *ConsistencyError raised
// during the traversal aborts the analysis and is returned, other panics are not recovered.
func Analyze(block *asmast.Block, config AnalysisConfig) (analysis *Analysis, finalErr error) {
	defer func() {
		if v := recover(); v != nil {
			consistencyErr, ok := v.(*ConsistencyError)
			if !ok {
				panic(v)
			}
			analysis = nil
			finalErr = consistencyErr
		}
	}()

	tree := NewTree()
	errors := &ErrorList{}

	filler := NewFiller(tree, errors, FillerConfig{
		Chunk:  config.Chunk,
		Logger: config.Logger,
	})

	success := filler.Fill(block)

	return &Analysis{
		Tree:    tree,
		Errors:  errors,
		Success: success,
	}, nil
}
