package main

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/asmdesugar"
	"github.com/inlineasm/asmscope/internal/asmdoc"
	"github.com/inlineasm/asmscope/internal/asmscope"
)

// DesugarDocument prints the JSON document of the desugared block of a single document.
// The document should be free of declaration errors, the desugared block is analyzed
// again before being printed.
func DesugarDocument(run runContext, args []string) (exitCode int) {
	if len(args) != 1 {
		fmt.Fprintf(run.errW, "a single document path is expected\n")
		return ERROR_STATUS_CODE
	}
	path := args[0]

	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}

	analysisConfig := asmscope.AnalysisConfig{
		Chunk:  doc.Chunk,
		Logger: &run.logger,
	}

	analysis, err := asmscope.Analyze(doc.Block, analysisConfig)
	if err != nil {
		fmt.Fprintf(run.errW, "%s: %s\n", path, err)
		return ERROR_STATUS_CODE
	}
	if !analysis.Success {
		printDeclarationErrors(run, analysis.Errors)
		return ERROR_STATUS_CODE
	}

	desugared, err := asmdesugar.Desugar(doc.Block, asmdesugar.Config{Logger: &run.logger})
	if err != nil {
		fmt.Fprintf(run.errW, "%s: %s\n", path, err)
		return ERROR_STATUS_CODE
	}

	desugaredAnalysis, err := asmscope.Analyze(desugared, analysisConfig)
	if err != nil {
		fmt.Fprintf(run.errW, "%s: %s\n", path, err)
		return ERROR_STATUS_CODE
	}

	run.logger.Debug().
		Int("nodes", asmast.CountNodes(desugared)).
		Int("scopes", desugaredAnalysis.Tree.Len()).
		Msg("document desugared")

	encoded, err := asmdoc.Encode(&asmdoc.Document{
		Version: doc.Version,
		Chunk:   doc.Chunk,
		Block:   desugared,
	})
	if err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}

	var output bytes.Buffer
	if err := json.Indent(&output, encoded, "", run.config.DumpIndent); err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}
	fmt.Fprintf(run.outW, "%s\n", output.Bytes())

	printDeclarationErrors(run, desugaredAnalysis.Errors)
	if !desugaredAnalysis.Success {
		return ERROR_STATUS_CODE
	}
	return 0
}
