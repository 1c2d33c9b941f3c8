package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/inlineasm/asmscope/internal/asmscope"
)

// DumpScopeTree prints the description of the scope tree of a single document,
// declaration errors are reported on the error output. If $lookupName is not empty
// the result of looking up the name from every scope is printed instead of the tree.
func DumpScopeTree(run runContext, args []string, lookupName string) (exitCode int) {
	if len(args) != 1 {
		fmt.Fprintf(run.errW, "a single document path is expected\n")
		return ERROR_STATUS_CODE
	}

	doc, err := readDocument(args[0])
	if err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}

	analysis, err := asmscope.Analyze(doc.Block, asmscope.AnalysisConfig{
		Chunk:  doc.Chunk,
		Logger: &run.logger,
	})
	if err != nil {
		fmt.Fprintf(run.errW, "%s: %s\n", args[0], err)
		return ERROR_STATUS_CODE
	}

	var description any = analysis.Tree.Describe()
	if lookupName != "" {
		description = analysis.Tree.DescribeLookup(lookupName)
	}

	output, err := json.MarshalIndent(description, "", run.config.DumpIndent)
	if err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}
	fmt.Fprintf(run.outW, "%s\n", output)

	printDeclarationErrors(run, analysis.Errors)
	if !analysis.Success {
		return ERROR_STATUS_CODE
	}
	return 0
}
