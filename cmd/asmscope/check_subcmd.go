package main

import (
	"fmt"

	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/asmscope"
	"github.com/inlineasm/asmscope/internal/utils"
	"github.com/muesli/termenv"
)

func CheckDocuments(run runContext, paths []string) (exitCode int) {
	if len(paths) == 0 {
		fmt.Fprintf(run.errW, "missing document path\n")
		return ERROR_STATUS_CODE
	}

	documentPaths, err := collectDocumentPaths(paths)
	if err != nil {
		fmt.Fprintln(run.errW, err)
		return ERROR_STATUS_CODE
	}

	errorCount := 0

	for _, path := range documentPaths {
		run.logger.Debug().Str("path", path).Msg("check document")

		doc, err := readDocument(path)
		if err != nil {
			fmt.Fprintln(run.errW, err)
			errorCount++
			continue
		}

		run.logger.Debug().
			Str("source", doc.Chunk.Name).
			Int("nodes", asmast.CountNodes(doc.Block)).
			Int("functions", len(asmast.FindNodes(doc.Block, (*asmast.FunctionDefinition)(nil), nil))).
			Msg("document decoded")

		analysis, err := asmscope.Analyze(doc.Block, asmscope.AnalysisConfig{
			Chunk:  doc.Chunk,
			Logger: &run.logger,
		})
		if err != nil {
			fmt.Fprintf(run.errW, "%s: %s\n", path, err)
			errorCount++
			continue
		}

		printDeclarationErrors(run, analysis.Errors)
		errorCount += analysis.Errors.Len()
	}

	if errorCount > 0 {
		run.logger.Info().Int("errors", errorCount).Int("documents", len(documentPaths)).Msg("check failed")
		return ERROR_STATUS_CODE
	}
	return 0
}

func printDeclarationErrors(run runContext, errors *asmscope.ErrorList) {
	if !run.colorize {
		if err := errors.Combined(); err != nil {
			fmt.Fprintln(run.errW, err)
		}
		return
	}

	for _, err := range errors.Errors() {
		fmt.Fprintf(run.errW, "%s %s %s\n",
			utils.Colorize(err.Location.String(), termenv.ANSIBrightBlack),
			utils.Colorize(err.Kind+":", termenv.ANSIRed),
			err.Message,
		)
	}
}
