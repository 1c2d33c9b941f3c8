package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/inlineasm/asmscope/internal/asmdoc"
	"github.com/maruel/natural"
)

// collectDocumentPaths returns the paths of the documents to process. Files are kept as is,
// directories are walked and the files having a document extension are added in natural order.
func collectDocumentPaths(paths []string) ([]string, error) {
	var result []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			result = append(result, path)
			continue
		}

		var dirDocuments []string

		err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, err := asmdoc.FormatFromPath(path); err == nil {
				dirDocuments = append(dirDocuments, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Sort(natural.StringSlice(dirDocuments))
		result = append(result, dirDocuments...)
	}

	return result, nil
}

func readDocument(path string) (*asmdoc.Document, error) {
	format, err := asmdoc.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := asmdoc.Decode(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	//documents without a source name are named after their file.
	if doc.Chunk.Name == asmdoc.DEFAULT_SOURCE_NAME {
		doc.Chunk.Name = path
	}
	return doc, nil
}
