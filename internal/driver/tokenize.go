package driver

import (
	"fmt"

	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/lexer"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/token"
)

// TokenizeResult holds the token stream of one file for inspection.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans every line of the file and collects the tokens the reflow
// engine would see. Debugging aid behind the `tokenize` subcommand.
func Tokenize(path string, maxDiagnostics int, families []lexer.Family) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Families: families,
		Reporter: &diag.BagReporter{Bag: bag},
	})

	var tokens []token.Token
	for line := uint32(1); line <= file.NumLines(); line++ {
		tokens = append(tokens, lx.TokenizeLine(line)...)
	}

	return &TokenizeResult{
		FileSet: fileSet,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
