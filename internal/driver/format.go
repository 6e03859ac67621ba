package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/domfarolino/specfmt/internal/diag"
	"github.com/domfarolino/specfmt/internal/document"
	"github.com/domfarolino/specfmt/internal/gitx"
	"github.com/domfarolino/specfmt/internal/lexer"
	"github.com/domfarolino/specfmt/internal/scope"
	"github.com/domfarolino/specfmt/internal/source"
	"github.com/domfarolino/specfmt/internal/wrap"
)

// FormatOptions configures a formatting run.
type FormatOptions struct {
	// Wrap is the target column width; 0 means wrap.DefaultWidth.
	Wrap int

	// TabWidth is the indentation column equivalent of a tab; 0 means
	// wrap.DefaultTabWidth.
	TabWidth int

	// Full formats the whole document instead of scoping to changed lines.
	Full bool

	// Force skips the dirty-working-tree precondition.
	Force bool

	// BaseBranch overrides base-branch discovery for diff scoping.
	BaseBranch string

	// Check reports whether files would change without writing them.
	Check bool

	// Stdout returns formatted content in the results without touching
	// files on disk.
	Stdout bool

	// MaxDiagnostics bounds the per-file diagnostic bag.
	MaxDiagnostics int

	// NoCache disables the formatted-content skip cache.
	NoCache bool

	// Families overrides the atomic-span delimiter families.
	Families []lexer.Family

	// Blocks overrides the verbatim block markers.
	Blocks []document.BlockMarker
}

func (o FormatOptions) wrapConfig() wrap.Config {
	return wrap.Config{Width: o.Wrap, TabWidth: o.TabWidth}
}

// FormatResult captures the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
	FileSet   *source.FileSet // for resolving diagnostic spans
	Scope     scope.Mode      // the mode actually applied, after any degradation
	CacheHit  bool
}

// FormatPaths formats the given files, in parallel when there are several.
// Per-file failures are recorded in the results; the returned error is
// reserved for cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("format: no files to format")
	}

	var cache *DiskCache
	if !opts.NoCache && !opts.Check && !opts.Stdout {
		// Best effort: a missing or unwritable cache never fails the run.
		cache, _ = OpenDiskCache("specfmt")
	}

	results := make([]FormatResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, opts, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// formatOne runs the whole pipeline for a single file: precondition guard,
// parse, reflow, scope, write-back.
func formatOne(path string, opts FormatOptions, cache *DiskCache) FormatResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := FormatResult{Path: path, Bag: bag}

	dir := filepath.Dir(path)
	repo, _ := gitx.Discover(dir) // nil outside a repository

	if !opts.Force && repo != nil {
		dirty, err := repo.IsDirty(filepath.Base(path))
		if err != nil {
			res.Err = err
			return res
		}
		if dirty {
			res.Err = fmt.Errorf("%s: %w; commit or stash first, or pass --force", path, gitx.ErrDirtyWorkingTree)
			return res
		}
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}
	file := fileSet.Get(fileID)
	res.FileSet = fileSet

	mode, changed, err := resolveScope(repo, path, opts, bag, file)
	if err != nil {
		res.Err = err
		return res
	}
	res.Scope = mode

	// The cache only memoizes full-document results: diff-scoped output
	// depends on git state the key does not capture.
	key := cacheKey(contentDigest(file.Raw()), opts)
	if cache != nil && mode == scope.ModeFull {
		var payload CachePayload
		if hit, _ := cache.Get(key, &payload); hit {
			res.Formatted = file.Raw()
			res.CacheHit = true
			return res
		}
	}

	doc := document.Parse(file, document.Options{
		Lexer:    lexer.Options{Families: opts.Families},
		Blocks:   opts.Blocks,
		Reporter: &diag.BagReporter{Bag: bag},
	})

	candidate := doc.Reflowed(opts.wrapConfig())
	regions := scope.Classify(doc.Paragraphs, changed, mode)
	final := scope.Apply(doc, candidate, regions)
	formatted := doc.Render(final)

	res.Formatted = formatted
	res.Changed = !bytes.Equal(file.Raw(), formatted)

	if res.Changed && !opts.Check && !opts.Stdout {
		if err := writeFileAtomic(path, formatted); err != nil {
			res.Err = fmt.Errorf("failed to write %s: %w", path, err)
			return res
		}
	}

	if cache != nil && mode == scope.ModeFull && !opts.Check && !opts.Stdout {
		_ = cache.Put(cacheKey(contentDigest(formatted), opts), &CachePayload{
			Schema:   cacheSchemaVersion,
			Wrap:     opts.wrapConfig().Width,
			TabWidth: opts.wrapConfig().TabWidth,
		})
	}

	return res
}

// resolveScope decides the scoping mode and changed-line set. A missing
// repository or baseline degrades to full-document scope with an
// informational diagnostic; it never silently scopes to nothing.
func resolveScope(repo *gitx.Repository, path string, opts FormatOptions, bag *diag.Bag, file *source.File) (scope.Mode, scope.LineSet, error) {
	if opts.Full {
		return scope.ModeFull, nil, nil
	}

	if repo == nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevInfo,
			Code:     diag.ScopeNotRepository,
			Message:  "not inside a git repository; formatting the whole file",
			Primary:  source.Span{File: file.ID},
		})
		return scope.ModeFull, nil, nil
	}

	base := opts.BaseBranch
	if base == "" {
		var err error
		base, err = repo.BaseBranch()
		if errors.Is(err, gitx.ErrNoBaseline) {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo,
				Code:     diag.ScopeNoBaseline,
				Message:  "no main or master base branch found; formatting the whole file",
				Primary:  source.Span{File: file.ID},
			})
			return scope.ModeFull, nil, nil
		}
		if err != nil {
			return scope.ModeFull, nil, err
		}
	}

	lines, err := repo.ChangedLines(filepath.Base(path), base)
	if err != nil {
		return scope.ModeFull, nil, err
	}
	return scope.ModeDiff, scope.NewLineSet(lines), nil
}

// writeFileAtomic replaces path with data via a temp file and rename in the
// same directory, preserving the original mode. Either the full new content
// lands or the old file is left untouched.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".specfmt-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		_ = os.Remove(tmp) // no-op after a successful rename
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
