// Package protocompile implements a small, from-scratch Protocol Buffers
// compiler front-end: it turns .proto source into fully-populated
// google.protobuf.FileDescriptorProto trees, without producing protoreflect
// descriptors or interpreting custom options against a live descriptor
// pool.
package protocompile

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/parser"
	"github.com/andrewhickman/protox-sub000/report"
	"github.com/andrewhickman/protox-sub000/resolve"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Compiler turns a set of file names into fully-generated descriptors.
//
// Compiling one file involves four stages: parsing into an AST, lowering
// the AST into IR (group/map/proto3-optional desugaring),
// collecting its definitions (and its dependencies') into a name map, and
// generating the FileDescriptorProto (which resolves every type reference
// against that name map as it walks the IR).
type Compiler struct {
	// Resolver locates source (or a parsed/compiled form) for a file name.
	// This is the only required field.
	Resolver Resolver
	// MaxParallelism bounds how many files this compiler works on at once.
	// If unspecified or non-positive, min(NumCPU, GOMAXPROCS) is used.
	MaxParallelism int
	// Reporter receives every error/warning found across the compile. A nil
	// Reporter collects diagnostics without aborting early.
	Reporter report.Reporter

	// IncludeSourceInfo, if true, populates SourceCodeInfo (positions and
	// comments) on every generated descriptor.
	IncludeSourceInfo bool
	// IncludeImports, if true, includes descriptors for a file's full
	// transitive dependency closure in Compile's result, not just the files
	// named explicitly.
	IncludeImports bool
	// PreserveUnknownExtensionOptions is not read by Compile. An option this
	// compiler doesn't structurally recognize (i.e., everything but
	// map_entry/message_set_wire_format/deprecated/json_name/default/packed)
	// is always kept as an UninterpretedOption, and the original encoded
	// bytes of a file's options are not passed through. Full interpretation
	// of custom options against their extension definitions is out of scope.
	PreserveUnknownExtensionOptions bool
}

// Compile compiles the named files (and, transitively, everything they
// import) and returns one FileDescriptorProto per requested name, in the
// same order. If IncludeImports is set, the returned slice also contains
// descriptors for the full dependency closure, explicit files first.
func (c *Compiler) Compile(ctx context.Context, files ...string) ([]*descriptorpb.FileDescriptorProto, error) {
	if len(files) == 0 {
		return nil, nil
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	h := report.NewHandler(c.Reporter)
	e := &executor{
		c:       c,
		h:       h,
		sem:     semaphore.NewWeighted(int64(par)),
		results: map[string]*fileResult{},
		names:   map[string]*resolve.NameMap{},
	}

	g, gctx := errgroup.WithContext(ctx)

	results := make([]*fileResult, len(files))
	e.mu.Lock()
	for i, f := range files {
		results[i] = e.compileLocked(gctx, f)
	}
	e.mu.Unlock()

	descs := make([]*descriptorpb.FileDescriptorProto, len(files))
	for i, r := range results {
		i, r := i, r
		g.Go(func() error {
			select {
			case <-r.ready:
			case <-gctx.Done():
				return gctx.Err()
			}
			if r.err != nil {
				return r.err
			}
			descs[i] = r.fd
			return nil
		})
	}

	waitErr := g.Wait()
	if err := h.Error(); err != nil {
		return c.withImports(e, files, descs), err
	}
	if waitErr != nil {
		return c.withImports(e, files, descs), waitErr
	}
	return c.withImports(e, files, descs), nil
}

// withImports appends descriptors for every successfully-compiled
// dependency when IncludeImports is set, skipping the files already present
// in primary. The dependencies come from a map, so their order is not
// defined.
func (c *Compiler) withImports(e *executor, explicit []string, primary []*descriptorpb.FileDescriptorProto) []*descriptorpb.FileDescriptorProto {
	if !c.IncludeImports {
		return primary
	}
	seen := make(map[string]bool, len(explicit))
	for _, f := range explicit {
		seen[f] = true
	}
	out := append([]*descriptorpb.FileDescriptorProto{}, primary...)
	e.mu.Lock()
	defer e.mu.Unlock()
	for name, r := range e.results {
		if seen[name] {
			continue
		}
		select {
		case <-r.ready:
		default:
			continue
		}
		if r.err == nil && r.fd != nil {
			out = append(out, r.fd)
			seen[name] = true
		}
	}
	return out
}

type fileResult struct {
	name string

	ready chan struct{}
	fd    *descriptorpb.FileDescriptorProto
	err   error

	mu        sync.Mutex
	blockedOn []string
}

func (r *fileResult) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *fileResult) complete(fd *descriptorpb.FileDescriptorProto) {
	r.fd = fd
	close(r.ready)
}

func (r *fileResult) setBlockedOn(deps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blockedOn = deps
}

func (r *fileResult) getBlockedOn() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedOn
}

// executor runs one Compile call: it dedupes concurrent requests for the
// same file name, caches each file's generated descriptor and name map, and
// bounds in-flight work with a weighted semaphore. A file and its importer
// can run concurrently as long as the file's own name map is complete
// before the importer resolves against it; releasing the semaphore permit
// while blocked on a dependency avoids deadlocking that bound under deep
// import chains.
type executor struct {
	c   *Compiler
	h   *report.Handler
	sem *semaphore.Weighted

	mu      sync.Mutex
	results map[string]*fileResult

	namesMu sync.Mutex
	names   map[string]*resolve.NameMap
}

func (e *executor) compile(ctx context.Context, file string) *fileResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.compileLocked(ctx, file)
}

func (e *executor) compileLocked(ctx context.Context, file string) *fileResult {
	if r, ok := e.results[file]; ok {
		return r
	}
	r := &fileResult{name: file, ready: make(chan struct{})}
	e.results[file] = r
	go e.doCompile(ctx, file, r)
	return r
}

func (e *executor) nameMapFor(file string) *resolve.NameMap {
	e.namesMu.Lock()
	defer e.namesMu.Unlock()
	return e.names[file]
}

func (e *executor) setNameMap(file string, names *resolve.NameMap) {
	e.namesMu.Lock()
	defer e.namesMu.Unlock()
	e.names[file] = names
}

func (e *executor) doCompile(ctx context.Context, file string, r *fileResult) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	released := false
	release := func() {
		if !released {
			e.sem.Release(1)
			released = true
		}
	}
	defer release()

	sr, err := e.c.Resolver.FindFileByPath(file)
	if err != nil {
		r.fail(fmt.Errorf("could not resolve path %q: %w", file, err))
		return
	}
	if closer, ok := sr.Source.(io.Closer); ok {
		defer closer.Close()
	}

	if sr.Proto != nil {
		r.fail(fmt.Errorf("resolver returned a pre-built descriptor for %q, which this compiler cannot re-derive a name map from", file))
		return
	}

	astFile, err := e.asAST(file, sr)
	if err != nil {
		r.fail(err)
		return
	}

	var depNames map[string]*resolve.NameMap
	if len(astFile.Imports) > 0 {
		depResults := make([]*fileResult, len(astFile.Imports))
		blocked := make([]string, len(astFile.Imports))
		for i, imp := range astFile.Imports {
			if imp.Path == file {
				r.fail(fmt.Errorf("file %q imports itself", file))
				return
			}
			depResults[i] = e.compile(ctx, imp.Path)
			blocked[i] = imp.Path
		}
		r.setBlockedOn(blocked)

		if err := e.checkForDependencyCycle(file, blocked); err != nil {
			r.fail(err)
			return
		}

		release()
		released = true

		depNames = make(map[string]*resolve.NameMap, len(depResults))
		for i, dr := range depResults {
			select {
			case <-dr.ready:
			case <-ctx.Done():
				r.fail(ctx.Err())
				return
			}
			if dr.err != nil {
				r.fail(fmt.Errorf("importing %q: %w", astFile.Imports[i].Path, dr.err))
				return
			}
			depNames[astFile.Imports[i].Path] = e.nameMapFor(dr.name)
		}

		r.setBlockedOn(nil)
		if err := e.sem.Acquire(ctx, 1); err != nil {
			r.fail(err)
			return
		}
		released = false
	}

	irFile := ir.Lower(astFile, e.h)
	names := resolve.CollectNames(irFile, depNames, e.h)
	e.setNameMap(file, names)

	fd := resolve.GenerateFile(irFile, names, e.h, e.c.IncludeSourceInfo)
	r.complete(fd)
}

// checkForDependencyCycle walks the blocked-on graph reachable from file's
// direct imports looking for a path back to file itself. path tracks the
// current chain of imports (for cycle detection); visited just prunes
// re-exploring a subgraph already fully walked along some other branch, so
// two independent imports that happen to share a common dependency aren't
// mistaken for a cycle.
func (e *executor) checkForDependencyCycle(file string, direct []string) error {
	visited := map[string]bool{}
	var walk func(name string, path []string) error
	walk = func(name string, path []string) error {
		for _, p := range path {
			if p == name {
				return fmt.Errorf("cycle found in imports: %v -> %q", append(append([]string{}, path...), name), name)
			}
		}
		if visited[name] {
			return nil
		}
		visited[name] = true
		e.mu.Lock()
		r := e.results[name]
		e.mu.Unlock()
		if r == nil {
			return nil
		}
		for _, dep := range r.getBlockedOn() {
			if err := walk(dep, append(path, name)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, d := range direct {
		if err := walk(d, []string{file}); err != nil {
			return err
		}
	}
	return nil
}

func (e *executor) asAST(name string, sr SearchResult) (*ast.File, error) {
	if sr.AST != nil {
		return sr.AST, nil
	}
	if sr.Source == nil {
		return nil, fmt.Errorf("resolver returned no source for %q", name)
	}
	data, err := io.ReadAll(sr.Source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(name, data, e.h), nil
}
