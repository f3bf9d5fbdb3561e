package protocompile

import (
	"io"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/andrewhickman/protox-sub000/ast"
)

// Resolver locates a proto file's source (or an already-parsed/compiled
// form of it) given its logical, import-relative path.
type Resolver interface {
	FindFileByPath(string) (SearchResult, error)
}

// SearchResult is what a Resolver hands back for one file. Exactly one of
// Source/AST/Proto should be set. The compiler fails a file whose result has
// Proto set, since it cannot build a name map from a descriptor; otherwise
// it uses AST if set and parses Source only when AST is nil.
//
// There is no Desc (protoreflect.FileDescriptor) field: this compiler never
// builds a live descriptor pool, so a resolver has no way to hand back a
// live descriptor and skip compilation entirely.
type SearchResult struct {
	Source io.Reader
	AST    *ast.File
	Proto  *descriptorpb.FileDescriptorProto
}

// ResolverFunc adapts a plain function to a Resolver.
type ResolverFunc func(string) (SearchResult, error)

var _ Resolver = ResolverFunc(nil)

func (f ResolverFunc) FindFileByPath(path string) (SearchResult, error) {
	return f(path)
}

// CompositeResolver tries each Resolver in turn, returning the first
// successful result.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

func (f CompositeResolver) FindFileByPath(path string) (SearchResult, error) {
	if len(f) == 0 {
		return SearchResult{}, os.ErrNotExist
	}
	var firstErr error
	for _, res := range f {
		r, err := res.FindFileByPath(path)
		if err == nil {
			return r, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return SearchResult{}, firstErr
}

// SourceResolver resolves files from source text on disk (or from a custom
// Accessor), trying each import path in turn. A nil Accessor opens files
// with os.Open.
type SourceResolver struct {
	ImportPaths []string
	Accessor    func(string) (io.ReadCloser, error)
}

var _ Resolver = (*SourceResolver)(nil)

func (r *SourceResolver) FindFileByPath(path string) (SearchResult, error) {
	accessor := r.Accessor
	if accessor == nil {
		accessor = func(p string) (io.ReadCloser, error) { return os.Open(p) }
	}
	if len(r.ImportPaths) == 0 {
		reader, err := accessor(path)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}

	var e error
	for _, importPath := range r.ImportPaths {
		reader, err := accessor(filepath.Join(importPath, path))
		if err != nil {
			if os.IsNotExist(err) {
				e = err
				continue
			}
			return SearchResult{}, err
		}
		return SearchResult{Source: reader}, nil
	}
	return SearchResult{}, e
}
