// Package protocompile provides the entry point for a small, from-scratch
// Protocol Buffers compiler front-end. "Compile" here means parsing and
// validating .proto source and generating fully-populated
// google.protobuf.FileDescriptorProto trees; unlike protoc, this package
// does not use the descriptors to generate code, and it never constructs a
// protoreflect.Descriptor or interprets custom options against a live
// descriptor pool.
//
// The various sub-packages represent the compile phases and hold the
// models for their intermediate results. Those phases follow:
//  1. Parse into AST.
//     Also see: parser.Parse
//  2. Lower the AST into desugared IR (groups, maps, proto3 explicit
//     optional fields are expanded into their synthetic field/message/oneof
//     forms).
//     Also see: ir.Lower
//  3. Collect every file's definitions (and its imports' public surface)
//     into a name map.
//     Also see: resolve.CollectNames
//  4. Resolve every type reference against that name map while generating
//     the descriptor, recording SourceCodeInfo as it goes.
//     Also see: resolve.GenerateFile
//
// This package provides an easy-to-use interface that drives all of these
// phases based on the inputs given, taking advantage of multiple CPU cores
// so that a compilation involving many files completes quickly.
//
// # Resolvers
//
// A Resolver is how the compiler locates artifacts that are inputs to the
// compilation: protobuf source, or an already-parsed AST for it.
//
// A Resolver can provide either of the following in response to a query for
// an input:
//   - Source code: if a resolver answers a query with protobuf source, the
//     compiler parses and compiles it.
//   - AST: if a resolver answers a query with an AST, the parsing step is
//     skipped and the rest of the pipeline is applied directly.
//
// Compilation uses the Resolver to load the files requested for compilation
// and also to load all of their dependencies (the files they import).
//
// # Compiler
//
// A Compiler accepts a list of file names and produces the list of
// descriptors. Only the Resolver field is required. A minimal Compiler that
// resolves files from the file system relative to the current working
// directory looks like:
//
//	compiler := protocompile.Compiler{
//	    Resolver: &protocompile.SourceResolver{},
//	}
//
// This minimal Compiler uses default parallelism (the smaller of the number
// of CPU cores detected and GOMAXPROCS), does not generate source code info, and collects every
// diagnostic reported during a file's compile rather than aborting at the
// first one. All of these can be customized by setting other fields.
package protocompile
