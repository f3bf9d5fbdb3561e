// Copyright 2020-2022 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve implements the name collector, reference resolver, and
// descriptor generator: it walks a file's IR, builds a fully-qualified
// symbol table (merging in the public surface of its imports), resolves
// every type reference against that table, validates the schema
// constraints, and emits a FileDescriptorProto with SourceCodeInfo.
package resolve

import (
	"strings"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/internal"
	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/report"
)

// DefinitionKind classifies a NameMap entry.
type DefinitionKind int

const (
	KindPackage DefinitionKind = iota
	KindMessage
	KindEnum
	KindEnumValue
	KindOneof
	KindField
	KindService
	KindMethod
)

// Entry is one symbol table record: what it is, where it was declared (for
// diagnostics), and whether it is visible to files that import the
// declaring file only transitively through a plain (non-public) import.
type Entry struct {
	Kind   DefinitionKind
	Pos    ast.SourcePos
	Public bool
}

// NameMap is a file's complete symbol table: its own definitions plus the
// public surface of its dependency graph, keyed by fully-qualified name
// (without a leading dot).
type NameMap map[string]Entry

// CollectNames builds the NameMap for one file: start from the public
// surface of its imports, add its own package prefixes, then
// walk the IR adding every definition. Diagnostics (DuplicateName,
// DuplicateCamelCaseFieldName) are reported to handler; collection never
// stops early, so the returned map is always usable by the resolver even
// when it reports errors.
func CollectNames(f *ir.File, imports map[string]*NameMap, handler *report.Handler) *NameMap {
	names := NameMap{}

	for _, imp := range f.Imports {
		depMap := imports[imp.Path]
		if depMap == nil {
			continue // unresolved import already reported by the driver
		}
		for fqn, e := range *depMap {
			if !e.Public {
				continue
			}
			switch imp.Qualifier {
			case ast.ImportPublic:
				mergeName(names, fqn, e, handler)
			default: // plain or weak
				e.Public = false
				mergeName(names, fqn, e, handler)
			}
		}
	}

	if f.Package != "" {
		parts := strings.Split(f.Package, ".")
		prefix := ""
		for i, p := range parts {
			if i > 0 {
				prefix += "."
			}
			prefix += p
			mergeName(names, prefix, Entry{Kind: KindPackage, Public: true}, handler)
		}
	}

	scope := f.Package
	for _, m := range f.Messages {
		collectMessage(names, f, scope, m, f.Syntax, handler)
	}
	for _, e := range f.Enums {
		collectEnum(names, scope, e, handler)
	}
	for _, s := range f.Services {
		collectService(names, scope, s, handler)
	}
	for _, ext := range f.Extensions {
		addName(names, qualify(scope, ext.Name), Entry{Kind: KindField, Pos: pos(f, ext.Span), Public: true}, handler)
	}

	return &names
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

func pos(f *ir.File, sp ast.Span) ast.SourcePos {
	if f.Info == nil {
		return ast.SourcePos{Filename: f.Name}
	}
	return f.Info.SourcePos(sp.Start)
}

// mergeName merges an imported entry, treating two Package entries as
// compatible.
func mergeName(names NameMap, fqn string, e Entry, handler *report.Handler) {
	existing, ok := names[fqn]
	if !ok {
		names[fqn] = e
		return
	}
	if existing.Kind == KindPackage && e.Kind == KindPackage {
		if e.Public {
			existing.Public = true
			names[fqn] = existing
		}
		return
	}
	// Both imports declaring the same non-package symbol is already a
	// DuplicateName in the declaring file's own collection; don't double
	// report it here.
}

func addName(names NameMap, fqn string, e Entry, handler *report.Handler) {
	existing, ok := names[fqn]
	if ok {
		if existing.Kind == KindPackage && e.Kind == KindPackage {
			names[fqn] = e
			return
		}
		handler.HandleDiagnostic(report.New(report.KindDuplicateName, e.Pos,
			"%q is already defined", fqn))
		return
	}
	names[fqn] = e
}

func collectMessage(names NameMap, f *ir.File, scope string, m *ir.Message, syntax ast.Syntax, handler *report.Handler) {
	fqn := qualify(scope, m.Name)
	addName(names, fqn, Entry{Kind: KindMessage, Public: true}, handler)

	if syntax == ast.Proto3 {
		checkCamelCaseCollisions(f, m, handler)
	}

	for _, fld := range m.Fields {
		addName(names, qualify(fqn, fld.Name), Entry{Kind: KindField, Public: true}, handler)
	}
	for _, o := range m.OneofDecls {
		addName(names, qualify(fqn, o.Name), Entry{Kind: KindOneof, Public: true}, handler)
	}
	for _, nm := range m.NestedMessages {
		collectMessage(names, f, fqn, nm, syntax, handler)
	}
	for _, ne := range m.NestedEnums {
		collectEnum(names, fqn, ne, handler)
	}
	for _, ext := range m.Extensions {
		addName(names, qualify(fqn, ext.Name), Entry{Kind: KindField, Public: true}, handler)
	}
}

func checkCamelCaseCollisions(f *ir.File, m *ir.Message, handler *report.Handler) {
	seen := map[string]string{}
	for _, fld := range m.Fields {
		cc := internal.JSONName(fld.Name)
		if prior, ok := seen[cc]; ok && prior != fld.Name {
			if fld.AST != nil {
				handler.HandleDiagnostic(report.New(report.KindDuplicateCamelCaseFieldName, pos(f, fld.Span),
					"field %q conflicts with field %q when converted to camelCase", fld.Name, prior))
			}
			continue
		}
		seen[cc] = fld.Name
	}
}

func collectEnum(names NameMap, scope string, e *ir.Enum, handler *report.Handler) {
	fqn := qualify(scope, e.Name)
	addName(names, fqn, Entry{Kind: KindEnum, Public: true}, handler)
	for _, v := range e.Values {
		// enum value names live in the *enclosing* scope, not nested under
		// the enum's own name (proto2/proto3 C++ scoping rule).
		addName(names, qualify(scope, v.Name), Entry{Kind: KindEnumValue, Public: true}, handler)
	}
}

func collectService(names NameMap, scope string, s *ir.Service, handler *report.Handler) {
	fqn := qualify(scope, s.Name)
	addName(names, fqn, Entry{Kind: KindService, Public: true}, handler)
	for _, meth := range s.Methods {
		addName(names, qualify(fqn, meth.Name), Entry{Kind: KindMethod, Public: true}, handler)
	}
}
